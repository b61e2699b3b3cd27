package root

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/walpha-cli/walpha/pkg/logging"
	"github.com/walpha-cli/walpha/pkg/paths"
	"github.com/walpha-cli/walpha/pkg/userconfig"
)

type rootFlags struct {
	debugMode   bool
	logFilePath string
	configPath  string
	logFile     io.Closer
	config      *userconfig.Config
}

func NewRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "walpha",
		Short: "walpha - WolframAlpha in your terminal",
		Long:  "walpha queries WolframAlpha and prints the result pods, drawing tabular results as tables",
		Example: `  walpha population of france
  walpha query --raw "calendar 2024"
  pbpaste | walpha format`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.setupLogging(); err != nil {
				// If logging setup fails, fall back to stderr so we still get logs
				slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
				slog.Warn("Failed to open log file", "error", err)
			}

			config, err := userconfig.LoadFrom(cmp.Or(flags.configPath, userconfig.Path()))
			if err != nil {
				return err
			}
			flags.config = config

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if flags.logFile != nil {
				if err := flags.logFile.Close(); err != nil {
					slog.Error("Failed to close log file", "error", err)
				}
			}
			return nil
		},
		// If no subcommand is specified, show help
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.debugMode, "debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.logFilePath, "log-file", "", "Path to debug log file (default: ~/.walpha/walpha.debug.log; only used with --debug)")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to the config file (default: ~/.config/walpha/config.yaml)")

	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "advanced", Title: "Advanced Commands:"})

	cmd.AddCommand(newQueryCmd(&flags))
	cmd.AddCommand(newFormatCmd(&flags))
	cmd.AddCommand(newConfigCmd(&flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func Execute(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args ...string) error {
	rootCmd := NewRootCmd()
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(defaultToQuery(rootCmd, args))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return processErr(ctx, err, stderr, rootCmd)
	}
	return nil
}

// defaultToQuery prepends "query" to the argument list when the first
// positional argument is not a subcommand, so that "walpha 2+2" runs a
// query. Help flags and bare flags are left alone.
func defaultToQuery(rootCmd *cobra.Command, args []string) []string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append([]string{"query"}, args...)
		case arg == "--help" || arg == "-h":
			return args
		case strings.HasPrefix(arg, "-"):
			if takesValue(rootCmd, arg) {
				i++
			}
			continue
		case isSubcommand(rootCmd, arg):
			return args
		default:
			return append([]string{"query"}, args...)
		}
	}

	return args
}

// takesValue reports whether arg is a flag given without "=" whose value is
// the next argument.
func takesValue(rootCmd *cobra.Command, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}

	flags := []*pflag.FlagSet{rootCmd.PersistentFlags()}
	if query, _, err := rootCmd.Find([]string{"query"}); err == nil {
		flags = append(flags, query.LocalFlags())
	}

	name := strings.TrimLeft(arg, "-")
	for _, set := range flags {
		flag := set.Lookup(name)
		if flag == nil && len(name) == 1 {
			flag = set.ShorthandLookup(name)
		}
		if flag != nil {
			return flag.NoOptDefVal == ""
		}
	}
	return false
}

// isSubcommand reports whether name matches a registered subcommand or alias.
func isSubcommand(cmd *cobra.Command, name string) bool {
	switch name {
	case "help", "completion", "__complete", "__completeNoDesc":
		return true
	}
	for _, sub := range cmd.Commands() {
		if sub.Name() == name || sub.HasAlias(name) {
			return true
		}
	}
	return false
}

func processErr(ctx context.Context, err error, stderr io.Writer, rootCmd *cobra.Command) error {
	if ctx.Err() != nil {
		return ctx.Err()
	} else if _, ok := errors.AsType[RuntimeError](err); ok {
		// Runtime errors have already been printed by the command itself
	} else {
		// Command line usage errors - show the error and usage
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr)
		if strings.HasPrefix(err.Error(), "unknown command ") || strings.HasPrefix(err.Error(), "accepts ") || strings.HasPrefix(err.Error(), "requires ") {
			_ = rootCmd.Usage()
		}
	}

	return err
}

// setupLogging configures slog logging behavior.
// When --debug is enabled, logs are written to a rotating file <dataDir>/walpha.debug.log,
// or to the file specified by --log-file.
func (f *rootFlags) setupLogging() error {
	path := cmp.Or(strings.TrimSpace(f.logFilePath), filepath.Join(paths.GetDataDir(), "walpha.debug.log"))

	logFile, err := logging.Setup(f.debugMode, path)
	if err != nil {
		return err
	}
	f.logFile = logFile

	return nil
}

// RuntimeError wraps runtime errors to distinguish them from usage errors
type RuntimeError struct {
	Err error
}

func (e RuntimeError) Error() string {
	return e.Err.Error()
}

func (e RuntimeError) Unwrap() error {
	return e.Err
}
