package root

import (
	"cmp"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/walpha-cli/walpha/pkg/alpha"
	"github.com/walpha-cli/walpha/pkg/cli"
	"github.com/walpha-cli/walpha/pkg/httpclient"
	"github.com/walpha-cli/walpha/pkg/texttable"
	"github.com/walpha-cli/walpha/pkg/userconfig"
)

type queryFlags struct {
	raw       bool
	firstPage bool
	timeout   time.Duration
	baseURL   string
}

func newQueryCmd(root *rootFlags) *cobra.Command {
	var flags queryFlags

	cmd := &cobra.Command{
		Use:     "query <words>...",
		Aliases: []string{"q"},
		Short:   "Query WolframAlpha and print the result pods",
		Example: `  walpha query ibm apl
  walpha query --first-page "2+2"`,
		Args:    cobra.MinimumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.run(cmd, root.config, strings.Join(args, " "))
		},
	}

	cmd.Flags().BoolVar(&flags.raw, "raw", false, "Print pod text as retrieved, without drawing tables")
	cmd.Flags().BoolVar(&flags.firstPage, "first-page", false, "Only print the pods of the first result page")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "Request timeout (default from config, or 30s)")
	cmd.Flags().StringVar(&flags.baseURL, "base-url", "", "Override the query page address")

	return cmd
}

func (f *queryFlags) run(cmd *cobra.Command, config *userconfig.Config, query string) error {
	opts, err := clientOptions(config)
	if err != nil {
		return err
	}
	if f.firstPage {
		opts = append(opts, alpha.WithAllPods(false))
	}
	if f.timeout > 0 {
		opts = append(opts, alpha.WithTimeout(f.timeout))
	}
	if f.baseURL != "" {
		opts = append(opts, alpha.WithBaseURL(f.baseURL))
	}

	slog.Debug("Running query", "query", query)

	result, err := alpha.New(opts...).Query(cmd.Context(), query)
	if err != nil {
		cli.NewPrinter(cmd.ErrOrStderr()).PrintError(err)
		return RuntimeError{Err: err}
	}

	cli.NewPrinter(cmd.OutOrStdout()).PrintResult(result, f.raw)

	return nil
}

// clientOptions translates the user configuration into client options.
func clientOptions(config *userconfig.Config) ([]alpha.Option, error) {
	if config == nil {
		config = &userconfig.Config{}
	}

	timeout, err := config.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	ttl, err := config.CacheTTLDuration()
	if err != nil {
		return nil, err
	}

	headers := httpclient.DefaultHeaders()
	if len(config.Headers) > 0 {
		headers = httpclient.CanonicalHeaders(config.Headers)
	}
	if config.UserAgent != "" {
		headers["User-Agent"] = config.UserAgent
	}

	opts := []alpha.Option{
		alpha.WithBaseURL(cmp.Or(config.BaseURL, alpha.DefaultBaseURL)),
		alpha.WithHeaders(headers),
		alpha.WithTimeout(cmp.Or(timeout, alpha.DefaultTimeout)),
		alpha.WithAllPods(config.IncludeAllPods()),
		alpha.WithConcurrency(config.Concurrency),
		alpha.WithCache(ttl),
		alpha.WithRespectRobots(config.RespectRobots),
		alpha.WithMeasure(measure(config.WideChars)),
	}

	return opts, nil
}

func measure(wide bool) texttable.Measure {
	if wide {
		return texttable.DisplayWidth
	}
	return texttable.RuneCount
}
