package root

import (
	"cmp"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/walpha-cli/walpha/pkg/alpha"
	"github.com/walpha-cli/walpha/pkg/cli"
	"github.com/walpha-cli/walpha/pkg/userconfig"
)

func newConfigCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage user configuration",
		Long:  "View and manage user-level walpha configuration stored in ~/.config/walpha/config.yaml",
		Example: `  # Show the current configuration
  walpha config show

  # Write a config file with the default settings
  walpha config init

  # Show the path to the config file
  walpha config path`,
		GroupID: "advanced",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShowCommand(cmd, root)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current configuration",
		Long:  "Display the current user configuration in YAML format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShowCommand(cmd, root)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the path to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cli.NewPrinter(cmd.OutOrStdout()).Println(configPath(root))
			return nil
		},
	})
	cmd.AddCommand(newConfigInitCmd(root))

	return cmd
}

func newConfigInitCmd(root *rootFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configPath(root)

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists, use --force to overwrite", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			allPods := true
			config := &userconfig.Config{
				BaseURL:     alpha.DefaultBaseURL,
				AllPods:     &allPods,
				Timeout:     alpha.DefaultTimeout.String(),
				Concurrency: alpha.DefaultConcurrency,
			}
			if err := config.SaveTo(path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			cli.NewPrinter(cmd.OutOrStdout()).Printf("Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func runConfigShowCommand(cmd *cobra.Command, root *rootFlags) error {
	out := cli.NewPrinter(cmd.OutOrStdout())

	config := root.config
	if config == nil {
		config = &userconfig.Config{}
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	out.Printf("%s", data)
	return nil
}

func configPath(root *rootFlags) string {
	return cmp.Or(root.configPath, userconfig.Path())
}
