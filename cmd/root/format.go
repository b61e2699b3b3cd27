package root

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/walpha-cli/walpha/pkg/alpha"
	"github.com/walpha-cli/walpha/pkg/cli"
	"github.com/walpha-cli/walpha/pkg/texttable"
)

func newFormatCmd(root *rootFlags) *cobra.Command {
	var wide bool

	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Draw pipe separated text as tables",
		Long: `Read text from a file or standard input, split it into blocks on blank
lines and draw every block that looks like a table. Other blocks are printed unchanged.`,
		Example: `  printf 'A | B\n1 | 2\n' | walpha format
  walpha format pod.txt`,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				cli.NewPrinter(cmd.ErrOrStderr()).PrintError(err)
				return RuntimeError{Err: err}
			}

			formatter := texttable.New(texttable.WithMeasure(measure(wide || (root.config != nil && root.config.WideChars))))

			var blocks []string
			for _, block := range alpha.Blocks(text) {
				blocks = append(blocks, formatter.FormatOr(block))
			}

			cli.NewPrinter(cmd.OutOrStdout()).PrintBlocks(blocks)

			return nil
		},
	}

	cmd.Flags().BoolVar(&wide, "wide", false, "Measure East Asian wide characters as two columns")

	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return string(data), nil
}
