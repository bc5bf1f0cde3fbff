package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/statecraft/pkg/io"
)

// minimizeCommand creates the minimize command: rewrite a machine as its
// smallest equivalent DFA.
func (c *CLI) minimizeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "minimize <file>",
		Short: "Minimize a machine to its smallest equivalent DFA",
		Long: `Minimize prunes unreferenced states, merges indistinguishable ones, and
renames the result to canonical labels. The output format follows the output
file extension (.json or .toml); without --output the result replaces the
input file's extension with .min.json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := io.Import(args[0])
			if err != nil {
				return err
			}
			before := m.NumStates()

			p := newProgress(c.Logger)
			if err := m.Minimize(); err != nil {
				return err
			}
			p.done(fmt.Sprintf("Minimized %d states to %d", before, m.NumStates()))

			out := output
			if out == "" {
				out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".min.json"
			}
			if err := io.Export(m, out); err != nil {
				return err
			}

			printSuccess("Minimized %s", filepath.Base(args[0]))
			printStats(m.NumStates(), m.TransitionCount(), false)
			printFile(out)
			printNextStep("Render it", fmt.Sprintf("%s render %s", appName, out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json or .toml)")

	return cmd
}
