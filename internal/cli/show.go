package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/statecraft/pkg/fsm"
	"github.com/matzehuels/statecraft/pkg/io"
)

// showCommand creates the show command: print a machine's transition table.
func (c *CLI) showCommand() *cobra.Command {
	var compress, spaced bool

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print a machine's transition table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := io.Import(args[0])
			if err != nil {
				return err
			}

			printKeyValue("states", fmt.Sprint(m.NumStates()))
			printKeyValue("transitions", fmt.Sprint(m.TransitionCount()))
			printKeyValue("start", fsm.Label(m.StartState()))
			printNewline()

			if compress {
				view, err := fsm.New(m.CompressLabels(spaced))
				if err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, view.String())
				return nil
			}
			fmt.Fprintln(os.Stdout, m.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&compress, "compress", false, "group symbols sharing a target")
	cmd.Flags().BoolVar(&spaced, "spaced", false, "space out compressed labels")

	return cmd
}
