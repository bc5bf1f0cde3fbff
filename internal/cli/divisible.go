package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/statecraft/pkg/fsm"
	"github.com/matzehuels/statecraft/pkg/io"
)

// divisibleCommand creates the divisible command: build the DFA accepting
// base-b numbers divisible by m.
func (c *CLI) divisibleCommand() *cobra.Command {
	var output string
	var minimize bool

	cmd := &cobra.Command{
		Use:   "divisible <base> <divisor> [word...]",
		Short: "Build a divisibility-checker DFA",
		Long: `Divisible constructs the machine that accepts exactly the base-b numbers
divisible by m, one state per remainder. Trailing words are digit strings
tested against the checker. With --output the definition is written as JSON
or TOML (by extension); otherwise the transition table prints to stdout.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("base must be an integer: %q", args[0])
			}
			divisor, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("divisor must be an integer: %q", args[1])
			}

			m, err := fsm.DivisibilityChecker(base, divisor)
			if err != nil {
				return err
			}
			if minimize {
				if err := m.Minimize(); err != nil {
					return err
				}
			}

			if words := args[2:]; len(words) > 0 {
				for _, word := range words {
					accepted, err := c.runWord(m, word)
					if err != nil {
						return err
					}
					if accepted {
						printSuccess("%s %s", word, StyleSuccess.Render("divisible"))
					} else {
						printError("%s %s", word, StyleError.Render("not divisible"))
					}
				}
				if output == "" {
					return nil
				}
			}

			if output != "" {
				if err := io.Export(m, output); err != nil {
					return err
				}
				printSuccess("Built divisibility checker (base %d, divisor %d)", base, divisor)
				printStats(m.NumStates(), m.TransitionCount(), false)
				printFile(output)
				printNextStep("Try a word", fmt.Sprintf("%s run %s <word>", appName, output))
				return nil
			}

			fmt.Fprintln(os.Stdout, m.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json or .toml)")
	cmd.Flags().BoolVar(&minimize, "minimize", false, "minimize the checker before writing")

	return cmd
}
