package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/statecraft/pkg/errors"
	"github.com/matzehuels/statecraft/pkg/fsm"
	"github.com/matzehuels/statecraft/pkg/io"
)

// runCommand creates the run command: feed a word to a machine and report
// whether it is accepted.
func (c *CLI) runCommand() *cobra.Command {
	var minimize, prune bool

	cmd := &cobra.Command{
		Use:   "run <file> <word>...",
		Short: "Run input words through a machine",
		Long: `Run feeds one or more input words to the machine defined in <file> and
reports accept or reject for each. A word is either a plain string of
one-character symbols ("1011") or a comma-separated symbol list ("10,3,10").`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := io.Import(args[0])
			if err != nil {
				return err
			}
			if minimize {
				if err := m.Minimize(); err != nil {
					return err
				}
			} else if prune {
				m.Prune()
				if err := m.Normalize(); err != nil {
					return err
				}
			}

			rejected := 0
			for _, word := range args[1:] {
				accepted, err := c.runWord(m, word)
				if err != nil {
					return err
				}
				if accepted {
					printSuccess("%s %s", word, StyleSuccess.Render("accepted"))
				} else {
					printError("%s %s", word, StyleError.Render("rejected"))
					rejected++
				}
			}
			if rejected > 0 {
				printNewline()
				printDetail("%d of %d words rejected", rejected, len(args)-1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&minimize, "minimize", false, "minimize the machine before running")
	cmd.Flags().BoolVar(&prune, "prune", false, "prune unreferenced states before running")

	return cmd
}

// runWord feeds a single word through a fresh cursor. An undefined transition
// counts as a rejection rather than a hard failure.
func (c *CLI) runWord(m *fsm.Machine, word string) (bool, error) {
	cursor, err := m.Cursor()
	if err != nil {
		return false, err
	}

	symbols := parseSymbols([]string{word})
	fsmSymbols := make([]fsm.Symbol, len(symbols))
	for i, s := range symbols {
		fsmSymbols[i] = fsm.Symbol(s)
	}

	if err := cursor.Feed(fsmSymbols...); err != nil {
		if errors.Is(err, errors.ErrCodeInvalidTransition) {
			c.Logger.Debug("word left the machine",
				"word", word, "state", cursor.Label(), "err", err)
			return false, nil
		}
		return false, err
	}

	c.Logger.Debug("word consumed",
		"word", word,
		"path", strings.Join(symbols, " "),
		"final", cursor.Label())
	return cursor.Accepting(), nil
}
