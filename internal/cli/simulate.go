package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/statecraft/pkg/fsm"
	"github.com/matzehuels/statecraft/pkg/io"
)

// simulateCommand creates the simulate command: an interactive session that
// steps a machine one symbol at a time.
func (c *CLI) simulateCommand() *cobra.Command {
	var minimize bool

	cmd := &cobra.Command{
		Use:   "simulate <file>",
		Short: "Step through a machine interactively",
		Long: `Simulate opens an interactive session on the machine defined in <file>.
Type a symbol to take its transition, backspace to undo, r to rewind to the
start state, and q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := io.Import(args[0])
			if err != nil {
				return err
			}
			if minimize {
				if err := m.Minimize(); err != nil {
					return err
				}
			}

			model, err := newSimulateModel(m)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&minimize, "minimize", false, "minimize the machine before simulating")

	return cmd
}

// =============================================================================
// simulateModel - Interactive machine stepping
// =============================================================================

var (
	simAcceptStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	simRejectStyle = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	simDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// simulateModel is the bubbletea model for interactive stepping. The cursor
// cannot step backwards, so undo replays the shortened trace from the start.
type simulateModel struct {
	machine *fsm.Machine
	cursor  *fsm.Cursor
	trace   []fsm.Symbol
	status  string
}

func newSimulateModel(m *fsm.Machine) (simulateModel, error) {
	cursor, err := m.Cursor()
	if err != nil {
		return simulateModel{}, err
	}
	return simulateModel{machine: m, cursor: cursor}, nil
}

func (s simulateModel) Init() tea.Cmd {
	return nil
}

func (s simulateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return s, tea.Quit
	case "r":
		s.cursor.Reset()
		s.trace = nil
		s.status = ""
		return s, nil
	case "backspace":
		if len(s.trace) == 0 {
			return s, nil
		}
		s.trace = s.trace[:len(s.trace)-1]
		s.cursor.Reset()
		if err := s.cursor.Feed(s.trace...); err != nil {
			s.status = err.Error()
		} else {
			s.status = ""
		}
		return s, nil
	}

	sym := fsm.Symbol(key.String())
	if _, ok := s.machine.Target(s.cursor.State(), sym); !ok {
		s.status = fmt.Sprintf("no transition on %q", sym)
		return s, nil
	}
	if err := s.cursor.Feed(sym); err != nil {
		s.status = err.Error()
		return s, nil
	}
	s.trace = append(s.trace, sym)
	s.status = ""
	return s, nil
}

func (s simulateModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Simulate"))
	b.WriteString("\n")
	b.WriteString(simDimStyle.Render("type a symbol to step  ⌫ undo  r rewind  q quit"))
	b.WriteString("\n\n")

	state := s.cursor.Label()
	if s.cursor.Accepting() {
		b.WriteString("  " + simAcceptStyle.Render(state+" (accepting)"))
	} else {
		b.WriteString("  " + simRejectStyle.Render(state+" (rejecting)"))
	}
	b.WriteString("\n")

	word := "ε"
	if len(s.trace) > 0 {
		parts := make([]string, len(s.trace))
		for i, sym := range s.trace {
			parts[i] = string(sym)
		}
		word = strings.Join(parts, " ")
	}
	b.WriteString("  " + simDimStyle.Render("word: ") + StyleValue.Render(word))
	b.WriteString("\n\n")

	rows := [][]string{}
	for _, sym := range s.machine.Symbols(s.cursor.State()) {
		t, _ := s.machine.Target(s.cursor.State(), sym)
		dests := make([]string, 0, len(t.States()))
		for _, id := range t.States() {
			dests = append(dests, fsm.Label(id))
		}
		rows = append(rows, []string{string(sym), strings.Join(dests, ", ")})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Symbol", "Target").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	b.WriteString(t.Render())
	b.WriteString("\n")

	if s.status != "" {
		b.WriteString("\n" + StyleWarning.Render(s.status) + "\n")
	}

	return b.String()
}
