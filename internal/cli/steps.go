package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/glasspiral/glasspiral/pkg/trace"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// stepsCommand creates the steps command, an interactive trace browser.
func (c *CLI) stepsCommand() *cobra.Command {
	var example bool

	cmd := &cobra.Command{
		Use:   "steps [trace.txt]",
		Short: "Browse trace steps interactively",
		Long: `Browse trace steps interactively.

Opens a scrollable table of every step in the trace showing its index,
operation type, name, value, source line, and call depth. Useful for
inspecting a trace before visualizing it.

Examples:
  glasspiral steps trace.txt
  glasspiral steps --example`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var steps trace.Trace
			var err error
			switch {
			case example:
				steps = trace.ExampleTrace()
			case len(args) == 1:
				steps, _, err = readTrace(args[0])
			default:
				return cmd.Help()
			}
			if err != nil {
				return err
			}
			if len(steps) == 0 {
				printWarning("Trace is empty")
				return nil
			}
			model := NewStepListModel(steps)
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&example, "example", false, "browse the bundled example trace")

	return cmd
}

// =============================================================================
// StepListModel - Interactive trace browsing
// =============================================================================

// StepListModel is the bubbletea model for scrolling through trace steps.
type StepListModel struct {
	Steps  trace.Trace
	Cursor int
	Height int
	Offset int
}

// NewStepListModel creates a new step list model.
func NewStepListModel(steps trace.Trace) StepListModel {
	return StepListModel{
		Steps:  steps,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m StepListModel) Init() tea.Cmd {
	return nil
}

func (m StepListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Steps)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g", "home":
			m.Cursor = 0
			m.Offset = 0
		case "G", "end":
			m.Cursor = len(m.Steps) - 1
			m.Offset = m.Cursor - m.Height + 1
			if m.Offset < 0 {
				m.Offset = 0
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m StepListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Trace Steps"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Steps) {
		end = len(m.Steps)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Steps[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		value := s.Value
		if len(value) > 24 {
			value = value[:21] + "..."
		}

		rows = append(rows, []string{
			cursor,
			strconv.Itoa(s.Index),
			string(s.Type),
			s.Label(),
			value,
			strconv.Itoa(s.Line),
			strings.Repeat("·", s.Depth),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Type", "Name", "Value", "Line", "Depth").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Steps) {
				return lipgloss.NewStyle()
			}
			s := m.Steps[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col == 5 || col == 6 {
				base = base.Foreground(colorDim)
			}

			if isCurrent {
				if col == 2 {
					return base.Foreground(colorCyan).Bold(true)
				}
				return base.Bold(true)
			}
			if s.IsCall() && col == 2 {
				return base.Foreground(colorGreen)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Steps))))

	return b.String()
}
