package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/filmina/pkg/errors"
	"github.com/matzehuels/filmina/pkg/study"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	listCursorStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
)

// =============================================================================
// StudyPicker - Interactive study selection
// =============================================================================

// StudyPicker is the bubbletea model that asks which stored study a
// command should work on.
type StudyPicker struct {
	Studies  []*study.Study
	Cursor   int
	Offset   int
	Height   int
	Selected *study.Study

	now time.Time
}

// NewStudyPicker creates a picker over list, oldest first.
func NewStudyPicker(list []*study.Study) StudyPicker {
	return StudyPicker{Studies: list, Height: 12, now: time.Now()}
}

func (m StudyPicker) Init() tea.Cmd {
	return nil
}

func (m StudyPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveTo(m.Cursor - 1)
		case "down", "j":
			m.moveTo(m.Cursor + 1)
		case "home", "g":
			m.moveTo(0)
		case "end", "G":
			m.moveTo(len(m.Studies) - 1)
		case "enter":
			if len(m.Studies) == 0 {
				return m, tea.Quit
			}
			m.Selected = m.Studies[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 3)
		m.moveTo(m.Cursor)
	}
	return m, nil
}

// moveTo puts the cursor on row i, clamped, and scrolls it into view.
func (m *StudyPicker) moveTo(i int) {
	m.Cursor = max(0, min(i, len(m.Studies)-1))
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m StudyPicker) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Study"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Studies))
	b.WriteString(studyTable(m.Studies[m.Offset:end], m.Cursor-m.Offset, m.now).Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Studies))))

	return b.String()
}

// runStudyPicker shows the picker on the terminal. Quitting without a
// choice cancels the command.
func runStudyPicker(list []*study.Study) (*study.Study, error) {
	final, err := tea.NewProgram(NewStudyPicker(list)).Run()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "study picker")
	}
	if m, ok := final.(StudyPicker); ok && m.Selected != nil {
		return m.Selected, nil
	}
	return nil, errors.Wrap(errors.ErrCodeStudyNotFound, context.Canceled, "no study selected")
}

// interactive reports whether both stdin and stdout are terminals.
func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

func stderrIsTerminal() bool {
	return isatty.IsTerminal(os.Stderr.Fd())
}

// =============================================================================
// Study Table
// =============================================================================

// studyTable lays out studies one per row. The row at cursor is marked and
// highlighted; pass -1 for a plain listing.
func studyTable(list []*study.Study, cursor int, now time.Time) *table.Table {
	headers := []string{"Title", "Place", "Cand.", "Block A", "Block B", "Updated", "ID"}
	if cursor >= 0 {
		headers = append([]string{""}, headers...)
	}

	rows := make([][]string, 0, len(list))
	for i, s := range list {
		row := []string{
			s.Title,
			orDash(joinPlace(s.Municipality, s.State)),
			strconv.Itoa(len(s.Candidates)),
			strconv.Itoa(len(s.BlockA)),
			strconv.Itoa(len(s.BlockB)),
			formatRelativeTime(s.UpdatedAt, now),
			s.ID,
		}
		if cursor >= 0 {
			marker := "  "
			if i == cursor {
				marker = "▸ "
			}
			row = append([]string{marker}, row...)
		}
		rows = append(rows, row)
	}

	// first is the column of the title; counts follow two columns later.
	first := 0
	if cursor >= 0 {
		first = 1
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return listHeaderStyle
			case row == cursor:
				return listCursorStyle
			}
			switch col - first {
			case 2, 3, 4:
				return StyleNumber
			case 5, 6:
				return StyleDim
			}
			return StyleValue
		})
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// formatRelativeTime renders t relative to now for recent times and as a
// date otherwise.
func formatRelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Local().Format("Jan 2, 2006")
	}
}
