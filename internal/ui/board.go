// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/task-cli/internal/task"
)

// ErrNotTerminal is returned when the board is started without a terminal.
var ErrNotTerminal = errors.New("board requires a TTY")

// Repository is the subset of task operations the board drives.
type Repository interface {
	List(filter *task.Status) ([]task.Task, error)
	Mark(id int, status task.Status) error
	Delete(id int) error
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
)

// filterKeys maps number keys to status filters. "0" clears the filter.
var filterKeys = map[string]task.Status{
	"1": task.StatusTodo,
	"2": task.StatusInProgress,
	"3": task.StatusDone,
}

// markKeys maps keys to the status they set on the selected task.
var markKeys = map[string]task.Status{
	"t": task.StatusTodo,
	"p": task.StatusInProgress,
	"d": task.StatusDone,
}

// RunBoard starts the interactive board on out.
func RunBoard(ctx context.Context, repo Repository, out io.Writer) error {
	if !IsTTY(out) {
		return ErrNotTerminal
	}

	program := tea.NewProgram(newBoardModel(repo),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(out),
	)
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

type boardModel struct {
	repo     Repository
	tasks    []task.Task
	cursor   int
	filter   *task.Status
	err      error
	notice   string
	showHelp bool
}

func newBoardModel(repo Repository) *boardModel {
	return &boardModel{repo: repo}
}

func (m *boardModel) Init() tea.Cmd {
	m.reload()
	return nil
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch k := key.String(); k {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "h", "?":
		m.showHelp = !m.showHelp
	case "r":
		m.notice = ""
		m.reload()
	case "0":
		m.filter = nil
		m.cursor = 0
		m.reload()
	case "1", "2", "3":
		status := filterKeys[k]
		m.filter = &status
		m.cursor = 0
		m.reload()
	case "t", "p", "d":
		m.mark(markKeys[k])
	case "x":
		m.remove()
	}
	return m, nil
}

// selected returns the task under the cursor.
func (m *boardModel) selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return task.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m *boardModel) mark(status task.Status) {
	t, ok := m.selected()
	if !ok {
		return
	}
	if err := m.repo.Mark(t.ID, status); err != nil {
		m.err = err
		return
	}
	m.notice = fmt.Sprintf("Task %d marked as %s.", t.ID, status)
	m.reload()
}

func (m *boardModel) remove() {
	t, ok := m.selected()
	if !ok {
		return
	}
	if err := m.repo.Delete(t.ID); err != nil {
		m.err = err
		return
	}
	m.notice = fmt.Sprintf("Task %d deleted.", t.ID)
	m.reload()
}

// reload refreshes the visible tasks and keeps the cursor in range.
func (m *boardModel) reload() {
	tasks, err := m.repo.List(m.filter)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.tasks = tasks
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *boardModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Task Board"))
	b.WriteString("\n\n")

	if m.showHelp {
		writeHelp(&b)
		return b.String()
	}

	if m.filter != nil {
		fmt.Fprintf(&b, "Filter: %s (0 to clear)\n\n", *m.filter)
	}

	if len(m.tasks) == 0 {
		b.WriteString(faintStyle.Render("  No tasks."))
		b.WriteString("\n")
	}
	for i, t := range m.tasks {
		line := fmt.Sprintf("[%d] %s - %s", t.ID, t.Description, t.Status)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	} else if m.notice != "" {
		b.WriteString(m.notice + "\n\n")
	}

	b.WriteString(faintStyle.Render("Press h for help | q to quit"))
	b.WriteString("\n")
	return b.String()
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  up, k        Move up\n")
	b.WriteString("  down, j      Move down\n")
	b.WriteString("  t            Mark todo\n")
	b.WriteString("  p            Mark in-progress\n")
	b.WriteString("  d            Mark done\n")
	b.WriteString("  x            Delete task\n")
	b.WriteString("  1            Filter by todo\n")
	b.WriteString("  2            Filter by in-progress\n")
	b.WriteString("  3            Filter by done\n")
	b.WriteString("  0            Clear filter\n")
	b.WriteString("  r            Reload\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  q, ctrl+c    Quit\n\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
