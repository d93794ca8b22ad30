package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/task-cli/internal/task"
)

// fakeRepo keeps tasks in memory and records mutations.
type fakeRepo struct {
	tasks   []task.Task
	listErr error
	markErr error
	marks   []string
	deletes []int
}

func (r *fakeRepo) List(filter *task.Status) ([]task.Task, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return task.Filter(r.tasks, filter), nil
}

func (r *fakeRepo) Mark(id int, status task.Status) error {
	if r.markErr != nil {
		return r.markErr
	}
	r.marks = append(r.marks, string(status))
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks[i].Status = status
			break
		}
	}
	return nil
}

func (r *fakeRepo) Delete(id int) error {
	r.deletes = append(r.deletes, id)
	var kept []task.Task
	for _, t := range r.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	r.tasks = kept
	return nil
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tasks: []task.Task{
		{ID: 1, Description: "Buy milk", Status: task.StatusTodo},
		{ID: 2, Description: "Write report", Status: task.StatusInProgress},
		{ID: 3, Description: "Pay rent", Status: task.StatusDone},
	}}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *boardModel, keys ...tea.KeyMsg) {
	for _, k := range keys {
		m.Update(k)
	}
}

func TestBoardInitLoadsTasks(t *testing.T) {
	m := newBoardModel(newFakeRepo())
	m.Init()

	view := m.View()
	for _, want := range []string{"[1] Buy milk - todo", "[2] Write report - in-progress", "[3] Pay rent - done"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestBoardCursorMovement(t *testing.T) {
	m := newBoardModel(newFakeRepo())
	m.Init()

	tests := []struct {
		key  tea.KeyMsg
		want int
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, 0},
		{tea.KeyMsg{Type: tea.KeyDown}, 1},
		{runeKey("j"), 2},
		{runeKey("j"), 2},
		{runeKey("k"), 1},
	}
	for _, tt := range tests {
		m.Update(tt.key)
		if m.cursor != tt.want {
			t.Errorf("after %q: cursor = %d, want %d", tt.key.String(), m.cursor, tt.want)
		}
	}
}

func TestBoardMarkKeys(t *testing.T) {
	tests := []struct {
		key  string
		want task.Status
	}{
		{"d", task.StatusDone},
		{"p", task.StatusInProgress},
		{"t", task.StatusTodo},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			repo := newFakeRepo()
			m := newBoardModel(repo)
			m.Init()
			press(m, runeKey("j"), runeKey(tt.key))

			if len(repo.marks) != 1 || repo.marks[0] != string(tt.want) {
				t.Fatalf("marks = %v, want [%s]", repo.marks, tt.want)
			}
			if got := repo.tasks[1].Status; got != tt.want {
				t.Errorf("task 2 status = %q, want %q", got, tt.want)
			}
			if !strings.Contains(m.View(), "Task 2 marked as "+string(tt.want)+".") {
				t.Errorf("view should report the change:\n%s", m.View())
			}
		})
	}
}

func TestBoardDelete(t *testing.T) {
	repo := newFakeRepo()
	m := newBoardModel(repo)
	m.Init()
	press(m, runeKey("j"), runeKey("j"), runeKey("x"))

	if len(repo.deletes) != 1 || repo.deletes[0] != 3 {
		t.Fatalf("deletes = %v, want [3]", repo.deletes)
	}
	if len(m.tasks) != 2 {
		t.Fatalf("tasks after delete = %d, want 2", len(m.tasks))
	}
	if m.cursor != 1 {
		t.Errorf("cursor should clamp to last row, got %d", m.cursor)
	}
}

func TestBoardFilters(t *testing.T) {
	tests := []struct {
		key     string
		wantIDs []int
	}{
		{"1", []int{1}},
		{"2", []int{2}},
		{"3", []int{3}},
		{"0", []int{1, 2, 3}},
	}

	m := newBoardModel(newFakeRepo())
	m.Init()
	for _, tt := range tests {
		m.Update(runeKey(tt.key))
		var got []int
		for _, tk := range m.tasks {
			got = append(got, tk.ID)
		}
		if len(got) != len(tt.wantIDs) {
			t.Fatalf("filter %s: got ids %v, want %v", tt.key, got, tt.wantIDs)
		}
		for i := range got {
			if got[i] != tt.wantIDs[i] {
				t.Errorf("filter %s: got ids %v, want %v", tt.key, got, tt.wantIDs)
			}
		}
	}
}

func TestBoardFilterShownInView(t *testing.T) {
	m := newBoardModel(newFakeRepo())
	m.Init()
	m.Update(runeKey("2"))

	if !strings.Contains(m.View(), "Filter: in-progress") {
		t.Errorf("view should show the filter:\n%s", m.View())
	}
}

func TestBoardErrorsShownInView(t *testing.T) {
	repo := newFakeRepo()
	m := newBoardModel(repo)
	m.Init()

	repo.markErr = errors.New("disk full")
	m.Update(runeKey("d"))
	if !strings.Contains(m.View(), "disk full") {
		t.Errorf("view should show the mark error:\n%s", m.View())
	}

	repo.listErr = errors.New("task file is corrupt")
	m.Update(runeKey("r"))
	if !strings.Contains(m.View(), "task file is corrupt") {
		t.Errorf("view should show the load error:\n%s", m.View())
	}
}

func TestBoardEmpty(t *testing.T) {
	m := newBoardModel(&fakeRepo{})
	m.Init()
	press(m, runeKey("d"), runeKey("x"), tea.KeyMsg{Type: tea.KeyDown})

	if !strings.Contains(m.View(), "No tasks.") {
		t.Errorf("empty board should say so:\n%s", m.View())
	}
}

func TestBoardHelpToggle(t *testing.T) {
	m := newBoardModel(newFakeRepo())
	m.Init()

	m.Update(runeKey("?"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help should be shown")
	}
	m.Update(runeKey("h"))
	if strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help should be hidden again")
	}
}

func TestBoardQuit(t *testing.T) {
	for _, key := range []tea.KeyMsg{runeKey("q"), {Type: tea.KeyCtrlC}} {
		m := newBoardModel(newFakeRepo())
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("%q should return a command", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q should quit", key.String())
		}
	}
}

func TestRunBoardRequiresTTY(t *testing.T) {
	err := RunBoard(context.Background(), newFakeRepo(), new(bytes.Buffer))
	if !errors.Is(err, ErrNotTerminal) {
		t.Errorf("expected ErrNotTerminal, got %v", err)
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(new(bytes.Buffer)) {
		t.Error("a buffer is not a terminal")
	}
}
