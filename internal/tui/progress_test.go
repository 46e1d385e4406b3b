package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	cserrors "github.com/tripfolio/cityscout/internal/errors"
)

func TestProgressModel_UpdatesStatus(t *testing.T) {
	updates := make(chan tea.Msg, 1)
	m := newProgressModel("Seeding images", 3, updates)

	next, _ := m.Update(progressMsg{name: "Lisbon", index: 1, total: 3})
	model := next.(*progressModel)

	view := model.View()
	if !strings.Contains(view, "Seeding images") {
		t.Errorf("view should contain the title, got %q", view)
	}
	if !strings.Contains(view, "1/3") {
		t.Errorf("view should contain the counter, got %q", view)
	}
	if !strings.Contains(view, "Lisbon") {
		t.Errorf("view should contain the current city, got %q", view)
	}
}

func TestProgressModel_DoneQuits(t *testing.T) {
	updates := make(chan tea.Msg, 1)
	m := newProgressModel("Seeding images", 2, updates)

	next, cmd := m.Update(doneMsg{})
	model := next.(*progressModel)

	if !model.done {
		t.Error("model should be marked done")
	}
	if cmd == nil {
		t.Fatal("done should produce a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("done command should be tea.Quit")
	}
}

func TestProgressModel_KeyAborts(t *testing.T) {
	updates := make(chan tea.Msg, 1)
	m := newProgressModel("Seeding images", 2, updates)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	model := next.(*progressModel)

	if !model.aborted {
		t.Error("ctrl+c should mark the model aborted")
	}
	if cmd == nil {
		t.Fatal("ctrl+c should produce a quit command")
	}
}

func TestProgressRunner_DrivesProgram(t *testing.T) {
	orig := runProgram
	defer func() { runProgram = orig }()

	var received []tea.Msg
	runProgram = func(m tea.Model) (tea.Model, error) {
		pm := m.(*progressModel)
		for msg := range pm.updates {
			received = append(received, msg)
		}
		return m, nil
	}

	r := NewProgressRunner("Seeding images", 2)
	if err := r.OnProgress("Lisbon", 1, 2); err != nil {
		t.Fatalf("OnProgress returned error: %v", err)
	}
	if err := r.OnProgress("Porto", 2, 2); err != nil {
		t.Fatalf("OnProgress returned error: %v", err)
	}
	if err := r.Finish(); err != nil {
		t.Fatalf("Finish returned error: %v", err)
	}

	if len(received) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(received))
	}
	first := received[0].(progressMsg)
	if first.name != "Lisbon" || first.index != 1 {
		t.Errorf("unexpected first update: %+v", first)
	}
}

func TestProgressRunner_DropsUpdatesAfterUIExit(t *testing.T) {
	orig := runProgram
	defer func() { runProgram = orig }()

	// Consume a single update and return, like a program that quit early.
	runProgram = func(m tea.Model) (tea.Model, error) {
		pm := m.(*progressModel)
		<-pm.updates
		return m, nil
	}

	r := NewProgressRunner("Seeding images", 30)

	// Far more callbacks than the channel buffer holds; none may block
	// once the UI is gone.
	for i := 1; i <= 20; i++ {
		if err := r.OnProgress("Lisbon", i, 30); err != nil {
			t.Fatalf("OnProgress returned error on update %d: %v", i, err)
		}
	}
	<-r.done
	if r.Aborted() {
		t.Error("a finished UI should not report an abort")
	}
	if err := r.Finish(); err != nil {
		t.Fatalf("Finish returned error: %v", err)
	}
}

func TestProgressRunner_AbortStopsSeeding(t *testing.T) {
	orig := runProgram
	defer func() { runProgram = orig }()

	// Simulate the user hitting q before the first update arrives.
	runProgram = func(m tea.Model) (tea.Model, error) {
		pm := m.(*progressModel)
		pm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		return m, nil
	}

	r := NewProgressRunner("Seeding images", 5)
	<-r.done

	err := r.OnProgress("Lisbon", 1, 5)
	if !cserrors.IsStopProcessingError(err) {
		t.Fatalf("expected a stop-processing error after abort, got %v", err)
	}
	if !r.Aborted() {
		t.Error("runner should report the abort")
	}
	if err := r.Finish(); err != nil {
		t.Fatalf("Finish returned error: %v", err)
	}
}
