package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nholt/zeelore/engine/registry"
	"github.com/nholt/zeelore/engine/savestate"
	"github.com/nholt/zeelore/types"
)

func testSave() *savestate.Save {
	reg := registry.New([]*types.Quality{
		{ID: 1, Name: "Iron", Cap: 200},
		{ID: 2, Name: "Supplies"},
		{ID: 3, Name: "Favours: Antiquarian", UsePyramidNumbers: true},
	}, nil)
	sv := savestate.New(reg, nil)
	sv.Quality(1).SetValue(40)
	sv.Quality(2).SetValue(12)
	sv.Quality(3).SetValue(2)
	return sv
}

func TestFormatRow(t *testing.T) {
	sv := testSave()
	row := formatRow(sv.Quality(1))
	for _, want := range []string{"1", "Iron", "40"} {
		if !strings.Contains(row, want) {
			t.Errorf("missing %q in row %q", want, row)
		}
	}

	sq := sv.Quality(3)
	sq.SetXP(1)
	row = formatRow(sq)
	if !strings.Contains(row, "xp 1") {
		t.Errorf("pyramid row should show xp, got %q", row)
	}

	sv.Quality(1).SetModifier(5)
	row = formatRow(sv.Quality(1))
	if !strings.Contains(row, "40+5") {
		t.Errorf("modifier should render next to the level, got %q", row)
	}
}

func TestRefilter_NarrowsRows(t *testing.T) {
	m := New(testSave(), "/tmp/save.json")
	if len(m.rows) != 3 {
		t.Fatalf("expected all 3 rows, got %d", len(m.rows))
	}

	m.filter.SetValue("antiquarian")
	m.refilter()
	if len(m.rows) != 1 || m.rows[0].Quality().ID != 3 {
		t.Errorf("expected only the Antiquarian row, got %d rows", len(m.rows))
	}
}

func TestAdjust_ChangesSelectedRow(t *testing.T) {
	m := New(testSave(), "/tmp/save.json")
	m.cursor = 1 // Supplies at 12
	m.adjust(1)
	if got := m.rows[1].Value(); got != 13 {
		t.Errorf("expected 13 after adjust, got %d", got)
	}
	if !m.dirty {
		t.Error("adjust should mark the save modified")
	}
}

func TestUpdate_CursorMovement(t *testing.T) {
	m := New(testSave(), "/tmp/save.json")
	m.ready = true
	m.width, m.height = 80, 24

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	if m.cursor != 1 {
		t.Errorf("expected cursor 1 after down, got %d", m.cursor)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	if m.cursor != 0 {
		t.Errorf("expected cursor 0 after up, got %d", m.cursor)
	}
}

func TestUpdate_EditCommit(t *testing.T) {
	m := New(testSave(), "/tmp/save.json")
	m.ready = true

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if !m.editing {
		t.Fatal("enter should open the value prompt")
	}
	m.edit.SetValue("77")
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if m.editing {
		t.Fatal("enter should commit and close the prompt")
	}
	if got := m.rows[0].Value(); got != 77 {
		t.Errorf("expected 77 after commit, got %d", got)
	}
}
