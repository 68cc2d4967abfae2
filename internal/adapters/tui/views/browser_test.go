package views

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"capotokeys/internal/adapters/filesystem"
	"capotokeys/internal/domain"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// writeOutputs creates files in order, each one minute newer than the last
func writeOutputs(t *testing.T, dir string, names ...string) {
	t.Helper()
	for i, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("content of "+name), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		mtime := testNow.Add(time.Duration(i-len(names)) * time.Minute)
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatalf("chtimes %s: %v", name, err)
		}
	}
}

func newTestBrowser(t *testing.T, names ...string) (*BrowserModel, string) {
	t.Helper()
	dir := t.TempDir()
	writeOutputs(t, dir, names...)

	m := NewBrowserModel(filesystem.NewRepository(dir), 200)
	m.Now = func() time.Time { return testNow }
	m.Update(m.loadGroups())
	return m, dir
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowser_LoadsGroupsNewestFirst(t *testing.T) {
	m, _ := newTestBrowser(t, "old-tune-capo0.txt", "my-song-capo3.txt", "my-song-capo3.pdf")

	groups := m.Visible()
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Key != "my-song-capo3" || groups[1].Key != "old-tune-capo0" {
		t.Errorf("unexpected order: %q, %q", groups[0].Key, groups[1].Key)
	}

	view := m.View()
	if !strings.Contains(view, "My Song (Capo 3)") {
		t.Error("expected label in view")
	}
	if strings.Contains(view, "my-song-capo3.pdf") {
		t.Error("files should be hidden until expanded")
	}
}

func TestBrowser_ToggleShowsFiles(t *testing.T) {
	m, _ := newTestBrowser(t, "my-song-capo3.txt", "my-song-capo3.pdf")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view := m.View()
	if !strings.Contains(view, "my-song-capo3.pdf") || !strings.Contains(view, "my-song-capo3.txt") {
		t.Errorf("expected both files listed:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if strings.Contains(m.View(), "my-song-capo3.pdf") {
		t.Error("second enter should collapse the group")
	}
}

func TestBrowser_Navigation(t *testing.T) {
	m, _ := newTestBrowser(t, "c-capo0.txt", "b-capo0.txt", "a-capo0.txt")

	m.Update(runes("j"))
	m.Update(runes("j"))
	m.Update(runes("j"))
	g, ok := m.Selected()
	if !ok || g.Key != "c-capo0" {
		t.Errorf("expected cursor to stop at the last group, got %q", g.Key)
	}

	m.Update(runes("k"))
	g, _ = m.Selected()
	if g.Key != "b-capo0" {
		t.Errorf("expected b-capo0 after moving up, got %q", g.Key)
	}
}

func TestBrowser_Filter(t *testing.T) {
	m, _ := newTestBrowser(t, "old-tune-capo0.txt", "my-song-capo3.txt")

	m.Update(runes("/"))
	for _, r := range "tune" {
		m.Update(runes(string(r)))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if len(m.Visible()) != 1 || m.Visible()[0].Key != "old-tune-capo0" {
		t.Fatalf("expected only old-tune-capo0, got %+v", m.Visible())
	}

	// filter stays applied after accepting; navigation keys work again
	m.Update(runes("j"))
	if m.filtering {
		t.Error("enter should leave filter mode")
	}

	m.Update(runes("/"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if len(m.Visible()) != 2 {
		t.Errorf("esc should clear the filter, got %d groups", len(m.Visible()))
	}
}

func TestBrowser_Copy(t *testing.T) {
	m, _ := newTestBrowser(t, "my-song-capo3.txt", "my-song-capo3.pdf")

	var copied string
	m.CopyText = func(s string) error {
		copied = s
		return nil
	}

	_, cmd := m.Update(runes("c"))
	if cmd == nil {
		t.Fatal("expected a copy command")
	}
	m.Update(cmd())

	if copied != "content of my-song-capo3.txt" {
		t.Errorf("copied %q", copied)
	}
	if m.Message != "Copied my-song-capo3.txt" || m.MessageErr {
		t.Errorf("unexpected status %q (err=%v)", m.Message, m.MessageErr)
	}
}

func TestBrowser_CopyWithoutText(t *testing.T) {
	m, _ := newTestBrowser(t, "my-song-capo3.pdf")
	m.CopyText = func(string) error {
		t.Fatal("clipboard should not be touched")
		return nil
	}

	_, cmd := m.Update(runes("c"))
	m.Update(cmd())
	if !m.MessageErr {
		t.Error("expected an error status")
	}
}

func TestBrowser_OpenEmitsEditorPath(t *testing.T) {
	m, dir := newTestBrowser(t, "my-song-capo3.txt")

	_, cmd := m.Update(runes("o"))
	msg, ok := cmd().(OpenEditorMsg)
	if !ok {
		t.Fatalf("expected OpenEditorMsg, got %T", cmd())
	}
	want, _ := filepath.Abs(filepath.Join(dir, "my-song-capo3.txt"))
	if msg.Path != want {
		t.Errorf("path = %q, want %q", msg.Path, want)
	}
}

func TestBrowser_ViewPDF(t *testing.T) {
	m, dir := newTestBrowser(t, "my-song-capo3.txt", "my-song-capo3.pdf")

	_, cmd := m.Update(runes("p"))
	msg, ok := cmd().(OpenViewerMsg)
	if !ok {
		t.Fatal("expected OpenViewerMsg")
	}
	if filepath.Base(msg.Path) != "my-song-capo3.pdf" || filepath.Dir(msg.Path) != dir {
		t.Errorf("path = %q", msg.Path)
	}
}

func TestBrowser_DeleteSwitchesView(t *testing.T) {
	m, _ := newTestBrowser(t, "my-song-capo3.txt")

	_, cmd := m.Update(runes("d"))
	msg, ok := cmd().(SwitchToDeleteMsg)
	if !ok {
		t.Fatal("expected SwitchToDeleteMsg")
	}
	if msg.Group.Key != "my-song-capo3" {
		t.Errorf("group = %q", msg.Group.Key)
	}
}

func TestBrowser_ReloadKeepsSelection(t *testing.T) {
	m, dir := newTestBrowser(t, "b-capo0.txt", "a-capo0.txt")

	m.Update(runes("j"))
	if g, _ := m.Selected(); g.Key != "b-capo0" {
		t.Fatalf("setup: selected %q", g.Key)
	}

	// a newer group pushes b-capo0 down one row
	path := filepath.Join(dir, "c-capo0.txt")
	if err := os.WriteFile(path, []byte("c"), 0o644); err != nil {
		t.Fatal(err)
	}
	os.Chtimes(path, testNow, testNow)

	m.Update(m.loadGroups())
	if g, _ := m.Selected(); g.Key != "b-capo0" {
		t.Errorf("selection moved to %q", g.Key)
	}
}

func TestDeleteModel_Confirm(t *testing.T) {
	m, dir := newTestBrowser(t, "my-song-capo3.txt", "my-song-capo3.pdf", "other-capo1.txt")

	del := NewDeleteModel(filesystem.NewRepository(dir))
	del.SetTarget(domain.OutputGroup{Key: "my-song-capo3", Label: "My Song (Capo 3)"})

	if !strings.Contains(del.View(), "my-song-capo3") {
		t.Error("expected target in view")
	}

	_, cmd := del.Update(runes("y"))
	msg, ok := cmd().(DeleteSuccessMsg)
	if !ok {
		t.Fatalf("expected DeleteSuccessMsg, got %T", cmd())
	}
	if msg.Message != "Deleted 2 files from group." {
		t.Errorf("message = %q", msg.Message)
	}

	m.Update(m.loadGroups())
	if len(m.Visible()) != 1 || m.Visible()[0].Key != "other-capo1" {
		t.Errorf("unexpected groups after delete: %+v", m.Visible())
	}
}

func TestDeleteModel_Cancel(t *testing.T) {
	del := NewDeleteModel(nil)

	_, cmd := del.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(SwitchToBrowserMsg); !ok {
		t.Error("esc should return to the browser")
	}

	_, cmd = del.Update(runes("x"))
	if cmd != nil {
		t.Error("unrelated keys should be ignored")
	}
}

func TestRelativeTime(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{2 * 24 * time.Hour, "2d ago"},
		{30 * 24 * time.Hour, "2024-04-01"},
	}
	for _, tt := range tests {
		if got := RelativeTime(testNow.Add(-tt.ago), testNow); got != tt.want {
			t.Errorf("RelativeTime(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}

func TestPaginator(t *testing.T) {
	p := NewPaginator(2)
	p.SetTotal(5)

	if p.TotalPages() != 3 {
		t.Errorf("TotalPages = %d, want 3", p.TotalPages())
	}
	p.SetCursor(3)
	if start, end := p.VisibleRange(); start != 2 || end != 4 {
		t.Errorf("VisibleRange = %d..%d, want 2..4", start, end)
	}
	if p.CurrentPage() != 2 {
		t.Errorf("CurrentPage = %d", p.CurrentPage())
	}

	p.SetTotal(1)
	if p.Cursor() != 0 {
		t.Errorf("cursor should clamp to 0, got %d", p.Cursor())
	}
}
