package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"capotokeys/internal/adapters/tui/styles"
	"capotokeys/internal/application/commands"
	"capotokeys/internal/domain"
	"capotokeys/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Filter key.Binding
	Open   key.Binding
	View   key.Binding
	Copy   key.Binding
	Delete key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "files"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open"),
	),
	View: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pdf"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// FilterKeys apply while the filter input has focus
var FilterKeys = struct {
	Accept key.Binding
	Clear  key.Binding
}{
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
}

type groupsLoadedMsg struct {
	groups []domain.OutputGroup
}

type errMsg struct {
	err error
}

type statusMsg struct {
	text string
}

// BrowserModel lists output groups newest first
type BrowserModel struct {
	frame
	repo  ports.OutputRepository
	limit int

	groups   []domain.OutputGroup
	visible  []domain.OutputGroup
	expanded map[string]bool
	pager    *Paginator
	loaded   bool

	filter    textinput.Model
	filtering bool

	// CopyText writes to the system clipboard; replaced in tests
	CopyText func(string) error
	Now      func() time.Time
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(repo ports.OutputRepository, limit int) *BrowserModel {
	input := textinput.New()
	input.Placeholder = "filter by title..."
	input.Prompt = "/ "

	return &BrowserModel{
		repo:     repo,
		limit:    limit,
		expanded: make(map[string]bool),
		pager:    NewPaginator(15),
		filter:   input,
		CopyText: clipboard.WriteAll,
		Now:      time.Now,
	}
}

// Init loads the groups
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadGroups
}

// Reload re-reads the outputs directory, keeping the selection by key
func (m *BrowserModel) Reload() tea.Cmd {
	return m.loadGroups
}

func (m *BrowserModel) loadGroups() tea.Msg {
	result, err := commands.NewListOutputsCommand(m.repo, m.limit).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return groupsLoadedMsg{result.Groups}
}

// Selected returns the group under the cursor
func (m *BrowserModel) Selected() (domain.OutputGroup, bool) {
	i := m.pager.Cursor()
	if i < 0 || i >= len(m.visible) {
		return domain.OutputGroup{}, false
	}
	return m.visible[i], true
}

// Visible returns the groups that pass the filter
func (m *BrowserModel) Visible() []domain.OutputGroup {
	return m.visible
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case groupsLoadedMsg:
		selected, hadSelection := m.Selected()
		m.groups = msg.groups
		m.loaded = true
		m.applyFilter()
		if hadSelection {
			m.selectKey(selected.Key)
		}
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case statusMsg:
		m.SetMessage(msg.text, false)
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowserModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, FilterKeys.Clear):
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil

	case key.Matches(msg, FilterKeys.Accept):
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.ClearMessage()

	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Up):
		m.pager.CursorUp()

	case key.Matches(msg, BrowserKeys.Down):
		m.pager.CursorDown()

	case key.Matches(msg, BrowserKeys.Toggle):
		if g, ok := m.Selected(); ok {
			m.expanded[g.Key] = !m.expanded[g.Key]
		}

	case key.Matches(msg, BrowserKeys.Filter):
		m.filtering = true
		return m.filter.Focus()

	case key.Matches(msg, BrowserKeys.Open):
		return m.openText()

	case key.Matches(msg, BrowserKeys.View):
		return m.openPDF()

	case key.Matches(msg, BrowserKeys.Copy):
		return m.copyText()

	case key.Matches(msg, BrowserKeys.Delete):
		if g, ok := m.Selected(); ok {
			return func() tea.Msg { return SwitchToDeleteMsg{Group: g} }
		}

	case key.Matches(msg, BrowserKeys.Reload):
		return m.Reload()

	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	}
	return nil
}

// selectedFile returns the artifact of the selected group with ext
func (m *BrowserModel) selectedFile(ext string) (domain.OutputFile, error) {
	g, ok := m.Selected()
	if !ok {
		return domain.OutputFile{}, fmt.Errorf("no group selected")
	}
	f, ok := g.FileWithExt(ext)
	if !ok {
		return domain.OutputFile{}, fmt.Errorf("%s has no %s file", g.Label, ext)
	}
	return f, nil
}

// openFile resolves the selected group's ext file and wraps its path
func (m *BrowserModel) openFile(ext string, wrap func(path string) tea.Msg) tea.Cmd {
	f, err := m.selectedFile(ext)
	if err != nil {
		return func() tea.Msg { return errMsg{err} }
	}
	return func() tea.Msg {
		path, err := m.repo.Path(f.Name)
		if err != nil {
			return errMsg{err}
		}
		return wrap(path)
	}
}

func (m *BrowserModel) openText() tea.Cmd {
	return m.openFile(domain.ExtText, func(path string) tea.Msg { return OpenEditorMsg{Path: path} })
}

func (m *BrowserModel) openPDF() tea.Cmd {
	return m.openFile(domain.ExtPDF, func(path string) tea.Msg { return OpenViewerMsg{Path: path} })
}

func (m *BrowserModel) copyText() tea.Cmd {
	f, err := m.selectedFile(domain.ExtText)
	if err != nil {
		return func() tea.Msg { return errMsg{err} }
	}
	return func() tea.Msg {
		result, err := commands.NewReadOutputCommand(m.repo, f.Name).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		if err := m.CopyText(string(result.Content)); err != nil {
			return errMsg{fmt.Errorf("clipboard: %w", err)}
		}
		return statusMsg{fmt.Sprintf("Copied %s", f.Name)}
	}
}

func (m *BrowserModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		m.visible = m.groups
	} else {
		m.visible = nil
		for _, g := range m.groups {
			if strings.Contains(strings.ToLower(g.Label), query) || strings.Contains(g.Key, query) {
				m.visible = append(m.visible, g)
			}
		}
	}
	m.pager.SetTotal(len(m.visible))
}

func (m *BrowserModel) selectKey(groupKey string) {
	for i, g := range m.visible {
		if g.Key == groupKey {
			m.pager.SetCursor(i)
			return
		}
	}
}

// SetSize updates the view dimensions and the page size
func (m *BrowserModel) SetSize(width, height int) {
	m.frame.SetSize(width, height)
	// title, filter, page indicator, message and help take about ten rows
	m.pager.SetPageSize(height - 10)
	m.pager.SetTotal(len(m.visible))
}

// View renders the browser
func (m *BrowserModel) View() string {
	v := NewViewBuilder().Title("capotokeys", m.repo.Dir())

	if !m.loaded {
		return v.Line("Loading...").String()
	}

	if m.filtering || m.filter.Value() != "" {
		v.Line(m.filter.View()).BlankLine()
	}

	if len(m.visible) == 0 {
		if len(m.groups) == 0 {
			v.Muted("No outputs found.")
		} else {
			v.Muted("No groups match the filter.")
		}
	}

	start, end := m.pager.VisibleRange()
	now := m.Now()
	for i := start; i < end; i++ {
		m.renderGroup(v, m.visible[i], i == m.pager.Cursor(), now)
	}

	if m.pager.TotalPages() > 1 {
		v.BlankLine().Muted(fmt.Sprintf("Page %d/%d", m.pager.CurrentPage(), m.pager.TotalPages()))
	}

	v.BlankLine().Message(m.Message, m.MessageErr)
	if m.filtering {
		return v.Help(FilterKeys.Accept, FilterKeys.Clear).String()
	}
	return v.Help(
		BrowserKeys.Down, BrowserKeys.Toggle, BrowserKeys.Filter, BrowserKeys.Open,
		BrowserKeys.View, BrowserKeys.Copy, BrowserKeys.Delete, BrowserKeys.Help, BrowserKeys.Quit,
	).String()
}

func (m *BrowserModel) renderGroup(v *ViewBuilder, g domain.OutputGroup, selected bool, now time.Time) {
	marker := styles.Collapsed
	if m.expanded[g.Key] {
		marker = styles.Expanded
	}

	badges := make([]string, len(g.Files))
	for i, f := range g.Files {
		badges[i] = styles.Badge(f.Ext)
	}

	label := styles.GroupLabel.Render(g.Label)
	if selected {
		label = styles.GroupSelected.Render(g.Label)
	}
	v.Line(fmt.Sprintf("%s%s  %s  %s",
		marker, label,
		styles.GroupKey.Render(RelativeTime(g.ModTime, now)),
		strings.Join(badges, " ")))

	if !m.expanded[g.Key] {
		return
	}
	for _, f := range g.Files {
		v.Line(styles.FileRow.Render(fmt.Sprintf("%s  %s", f.Name, FormatSize(f.Size))))
	}
}
