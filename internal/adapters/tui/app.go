package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"capotokeys/internal/adapters/tui/views"
	"capotokeys/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewDelete
	ViewHelp
)

// App is the main TUI application model
type App struct {
	repo    ports.OutputRepository
	editor  ports.EditorOpener
	viewer  ports.FileViewer
	watcher *Watcher

	state   ViewState
	browser *views.BrowserModel
	delete  *views.DeleteModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. editor, viewer and watcher may be nil.
func NewApp(repo ports.OutputRepository, ed ports.EditorOpener, viewer ports.FileViewer, watcher *Watcher, limit int) *App {
	return &App{
		repo:    repo,
		editor:  ed,
		viewer:  viewer,
		watcher: watcher,
		state:   ViewBrowser,
		browser: views.NewBrowserModel(repo, limit),
		delete:  views.NewDeleteModel(repo),
		help:    views.NewHelpModel(),
	}
}

// Browser exposes the browser view
func (a *App) Browser() *views.BrowserModel {
	return a.browser
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.browser.Init(), a.watch())
}

func (a *App) watch() tea.Cmd {
	if a.watcher == nil {
		return nil
	}
	return a.watcher.Wait()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.delete.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.delete.SetTarget(msg.Group)
		return a, a.delete.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, a.browser.Reload()

	// Delete view messages
	case views.DeleteSuccessMsg:
		a.state = ViewBrowser
		a.browser.SetMessage(msg.Message, false)
		return a, a.browser.Reload()

	case views.DeleteErrMsg:
		a.state = ViewBrowser
		a.browser.SetMessage(msg.Err.Error(), true)
		return a, nil

	// Watcher messages
	case views.OutputsChangedMsg:
		return a, tea.Batch(a.browser.Reload(), a.watch())

	case views.WatchErrMsg:
		a.browser.SetMessage("watch: "+msg.Err.Error(), true)
		return a, a.watch()

	case views.OpenEditorMsg:
		a.state = ViewBrowser
		return a, a.openEditor(msg.Path)

	case views.OpenViewerMsg:
		return a, a.openViewer(msg.Path)

	case viewerFailedMsg:
		a.browser.SetMessage(msg.err.Error(), true)
		return a, nil

	case editorFinishedMsg:
		if msg.err != nil {
			a.browser.SetMessage(msg.err.Error(), true)
		}
		return a, a.browser.Reload()
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewDelete:
		_, cmd = a.delete.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

type viewerFailedMsg struct{ err error }

func (a *App) openViewer(path string) tea.Cmd {
	if a.viewer == nil {
		return nil
	}
	return func() tea.Msg {
		if err := a.viewer.Open(path); err != nil {
			return viewerFailedMsg{err: err}
		}
		return nil
	}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewDelete:
		return a.delete.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
