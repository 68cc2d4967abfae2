package views

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"capotokeys/internal/adapters/tui/styles"
	"capotokeys/internal/application/commands"
	"capotokeys/internal/ports"
)

// DeleteModel confirms and performs the deletion of an output group
type DeleteModel struct {
	ConfirmationModel
	repo ports.OutputRepository
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(repo ports.OutputRepository) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		repo:              repo,
	}
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			m.doDelete,
			func() tea.Msg { return SwitchToBrowserMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	if m.Target == nil {
		return DeleteErrMsg{Err: fmt.Errorf("no group selected")}
	}

	result, err := commands.NewDeleteGroupCommand(m.repo, m.Target.Key).Execute(context.Background())
	if err != nil {
		return DeleteErrMsg{Err: err}
	}
	return DeleteSuccessMsg{Message: result.Message}
}

// DeleteSuccessMsg indicates successful deletion
type DeleteSuccessMsg struct {
	Message string
}

// DeleteErrMsg indicates an error during deletion
type DeleteErrMsg struct {
	Err error
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	return NewViewBuilder().
		Title("Delete Confirmation", "").
		Line(styles.ErrorMsg.Render("This action cannot be undone!")).
		BlankLine().
		Line(RenderTargetInfo(m.Target, "Delete")).
		BlankLine().
		Line(RenderConfirmPrompt("Delete every file in this group?")).
		String()
}
