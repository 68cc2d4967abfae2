package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capotokeys/internal/adapters/filesystem"
	"capotokeys/internal/adapters/tui/views"
	"capotokeys/internal/domain"
)

func TestApp_DeleteFlow(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "my-song-capo3.txt"), []byte("G"), 0o644))

	app := NewApp(filesystem.NewRepository(dir), nil, nil, nil, 200)
	group := domain.OutputGroup{Key: "my-song-capo3", Label: "My Song (Capo 3)"}

	app.Update(views.SwitchToDeleteMsg{Group: group})
	assert.Equal(t, ViewDelete, app.State())
	assert.Contains(t, app.View(), "Delete Confirmation")

	app.Update(views.DeleteSuccessMsg{Message: "Deleted 1 files from group."})
	assert.Equal(t, ViewBrowser, app.State())
	assert.Equal(t, "Deleted 1 files from group.", app.Browser().Message)
}

func TestApp_HelpToggle(t *testing.T) {
	app := NewApp(filesystem.NewRepository(t.TempDir()), nil, nil, nil, 200)

	app.Update(views.SwitchToHelpMsg{})
	assert.Equal(t, ViewHelp, app.State())
	assert.Contains(t, app.View(), "Copy the transposed text")

	_, cmd := app.Update(views.SwitchToBrowserMsg{})
	assert.Equal(t, ViewBrowser, app.State())
	assert.NotNil(t, cmd, "returning to the browser reloads it")
}

func TestApp_OpenEditorWithoutEditor(t *testing.T) {
	app := NewApp(filesystem.NewRepository(t.TempDir()), nil, nil, nil, 200)

	_, cmd := app.Update(views.OpenEditorMsg{Path: "/tmp/x.txt"})
	assert.Nil(t, cmd)
}

func TestApp_WatchErrorShowsMessage(t *testing.T) {
	app := NewApp(filesystem.NewRepository(t.TempDir()), nil, nil, nil, 200)

	app.Update(views.WatchErrMsg{Err: assert.AnError})
	assert.True(t, app.Browser().MessageErr)
	assert.Contains(t, app.Browser().Message, "watch:")
}

type recordingViewer struct {
	opened []string
	err    error
}

func (v *recordingViewer) Open(path string) error {
	v.opened = append(v.opened, path)
	return v.err
}

func TestApp_OpenViewer(t *testing.T) {
	viewer := &recordingViewer{}
	app := NewApp(filesystem.NewRepository(t.TempDir()), nil, viewer, nil, 200)

	_, cmd := app.Update(views.OpenViewerMsg{Path: "/data/outputs/a-capo0.pdf"})
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	assert.Equal(t, []string{"/data/outputs/a-capo0.pdf"}, viewer.opened)

	viewer.err = assert.AnError
	_, cmd = app.Update(views.OpenViewerMsg{Path: "/data/outputs/a-capo0.pdf"})
	app.Update(cmd())
	assert.True(t, app.Browser().MessageErr)
}
