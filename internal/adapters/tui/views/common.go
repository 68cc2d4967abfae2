package views

import "capotokeys/internal/domain"

// frame holds the size and status line shared by every view
type frame struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (f *frame) SetSize(width, height int) {
	f.Width = width
	f.Height = height
}

// SetMessage sets the status line
func (f *frame) SetMessage(msg string, isErr bool) {
	f.Message = msg
	f.MessageErr = isErr
}

// ClearMessage clears the status line
func (f *frame) ClearMessage() {
	f.Message = ""
	f.MessageErr = false
}

// Messages for view switching
type (
	SwitchToDeleteMsg struct {
		Group domain.OutputGroup
	}

	SwitchToHelpMsg struct{}

	SwitchToBrowserMsg struct{}

	// OpenEditorMsg asks the app to suspend and run the editor on Path
	OpenEditorMsg struct {
		Path string
	}

	// OpenViewerMsg asks the app to show Path in the system viewer
	OpenViewerMsg struct {
		Path string
	}

	// OutputsChangedMsg reports a change in the outputs directory
	OutputsChangedMsg struct {
		Name string
	}

	// WatchErrMsg reports a failure of the directory watcher
	WatchErrMsg struct {
		Err error
	}
)
