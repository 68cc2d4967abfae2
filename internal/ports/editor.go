package ports

import "os/exec"

// EditorOpener opens output files in an external editor
type EditorOpener interface {
	// OpenFile runs the editor on path and waits for it to exit
	OpenFile(path string) error

	// Command returns the editor process without starting it, for use with
	// bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}
