package viewer

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Opener implements ports.FileViewer by handing files to the desktop's
// default application
type Opener struct {
	dir  string
	goos string
	run  func(*exec.Cmd) error
}

// NewOpener creates a viewer confined to the outputs directory dir
func NewOpener(dir string) *Opener {
	return &Opener{
		dir:  dir,
		goos: runtime.GOOS,
		run:  (*exec.Cmd).Run,
	}
}

// Open shows path in the system viewer
func (o *Opener) Open(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return o.run(cmd)
}

// Command builds the platform launcher for path
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	rel, err := filepath.Rel(o.dir, path)
	if err != nil {
		return nil, fmt.Errorf("failed to get relative path: %w", err)
	}
	if rel == "." || strings.HasPrefix(rel, "..") {
		return nil, fmt.Errorf("file is outside the outputs directory: %s", path)
	}

	switch o.goos {
	case "darwin":
		return exec.Command("open", path), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", path), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", o.goos)
	}
}
