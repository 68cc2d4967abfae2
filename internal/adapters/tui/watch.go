package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"capotokeys/internal/adapters/tui/views"
	"capotokeys/internal/domain"
)

const watchDebounce = 150 * time.Millisecond

// Watcher reports changes to output artifacts in a directory
type Watcher struct {
	dir      string
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher starts watching dir, creating it when missing
func NewWatcher(dir string) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating outputs directory: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	return &Watcher{dir: dir, watcher: fw, debounce: watchDebounce}, nil
}

// Wait returns a command that blocks until an artifact changes.
// Bursts of events within the debounce window collapse into one message.
// The command yields nil once the watcher is closed.
func (w *Watcher) Wait() tea.Cmd {
	return func() tea.Msg {
		var first string
		var settle <-chan time.Time

		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return w.settled(first)
				}
				if !relevant(event) {
					continue
				}
				if first == "" {
					first = filepath.Base(event.Name)
				}
				settle = time.After(w.debounce)

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return w.settled(first)
				}
				return views.WatchErrMsg{Err: err}

			case <-settle:
				return views.OutputsChangedMsg{Name: first}
			}
		}
	}
}

func (w *Watcher) settled(name string) tea.Msg {
	if name == "" {
		return nil
	}
	return views.OutputsChangedMsg{Name: name}
}

// Close stops the watcher
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".tmp-") {
		return false
	}
	return domain.IsSupportedOutput(name)
}
