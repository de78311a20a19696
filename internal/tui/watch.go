package tui

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// fileChangedMsg carries the new contents of the watched QASM file.
type fileChangedMsg struct {
	content string
	err     error
}

// fileWatcher reports writes to a single file. The parent directory is
// watched because editors often replace a file instead of writing it.
type fileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
}

func newFileWatcher(path string) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &fileWatcher{watcher: w, path: abs}, nil
}

// wait blocks until the file changes and delivers its contents. It returns
// nil once the watcher is closed.
func (fw *fileWatcher) wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != fw.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				data, err := os.ReadFile(fw.path)
				return fileChangedMsg{content: string(data), err: err}
			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return nil
				}
				return fileChangedMsg{err: err}
			}
		}
	}
}

func (fw *fileWatcher) Close() error {
	return fw.watcher.Close()
}
