package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/user/controlboard/internal/logger"
)

const reloadDebounce = 200 * time.Millisecond

// Watcher reloads the configuration when its file changes on disk.
type Watcher struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Watch starts watching the config file. onChange runs on the watcher
// goroutine after every successful reload. The directory is watched rather
// than the file so editors that save by rename are picked up.
func (m *Manager) Watch(ctx context.Context, onChange func(*Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(m.configPath)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer logger.Recover("configWatch")
		defer close(w.done)
		defer fw.Close()
		m.watchLoop(ctx, fw, onChange)
	}()
	return w, nil
}

func (m *Manager) watchLoop(ctx context.Context, fw *fsnotify.Watcher, onChange func(*Config)) {
	target := filepath.Clean(m.configPath)
	var debounce <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				debounce = time.After(reloadDebounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warning("Config watcher error: %v", err)

		case <-debounce:
			debounce = nil
			if err := m.Reload(); err != nil {
				logger.Warning("Config reload skipped: %v", err)
				continue
			}
			logger.Info("Configuration reloaded from %s", m.configPath)
			if onChange != nil {
				onChange(m.Get())
			}
		}
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() {
	w.cancel()
	<-w.done
}
