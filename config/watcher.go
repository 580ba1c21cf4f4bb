package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// watchDebounce coalesces the bursts of events editors emit on save.
const watchDebounce = 150 * time.Millisecond

// Watch monitors a definitions file and calls onChange with the freshly
// parsed contents after each modification. Files that fail to parse after
// a change are logged and skipped; the previous definitions stay live.
//
// The containing directory is watched rather than the file itself, since
// most editors replace the file on save. The returned function stops the
// watcher.
func Watch(path string, logger *logrus.Entry, onChange func(*File)) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		var debounce *time.Timer
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != absPath {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}

				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(watchDebounce, func() {
					cfg, err := Load(absPath)
					if err != nil {
						logger.WithError(err).Warn("Ignoring definitions file change that failed to load")
						return
					}
					logger.WithField("path", absPath).Info("Reloaded repl definitions")
					onChange(cfg)
				})

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.WithError(err).Warn("Definitions file watcher error")
			}
		}
	}()

	return watcher.Close, nil
}
