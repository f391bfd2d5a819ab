package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// dataWatcher calls onChange whenever the watched data file is written,
// created or replaced. The parent directory is watched so that editors which
// save by rename are still seen.
type dataWatcher struct {
	path     string
	logger   *zap.Logger
	onChange func()
	watcher  *fsnotify.Watcher
}

func newDataWatcher(path string, logger *zap.Logger, onChange func()) (*dataWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	logger.Debug("watching data file", zap.String("path", abs))
	return &dataWatcher{path: abs, logger: logger, onChange: onChange, watcher: w}, nil
}

// run processes events until ctx is done or the watcher is closed.
func (d *dataWatcher) run(ctx context.Context) {
	defer d.watcher.Close()
	mask := fsnotify.Create | fsnotify.Write | fsnotify.Rename
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != d.path || evt.Op&mask == 0 {
				continue
			}
			d.logger.Debug("data file event", zap.String("event", evt.String()))
			d.onChange()
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			d.logger.Warn("file watcher error", zap.Error(err))
		}
	}
}
