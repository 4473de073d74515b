package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ayn2op/longview/internal/store"
)

// pollInterval catches writes on filesystems that do not report events.
const pollInterval = 2 * time.Second

// follow appends lines written to path after it was loaded. The parent
// directory is watched so a file that is replaced is picked up again.
func follow(ctx context.Context, path string, mem *store.Memory, logger *slog.Logger) {
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil {
		logger.Error("stat failed", "path", path, "err", err)
		return
	}
	t := store.NewTail(info.Size())

	var events <-chan fsnotify.Event
	var watchErrors <-chan error
	w, err := fsnotify.NewWatcher()
	if err == nil {
		err = w.Add(filepath.Dir(path))
	}
	if err != nil {
		logger.Warn("file events unavailable, polling", "path", path, "err", err)
	} else {
		defer w.Close()
		events, watchErrors = w.Events, w.Errors
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
		case err, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
				continue
			}
			logger.Warn("watch error", "path", path, "err", err)
			continue
		case <-ticker.C:
		}
		readNew(path, t, mem, logger)
	}
}

func readNew(path string, t *store.Tail, mem *store.Memory, logger *slog.Logger) {
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Error("open failed", "path", path, "err", err)
		}
		return
	}
	defer f.Close()
	lines, err := t.Read(f)
	if err != nil && !errors.Is(err, io.EOF) {
		logger.Error("read failed", "path", path, "err", err)
		return
	}
	if len(lines) > 0 {
		logger.Debug("appending rows", "count", len(lines), "offset", t.Offset())
		mem.Append(lines...)
	}
}
