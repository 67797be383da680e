package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	command "github.com/goliatone/go-command"

	staticcmd "github.com/goliatone/go-seogen/internal/commands/static"
	"github.com/goliatone/go-seogen/internal/logging"
	"github.com/goliatone/go-seogen/pkg/interfaces"
)

const defaultWatchDebounce = 300 * time.Millisecond

// rebuildFunc runs one rebuild for the paths that changed since the last run.
type rebuildFunc func(ctx context.Context, changed []string) error

// rebuildWatcher collapses bursts of template and bundle edits into a single rebuild.
type rebuildWatcher struct {
	watcher  *fsnotify.Watcher
	ignore   []string
	debounce time.Duration
	logger   interfaces.Logger
	rebuild  rebuildFunc
}

func newRebuildWatcher(settings watchSettings, logger interfaces.Logger, rebuild rebuildFunc) (*rebuildWatcher, error) {
	if rebuild == nil {
		return nil, errors.New("rebuild function required")
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	for _, dir := range settings.dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	debounce := settings.debounce
	if debounce <= 0 {
		debounce = defaultWatchDebounce
	}
	ignore := make([]string, 0, len(settings.ignore))
	for _, dir := range settings.ignore {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if abs, err := filepath.Abs(dir); err == nil {
			ignore = append(ignore, abs)
		}
	}
	return &rebuildWatcher{
		watcher:  watcher,
		ignore:   ignore,
		debounce: debounce,
		logger:   logger,
		rebuild:  rebuild,
	}, nil
}

// Run blocks until ctx is done, rebuilding once per quiet period after relevant changes.
func (w *rebuildWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	pending := map[string]struct{}{}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("watch.change", "path", event.Name, "op", event.Op.String())
			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch.error", "error", err)
		case <-fire:
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			slices.Sort(changed)
			clear(pending)
			if len(changed) == 0 {
				continue
			}
			w.logger.Info("watch.rebuild", "changed", len(changed))
			if err := w.rebuild(ctx, changed); err != nil {
				w.logger.Error("watch.rebuild.failed", "error", err)
			}
		}
	}
}

func (w *rebuildWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	switch strings.ToLower(filepath.Ext(event.Name)) {
	case ".html", ".json":
	default:
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	for _, dir := range w.ignore {
		if abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return false
		}
	}
	return true
}

func runWatch(ctx context.Context, handler command.Commander[staticcmd.BuildSiteCommand], settings watchSettings, logger interfaces.Logger) error {
	if handler == nil {
		return errors.New("build handler not configured")
	}
	if len(settings.dirs) == 0 {
		return errors.New("no directories to watch")
	}

	build := func(ctx context.Context) error {
		return handler.Execute(ctx, staticcmd.BuildSiteCommand{ResultCallback: logEnvelope})
	}
	if err := build(ctx); err != nil {
		return err
	}

	watcher, err := newRebuildWatcher(settings, logger, func(ctx context.Context, _ []string) error {
		return build(ctx)
	})
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}
