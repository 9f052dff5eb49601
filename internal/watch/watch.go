// Package watch keeps a background presence on directories and reacts to
// entries appearing in them.
package watch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fsnotify/fsnotify"

	"github.com/pders01/tagger/internal/edit"
	"github.com/pders01/tagger/internal/structured"
)

// Watcher parses the name of every new entry and, when asked to, renames it
// to its normalised form.
type Watcher struct {
	Config    *structured.Configuration
	Renamer   *edit.Renamer
	Normalise bool
	Logger    *slog.Logger

	// handled receives every processed path; tests use it to synchronise.
	handled chan<- edit.Result
}

// New returns a watcher renaming through renamer.
func New(cfg *structured.Configuration, renamer *edit.Renamer, normalise bool, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{Config: cfg, Renamer: renamer, Normalise: normalise, Logger: logger}
}

// Handle processes one path.
func (w *Watcher) Handle(path string) (edit.Result, error) {
	p := structured.ParsePath(path, w.Config)

	attrs := []any{"path", path}
	if p.Name.Timestamp != nil {
		attrs = append(attrs, "timestamp", p.Name.Timestamp.String())
	}
	if p.Name.Tags != nil {
		attrs = append(attrs, "tags", p.Name.Tags.String())
	}
	w.Logger.Info("entry appeared", attrs...)

	if !w.Normalise {
		return edit.Result{From: path, To: path}, nil
	}

	p.Normalise()
	return w.Renamer.Rename(path, p.String())
}

// Run watches dirs until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, dirs []string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.Logger.Debug("watching", "dir", dir)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			res, err := w.Handle(event.Name)
			if err != nil {
				w.Logger.Warn("failed to handle entry", "path", event.Name, "error", err)
				continue
			}
			if res.Changed {
				w.Logger.Info("normalised", "from", res.From, "to", res.To)
			}
			if w.handled != nil {
				select {
				case w.handled <- res:
				case <-ctx.Done():
					return nil
				}
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn("watcher error", "error", err)
		}
	}
}
