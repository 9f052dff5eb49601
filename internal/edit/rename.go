package edit

import (
	"fmt"
	"log/slog"

	"github.com/spf13/afero"
)

// Result tells what happened to one target.
type Result struct {
	From    string
	To      string
	Changed bool
	DryRun  bool
}

// Renamer moves entries to their new names. It never overwrites.
type Renamer struct {
	Fs     afero.Fs
	DryRun bool
	Logger *slog.Logger
}

// NewRenamer returns a renamer over fs.
func NewRenamer(fs afero.Fs, dryRun bool, logger *slog.Logger) *Renamer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renamer{Fs: fs, DryRun: dryRun, Logger: logger}
}

// Rename moves from to to. Identical names are a no-op.
func (r *Renamer) Rename(from, to string) (Result, error) {
	res := Result{From: from, To: to, Changed: from != to, DryRun: r.DryRun}
	if !res.Changed {
		return res, nil
	}

	if _, err := r.Fs.Stat(from); err != nil {
		return res, fmt.Errorf("failed to stat %s: %w", from, err)
	}

	exists, err := afero.Exists(r.Fs, to)
	if err != nil {
		return res, fmt.Errorf("failed to check %s: %w", to, err)
	}
	if exists {
		return res, fmt.Errorf("refusing to overwrite %s", to)
	}

	if r.DryRun {
		r.Logger.Debug("dry run, not renaming", "from", from, "to", to)
		return res, nil
	}

	if err := r.Fs.Rename(from, to); err != nil {
		return res, fmt.Errorf("failed to rename %s: %w", from, err)
	}
	r.Logger.Debug("renamed", "from", from, "to", to)

	return res, nil
}
