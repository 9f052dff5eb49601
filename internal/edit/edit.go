// Package edit changes parsed names (prefix, suffix, tags, timestamps) and
// applies the result on disk.
package edit

import (
	"errors"
	"fmt"
	"slices"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/pders01/tagger/internal/structured"
	"github.com/pders01/tagger/internal/tags"
	"github.com/pders01/tagger/internal/timestamp"
)

var (
	// ErrNoBetweenSeparator is returned when a second tag is added but no
	// between separator is configured.
	ErrNoBetweenSeparator = errors.New("no between tag separator configured")
	// ErrNoFormat is returned when stamping with a group that has no pattern.
	ErrNoFormat = errors.New("no format configured")
)

// Options is the set of changes applied to every target.
type Options struct {
	Prefix     string
	Suffix     string
	AddTags    []string
	RemoveTags []string
	// Stamp adds (or replaces) a timestamp of that kind when set.
	Stamp *timestamp.Kind
	// Now is the time used for stamps.
	Now time.Time
}

// Apply performs opts on n in a fixed order: remove tags, add tags, prefix,
// suffix, stamp.
func Apply(n *structured.Name, opts Options) error {
	for _, tag := range opts.RemoveTags {
		RemoveTag(n, tag)
	}
	for _, tag := range opts.AddTags {
		if err := AddTag(n, tag); err != nil {
			return err
		}
	}
	if opts.Prefix != "" {
		Prefix(n, opts.Prefix)
	}
	if opts.Suffix != "" {
		Suffix(n, opts.Suffix)
	}
	if opts.Stamp != nil {
		if err := Stamp(n, *opts.Stamp, opts.Now); err != nil {
			return err
		}
	}
	return nil
}

// Prefix inserts text after the timestamp, before the filename.
func Prefix(n *structured.Name, text string) {
	filename := text
	if n.Filename != nil {
		filename += *n.Filename
	}
	n.Filename = &filename
}

// Suffix inserts text after the filename, before the tags.
func Suffix(n *structured.Name, text string) {
	filename := text
	if n.Filename != nil {
		filename = *n.Filename + text
	}
	n.Filename = &filename
}

// AddTag appends tag unless it is already there. The first tag is introduced
// by the canonical main separator, the next ones by the first between
// separator.
func AddTag(n *structured.Name, tag string) error {
	cfg := n.Configuration.Tags

	switch current := n.Tags.(type) {
	case tags.List:
		if slices.Contains(current.Texts(), tag) {
			return nil
		}
		if len(cfg.BetweenSeparators) == 0 {
			return fmt.Errorf("failed to add tag %q: %w", tag, ErrNoBetweenSeparator)
		}
		n.Tags = append(current, tags.Tag{Separator: string(cfg.BetweenSeparators[0]), Text: tag})
	case tags.SeparatorOnly:
		n.Tags = tags.List{{Separator: current.Separator, Text: tag}}
	default:
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("failed to add tag %q: %w", tag, err)
		}
		n.Tags = tags.List{{Separator: cfg.MainSeparators[0], Text: tag}}
	}

	return nil
}

// RemoveTag drops every occurrence of tag. The tag that becomes first takes
// over the main separator; removing the last tag removes the whole region.
func RemoveTag(n *structured.Name, tag string) {
	current, ok := n.Tags.(tags.List)
	if !ok {
		return
	}

	var kept tags.List
	for i, t := range current {
		if t.Text == tag {
			continue
		}
		if len(kept) == 0 && i > 0 {
			t.Separator = current[0].Separator
		}
		kept = append(kept, t)
	}

	if len(kept) == 0 {
		n.Tags = nil
		return
	}
	n.Tags = kept
}

// RenameTag replaces every occurrence of from with to, keeping separators.
// A name that already carries to only loses from. It reports whether the
// name changed.
func RenameTag(n *structured.Name, from, to string) bool {
	current, ok := n.Tags.(tags.List)
	if !ok || from == to || !slices.Contains(current.Texts(), from) {
		return false
	}

	if slices.Contains(current.Texts(), to) {
		RemoveTag(n, from)
		return true
	}

	renamed := slices.Clone(current)
	for i := range renamed {
		if renamed[i].Text == from {
			renamed[i].Text = to
		}
	}
	n.Tags = renamed
	return true
}

// Stamp sets the timestamp to now, rendered with the canonical pattern of
// the kind's group. A name that had no timestamp gets a space between the
// new stamp and a filename that starts with a letter or digit.
func Stamp(n *structured.Name, kind timestamp.Kind, now time.Time) error {
	group := n.Configuration.Timestamps.Group(kind)
	if group.Len() == 0 {
		return fmt.Errorf("failed to stamp %s: %w", kind, ErrNoFormat)
	}

	var value timestamp.Value
	switch kind {
	case timestamp.KindDate:
		value = timestamp.DateValue(now.Year(), now.Month(), now.Day())
	case timestamp.KindDateTime:
		value = timestamp.DateTimeValue(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second())
	case timestamp.KindTime:
		value = timestamp.TimeValue(now.Hour(), now.Minute(), now.Second())
	}

	ts, err := timestamp.New(group, 0, value)
	if err != nil {
		return err
	}

	if n.Timestamp == nil && n.Filename != nil {
		if r, _ := utf8.DecodeRuneInString(*n.Filename); unicode.IsLetter(r) || unicode.IsDigit(r) {
			Prefix(n, " ")
		}
	}
	n.Timestamp = ts

	return nil
}
