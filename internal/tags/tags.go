// Package tags reads and writes the tag suffix of a file name, as in
// "Some filename -- tag other".
package tags

import (
	"errors"
	"slices"
	"strings"
	"unicode/utf8"
)

var (
	// ErrNoSeparators is returned when no main separator is configured.
	ErrNoSeparators = errors.New("at least one main tag separator is required")
	// ErrEmptySeparator is returned when the canonical main separator is the
	// empty string.
	ErrEmptySeparator = errors.New("main tag separators cannot be empty")
)

// Configuration describes how the tag region is delimited.
type Configuration struct {
	// MainSeparators introduce the tag region. The first one is the default.
	MainSeparators []string
	// BetweenSeparators delimit successive tags inside the region.
	BetweenSeparators []rune
}

// Validate checks that new tags can be written, which needs a non-empty
// canonical separator. Parsing works with any configuration.
func (c *Configuration) Validate() error {
	if len(c.MainSeparators) == 0 {
		return ErrNoSeparators
	}
	if c.MainSeparators[0] == "" {
		return ErrEmptySeparator
	}
	return nil
}

// Tags is the parsed tag region: either a List or a SeparatorOnly.
type Tags interface {
	String() string
	isTags()
}

// Tag is one tag and the exact text that preceded it.
type Tag struct {
	Separator string
	Text      string
}

// List is a non-empty, ordered sequence of tags.
type List []Tag

func (List) isTags() {}

func (l List) String() string {
	var b strings.Builder
	for _, tag := range l {
		b.WriteString(tag.Separator)
		b.WriteString(tag.Text)
	}
	return b.String()
}

// Texts returns the tag texts in order.
func (l List) Texts() []string {
	out := make([]string, 0, len(l))
	for _, tag := range l {
		out = append(out, tag.Text)
	}
	return out
}

// SeparatorOnly is a main separator with nothing but whitespace after it.
type SeparatorOnly struct {
	Separator string
	// Trailing is the whitespace found after the separator, if any.
	Trailing string
}

func (SeparatorOnly) isTags() {}

func (s SeparatorOnly) String() string {
	return s.Separator + s.Trailing
}

// Parse reads the tag region at the end of text and cuts it off.
//
// Main separators are tried in configuration order; the first one found
// anywhere in the text is cut at its rightmost occurrence, even when a later
// separator occurs further right. Nil is returned, and text left untouched,
// when no separator occurs.
func (c *Configuration) Parse(text *string) Tags {
	for _, separator := range c.MainSeparators {
		if separator == "" {
			continue
		}

		index := strings.LastIndex(*text, separator)
		if index < 0 {
			continue
		}

		remainder := (*text)[index+len(separator):]
		sep := (*text)[index : index+len(separator)]
		*text = (*text)[:index]

		if strings.TrimSpace(remainder) == "" {
			return SeparatorOnly{Separator: sep, Trailing: remainder}
		}

		return c.split(sep, remainder)
	}

	return nil
}

// split cuts the region after the main separator at every between separator.
func (c *Configuration) split(separator, remainder string) List {
	var list List

	start := 0
	for i := 0; i < len(remainder); {
		r, size := utf8.DecodeRuneInString(remainder[i:])
		if slices.Contains(c.BetweenSeparators, r) {
			list = append(list, Tag{Separator: separator, Text: remainder[start:i]})
			separator = remainder[i : i+size]
			start = i + size
		}
		i += size
	}

	return append(list, Tag{Separator: separator, Text: remainder[start:]})
}

