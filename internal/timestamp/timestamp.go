// Package timestamp reads and writes the temporal prefix of a file name.
//
// Formats are strftime patterns grouped by the kind of value they carry
// (date, date and time, time only). The first pattern of each group is the
// canonical one: normalising a timestamp moves it to that pattern.
package timestamp

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/strftime"
)

// Kind tells what temporal data a value holds.
type Kind int

const (
	KindDate Kind = iota
	KindDateTime
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindDateTime:
		return "date_time"
	case KindTime:
		return "time"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is a date, a date-time or a time of day. It carries no format.
type Value struct {
	Kind Kind
	Time time.Time
}

// DateValue returns a date-only value.
func DateValue(year int, month time.Month, day int) Value {
	return Value{Kind: KindDate, Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateTimeValue returns a date and time value.
func DateTimeValue(year int, month time.Month, day, hour, minute, second int) Value {
	return Value{Kind: KindDateTime, Time: time.Date(year, month, day, hour, minute, second, 0, time.UTC)}
}

// TimeValue returns a time of day value.
func TimeValue(hour, minute, second int) Value {
	return Value{Kind: KindTime, Time: time.Date(0, time.January, 1, hour, minute, second, 0, time.UTC)}
}

// Group is an ordered list of patterns for one kind of value. Index 0 is
// the canonical pattern.
type Group struct {
	kind      Kind
	patterns  []string
	layouts   []layout
	renderers []*strftime.Strftime
}

// NewGroup compiles patterns for parsing and rendering.
func NewGroup(kind Kind, patterns []string) (*Group, error) {
	g := &Group{
		kind:     kind,
		patterns: append([]string(nil), patterns...),
	}

	for _, p := range patterns {
		l, err := compile(p)
		if err != nil {
			return nil, err
		}
		r, err := strftime.New(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadDirective, err)
		}
		g.layouts = append(g.layouts, l)
		g.renderers = append(g.renderers, r)
	}

	return g, nil
}

// Kind returns the kind of value the group produces.
func (g *Group) Kind() Kind {
	return g.kind
}

// Len returns the number of patterns.
func (g *Group) Len() int {
	if g == nil {
		return 0
	}
	return len(g.patterns)
}

// Pattern returns the pattern at index i.
func (g *Group) Pattern(i int) string {
	return g.patterns[i]
}

// Patterns returns a copy of the patterns in order.
func (g *Group) Patterns() []string {
	return append([]string(nil), g.patterns...)
}

// parse tries every pattern in order; the first one matching a prefix of
// text wins. A match only counts when rendering its value with the same
// pattern gives back the consumed text, so "2022-1-5" is not read as
// "2022-01-05".
func (g *Group) parse(text *string) *Timestamp {
	if g == nil {
		return nil
	}

	for i, l := range g.layouts {
		f, rest, ok := l.match(*text)
		if !ok {
			continue
		}
		v, ok := f.value(g.kind)
		if !ok {
			continue
		}
		consumed := (*text)[:len(*text)-len(rest)]
		if g.renderers[i].FormatString(v.Time) != consumed {
			continue
		}
		*text = rest
		return &Timestamp{Group: g, FormatIndex: i, Value: v}
	}

	return nil
}

// Table holds the configured timestamp formats.
type Table struct {
	Date     *Group
	DateTime *Group

	// Time is used for stamping. Names are only parsed against it when
	// ParseTime is set.
	Time      *Group
	ParseTime bool
}

// NewTable compiles the date, date-time and time-only pattern lists.
func NewTable(date, dateTime, timeOnly []string) (*Table, error) {
	d, err := NewGroup(KindDate, date)
	if err != nil {
		return nil, fmt.Errorf("failed to compile date formats: %w", err)
	}
	dt, err := NewGroup(KindDateTime, dateTime)
	if err != nil {
		return nil, fmt.Errorf("failed to compile date-time formats: %w", err)
	}
	t, err := NewGroup(KindTime, timeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to compile time formats: %w", err)
	}

	return &Table{Date: d, DateTime: dt, Time: t}, nil
}

// Group returns the group for kind.
func (t *Table) Group(kind Kind) *Group {
	switch kind {
	case KindDate:
		return t.Date
	case KindDateTime:
		return t.DateTime
	case KindTime:
		return t.Time
	}
	return nil
}

// Parse reads a timestamp at the start of text and advances text past it.
// Date-time patterns are all tried before date patterns since a date
// pattern can match the front of a date-time. Time-only patterns come last,
// and only with ParseTime. A nil result leaves text untouched.
func (t *Table) Parse(text *string) *Timestamp {
	groups := []*Group{t.DateTime, t.Date}
	if t.ParseTime {
		groups = append(groups, t.Time)
	}
	for _, g := range groups {
		if ts := g.parse(text); ts != nil {
			return ts
		}
	}
	return nil
}

// Timestamp is temporal data found in a name along with the pattern it is
// written with.
type Timestamp struct {
	Group       *Group
	FormatIndex int
	Value       Value
}

// New builds a timestamp rendered with the pattern at index in group.
func New(group *Group, index int, value Value) (*Timestamp, error) {
	if group == nil {
		return nil, fmt.Errorf("no format group")
	}
	if index < 0 || index >= group.Len() {
		return nil, fmt.Errorf("format index %d out of range for %s group of %d", index, group.Kind(), group.Len())
	}
	return &Timestamp{Group: group, FormatIndex: index, Value: value}, nil
}

// Pattern returns the pattern the timestamp renders with.
func (t *Timestamp) Pattern() string {
	return t.Group.Pattern(t.FormatIndex)
}

// Normalise switches to the canonical pattern of the group.
func (t *Timestamp) Normalise() {
	t.FormatIndex = 0
}

func (t *Timestamp) String() string {
	return t.Group.renderers[t.FormatIndex].FormatString(t.Value.Time)
}
