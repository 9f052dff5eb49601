package timestamp

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrBadDirective is returned when a pattern uses a directive the parser
// does not understand.
var ErrBadDirective = errors.New("unsupported pattern directive")

type tokenKind int

const (
	tokenLiteral tokenKind = iota
	tokenVerb
)

type token struct {
	kind    tokenKind
	literal string
	verb    byte
}

// layout is a compiled strftime pattern used for prefix matching.
type layout []token

// composite directives expand to simpler ones before matching
var composites = map[byte]string{
	'F': "%Y-%m-%d",
	'T': "%H:%M:%S",
	'R': "%H:%M",
	'D': "%m/%d/%y",
}

// numeric directives and their width
var widths = map[byte]int{
	'Y': 4,
	'y': 2,
	'm': 2,
	'd': 2,
	'e': 2,
	'H': 2,
	'I': 2,
	'M': 2,
	'S': 2,
}

func compile(pattern string) (layout, error) {
	var out layout
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			out = append(out, token{kind: tokenLiteral, literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(pattern); {
		if pattern[i] != '%' {
			lit.WriteByte(pattern[i])
			i++
			continue
		}
		if i+1 >= len(pattern) {
			return nil, fmt.Errorf("%w: trailing %% in %q", ErrBadDirective, pattern)
		}
		verb := pattern[i+1]
		i += 2

		switch {
		case verb == '%':
			lit.WriteByte('%')
		case verb == 'n':
			lit.WriteByte('\n')
		case verb == 't':
			lit.WriteByte('\t')
		case composites[verb] != "":
			flush()
			sub, err := compile(composites[verb])
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		case widths[verb] > 0 || verb == 'b' || verb == 'h' || verb == 'B' || verb == 'p':
			flush()
			out = append(out, token{kind: tokenVerb, verb: verb})
		default:
			return nil, fmt.Errorf("%w: %%%c in %q", ErrBadDirective, verb, pattern)
		}
	}
	flush()

	return out, nil
}

// fields collects what a layout extracted from the text.
type fields struct {
	year, yearOfCentury, month, day int
	hour, hour12, minute, second    int
	pm                              bool

	hasYear, hasYearOfCentury, hasMonth, hasDay          bool
	hasHour, hasHour12, hasMinute, hasSecond, hasMeridiem bool
}

// match consumes a prefix of text. It returns the extracted fields and the
// untouched remainder. Matching is lenient on digit counts; the caller
// checks the consumed text against the rendering.
func (l layout) match(text string) (*fields, string, bool) {
	f := &fields{}
	s := text

	for _, tok := range l {
		switch tok.kind {
		case tokenLiteral:
			if !strings.HasPrefix(s, tok.literal) {
				return nil, text, false
			}
			s = s[len(tok.literal):]
		case tokenVerb:
			rest, ok := f.consume(tok.verb, s)
			if !ok {
				return nil, text, false
			}
			s = rest
		}
	}

	return f, s, true
}

func (f *fields) consume(verb byte, s string) (string, bool) {
	switch verb {
	case 'b', 'h', 'B':
		m, rest, ok := scanMonthName(s, verb == 'B')
		if !ok {
			return s, false
		}
		f.month, f.hasMonth = m, true
		return rest, true
	case 'p':
		switch {
		case strings.HasPrefix(s, "AM"):
			f.pm = false
		case strings.HasPrefix(s, "PM"):
			f.pm = true
		default:
			return s, false
		}
		f.hasMeridiem = true
		return s[2:], true
	case 'e':
		// space padded
		s = strings.TrimPrefix(s, " ")
	}

	n, rest, ok := scanNumber(s, widths[verb])
	if !ok {
		return s, false
	}

	switch verb {
	case 'Y':
		f.year, f.hasYear = n, true
	case 'y':
		f.yearOfCentury, f.hasYearOfCentury = n, true
	case 'm':
		f.month, f.hasMonth = n, true
	case 'd', 'e':
		f.day, f.hasDay = n, true
	case 'H':
		f.hour, f.hasHour = n, true
	case 'I':
		f.hour12, f.hasHour12 = n, true
	case 'M':
		f.minute, f.hasMinute = n, true
	case 'S':
		f.second, f.hasSecond = n, true
	}

	return rest, true
}

// scanNumber reads between 1 and width ASCII digits.
func scanNumber(s string, width int) (int, string, bool) {
	n, i := 0, 0
	for i < len(s) && i < width && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i == 0 {
		return 0, s, false
	}
	return n, s[i:], true
}

func scanMonthName(s string, long bool) (int, string, bool) {
	for m := time.January; m <= time.December; m++ {
		name := m.String()
		if !long {
			name = name[:3]
		}
		if strings.HasPrefix(s, name) {
			return int(m), s[len(name):], true
		}
	}
	return 0, s, false
}

func (f *fields) resolveYear() (int, bool) {
	switch {
	case f.hasYear:
		return f.year, true
	case f.hasYearOfCentury:
		if f.yearOfCentury < 70 {
			return 2000 + f.yearOfCentury, true
		}
		return 1900 + f.yearOfCentury, true
	}
	return 0, false
}

func (f *fields) date() (time.Time, bool) {
	year, ok := f.resolveYear()
	if !ok || !f.hasMonth || !f.hasDay {
		return time.Time{}, false
	}
	if f.month < 1 || f.month > 12 || f.day < 1 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(f.month), f.day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != f.month || t.Day() != f.day {
		return time.Time{}, false
	}
	return t, true
}

func (f *fields) clock() (hour, minute, second int, ok bool) {
	switch {
	case f.hasHour:
		hour = f.hour
	case f.hasHour12 && f.hasMeridiem:
		if f.hour12 < 1 || f.hour12 > 12 {
			return 0, 0, 0, false
		}
		hour = f.hour12 % 12
		if f.pm {
			hour += 12
		}
	default:
		return 0, 0, 0, false
	}

	if !f.hasMinute {
		return 0, 0, 0, false
	}
	minute = f.minute
	if f.hasSecond {
		second = f.second
	}

	if hour > 23 || minute > 59 || second > 59 {
		return 0, 0, 0, false
	}

	return hour, minute, second, true
}

// value builds a value of the requested kind, refusing incomplete or
// impossible fields.
func (f *fields) value(kind Kind) (Value, bool) {
	switch kind {
	case KindDate:
		d, ok := f.date()
		if !ok {
			return Value{}, false
		}
		return Value{Kind: KindDate, Time: d}, true
	case KindDateTime:
		d, ok := f.date()
		if !ok {
			return Value{}, false
		}
		h, m, s, ok := f.clock()
		if !ok {
			return Value{}, false
		}
		return DateTimeValue(d.Year(), d.Month(), d.Day(), h, m, s), true
	case KindTime:
		h, m, s, ok := f.clock()
		if !ok {
			return Value{}, false
		}
		return TimeValue(h, m, s), true
	}
	return Value{}, false
}
