// Package structured splits a file or directory name into timestamp,
// filename, tags and extension, and renders it back.
//
// Every text field is a substring of the parsed input, so rendering an
// untouched result gives back the input byte for byte.
package structured

import (
	"strings"

	"github.com/pders01/tagger/internal/tags"
	"github.com/pders01/tagger/internal/timestamp"
)

// Configuration is what a name is parsed against. Results keep a reference
// to it.
type Configuration struct {
	Timestamps *timestamp.Table
	Tags       *tags.Configuration
}

// Name is a parsed file or directory name. Nil fields are absent.
type Name struct {
	Configuration *Configuration

	Timestamp *timestamp.Timestamp
	Filename  *string
	Tags      tags.Tags
	Extension *string
}

// ParseName parses the final segment of path.
func ParseName(path string, cfg *Configuration) *Name {
	start, end := finalSegment(path)
	return parseSegment(path[start:end], cfg)
}

func parseSegment(segment string, cfg *Configuration) *Name {
	n := &Name{Configuration: cfg}
	if segment == "" {
		return n
	}

	stem, extension, hasExtension := splitExtension(segment)
	if hasExtension {
		n.Extension = &extension
	}

	if cfg.Timestamps != nil {
		n.Timestamp = cfg.Timestamps.Parse(&stem)
	}
	if cfg.Tags != nil {
		n.Tags = cfg.Tags.Parse(&stem)
	}
	if stem != "" {
		n.Filename = &stem
	}

	return n
}

// splitExtension cuts a name at its last dot. A name whose only dot is the
// leading one, and "..", have no extension.
func splitExtension(name string) (stem, extension string, ok bool) {
	if name == ".." {
		return name, "", false
	}
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return name, "", false
	}
	return name[:i], name[i+1:], true
}

// Normalise rewrites the timestamp with its canonical pattern. Filename and
// tags are left alone.
func (n *Name) Normalise() {
	if n.Timestamp != nil {
		n.Timestamp.Normalise()
	}
}

// String renders timestamp, filename, tags and extension in that order.
func (n *Name) String() string {
	var b strings.Builder

	if n.Timestamp != nil {
		b.WriteString(n.Timestamp.String())
	}
	if n.Filename != nil {
		b.WriteString(*n.Filename)
	}
	if n.Tags != nil {
		b.WriteString(n.Tags.String())
	}
	if n.Extension != nil {
		b.WriteByte('.')
		b.WriteString(*n.Extension)
	}

	return b.String()
}
