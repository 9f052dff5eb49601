package structured

import "os"

// Path is a parsed path: the name of its final segment plus the original
// text, which keeps the directory part verbatim.
type Path struct {
	Original string
	Name     *Name

	start, end int
}

// ParsePath parses the final segment of path.
func ParsePath(path string, cfg *Configuration) *Path {
	start, end := finalSegment(path)
	return &Path{
		Original: path,
		Name:     parseSegment(path[start:end], cfg),
		start:    start,
		end:      end,
	}
}

// Dir returns everything before the final segment, separators included.
func (p *Path) Dir() string {
	return p.Original[:p.start]
}

// Base returns the final segment as given.
func (p *Path) Base() string {
	return p.Original[p.start:p.end]
}

// Normalise rewrites the timestamp with its canonical pattern.
func (p *Path) Normalise() {
	p.Name.Normalise()
}

// String substitutes the rendered name for the final segment.
func (p *Path) String() string {
	return p.Original[:p.start] + p.Name.String() + p.Original[p.end:]
}

// finalSegment locates the last non-empty segment of path. Trailing
// separators stay outside of it.
func finalSegment(path string) (start, end int) {
	end = len(path)
	for end > 0 && os.IsPathSeparator(path[end-1]) {
		end--
	}
	start = end
	for start > 0 && !os.IsPathSeparator(path[start-1]) {
		start--
	}
	return start, end
}
