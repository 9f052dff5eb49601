package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/pders01/tagger/internal/structured"
	"github.com/pders01/tagger/internal/tags"
)

// TagCount is the number of names carrying a tag
type TagCount struct {
	Tag   string `json:"tag" yaml:"tag"`
	Count int    `json:"count" yaml:"count"`
}

// CountTags counts each tag once per name. The result is sorted by
// descending count, then by tag.
func CountTags(paths []*structured.Path) []TagCount {
	counts := make(map[string]int)
	for _, p := range paths {
		list, ok := p.Name.Tags.(tags.List)
		if !ok {
			continue
		}
		seen := make(map[string]bool, len(list))
		for _, tag := range list {
			if seen[tag.Text] {
				continue
			}
			seen[tag.Text] = true
			counts[tag.Text]++
		}
	}

	result := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		result = append(result, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count == result[j].Count {
			return result[i].Tag < result[j].Tag
		}
		return result[i].Count > result[j].Count
	})

	return result
}

// EncodeTagCounts writes counts to w in the given format
func EncodeTagCounts(w io.Writer, format Format, counts []TagCount) error {
	if format != FormatText && format != "" {
		return marshal(w, format, counts)
	}

	if len(counts) == 0 {
		_, err := fmt.Fprintln(w, "No tags found")
		return err
	}
	fmt.Fprintf(w, "Found %d tag(s):\n\n", len(counts))
	for _, c := range counts {
		fmt.Fprintf(w, "  %-30s %3d\n", c.Tag, c.Count)
	}
	return nil
}
