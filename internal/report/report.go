package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alpkeskin/gotoon"
	"gopkg.in/yaml.v3"

	"github.com/pders01/tagger/internal/structured"
	"github.com/pders01/tagger/internal/tags"
	"github.com/pders01/tagger/internal/timestamp"
)

// Report is the printable decomposition of one path
type Report struct {
	Path       string     `json:"path" yaml:"path"`
	Timestamp  *Timestamp `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Filename   *string    `json:"filename,omitempty" yaml:"filename,omitempty"`
	Tags       []Tag      `json:"tags,omitempty" yaml:"tags,omitempty"`
	TagRegion  *string    `json:"tag_region,omitempty" yaml:"tag_region,omitempty"`
	Extension  *string    `json:"extension,omitempty" yaml:"extension,omitempty"`
	Rendered   string     `json:"rendered" yaml:"rendered"`
	Normalised string     `json:"normalised" yaml:"normalised"`
}

// Timestamp describes a parsed timestamp and the pattern it matched
type Timestamp struct {
	Text        string `json:"text" yaml:"text"`
	Kind        string `json:"kind" yaml:"kind"`
	Value       string `json:"value" yaml:"value"`
	FormatIndex int    `json:"format_index" yaml:"format_index"`
	Pattern     string `json:"pattern" yaml:"pattern"`
}

// Tag is one tag with the separator that introduced it
type Tag struct {
	Separator string `json:"separator" yaml:"separator"`
	Text      string `json:"text" yaml:"text"`
}

// Build describes p. The normalised rendering is computed on a fresh parse
// so p itself is left untouched.
func Build(p *structured.Path) Report {
	n := p.Name
	r := Report{
		Path:      p.Original,
		Filename:  n.Filename,
		Extension: n.Extension,
		Rendered:  p.String(),
	}

	if ts := n.Timestamp; ts != nil {
		layout := "2006-01-02"
		switch ts.Value.Kind {
		case timestamp.KindDateTime:
			layout = "2006-01-02T15:04:05"
		case timestamp.KindTime:
			layout = "15:04:05"
		}
		r.Timestamp = &Timestamp{
			Text:        ts.String(),
			Kind:        ts.Value.Kind.String(),
			Value:       ts.Value.Time.Format(layout),
			FormatIndex: ts.FormatIndex,
			Pattern:     ts.Pattern(),
		}
	}

	switch t := n.Tags.(type) {
	case tags.List:
		for _, tag := range t {
			r.Tags = append(r.Tags, Tag{Separator: tag.Separator, Text: tag.Text})
		}
	case tags.SeparatorOnly:
		region := t.String()
		r.TagRegion = &region
	}

	normalised := structured.ParsePath(p.Original, n.Configuration)
	normalised.Normalise()
	r.Normalised = normalised.String()

	return r
}

// Encode writes reports to w in the given format
func Encode(w io.Writer, format Format, reports []Report) error {
	if format == FormatText || format == "" {
		for i, r := range reports {
			if i > 0 {
				fmt.Fprintln(w)
			}
			writeText(w, r)
		}
		return nil
	}
	return marshal(w, format, reports)
}

// marshal writes v in one of the structured formats
func marshal(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		output, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(output))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	case FormatToon:
		output, err := gotoon.Encode(v)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		_, err = fmt.Fprintln(w, output)
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}

func writeText(w io.Writer, r Report) {
	fmt.Fprintf(w, "%s\n", r.Path)
	if r.Timestamp != nil {
		fmt.Fprintf(w, "  Timestamp:  %s (%s %s, format #%d %q)\n",
			r.Timestamp.Text, r.Timestamp.Kind, r.Timestamp.Value, r.Timestamp.FormatIndex, r.Timestamp.Pattern)
	}
	if r.Filename != nil {
		fmt.Fprintf(w, "  Filename:   %q\n", *r.Filename)
	}
	if len(r.Tags) > 0 {
		texts := make([]string, 0, len(r.Tags))
		for _, tag := range r.Tags {
			texts = append(texts, tag.Text)
		}
		fmt.Fprintf(w, "  Tags:       %s\n", strings.Join(texts, ", "))
	}
	if r.TagRegion != nil {
		fmt.Fprintf(w, "  Tags:       none (separator %q)\n", *r.TagRegion)
	}
	if r.Extension != nil {
		fmt.Fprintf(w, "  Extension:  %s\n", *r.Extension)
	}
	if r.Normalised != r.Rendered {
		fmt.Fprintf(w, "  Normalised: %s\n", r.Normalised)
	}
}
