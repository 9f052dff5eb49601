package structured

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/tagger/internal/tags"
	"github.com/pders01/tagger/internal/timestamp"
)

func newTestConfiguration(t *testing.T) *Configuration {
	t.Helper()

	table, err := timestamp.NewTable(
		[]string{"%Y-%m-%d", "%Y_%m_%d"},
		[]string{"%Y-%m-%d %Hh%M"},
		nil,
	)
	require.NoError(t, err)

	return &Configuration{
		Timestamps: table,
		Tags: &tags.Configuration{
			MainSeparators:    []string{" -- "},
			BetweenSeparators: []rune{' '},
		},
	}
}

// folder builds an OS-native directory so separators match on every system.
func folder(name string) string {
	return filepath.Join("some", "folder", name)
}

func ptr(s string) *string {
	return &s
}

// check parses path, compares it to want, verifies the exact round trip and
// then the normalised rendering.
func check(t *testing.T, cfg *Configuration, path string, want *Name, normalised string) {
	t.Helper()

	result := ParsePath(path, cfg)

	assert.Equal(t, want, result.Name)
	assert.Equal(t, path, result.String())

	result.Normalise()
	assert.Equal(t, normalised, result.String())

	result.Normalise()
	assert.Equal(t, normalised, result.String(), "normalising twice changes nothing")
}

func TestParsePathWithoutDate(t *testing.T) {
	cfg := newTestConfiguration(t)
	path := folder("Some filename.txt")

	check(t, cfg, path, &Name{
		Configuration: cfg,
		Filename:      ptr("Some filename"),
		Extension:     ptr("txt"),
	}, path)
}

func TestParsePathWithDate(t *testing.T) {
	cfg := newTestConfiguration(t)
	path := folder("2022-10-27-Some-filename.pdf")

	check(t, cfg, path, &Name{
		Configuration: cfg,
		Timestamp: &timestamp.Timestamp{
			Group:       cfg.Timestamps.Date,
			FormatIndex: 0,
			Value:       timestamp.DateValue(2022, time.October, 27),
		},
		Filename:  ptr("-Some-filename"),
		Extension: ptr("pdf"),
	}, path)
}

func TestParsePathWithDateTime(t *testing.T) {
	cfg := newTestConfiguration(t)
	path := folder("2022-10-27 15h35 Some filename.pdf")

	check(t, cfg, path, &Name{
		Configuration: cfg,
		Timestamp: &timestamp.Timestamp{
			Group:       cfg.Timestamps.DateTime,
			FormatIndex: 0,
			Value:       timestamp.DateTimeValue(2022, time.October, 27, 15, 35, 0),
		},
		Filename:  ptr(" Some filename"),
		Extension: ptr("pdf"),
	}, path)
}

func TestParsePathWithSecondaryDate(t *testing.T) {
	cfg := newTestConfiguration(t)
	path := folder("2022_10_27 Some filename.pdf")

	check(t, cfg, path, &Name{
		Configuration: cfg,
		Timestamp: &timestamp.Timestamp{
			Group:       cfg.Timestamps.Date,
			FormatIndex: 1,
			Value:       timestamp.DateValue(2022, time.October, 27),
		},
		Filename:  ptr(" Some filename"),
		Extension: ptr("pdf"),
	}, folder("2022-10-27 Some filename.pdf"))
}

func TestParsePathWithSecondaryTimestampAndTags(t *testing.T) {
	cfg := newTestConfiguration(t)
	path := folder("2022_10_27 Some filename -- tag test.pdf")

	check(t, cfg, path, &Name{
		Configuration: cfg,
		Timestamp: &timestamp.Timestamp{
			Group:       cfg.Timestamps.Date,
			FormatIndex: 1,
			Value:       timestamp.DateValue(2022, time.October, 27),
		},
		Filename: ptr(" Some filename"),
		Tags: tags.List{
			{Separator: " -- ", Text: "tag"},
			{Separator: " ", Text: "test"},
		},
		Extension: ptr("pdf"),
	}, folder("2022-10-27 Some filename -- tag test.pdf"))
}

func TestParsePathSeparatorOnly(t *testing.T) {
	cfg := newTestConfiguration(t)
	path := folder("Some filename -- .md")

	check(t, cfg, path, &Name{
		Configuration: cfg,
		Filename:      ptr("Some filename"),
		Tags:          tags.SeparatorOnly{Separator: " -- "},
		Extension:     ptr("md"),
	}, path)
}

func TestParseNameFieldsAbsent(t *testing.T) {
	cfg := newTestConfiguration(t)

	tests := []struct {
		name string
		path string
		want *Name
	}{
		{
			name: "timestamp only",
			path: "2022-10-27.txt",
			want: &Name{
				Configuration: cfg,
				Timestamp: &timestamp.Timestamp{
					Group: cfg.Timestamps.Date,
					Value: timestamp.DateValue(2022, time.October, 27),
				},
				Extension: ptr("txt"),
			},
		},
		{
			name: "whitespace filename is still a filename",
			path: "2022-10-27 .txt",
			want: &Name{
				Configuration: cfg,
				Timestamp: &timestamp.Timestamp{
					Group: cfg.Timestamps.Date,
					Value: timestamp.DateValue(2022, time.October, 27),
				},
				Filename:  ptr(" "),
				Extension: ptr("txt"),
			},
		},
		{
			name: "no extension",
			path: "Makefile",
			want: &Name{Configuration: cfg, Filename: ptr("Makefile")},
		},
		{
			name: "empty extension",
			path: "draft.",
			want: &Name{Configuration: cfg, Filename: ptr("draft"), Extension: ptr("")},
		},
		{
			name: "hidden file",
			path: ".bashrc",
			want: &Name{Configuration: cfg, Filename: ptr(".bashrc")},
		},
		{
			name: "hidden file with extension",
			path: ".config.toml",
			want: &Name{Configuration: cfg, Filename: ptr(".config"), Extension: ptr("toml")},
		},
		{
			name: "parent directory",
			path: "..",
			want: &Name{Configuration: cfg, Filename: ptr("..")},
		},
		{
			name: "empty",
			path: "",
			want: &Name{Configuration: cfg},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseName(tt.path, cfg)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.path, got.String())
		})
	}
}

func TestParsePathKeepsDirectory(t *testing.T) {
	cfg := newTestConfiguration(t)

	tests := []struct {
		path       string
		base       string
		normalised string
	}{
		{"/srv//archive/2022_10_27 scan.pdf", "2022_10_27 scan.pdf", "/srv//archive/2022-10-27 scan.pdf"},
		{"./2022_10_27 scan.pdf", "2022_10_27 scan.pdf", "./2022-10-27 scan.pdf"},
		{"inbox/2022_10_27 project/", "2022_10_27 project", "inbox/2022-10-27 project/"},
		{"2022_10_27 scan.pdf", "2022_10_27 scan.pdf", "2022-10-27 scan.pdf"},
		{"/", "", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p := ParsePath(tt.path, cfg)
			assert.Equal(t, tt.base, p.Base())
			assert.True(t, strings.HasPrefix(tt.path, p.Dir()+p.Base()))
			assert.Equal(t, tt.path, p.String())

			p.Normalise()
			assert.Equal(t, tt.normalised, p.String())
		})
	}
}

func TestParseNameWithoutConfiguredParts(t *testing.T) {
	cfg := &Configuration{}

	got := ParseName("2022-10-27 Some filename -- tag.txt", cfg)
	assert.Nil(t, got.Timestamp)
	assert.Nil(t, got.Tags)
	assert.Equal(t, ptr("2022-10-27 Some filename -- tag"), got.Filename)
}

func TestRoundTrip(t *testing.T) {
	cfg := newTestConfiguration(t)
	cfg.Tags.MainSeparators = []string{" -- ", "_"}
	cfg.Tags.BetweenSeparators = []rune{' ', ','}

	for _, path := range []string{
		"2022-10-27 15h35 -- .tar.gz",
		"2022_10_27__",
		"a -- b,c  d -- e.f.g",
		" -- ",
		"..hidden",
		"2022-10-27 09h00_meeting notes -- team,weekly.md",
		"dir/sub/ünïcödé -- tâg·x.txt",
		"trailing/separators//",
	} {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, path, ParsePath(path, cfg).String())
		})
	}
}

func TestRoundTripNonCanonicalTimestamps(t *testing.T) {
	cfg := newTestConfiguration(t)
	table, err := timestamp.NewTable(
		[]string{"%Y-%m-%d", "%Y_%m_%d"},
		[]string{"%Y-%m-%d %Hh%M"},
		[]string{"%Hh%M"},
	)
	require.NoError(t, err)
	table.ParseTime = true
	cfg.Timestamps = table

	for _, path := range []string{
		"2022-1-5 notes.txt",
		"3-4-5 notes.txt",
		"2022-10-2715h35 x.txt",
		"2022-10-27    15h35 x.txt",
		"2022- 10-27 x.txt",
		"9h5 call.m4a",
	} {
		t.Run(path, func(t *testing.T) {
			p := ParsePath(path, cfg)
			assert.Equal(t, path, p.String())

			p.Normalise()
			assert.Equal(t, path, p.String(), "nothing to normalise")
		})
	}
}
