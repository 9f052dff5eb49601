package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/pders01/tagger/internal/structured"
	"github.com/pders01/tagger/internal/tags"
	"github.com/pders01/tagger/internal/timestamp"
)

// EnvPrefix is prepended to every environment override, e.g.
// TAGGER_TAGS_MAIN_SEPARATORS.
const EnvPrefix = "TAGGER"

// File mirrors the configuration file layout.
type File struct {
	Timestamp TimestampSection `mapstructure:"timestamp" toml:"timestamp"`
	Tags      TagsSection      `mapstructure:"tags" toml:"tags"`
	Edit      EditSection      `mapstructure:"edit" toml:"edit"`
}

// TimestampSection lists strftime patterns. The first of each list is canonical.
type TimestampSection struct {
	Date     []string `mapstructure:"date" toml:"date"`
	DateTime []string `mapstructure:"date_time" toml:"date_time"`
	Time     []string `mapstructure:"time" toml:"time"`

	// ParseTime makes names starting with a bare time carry a timestamp.
	// Otherwise the time patterns only serve edit --add-time.
	ParseTime bool `mapstructure:"parse_time" toml:"parse_time"`
}

// TagsSection configures tag delimiters. The first main separator is canonical.
type TagsSection struct {
	MainSeparators    []string `mapstructure:"main_separators" toml:"main_separators"`
	BetweenSeparators []string `mapstructure:"between_separators" toml:"between_separators"`
}

// EditSection holds defaults for the edit command.
type EditSection struct {
	DryRun bool `mapstructure:"dry_run" toml:"dry_run"`
}

// Default returns the built-in configuration.
func Default() File {
	return File{
		Timestamp: TimestampSection{
			Date:     []string{"%Y-%m-%d", "%Y_%m_%d"},
			DateTime: []string{"%Y-%m-%d %Hh%M"},
			Time:     []string{"%Hh%M"},
		},
		Tags: TagsSection{
			MainSeparators:    []string{" -- "},
			BetweenSeparators: []string{" "},
		},
	}
}

// SetDefaults registers the built-in values on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("timestamp.date", d.Timestamp.Date)
	v.SetDefault("timestamp.date_time", d.Timestamp.DateTime)
	v.SetDefault("timestamp.time", d.Timestamp.Time)
	v.SetDefault("timestamp.parse_time", d.Timestamp.ParseTime)
	v.SetDefault("tags.main_separators", d.Tags.MainSeparators)
	v.SetDefault("tags.between_separators", d.Tags.BetweenSeparators)
	v.SetDefault("edit.dry_run", d.Edit.DryRun)
}

// decodeHook lets environment overrides carry lists as comma-separated
// strings. between_separators is decoded separately.
var decodeHook = mapstructure.ComposeDecodeHookFunc(
	mapstructure.StringToSliceHookFunc(","),
	mapstructure.TextUnmarshallerHookFunc(),
)

// Read decodes the settings held by v.
func Read(v *viper.Viper) (File, error) {
	var f File
	if err := v.Unmarshal(&f, viper.DecodeHook(decodeHook)); err != nil {
		return File{}, fmt.Errorf("failed to decode configuration: %w", err)
	}

	between, err := GetBetweenSeparators(v)
	if err != nil {
		return File{}, err
	}
	f.Tags.BetweenSeparators = between

	return f, nil
}

// GetBetweenSeparators accepts either a list of one-character strings or a
// single string whose every character is a separator.
func GetBetweenSeparators(v *viper.Viper) ([]string, error) {
	raw := v.Get("tags.between_separators")
	if s, ok := raw.(string); ok {
		out := make([]string, 0, utf8.RuneCountInString(s))
		for _, r := range s {
			out = append(out, string(r))
		}
		return out, nil
	}

	out, err := cast.ToStringSliceE(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid tags.between_separators: %w", err)
	}
	return out, nil
}

// GetDryRun returns the default for edit --dry-run.
func GetDryRun(v *viper.Viper) bool {
	return v.GetBool("edit.dry_run")
}

// Validate checks that every pattern compiles and every between separator
// is a single character. Empty lists are valid: they never match.
func (f File) Validate() error {
	_, err := f.Structured()
	return err
}

// Structured compiles the file into the configuration names are parsed
// against.
func (f File) Structured() (*structured.Configuration, error) {
	table, err := timestamp.NewTable(f.Timestamp.Date, f.Timestamp.DateTime, f.Timestamp.Time)
	if err != nil {
		return nil, err
	}
	table.ParseTime = f.Timestamp.ParseTime

	between := make([]rune, 0, len(f.Tags.BetweenSeparators))
	for _, s := range f.Tags.BetweenSeparators {
		if utf8.RuneCountInString(s) != 1 {
			return nil, fmt.Errorf("between separator %q must be a single character", s)
		}
		r, _ := utf8.DecodeRuneInString(s)
		between = append(between, r)
	}

	tagCfg := &tags.Configuration{
		MainSeparators:    f.Tags.MainSeparators,
		BetweenSeparators: between,
	}

	return &structured.Configuration{Timestamps: table, Tags: tagCfg}, nil
}

// Load reads, validates and compiles the configuration held by v.
func Load(v *viper.Viper) (*structured.Configuration, error) {
	f, err := Read(v)
	if err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return f.Structured()
}
