package config

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/tagger/internal/structured"
	"github.com/pders01/tagger/internal/tags"
	"github.com/pders01/tagger/internal/timestamp"
)

func newViper(t *testing.T, toml string) *viper.Viper {
	t.Helper()

	v := viper.New()
	SetDefaults(v)
	if toml != "" {
		v.SetConfigType("toml")
		require.NoError(t, v.ReadConfig(strings.NewReader(toml)))
	}
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newViper(t, ""))
	require.NoError(t, err)

	assert.Equal(t, []string{"%Y-%m-%d", "%Y_%m_%d"}, cfg.Timestamps.Date.Patterns())
	assert.Equal(t, []string{"%Y-%m-%d %Hh%M"}, cfg.Timestamps.DateTime.Patterns())
	assert.Equal(t, []string{"%Hh%M"}, cfg.Timestamps.Time.Patterns())
	assert.Equal(t, &tags.Configuration{
		MainSeparators:    []string{" -- "},
		BetweenSeparators: []rune{' '},
	}, cfg.Tags)
}

func TestLoadFromFile(t *testing.T) {
	v := newViper(t, `
[timestamp]
date = ["%d.%m.%Y"]
date_time = []

[tags]
main_separators = [" -- ", " #"]
between_separators = " ,"
`)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, []string{"%d.%m.%Y"}, cfg.Timestamps.Date.Patterns())
	assert.Equal(t, 0, cfg.Timestamps.DateTime.Len())
	assert.Equal(t, []string{" -- ", " #"}, cfg.Tags.MainSeparators)
	assert.Equal(t, []rune{' ', ','}, cfg.Tags.BetweenSeparators)
}

func TestBetweenSeparatorsAsList(t *testing.T) {
	v := newViper(t, `
[tags]
between_separators = [" ", ";"]
`)

	got, err := GetBetweenSeparators(v)
	require.NoError(t, err)
	assert.Equal(t, []string{" ", ";"}, got)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TAGGER_EDIT_DRY_RUN", "true")

	v := newViper(t, "")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	assert.True(t, GetDryRun(v))
}

func TestListsFromEnvironment(t *testing.T) {
	t.Setenv("TAGGER_TIMESTAMP_DATE", "%d.%m.%Y,%Y-%m-%d")

	v := newViper(t, "")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	f, err := Read(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"%d.%m.%Y", "%Y-%m-%d"}, f.Timestamp.Date)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *File)
		wantErr error
	}{
		{
			name:    "defaults",
			mutate:  func(f *File) {},
			wantErr: nil,
		},
		{
			name:    "no date format",
			mutate:  func(f *File) { f.Timestamp.Date = nil },
			wantErr: nil,
		},
		{
			name:    "no main separator",
			mutate:  func(f *File) { f.Tags.MainSeparators = nil },
			wantErr: nil,
		},
		{
			name:    "unsupported directive",
			mutate:  func(f *File) { f.Timestamp.DateTime = []string{"%Y %A"} },
			wantErr: timestamp.ErrBadDirective,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Default()
			tt.mutate(&f)

			err := f.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEmptyListsNeverMatch(t *testing.T) {
	v := newViper(t, "")
	v.Set("timestamp.date", []string{})
	v.Set("timestamp.date_time", []string{})
	v.Set("tags.main_separators", []string{})

	cfg, err := Load(v)
	require.NoError(t, err)

	n := structured.ParseName("2022-10-27 report -- draft.txt", cfg)
	assert.Nil(t, n.Timestamp)
	assert.Nil(t, n.Tags)
	assert.Equal(t, "2022-10-27 report -- draft", *n.Filename)
	assert.Equal(t, "2022-10-27 report -- draft.txt", n.String())
}

func TestParseTimeSetting(t *testing.T) {
	v := newViper(t, "")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Nil(t, structured.ParseName("10h30 standup.txt", cfg).Timestamp, "time-only parsing is off by default")

	v.Set("timestamp.parse_time", true)
	cfg, err = Load(v)
	require.NoError(t, err)
	assert.NotNil(t, structured.ParseName("10h30 standup.txt", cfg).Timestamp)
}

func TestValidateBetweenSeparatorWidth(t *testing.T) {
	f := Default()
	f.Tags.BetweenSeparators = []string{"ab"}

	assert.Error(t, f.Validate())
}

func TestWriteDefault(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/home/user/.config/tagger/config.toml"

	require.NoError(t, WriteDefault(fs, path, false))
	assert.Error(t, WriteDefault(fs, path, false), "existing file needs force")
	require.NoError(t, WriteDefault(fs, path, true))

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)

	// The written file loads back to the defaults.
	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(string(data))))

	f, err := Read(v)
	require.NoError(t, err)
	assert.Equal(t, Default(), f)

	unknown, err := UnknownKeys(fs, path)
	require.NoError(t, err)
	assert.Empty(t, unknown)
}

func TestUnknownKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "config.toml", []byte(`
[timestamp]
date = ["%Y-%m-%d"]
formats = ["%Y"]

[tags]
between_separators = " ,"
main_separator = " -- "
`), 0644))

	unknown, err := UnknownKeys(fs, "config.toml")
	require.NoError(t, err)
	assert.Equal(t, []string{"tags.main_separator", "timestamp.formats"}, unknown)
}
