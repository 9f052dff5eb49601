package report

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Format selects how reports are printed. It implements pflag.Value so it
// can back a --format flag directly.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatToon Format = "toon"
)

var _ pflag.Value = (*Format)(nil)

// Formats lists the accepted values.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatToon}

func (f *Format) String() string {
	return string(*f)
}

// Set validates and stores a format name.
func (f *Format) Set(s string) error {
	for _, known := range Formats {
		if strings.EqualFold(s, string(known)) {
			*f = known
			return nil
		}
	}
	return fmt.Errorf("must be one of %v", Formats)
}

// Type names the flag value in help output.
func (f *Format) Type() string {
	return "format"
}
