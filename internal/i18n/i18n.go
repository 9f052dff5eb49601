// Package i18n holds the translated messages of the command line.
package i18n

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	NoChange      = "no-change"
	Renamed       = "renamed"
	WouldRename   = "would-rename"
	Skipped       = "skipped"
	Watching      = "watching"
	ConfigWritten = "config-written"
	ConfigValid   = "config-valid"
	UnknownKey    = "unknown-key"
)

var supported = []language.Tag{language.English, language.French}

var messages = map[language.Tag]map[string]string{
	language.English: {
		NoChange:      "%s: unchanged",
		Renamed:       "renamed %s -> %s",
		WouldRename:   "would rename %s -> %s",
		Skipped:       "skipped %s: %v",
		Watching:      "watching %d path(s), press Ctrl-C to stop",
		ConfigWritten: "configuration written to %s",
		ConfigValid:   "%s: configuration is valid",
		UnknownKey:    "%s: unknown key %q",
	},
	language.French: {
		NoChange:      "%s : inchangé",
		Renamed:       "%s renommé en %s",
		WouldRename:   "%s serait renommé en %s",
		Skipped:       "%s ignoré : %v",
		Watching:      "surveillance de %d dossier(s), Ctrl-C pour arrêter",
		ConfigWritten: "configuration écrite dans %s",
		ConfigValid:   "%s : configuration valide",
		UnknownKey:    "%s : clé inconnue %q",
	},
}

// translations is built once; the messages are static.
var translations = mustCatalog(messages)

func newCatalog(entries map[language.Tag]map[string]string) (catalog.Catalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range entries {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("failed to add %s message %q: %w", tag, key, err)
			}
		}
	}
	return b, nil
}

func mustCatalog(entries map[language.Tag]map[string]string) catalog.Catalog {
	c, err := newCatalog(entries)
	if err != nil {
		panic(err)
	}
	return c
}

var matcher = language.NewMatcher(supported)

// NewPrinter returns a printer for the closest supported language to the
// requested one.
func NewPrinter(requested string) *message.Printer {
	tag, _, _ := matcher.Match(language.Make(requested))
	base, _ := tag.Base()
	for _, s := range supported {
		if b, _ := s.Base(); b == base {
			tag = s
			break
		}
	}
	return message.NewPrinter(tag, message.Catalog(translations))
}

// Requested returns the language asked for by the environment, as POSIX
// locale variables spell it ("fr_FR.UTF-8" becomes "fr-FR").
func Requested() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" && v != "C" && v != "POSIX" {
			if i := strings.IndexAny(v, ".@"); i >= 0 {
				v = v[:i]
			}
			return strings.ReplaceAll(v, "_", "-")
		}
	}
	return "en"
}
