// Package translate localizes user facing text for neo13.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// FALLBACK is the language of the message formats in the source.
// No catalogs are built, so every message renders in this language,
// with number formatting taken from the matched locale.
const FALLBACK = "en-US"

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("neo13: locale: %v", err)
	}

	locales = append(locales, FALLBACK)

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
