// Package translate formats user visible messages in the language of the
// host locale.
package translate

import (
	"log"
	"sync/atomic"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

const fallback = "en-US"

var printer atomic.Pointer[message.Printer]

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("intcode: locale: %v", err)
	}

	Use(locales...)
}

// Use selects the printer matching the first supported language of
// langs. With no languages, en-US is used.
func Use(langs ...string) {
	if len(langs) == 0 {
		langs = []string{fallback}
	}

	printer.Store(message.NewPrinter(message.MatchLanguage(langs...)))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Load().Sprintf(key, args...)
}
