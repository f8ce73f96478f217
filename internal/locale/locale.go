package locale

import (
	"errors"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

var (
	defaultLocale = language.English

	supported = []language.Tag{defaultLocale, language.Indonesian}
	matcher   = language.NewMatcher(supported)
	alerts    = newCatalog()
)

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(defaultLocale))
	for key, msg := range indonesian {
		if err := b.SetString(language.Indonesian, key, msg); err != nil {
			panic(err)
		}
	}
	return b
}

// Match picks the best supported locale for an Accept-Language header
// value, falling back to English.
func Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return defaultLocale
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return defaultLocale
	}
	return supported[idx]
}

// Printer returns a message printer for the best match of acceptLanguage.
func Printer(acceptLanguage string) *message.Printer {
	return NewPrinter(Match(acceptLanguage))
}

func NewPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(alerts))
}

// Alert renders err for a user. Simulation errors are re-rendered from
// their template; anything else is returned as is.
func Alert(p *message.Printer, err error) string {
	var simErr *util.SimulationError
	if errors.As(err, &simErr) {
		return p.Sprintf(simErr.Format, simErr.Args...)
	}
	return err.Error()
}
