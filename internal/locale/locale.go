// Package locale holds the display strings of the gauge card.
package locale

import (
	"golang.org/x/text/language"
)

// Strings are the user-visible texts for one language.
type Strings struct {
	Tag    language.Tag
	NoData string
}

var tables = []Strings{
	{Tag: language.English, NoData: "N/A"}, // first entry is the fallback
	{Tag: language.Polish, NoData: "Brak"},
	{Tag: language.German, NoData: "N/A"},
}

var matcher = language.NewMatcher(supportedTags())

func supportedTags() []language.Tag {
	tags := make([]language.Tag, len(tables))
	for i, t := range tables {
		tags[i] = t.Tag
	}
	return tags
}

// Default returns the English strings.
func Default() Strings {
	return tables[0]
}

// Lookup returns the strings for an explicit language code such as "pl" or
// "de-AT", falling back to the Accept-Language header value, then English.
func Lookup(code, acceptLanguage string) Strings {
	var prefs []language.Tag
	if code != "" {
		if tag, err := language.Parse(code); err == nil {
			prefs = append(prefs, tag)
		}
	}
	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
			prefs = append(prefs, tags...)
		}
	}
	if len(prefs) == 0 {
		return Default()
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No {
		return Default()
	}
	return tables[idx]
}
