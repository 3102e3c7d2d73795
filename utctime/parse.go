package utctime

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Locale is a named list of time package layouts tried in order by ParseInLocale.
type Locale struct {
	name    string
	tag     language.Tag
	layouts []string
}

// isoLayouts are accepted by every locale.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
}

var (
	Invariant = newLocale("invariant", language.Und,
		"1/2/2006 15:04:05.9999999",
		"1/2/2006 15:04",
		"1/2/2006",
	)

	AmericanEnglish = newLocale("en-US", language.AmericanEnglish,
		"1/2/2006 3:04:05 PM",
		"1/2/2006 3:04 PM",
		"1/2/2006 15:04:05",
		"1/2/2006",
		"January 2, 2006 3:04:05 PM",
		"January 2, 2006",
	)

	BritishEnglish = newLocale("en-GB", language.BritishEnglish,
		"2/1/2006 15:04:05",
		"2/1/2006 15:04",
		"2/1/2006",
		"2 January 2006 15:04:05",
		"2 January 2006",
	)

	German = newLocale("de-DE", language.German,
		"2.1.2006 15:04:05",
		"2.1.2006 15:04",
		"2.1.2006",
	)

	French = newLocale("fr-FR", language.French,
		"2/1/2006 15:04:05",
		"2/1/2006 15:04",
		"2/1/2006",
	)

	Japanese = newLocale("ja-JP", language.Japanese,
		"2006/1/2 15:04:05",
		"2006/1/2 15:04",
		"2006/1/2",
	)

	// Tags without any match resolve to Invariant in LocaleFor.
	locales       = []Locale{Invariant, AmericanEnglish, BritishEnglish, German, French, Japanese}
	localeMatcher = language.NewMatcher(localeTags(locales))
)

func newLocale(name string, tag language.Tag, layouts ...string) Locale {
	return Locale{
		name:    name,
		tag:     tag,
		layouts: append(layouts, isoLayouts...),
	}
}

func localeTags(all []Locale) []language.Tag {
	tags := make([]language.Tag, 0, len(all))
	for _, locale := range all {
		tags = append(tags, locale.tag)
	}

	return tags
}

// LocaleFor returns the supported locale that best matches tag, or Invariant.
func LocaleFor(tag language.Tag) Locale {
	_, index, confidence := localeMatcher.Match(tag)
	if confidence == language.No {
		return Invariant
	}

	return locales[index]
}

func (l Locale) Name() string      { return l.name }
func (l Locale) Tag() language.Tag { return l.tag }

// Layouts returns a copy of the layouts tried by ParseInLocale.
func (l Locale) Layouts() []string {
	return append([]string(nil), l.layouts...)
}

// Parse reads text with the Invariant locale.
// Text without a zone is taken as UTC, text with an offset is adjusted to UTC.
func Parse(text string) (Timestamp, error) {
	return ParseInLocale(text, Invariant)
}

// ParseInLocale reads text with the layouts of locale, after trimming surrounding white space.
func ParseInLocale(text string, locale Locale) (Timestamp, error) {
	trimmed := strings.TrimSpace(text)

	for _, layout := range locale.layouts {
		parsed, err := time.ParseInLocation(layout, trimmed, time.UTC)
		if err != nil {
			continue
		}

		if !resolvesToUTC(parsed) {
			name, _ := parsed.Zone()
			return Timestamp{}, fmt.Errorf("%w: zone %q in %q has no known offset", ErrZoneMismatch, name, text)
		}

		ts, err := ConvertFrom(parsed.UTC())
		if err != nil {
			return Timestamp{}, errors.Join(fmt.Errorf("%w: %q", ErrFormat, text), err)
		}

		return ts, nil
	}

	return Timestamp{}, fmt.Errorf("%w: %q", ErrFormat, text)
}

// resolvesToUTC reports whether the zone of a parsed time is known. For an abbreviation
// like "PST" the time package cannot resolve, it invents a zone with offset 0 under that
// name, which would read the wall clock as UTC.
func resolvesToUTC(parsed time.Time) bool {
	name, offset := parsed.Zone()
	if offset != 0 || parsed.Location() == time.UTC {
		return true
	}

	return name == "" || name == "UTC" || name == "GMT"
}

// TryParse is Parse reporting failure as false.
func TryParse(text string) (Timestamp, bool) {
	return TryParseInLocale(text, Invariant)
}

// TryParseInLocale is ParseInLocale reporting failure as false.
func TryParseInLocale(text string, locale Locale) (Timestamp, bool) {
	ts, err := ParseInLocale(text, locale)
	if err != nil {
		return Timestamp{}, false
	}

	return ts, true
}
