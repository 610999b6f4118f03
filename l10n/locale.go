package l10n

import (
	"golang.org/x/text/language"

	"github.com/napalu/slashopt/errs"
)

// Locale is one of the locale codes the platform accepts for localized names
// and descriptions.
type Locale string

const (
	Danish              Locale = "da"
	German              Locale = "de"
	EnglishUK           Locale = "en-GB"
	EnglishUS           Locale = "en-US"
	Spanish             Locale = "es-ES"
	French              Locale = "fr"
	Croatian            Locale = "hr"
	Italian             Locale = "it"
	Lithuanian          Locale = "lt"
	Hungarian           Locale = "hu"
	Dutch               Locale = "nl"
	Norwegian           Locale = "no"
	Polish              Locale = "pl"
	PortugueseBrazilian Locale = "pt-BR"
	Romanian            Locale = "ro"
	Finnish             Locale = "fi"
	Swedish             Locale = "sv-SE"
	Vietnamese          Locale = "vi"
	Turkish             Locale = "tr"
	Czech               Locale = "cs"
	Greek               Locale = "el"
	Bulgarian           Locale = "bg"
	Russian             Locale = "ru"
	Ukrainian           Locale = "uk"
	Hindi               Locale = "hi"
	Thai                Locale = "th"
	ChineseChina        Locale = "zh-CN"
	Japanese            Locale = "ja"
	ChineseTaiwan       Locale = "zh-TW"
	Korean              Locale = "ko"
)

// DefaultLocale supplies the canonical, non-localized text of a schema.
const DefaultLocale = EnglishUS

// locales is kept in the platform's documented order.
var locales = []Locale{
	Danish, German, EnglishUK, EnglishUS, Spanish, French, Croatian, Italian,
	Lithuanian, Hungarian, Dutch, Norwegian, Polish, PortugueseBrazilian,
	Romanian, Finnish, Swedish, Vietnamese, Turkish, Czech, Greek, Bulgarian,
	Russian, Ukrainian, Hindi, Thai, ChineseChina, Japanese, ChineseTaiwan,
	Korean,
}

var (
	localeIndex = func() map[Locale]int {
		m := make(map[Locale]int, len(locales))
		for i, l := range locales {
			m[l] = i
		}
		return m
	}()

	localeTags = func() []language.Tag {
		tags := make([]language.Tag, len(locales))
		for i, l := range locales {
			tags[i] = language.MustParse(string(l))
		}
		return tags
	}()

	// the default locale goes first so that it wins when nothing matches
	matcher = language.NewMatcher(append([]language.Tag{DefaultLocale.Tag()}, localeTags...))
)

// Locales returns every supported locale.
func Locales() []Locale {
	out := make([]Locale, len(locales))
	copy(out, locales)

	return out
}

// ParseLocale accepts exactly the platform's locale codes.
func ParseLocale(code string) (Locale, error) {
	l := Locale(code)
	if !l.Valid() {
		return "", errs.ErrUnknownLocale.WithArgs(code)
	}

	return l, nil
}

// ParseLocales parses every code and stops at the first unknown one.
func ParseLocales(codes ...string) ([]Locale, error) {
	out := make([]Locale, 0, len(codes))
	for _, code := range codes {
		l, err := ParseLocale(code)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}

	return out, nil
}

func (l Locale) Valid() bool {
	_, ok := localeIndex[l]
	return ok
}

func (l Locale) String() string {
	return string(l)
}

// Tag returns the BCP 47 tag of a valid locale and language.Und otherwise.
func (l Locale) Tag() language.Tag {
	idx, ok := localeIndex[l]
	if !ok {
		return language.Und
	}

	return localeTags[idx]
}

// Match maps an arbitrary client language, e.g. "de-AT" or "pt", to the
// closest supported locale, falling back to DefaultLocale.
func Match(tags ...language.Tag) Locale {
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No || idx == 0 {
		return DefaultLocale
	}

	return locales[idx-1]
}

// MatchString is Match for a raw client locale string.
func MatchString(code string) Locale {
	if l := Locale(code); l.Valid() {
		return l
	}

	tag, err := language.Parse(code)
	if err != nil {
		return DefaultLocale
	}

	return Match(tag)
}

func less(a, b Locale) bool {
	ia, oka := localeIndex[a]
	ib, okb := localeIndex[b]
	if oka && okb {
		return ia < ib
	}
	if oka != okb {
		return oka
	}

	return a < b
}
