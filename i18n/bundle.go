// Package i18n provides the message bundle used to render error and report
// messages in the language of the user who triggered them.
//
// The default bundle is built from the embedded locales/*.json catalogs and is
// immutable from the caller's perspective; use NewEmptyBundle to build a
// bundle from scratch.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/napalu/slashopt/internal/orderedmap"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

//go:embed locales/*.json
var defaultLocales embed.FS

var (
	ErrInvalidLanguage                    = errors.New("invalid language in filename")
	ErrDefaultLanguageTranslationsMissing = errors.New("default language translations missing")
	ErrInvalidTranslations                = errors.New("invalid translations")
	ErrEmptyTranslations                  = errors.New("empty translations")
	ErrFailedToSetString                  = errors.New("failed to set string")
	ErrLanguageNotFound                   = errors.New("language not found")
	ErrMissingKey                         = errors.New("missing key")
	ErrExtraKey                           = errors.New("extra key")
)

// Bundle holds message catalogs keyed by language. Languages keep the order in
// which they were added so that matching prefers the first registered one.
type Bundle struct {
	mu           sync.RWMutex
	defaultLang  language.Tag
	translations *orderedmap.OrderedMap[language.Tag, map[string]string]
	catalog      *catalog.Builder
	printers     map[language.Tag]*message.Printer
	matcher      language.Matcher
}

var (
	defaultBundle     *Bundle
	defaultBundleOnce sync.Once
)

// Default returns the bundle built from the embedded catalogs.
func Default() *Bundle {
	defaultBundleOnce.Do(func() {
		var err error
		defaultBundle, err = NewBundleWithFS(defaultLocales, "locales")
		if err != nil {
			panic("failed to load embedded locales: " + err.Error())
		}
	})

	return defaultBundle
}

// NewBundle returns a fresh copy of the embedded catalogs.
func NewBundle() (*Bundle, error) {
	return NewBundleWithFS(defaultLocales, "locales")
}

func NewEmptyBundle() *Bundle {
	return &Bundle{
		defaultLang:  language.English,
		translations: orderedmap.New[language.Tag, map[string]string](),
		catalog:      catalog.NewBuilder(),
		printers:     make(map[language.Tag]*message.Printer),
		matcher:      language.NewMatcher([]language.Tag{language.English}),
	}
}

// NewBundleWithFS loads every <lang>.json file found in dirPrefix. The default
// language (English) is loaded first so that other languages can be checked
// against its key set.
func NewBundleWithFS(fs embed.FS, dirPrefix string) (*Bundle, error) {
	b := NewEmptyBundle()

	entries, err := fs.ReadDir(dirPrefix)
	if err != nil {
		return nil, err
	}

	type langFile struct {
		lang language.Tag
		path string
	}
	var others []langFile
	foundDefault := false
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		lang, err := language.Parse(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidLanguage, entry.Name())
		}

		file := langFile{lang: lang, path: path.Join(dirPrefix, entry.Name())}
		if lang != b.defaultLang {
			others = append(others, file)
			continue
		}
		if err := b.processLangFile(fs, file.lang, file.path); err != nil {
			return nil, err
		}
		foundDefault = true
	}

	if !foundDefault {
		return nil, fmt.Errorf("%w: %s", ErrDefaultLanguageTranslationsMissing, b.defaultLang)
	}

	for _, file := range others {
		if err := b.processLangFile(fs, file.lang, file.path); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// T returns the translation for the given key in the default language
func (b *Bundle) T(key string, args ...interface{}) string {
	return b.TL(b.GetDefaultLanguage(), key, args...)
}

// TL returns the translation for the given language and key
func (b *Bundle) TL(lang language.Tag, key string, args ...interface{}) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if p, exists := b.printers[lang]; exists {
		return p.Sprintf(key, args...)
	}
	if p, exists := b.printers[b.defaultLang]; exists {
		return p.Sprintf(key, args...)
	}
	if len(args) > 0 {
		return fmt.Sprintf(key, args...)
	}

	return key
}

// Message returns the raw, unformatted message for key in lang, falling back
// to the default language and finally to the key itself.
func (b *Bundle) Message(lang language.Tag, key string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if translations, ok := b.translations.Get(lang); ok {
		if msg, ok := translations[key]; ok {
			return msg
		}
	}
	if translations, ok := b.translations.Get(b.defaultLang); ok {
		if msg, ok := translations[key]; ok {
			return msg
		}
	}

	return key
}

// AddLanguage adds a new language to the bundle or merges keys into an
// existing one. A new non-default language must carry exactly the key set of
// the default language.
func (b *Bundle) AddLanguage(lang language.Tag, translations map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	original, existed := b.translations.Get(lang)
	merged := make(map[string]string, len(original)+len(translations))
	for k, v := range original {
		merged[k] = v
	}
	for k, v := range translations {
		merged[k] = v
	}

	if !existed && lang != b.defaultLang {
		if errs := b.validateLanguage(merged); len(errs) > 0 {
			return fmt.Errorf("%w: %s: %w", ErrInvalidTranslations, lang, errors.Join(errs...))
		}
	}

	for key, value := range translations {
		if err := b.catalog.SetString(lang, key, value); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrFailedToSetString, key, err)
		}
	}

	b.translations.Set(lang, merged)
	b.printers[lang] = message.NewPrinter(lang, message.Catalog(b.catalog))
	b.updateMatcher()

	return nil
}

// updateMatcher must be called with the write lock held.
func (b *Bundle) updateMatcher() {
	supported := []language.Tag{b.defaultLang}
	for it := b.translations.Front(); it != nil; it = it.Next() {
		if lang := it.Key(); lang != b.defaultLang {
			supported = append(supported, lang)
		}
	}
	b.matcher = language.NewMatcher(supported)
}

// MatchLanguage returns the best supported language for the requested one.
func (b *Bundle) MatchLanguage(requested language.Tag) language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, idx, confidence := b.matcher.Match(requested)
	if confidence == language.No {
		return b.defaultLang
	}

	if idx == 0 {
		return b.defaultLang
	}
	i := 0
	for it := b.translations.Front(); it != nil; it = it.Next() {
		if it.Key() == b.defaultLang {
			continue
		}
		i++
		if i == idx {
			return it.Key()
		}
	}

	return b.defaultLang
}

// HasLanguage checks if a language is supported
func (b *Bundle) HasLanguage(lang language.Tag) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, exists := b.translations.Get(lang)
	return exists
}

// Languages returns the supported languages sorted by tag
func (b *Bundle) Languages() []language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	langs := b.translations.Keys()
	sort.Slice(langs, func(i, j int) bool {
		return langs[i].String() < langs[j].String()
	})

	return langs
}

// HasKey checks if a key exists in a language
func (b *Bundle) HasKey(lang language.Tag, key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	translations, exists := b.translations.Get(lang)
	if !exists {
		return false
	}
	_, exists = translations[key]

	return exists
}

func (b *Bundle) SetDefaultLanguage(lang language.Tag) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.defaultLang = lang
	b.updateMatcher()
}

func (b *Bundle) GetDefaultLanguage() language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.defaultLang
}

func (b *Bundle) processLangFile(fs embed.FS, lang language.Tag, path string) error {
	data, err := fs.ReadFile(path)
	if err != nil {
		return err
	}

	var translations map[string]string
	if err := json.Unmarshal(data, &translations); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return b.AddLanguage(lang, translations)
}

// validateLanguage must be called with the write lock held.
func (b *Bundle) validateLanguage(translations map[string]string) []error {
	var errs []error
	if len(translations) == 0 {
		return []error{ErrEmptyTranslations}
	}

	defaults, exists := b.translations.Get(b.defaultLang)
	if !exists {
		return []error{fmt.Errorf("%w: %s", ErrLanguageNotFound, b.defaultLang)}
	}

	for key := range defaults {
		if _, ok := translations[key]; !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrMissingKey, key))
		}
	}
	for key := range translations {
		if _, ok := defaults[key]; !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrExtraKey, key))
		}
	}

	return errs
}
