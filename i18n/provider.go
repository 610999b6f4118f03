package i18n

import (
	"sync"

	"golang.org/x/text/language"
)

// MessageProvider defines an interface for getting default messages
type MessageProvider interface {
	GetMessage(key string) string
}

// BundleMessageProvider implements MessageProvider on top of a bundle. A zero
// language means the bundle's default language at the time of the lookup.
type BundleMessageProvider struct {
	bundle *Bundle
	lang   language.Tag
}

// NewBundleMessageProvider creates a provider reading the bundle's default language
func NewBundleMessageProvider(bundle *Bundle) *BundleMessageProvider {
	return &BundleMessageProvider{bundle: bundle}
}

// NewLanguageProvider creates a provider for the bundle language closest to lang.
func NewLanguageProvider(bundle *Bundle, lang language.Tag) *BundleMessageProvider {
	return &BundleMessageProvider{
		bundle: bundle,
		lang:   bundle.MatchLanguage(lang),
	}
}

// GetMessage returns the message for the given key from the bundle
func (p *BundleMessageProvider) GetMessage(key string) string {
	if p.bundle == nil {
		return key
	}

	lang := p.lang
	if lang == language.Und {
		lang = p.bundle.GetDefaultLanguage()
	}

	return p.bundle.Message(lang, key)
}

// Package-level provider management
var (
	defaultProvider    MessageProvider
	defaultProviderMux sync.RWMutex
)

// SetDefaultMessageProvider allows users to set their own provider
func SetDefaultMessageProvider(p MessageProvider) {
	defaultProviderMux.Lock()
	defer defaultProviderMux.Unlock()

	defaultProvider = p
}

func getDefaultProvider() MessageProvider {
	defaultProviderMux.RLock()
	if defaultProvider != nil {
		defer defaultProviderMux.RUnlock()
		return defaultProvider
	}
	defaultProviderMux.RUnlock()

	defaultProviderMux.Lock()
	defer defaultProviderMux.Unlock()

	if defaultProvider == nil {
		defaultProvider = NewBundleMessageProvider(Default())
	}

	return defaultProvider
}
