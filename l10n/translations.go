package l10n

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/napalu/slashopt/errs"
)

// Translations maps a locale to the text used for it. A source document may
// name each locale at most once.
type Translations map[Locale]string

// Default returns the text of DefaultLocale.
func (t Translations) Default() (string, bool) {
	s, ok := t[DefaultLocale]
	return s, ok
}

// DefaultOr returns the text of DefaultLocale or fallback when there is none.
func (t Translations) DefaultOr(fallback string) string {
	if s, ok := t[DefaultLocale]; ok {
		return s
	}

	return fallback
}

// Locales returns the locales present in platform order.
func (t Translations) Locales() []Locale {
	out := make([]Locale, 0, len(t))
	for l := range t {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })

	return out
}

// Clone returns a copy; a nil receiver yields nil.
func (t Translations) Clone() Translations {
	if t == nil {
		return nil
	}

	c := make(Translations, len(t))
	for k, v := range t {
		c[k] = v
	}

	return c
}

func (t *Translations) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return errs.ErrInvalidDocument.Wrap(fmt.Errorf("line %d: translations must be a mapping", value.Line))
	}

	out := make(Translations, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, textNode := value.Content[i], value.Content[i+1]

		locale, err := ParseLocale(keyNode.Value)
		if err != nil {
			return err
		}
		if _, exists := out[locale]; exists {
			return errs.ErrDuplicateLocale.WithArgs(keyNode.Value)
		}
		if textNode.Kind != yaml.ScalarNode {
			return errs.ErrInvalidDocument.Wrap(fmt.Errorf("line %d: text for %s must be a string", textNode.Line, locale))
		}
		out[locale] = textNode.Value
	}
	*t = out

	return nil
}

// MarshalYAML writes locales in platform order instead of lexical order.
func (t Translations) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, l := range t.Locales() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(l)},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t[l]},
		)
	}

	return node, nil
}
