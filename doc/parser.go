// Package doc reads the names and descriptions of commands and options from
// structured doc comments.
//
// A doc comment starts with an optional backtick-quoted name followed by the
// description. The description runs until the first blank line. Each later
// line that starts with a dash opens a locale block: a backtick-quoted locale,
// an optional backtick-quoted localized name and the localized description,
// which may continue on the following lines.
//
//	`my-cmd` Does a thing
//	that spans two lines.
//
//	- `de` `mein-befehl` Macht ein Ding
//	- `fr` Fait une chose
//
// The leading text belongs to l10n.DefaultLocale and is never repeated in the
// per-locale maps.
package doc

import (
	"errors"
	"strings"

	"github.com/napalu/slashopt/errs"
	"github.com/napalu/slashopt/l10n"
	"github.com/napalu/slashopt/validation"
)

// Doc is the parsed text of one doc comment.
type Doc struct {
	// Name overrides the default name; empty when the comment has none.
	Name         string
	Description  string
	Names        l10n.Translations
	Descriptions l10n.Translations
}

type block struct {
	locale      l10n.Locale
	name        string
	description []string
	line        string
}

// Parse parses text. Grammar errors stop the parse; every name and
// description that fails validation is reported at once.
func Parse(text string) (*Doc, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil, errs.ErrMalformedDocComment.WithArgs(text)
	}

	d := &Doc{}

	first := lines[0]
	if strings.HasPrefix(first, "`") {
		name, rest, err := quoted(first, first)
		if err != nil {
			return nil, err
		}
		d.Name, first = name, rest
	}

	description := []string{first}
	i := 1
	for ; i < len(lines) && lines[i] != ""; i++ {
		if isBlockStart(lines[i]) {
			break
		}
		description = append(description, lines[i])
	}
	d.Description = joinText(description)

	blocks, err := parseBlocks(lines[i:])
	if err != nil {
		return nil, err
	}

	for _, b := range blocks {
		if b.locale == l10n.DefaultLocale {
			return nil, errs.ErrDuplicateLocale.WithArgs(b.locale.String())
		}
		if _, ok := d.Names[b.locale]; ok {
			return nil, errs.ErrDuplicateLocale.WithArgs(b.locale.String())
		}
		if _, ok := d.Descriptions[b.locale]; ok {
			return nil, errs.ErrDuplicateLocale.WithArgs(b.locale.String())
		}

		if b.name != "" {
			if d.Names == nil {
				d.Names = l10n.Translations{}
			}
			d.Names[b.locale] = b.name
		}
		if text := joinText(b.description); text != "" {
			if d.Descriptions == nil {
				d.Descriptions = l10n.Translations{}
			}
			d.Descriptions[b.locale] = text
		}
		if b.name == "" && len(b.description) == 0 {
			return nil, errs.ErrMalformedDocComment.WithArgs(b.line)
		}
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate checks every name and description of d.
func (d *Doc) Validate() error {
	var errList []error
	if d.Name != "" {
		if err := validation.ValidateName(d.Name); err != nil {
			errList = append(errList, err)
		}
	}
	if err := validation.ValidateDescription(d.Description); err != nil {
		errList = append(errList, err)
	}
	for _, l := range d.Names.Locales() {
		if err := validation.ValidateName(d.Names[l]); err != nil {
			errList = append(errList, err)
		}
	}
	for _, l := range d.Descriptions.Locales() {
		if err := validation.ValidateDescription(d.Descriptions[l]); err != nil {
			errList = append(errList, err)
		}
	}

	return errors.Join(errList...)
}

// NameTranslations returns the localized names with the name override, if
// any, under l10n.DefaultLocale.
func (d *Doc) NameTranslations() l10n.Translations {
	out := d.Names.Clone()
	if d.Name != "" {
		if out == nil {
			out = l10n.Translations{}
		}
		out[l10n.DefaultLocale] = d.Name
	}

	return out
}

// DescriptionTranslations returns the localized descriptions with the default
// description under l10n.DefaultLocale.
func (d *Doc) DescriptionTranslations() l10n.Translations {
	out := d.Descriptions.Clone()
	if out == nil {
		out = l10n.Translations{}
	}
	out[l10n.DefaultLocale] = d.Description

	return out
}

// Command returns d as a store entry without options.
func (d *Doc) Command() *l10n.CommandL10n {
	return &l10n.CommandL10n{
		Name:        d.NameTranslations(),
		Description: d.DescriptionTranslations(),
	}
}

// Option returns d as the store entry of an option.
func (d *Doc) Option() *l10n.OptionL10n {
	return &l10n.OptionL10n{
		Name:        d.NameTranslations(),
		Description: d.DescriptionTranslations(),
	}
}

func parseBlocks(lines []string) ([]*block, error) {
	var blocks []*block
	var current *block

	for _, line := range lines {
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "-"):
			b, err := parseBlockStart(line)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, b)
			current = b
		case current == nil:
			return nil, errs.ErrMalformedDocComment.WithArgs(line)
		default:
			current.description = append(current.description, line)
		}
	}

	return blocks, nil
}

func parseBlockStart(line string) (*block, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "-"))
	if !strings.HasPrefix(rest, "`") {
		return nil, errs.ErrMalformedDocComment.WithArgs(line)
	}

	code, rest, err := quoted(rest, line)
	if err != nil {
		return nil, err
	}
	locale, err := l10n.ParseLocale(code)
	if err != nil {
		return nil, err
	}

	b := &block{locale: locale, line: line}
	if strings.HasPrefix(rest, "`") {
		if b.name, rest, err = quoted(rest, line); err != nil {
			return nil, err
		}
	}
	if rest != "" {
		b.description = append(b.description, rest)
	}

	return b, nil
}

// quoted splits "`word` rest" into word and the trimmed rest.
func quoted(s, line string) (string, string, error) {
	end := strings.IndexByte(s[1:], '`')
	if end <= 0 {
		return "", "", errs.ErrMalformedDocComment.WithArgs(line)
	}

	return s[1 : end+1], strings.TrimSpace(s[end+2:]), nil
}

func isBlockStart(line string) bool {
	return strings.HasPrefix(line, "- `")
}

func joinText(lines []string) string {
	return strings.TrimSpace(strings.Join(lines, " "))
}
