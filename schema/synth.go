package schema

import (
	"errors"
	"fmt"

	"github.com/iancoleman/strcase"

	"github.com/napalu/slashopt/errs"
	"github.com/napalu/slashopt/l10n"
	"github.com/napalu/slashopt/option"
	"github.com/napalu/slashopt/validation"
)

// Synthesizer layers the text of a localization store over declared
// parameters. A nil Store registers everything with default text.
type Synthesizer struct {
	Store *l10n.Store
}

func New(store *l10n.Store) *Synthesizer {
	return &Synthesizer{Store: store}
}

// Command describes the top-level command name with the given parameters.
func (s *Synthesizer) Command(name string, params []option.Param) (*Command, error) {
	path := l10n.CommandOf(name)
	cmd := &Command{}

	var errList []error
	cmd.Text, errList = s.commandText(path)

	options, err := s.Options(path, params)
	if err != nil {
		errList = append(errList, err)
	}
	cmd.Options = options

	return cmd, errors.Join(errList...)
}

// Subcommand describes the subcommand at path, which must not be a plain
// command path.
func (s *Synthesizer) Subcommand(path l10n.CommandPath, params []option.Param) (*Option, error) {
	sub := &Option{Type: option.KindSubcommand}

	var errList []error
	sub.Text, errList = s.commandText(path)

	options, err := s.Options(path, params)
	if err != nil {
		errList = append(errList, err)
	}
	sub.Options = options

	return sub, errors.Join(errList...)
}

// Group describes the subcommand group group of the command name. Its
// subcommands are added by the caller.
func (s *Synthesizer) Group(name, group string) (*Option, error) {
	g := &Option{Type: option.KindSubcommandGroup}

	var errList []error
	g.Text, errList = s.commandText(l10n.SubcommandOf(name, group))

	return g, errors.Join(errList...)
}

// Options describes params in declaration order. The option entries stored
// for path are paired with params by position: a stored name that differs
// from the parameter's wire name stops synthesis with errs.ErrOptionMismatch,
// as does a stored option beyond the last parameter. Invalid text is
// collected and returned together.
func (s *Synthesizer) Options(path l10n.CommandPath, params []option.Param) ([]*Option, error) {
	entry, _ := s.Store.Command(path)
	stored := entry.OptionNames()

	for i, p := range params {
		if i < len(stored) && stored[i] != p.WireName() {
			return nil, errs.ErrOptionMismatch.WithArgs(i+1, path.String(), p.WireName(), stored[i])
		}
	}
	if len(stored) > len(params) {
		return nil, errs.ErrUnknownLocalizedOption.WithArgs(path.String(), stored[len(params)])
	}
	if len(params) > MaxOptions {
		return nil, errs.ErrTooManyOptions.WithArgs(path.String(), len(params), MaxOptions)
	}

	var errList []error
	options := make([]*Option, 0, len(params))
	optional := ""
	for _, p := range params {
		o, err := s.option(path, p)
		if err != nil {
			errList = append(errList, err)
		}
		if o.Required && optional != "" {
			errList = append(errList, errs.ErrRequiredAfterOptional.WithArgs(o.Name))
		}
		if !o.Required && optional == "" {
			optional = o.Name
		}
		options = append(options, o)
	}

	return options, errors.Join(errList...)
}

func (s *Synthesizer) option(path l10n.CommandPath, p option.Param) (*Option, error) {
	partial := p.Type.Describe()
	o := &Option{
		Type:         partial.Kind,
		Required:     partial.Required,
		MinValue:     partial.MinValue,
		MaxValue:     partial.MaxValue,
		MinLength:    partial.MinLength,
		MaxLength:    partial.MaxLength,
		Autocomplete: partial.Autocomplete,
		ChannelTypes: partial.ChannelTypes,
	}
	if !partial.Kind.IsValue() {
		return o, errs.ErrUnresolvedVariant.WithArgs(int(p.Type.Variant()))
	}

	where := fmt.Sprintf("%s option %s", path, p.WireName())
	var names, descriptions l10n.Translations
	if stored, ok := s.Store.Option(path, p.WireName()); ok {
		names, descriptions = stored.Name, stored.Description
	}

	var errList []error
	o.Text, errList = text(where, p.WireName(), names, descriptions)

	if partial.Choices != nil {
		choices, err := s.choices(partial.Choices)
		if err != nil {
			errList = append(errList, err)
		}
		o.Choices = choices
	}

	return o, errors.Join(errList...)
}

func (s *Synthesizer) choices(set *option.ChoiceSet) ([]Choice, error) {
	var errList []error
	out := make([]Choice, 0, set.Len())

	for _, key := range set.Keys() {
		where := fmt.Sprintf("choice %s.%s", set.Name(), key)
		c := Choice{Name: key, Value: key}
		if labels, ok := s.Store.Choice(set.Name(), key); ok {
			c.Name = labels.DefaultOr(key)
			c.NameLocalizations = labels.Clone()
		}

		errList = append(errList, check(where, c.Name, validation.ValidateDescription)...)
		for _, l := range c.NameLocalizations.Locales() {
			errList = append(errList, check(where+"."+l.String(), c.NameLocalizations[l], validation.ValidateDescription)...)
		}
		out = append(out, c)
	}

	return out, errors.Join(errList...)
}

func (s *Synthesizer) commandText(path l10n.CommandPath) (Text, []error) {
	var names, descriptions l10n.Translations
	if entry, ok := s.Store.Command(path); ok {
		names, descriptions = entry.Name, entry.Description
	}

	return text(path.String(), strcase.ToKebab(path.Leaf()), names, descriptions)
}

// text emits name as the default name and the stored default-locale
// description, or l10n.MissingText, as the default description. Every stored
// locale becomes a localization.
func text(where, name string, names, descriptions l10n.Translations) (Text, []error) {
	t := Text{
		Name:                     name,
		NameLocalizations:        names.Clone(),
		Description:              descriptions.DefaultOr(l10n.MissingText),
		DescriptionLocalizations: descriptions.Clone(),
	}

	var errList []error
	errList = append(errList, check(where+" name", t.Name, validation.ValidateName)...)
	errList = append(errList, check(where+" description", t.Description, validation.ValidateDescription)...)
	for _, l := range t.NameLocalizations.Locales() {
		errList = append(errList, check(where+" name."+l.String(), t.NameLocalizations[l], validation.ValidateName)...)
	}
	for _, l := range t.DescriptionLocalizations.Locales() {
		errList = append(errList, check(where+" description."+l.String(), t.DescriptionLocalizations[l], validation.ValidateDescription)...)
	}

	return t, errList
}

func check(where, value string, validate func(string) error) []error {
	if value == l10n.StubMarker {
		return []error{errs.ErrStubInSchema.WithArgs(where, l10n.StubMarker)}
	}
	if err := validate(value); err != nil {
		return []error{fmt.Errorf("%s: %w", where, err)}
	}

	return nil
}
