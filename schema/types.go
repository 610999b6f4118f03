// Package schema builds the command registration payload from declared
// parameters and a localization store.
//
// Names on the wire are always the programmatic names in kebab-case; the
// localization store only adds localized text. A command without a stored
// description is registered with l10n.MissingText.
package schema

import (
	"github.com/napalu/slashopt/l10n"
	"github.com/napalu/slashopt/option"
)

// MaxOptions is the number of options, subcommands or groups one level of a
// command may carry.
const MaxOptions = 25

// Text is the name and description of a command, option or group together
// with their localizations.
type Text struct {
	Name                     string            `json:"name"`
	NameLocalizations        l10n.Translations `json:"name_localizations,omitempty"`
	Description              string            `json:"description"`
	DescriptionLocalizations l10n.Translations `json:"description_localizations,omitempty"`
}

// Command is a top-level command as registered with the platform.
type Command struct {
	Text
	Options []*Option `json:"options,omitempty"`
}

// Option is an option, a subcommand or a subcommand group.
type Option struct {
	Type option.Kind `json:"type"`
	Text
	Required     bool                 `json:"required,omitempty"`
	Choices      []Choice             `json:"choices,omitempty"`
	Options      []*Option            `json:"options,omitempty"`
	ChannelTypes []option.ChannelType `json:"channel_types,omitempty"`
	MinValue     *float64             `json:"min_value,omitempty"`
	MaxValue     *float64             `json:"max_value,omitempty"`
	MinLength    *int                 `json:"min_length,omitempty"`
	MaxLength    *int                 `json:"max_length,omitempty"`
	Autocomplete bool                 `json:"autocomplete,omitempty"`
}

// Choice is one entry of a choice list. Value is the stable key the
// resolver matches.
type Choice struct {
	Name              string            `json:"name"`
	NameLocalizations l10n.Translations `json:"name_localizations,omitempty"`
	Value             string            `json:"value"`
}

// Find returns the direct child option called name.
func (c *Command) Find(name string) (*Option, bool) {
	return find(c.Options, name)
}

// Find returns the direct child option called name.
func (o *Option) Find(name string) (*Option, bool) {
	return find(o.Options, name)
}

func find(options []*Option, name string) (*Option, bool) {
	for _, o := range options {
		if o.Name == name {
			return o, true
		}
	}

	return nil, false
}
