// Package l10n holds the localized names and descriptions of commands,
// options and choices.
//
// A Store is assembled from one or more localization files with Merge and is
// read-only afterwards; share it between goroutines through a Snapshot when
// it has to be reloaded at runtime.
package l10n

import (
	"errors"
	"fmt"
	"sort"

	"github.com/napalu/slashopt/errs"
	"github.com/napalu/slashopt/internal/orderedmap"
	"github.com/napalu/slashopt/validation"
)

// StubMarker is the placeholder FillStubs writes for missing translations.
const StubMarker = "TODO"

// MissingText is emitted when a schema needs a default description and the
// store has none.
const MissingText = "n/a"

// OptionL10n holds the translations of one option.
type OptionL10n struct {
	Name        Translations `yaml:"name,omitempty"`
	Description Translations `yaml:"description,omitempty"`
}

// OptionList keeps options in declaration order.
type OptionList = orderedmap.OrderedMap[string, *OptionL10n]

// ChoiceL10n maps the stable keys of an enumeration to their display text.
type ChoiceL10n = orderedmap.OrderedMap[string, Translations]

// CommandL10n holds the translations of a command or subcommand. Options must
// be listed in the order the command declares them.
type CommandL10n struct {
	Name        Translations            `yaml:"name,omitempty"`
	Description Translations            `yaml:"description,omitempty"`
	Subcommands map[string]*CommandL10n `yaml:"subcommands,omitempty"`
	Options     *OptionList             `yaml:"options,omitempty"`
}

// Store is the root of a localization document.
type Store struct {
	Commands map[string]*CommandL10n `yaml:"commands"`
	Choices  map[string]*ChoiceL10n  `yaml:"choices"`
}

func New() *Store {
	return &Store{
		Commands: map[string]*CommandL10n{},
		Choices:  map[string]*ChoiceL10n{},
	}
}

func (s *Store) ensure() {
	if s.Commands == nil {
		s.Commands = map[string]*CommandL10n{}
	}
	if s.Choices == nil {
		s.Choices = map[string]*ChoiceL10n{}
	}
}

// Merge moves every top-level command and choice of other into s. Keys that
// already exist are never overwritten; each one is reported and all reports
// are returned together once other has been fully processed.
func (s *Store) Merge(other *Store) error {
	s.ensure()
	if other == nil {
		return nil
	}

	var errList []error
	for _, name := range sortedKeys(other.Commands) {
		if _, exists := s.Commands[name]; exists {
			errList = append(errList, errs.ErrDuplicateCommand.WithArgs(name))
			continue
		}
		s.Commands[name] = other.Commands[name]
	}
	for _, name := range sortedKeys(other.Choices) {
		if _, exists := s.Choices[name]; exists {
			errList = append(errList, errs.ErrDuplicateChoice.WithArgs(name))
			continue
		}
		s.Choices[name] = other.Choices[name]
	}

	return errors.Join(errList...)
}

// Command returns the entry addressed by path.
func (s *Store) Command(path CommandPath) (*CommandL10n, bool) {
	if s == nil {
		return nil, false
	}

	cmd, ok := s.Commands[path.Name]
	if !ok || cmd == nil {
		return nil, false
	}

	switch path.Kind() {
	case PathSubcommand:
		cmd, ok = cmd.Subcommands[path.Subcommand]
	case PathGrouped:
		if cmd, ok = cmd.Subcommands[path.Group]; ok && cmd != nil {
			cmd, ok = cmd.Subcommands[path.Subcommand]
		}
	}
	if !ok || cmd == nil {
		return nil, false
	}

	return cmd, true
}

// Insert stores entry at path, creating empty parents as needed. An entry
// that already holds text or options is never replaced.
func (s *Store) Insert(path CommandPath, entry *CommandL10n) error {
	s.ensure()

	segments := path.Segments()
	entries := &s.Commands
	for i, name := range segments {
		if *entries == nil {
			*entries = map[string]*CommandL10n{}
		}
		existing := (*entries)[name]

		if i == len(segments)-1 {
			if !existing.empty() {
				return errs.ErrDuplicateCommand.WithArgs(path.String())
			}
			if existing != nil && len(existing.Subcommands) > 0 {
				if entry.Subcommands == nil {
					entry.Subcommands = map[string]*CommandL10n{}
				}
				for sub, child := range existing.Subcommands {
					if _, ok := entry.Subcommands[sub]; ok {
						return errs.ErrDuplicateCommand.WithArgs(path.String() + " " + sub)
					}
					entry.Subcommands[sub] = child
				}
			}
			(*entries)[name] = entry
			return nil
		}

		if existing == nil {
			existing = &CommandL10n{}
			(*entries)[name] = existing
		}
		entries = &existing.Subcommands
	}

	return nil
}

func (c *CommandL10n) empty() bool {
	return c == nil || (c.Name == nil && c.Description == nil && c.Options.Len() == 0)
}

// Group returns the entry of a subcommand group.
func (s *Store) Group(name, group string) (*CommandL10n, bool) {
	return s.Command(SubcommandOf(name, group))
}

// Option returns the translations of the option called name on path.
func (s *Store) Option(path CommandPath, name string) (*OptionL10n, bool) {
	cmd, ok := s.Command(path)
	if !ok {
		return nil, false
	}

	opt, ok := cmd.Options.Get(name)
	if !ok || opt == nil {
		return nil, false
	}

	return opt, true
}

// Choice returns the translations of one key of the enumeration set.
func (s *Store) Choice(set, key string) (Translations, bool) {
	if s == nil {
		return nil, false
	}

	choices, ok := s.Choices[set]
	if !ok || choices == nil {
		return nil, false
	}

	return choices.Get(key)
}

// Locales returns every locale used anywhere in the store, in platform order.
func (s *Store) Locales() []Locale {
	seen := Translations{}
	s.walk(func(_ string, _ textKind, t *Translations) {
		for l := range *t {
			seen[l] = ""
		}
	})

	return seen.Locales()
}

// FillStubs writes StubMarker for every requested locale missing from any
// translation in the tree. Stubbed stores are meant for ToYAML only.
func (s *Store) FillStubs(locales ...Locale) {
	s.walk(func(_ string, _ textKind, t *Translations) {
		if *t == nil {
			*t = Translations{}
		}
		for _, l := range locales {
			if _, ok := (*t)[l]; !ok {
				(*t)[l] = StubMarker
			}
		}
	})
}

// Validate checks every name and description in the tree and returns all
// violations at once. Stub markers are reported like any other invalid name.
func (s *Store) Validate() error {
	var errList []error
	s.walk(func(where string, kind textKind, t *Translations) {
		check := validation.ValidateDescription
		if kind == nameText {
			check = validation.ValidateName
		}
		for _, l := range t.Locales() {
			if err := check((*t)[l]); err != nil {
				errList = append(errList, fmt.Errorf("%s.%s: %w", where, l, err))
			}
		}
	})

	return errors.Join(errList...)
}

type textKind int

const (
	nameText textKind = iota
	descriptionText
	// choice labels are free text with the description length limits
	labelText
)

type visitFunc func(where string, kind textKind, t *Translations)

// walk visits every Translations in a deterministic order. where is a dotted
// path such as commands.kick.options.member.name. The tree is only written to
// when fn assigns a translation map, so read-only visitors are safe on a
// shared store.
func (s *Store) walk(fn visitFunc) {
	if s == nil {
		return
	}

	for _, name := range sortedKeys(s.Commands) {
		if cmd := s.Commands[name]; cmd != nil {
			cmd.walk("commands."+name, fn)
		}
	}

	for _, set := range sortedKeys(s.Choices) {
		choices := s.Choices[set]
		for it := choices.Front(); it != nil; it = it.Next() {
			t := it.Value()
			fn("choices."+set+"."+it.Key(), labelText, &t)
			if it.Value() == nil && t != nil {
				choices.Set(it.Key(), t)
			}
		}
	}
}

func (c *CommandL10n) walk(where string, fn visitFunc) {
	fn(where+".name", nameText, &c.Name)
	fn(where+".description", descriptionText, &c.Description)

	for it := c.Options.Front(); it != nil; it = it.Next() {
		opt := it.Value()
		if opt == nil {
			opt = &OptionL10n{}
		}
		fn(where+".options."+it.Key()+".name", nameText, &opt.Name)
		fn(where+".options."+it.Key()+".description", descriptionText, &opt.Description)
		if it.Value() == nil && (opt.Name != nil || opt.Description != nil) {
			c.Options.Set(it.Key(), opt)
		}
	}

	for _, name := range sortedKeys(c.Subcommands) {
		sub := c.Subcommands[name]
		if sub == nil {
			sub = &CommandL10n{}
		}
		sub.walk(where+".subcommands."+name, fn)
		if c.Subcommands[name] == nil && (sub.Name != nil || sub.Description != nil) {
			c.Subcommands[name] = sub
		}
	}
}

// OptionNames returns the localized option names in declared order.
func (c *CommandL10n) OptionNames() []string {
	if c == nil {
		return nil
	}

	return c.Options.Keys()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
