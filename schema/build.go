package schema

import (
	"errors"
	"fmt"

	"github.com/iancoleman/strcase"

	"github.com/napalu/slashopt/errs"
	"github.com/napalu/slashopt/l10n"
	"github.com/napalu/slashopt/option"
)

// Def declares one invocable command: a plain command, a subcommand or a
// subcommand inside a group.
type Def struct {
	Path   l10n.CommandPath
	Params []option.Param
}

// Build assembles the registration payload for defs. Commands appear in the
// order their first def does; subcommands and groups keep def order. Errors
// of every def are collected and returned together.
func (s *Synthesizer) Build(defs []Def) ([]*Command, error) {
	var commands []*Command
	byName := map[string]*Command{}
	leaves := map[string]bool{}

	var errList []error
	for _, def := range defs {
		if err := s.add(def, &commands, byName, leaves); err != nil {
			errList = append(errList, fmt.Errorf("%s: %w", def.Path, err))
		}
	}

	for _, cmd := range commands {
		if len(cmd.Options) > MaxOptions {
			errList = append(errList, errs.ErrTooManyOptions.WithArgs(cmd.Name, len(cmd.Options), MaxOptions))
		}
		for _, o := range cmd.Options {
			if o.Type == option.KindSubcommandGroup && len(o.Options) > MaxOptions {
				errList = append(errList, errs.ErrTooManyOptions.WithArgs(cmd.Name+" "+o.Name, len(o.Options), MaxOptions))
			}
		}
	}

	if len(errList) > 0 {
		return nil, errors.Join(errList...)
	}

	return commands, nil
}

func (s *Synthesizer) add(def Def, commands *[]*Command, byName map[string]*Command, leaves map[string]bool) error {
	name := def.Path.Name
	cmd, exists := byName[name]

	if def.Path.Kind() == l10n.PathCommand {
		if exists {
			if leaves[name] {
				return errs.ErrDuplicateCommand.WithArgs(name)
			}
			return errs.ErrAmbiguousSubcommand.WithArgs(name)
		}
		cmd, err := s.Command(name, def.Params)
		if err != nil {
			return err
		}
		byName[name], leaves[name] = cmd, true
		*commands = append(*commands, cmd)
		return nil
	}

	if leaves[name] {
		return errs.ErrAmbiguousSubcommand.WithArgs(name)
	}
	if !exists {
		var err error
		cmd = &Command{}
		if cmd.Text, err = s.commandOnly(name); err != nil {
			return err
		}
		byName[name] = cmd
		*commands = append(*commands, cmd)
	}

	sub, err := s.Subcommand(def.Path, def.Params)
	if err != nil {
		return err
	}

	if def.Path.Kind() == l10n.PathSubcommand {
		if existing, ok := cmd.Find(sub.Name); ok {
			if existing.Type == option.KindSubcommandGroup {
				return errs.ErrAmbiguousSubcommand.WithArgs(name + " " + sub.Name)
			}
			return errs.ErrDuplicateCommand.WithArgs(def.Path.String())
		}
		cmd.Options = append(cmd.Options, sub)
		return nil
	}

	group, ok := cmd.Find(strcase.ToKebab(def.Path.Group))
	switch {
	case ok && group.Type != option.KindSubcommandGroup:
		return errs.ErrAmbiguousSubcommand.WithArgs(name + " " + def.Path.Group)
	case !ok:
		if group, err = s.Group(name, def.Path.Group); err != nil {
			return err
		}
		cmd.Options = append(cmd.Options, group)
	}
	if _, ok := group.Find(sub.Name); ok {
		return errs.ErrDuplicateCommand.WithArgs(def.Path.String())
	}
	group.Options = append(group.Options, sub)

	return nil
}

// commandOnly describes a command that only holds subcommands.
func (s *Synthesizer) commandOnly(name string) (Text, error) {
	t, errList := s.commandText(l10n.CommandOf(name))
	return t, errors.Join(errList...)
}
