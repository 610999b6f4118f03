// Package command keeps the declared commands of an application in a Map,
// resolves incoming invocations against them and reports resolution errors
// back to the invoking user.
package command

import (
	"context"

	"github.com/napalu/slashopt/l10n"
	"github.com/napalu/slashopt/option"
	"github.com/napalu/slashopt/schema"
)

// HandlerFunc runs a resolved invocation.
type HandlerFunc func(ctx context.Context, call *Call) error

// Def declares one invocable command: a plain command, a subcommand or a
// subcommand inside a group.
type Def struct {
	Path    l10n.CommandPath
	Params  []option.Param
	Handler HandlerFunc
}

// ConfigureDefFunc is used when defining a Def. A configuration that fails
// stores its error in err.
type ConfigureDefFunc func(d *Def, err *error)

// NewDef creates the command name and applies configs in order. The first
// configuration error is returned.
func NewDef(name string, configs ...ConfigureDefFunc) (*Def, error) {
	d := &Def{Path: l10n.CommandOf(name)}

	var err error
	for _, config := range configs {
		config(d, &err)
		if err != nil {
			return nil, err
		}
	}

	return d, nil
}

// MustDef is like NewDef but panics on error.
func MustDef(name string, configs ...ConfigureDefFunc) *Def {
	d, err := NewDef(name, configs...)
	if err != nil {
		panic(err)
	}

	return d
}

// WithSubcommand makes the def the subcommand sub of its command.
func WithSubcommand(sub string) ConfigureDefFunc {
	return func(d *Def, _ *error) {
		d.Path = l10n.SubcommandOf(d.Path.Name, sub)
	}
}

// WithGroup makes the def the subcommand sub inside group.
func WithGroup(group, sub string) ConfigureDefFunc {
	return func(d *Def, _ *error) {
		d.Path = l10n.GroupedOf(d.Path.Name, group, sub)
	}
}

// WithParams appends params in order.
func WithParams(params ...option.Param) ConfigureDefFunc {
	return func(d *Def, _ *error) {
		d.Params = append(d.Params, params...)
	}
}

// WithArgs appends the parameters declared by the fields of the struct args.
func WithArgs(args any, configs ...option.ConfigureBindFunc) ConfigureDefFunc {
	return func(d *Def, err *error) {
		params, e := option.Params(args, configs...)
		if e != nil {
			*err = e
			return
		}
		d.Params = append(d.Params, params...)
	}
}

// WithHandler sets the function run by Map.Run.
func WithHandler(handler HandlerFunc) ConfigureDefFunc {
	return func(d *Def, _ *error) {
		d.Handler = handler
	}
}

// SchemaDef returns the registration view of d.
func (d *Def) SchemaDef() schema.Def {
	return schema.Def{Path: d.Path, Params: d.Params}
}

// Param returns the parameter with the given wire name.
func (d *Def) Param(wireName string) (option.Param, bool) {
	for _, p := range d.Params {
		if p.WireName() == wireName {
			return p, true
		}
	}

	return option.Param{}, false
}
