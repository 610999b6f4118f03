package command

import (
	"context"
	"errors"

	"github.com/napalu/slashopt/errs"
	"github.com/napalu/slashopt/l10n"
	"github.com/napalu/slashopt/option"
)

// WireOption is one option of an incoming invocation. Subcommand and group
// options carry their own options instead of a value.
type WireOption struct {
	Name    string
	Value   option.WireValue
	Options []WireOption
}

// IsCommand reports whether o selects a subcommand or a group.
func (o WireOption) IsCommand() bool {
	return o.Value.Kind == option.KindSubcommand || o.Value.Kind == option.KindSubcommandGroup
}

// Invocation is a command invocation as delivered by the platform.
type Invocation struct {
	Name    string
	Options []WireOption
	// Locale is the invoking user's client locale, e.g. "de" or "en-US".
	Locale string
}

// Subcommand returns an option that selects the subcommand name.
func Subcommand(name string, options ...WireOption) WireOption {
	return WireOption{Name: name, Value: option.WireValue{Kind: option.KindSubcommand}, Options: options}
}

// Group returns an option that selects the group name.
func Group(name string, sub WireOption) WireOption {
	return WireOption{Name: name, Value: option.WireValue{Kind: option.KindSubcommandGroup}, Options: []WireOption{sub}}
}

// Value returns a value option.
func Value(name string, v option.WireValue) WireOption {
	return WireOption{Name: name, Value: v}
}

// PathOf derives the path of inv from its nesting and returns the value
// options of the innermost subcommand. A single subcommand or group option
// whose only child is a subcommand yields a grouped path.
func PathOf(inv *Invocation) (l10n.CommandPath, []WireOption) {
	if len(inv.Options) != 1 || !inv.Options[0].IsCommand() {
		return l10n.CommandOf(inv.Name), inv.Options
	}

	outer := inv.Options[0]
	if len(outer.Options) == 1 && outer.Options[0].Value.Kind == option.KindSubcommand {
		inner := outer.Options[0]
		return l10n.GroupedOf(inv.Name, outer.Name, inner.Name), inner.Options
	}

	return l10n.SubcommandOf(inv.Name, outer.Name), outer.Options
}

// Call is an invocation resolved against its def.
type Call struct {
	Def    *Def
	Path   l10n.CommandPath
	Locale l10n.Locale
	// Slots holds the wire value of every option the user filled in, keyed by
	// wire name.
	Slots map[string]option.Slot
	// Values holds the resolved value of every parameter, keyed by wire name.
	Values map[string]any
}

// Bind resolves the slots of the call into the struct pointed to by dst.
func (c *Call) Bind(dst any, configs ...option.ConfigureBindFunc) error {
	return option.Bind(dst, c.Slots, configs...)
}

// Focused returns the name and partial text of the option the user is typing
// in during an autocomplete request.
func (c *Call) Focused() (string, string, bool) {
	for name, slot := range c.Slots {
		if slot.Present && slot.Value.Focused {
			return name, slot.Value.Partial, true
		}
	}

	return "", "", false
}

// Resolve finds the def of inv and resolves every parameter. Resolution does
// not stop at the first failure; all parameter errors are returned together
// and the returned call is nil.
func (m *Map) Resolve(inv *Invocation) (*Call, error) {
	path, options := PathOf(inv)

	def, ok := m.Find(path)
	if !ok {
		return nil, errs.ErrUnknownCommand.WithArgs(path.String())
	}

	call := &Call{
		Def:    def,
		Path:   path,
		Locale: l10n.MatchString(inv.Locale),
		Slots:  make(map[string]option.Slot, len(options)),
		Values: make(map[string]any, len(def.Params)),
	}
	for _, o := range options {
		if !o.IsCommand() {
			call.Slots[o.Name] = option.Present(o.Value)
		}
	}

	var errList []error
	for _, p := range def.Params {
		v, err := p.Resolve(call.Slots[p.WireName()])
		if err != nil {
			errList = append(errList, err)
			continue
		}
		call.Values[p.WireName()] = v
	}
	if len(errList) > 0 {
		return nil, errors.Join(errList...)
	}

	return call, nil
}

// Run resolves inv and passes the call to the def's handler. A def without a
// handler resolves and does nothing.
func (m *Map) Run(ctx context.Context, inv *Invocation) error {
	call, err := m.Resolve(inv)
	if err != nil {
		return err
	}
	if call.Def.Handler == nil {
		return nil
	}

	return call.Def.Handler(ctx, call)
}
