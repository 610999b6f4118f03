package schema

import (
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/napalu/slashopt/errs"
	"github.com/napalu/slashopt/l10n"
	"github.com/napalu/slashopt/option"
)

// Variant is one case of an enumerated set of subcommands, listed in
// declaration order.
type Variant struct {
	// Name is the programmatic name, e.g. "RoleAdd".
	Name string
	// Marker makes the variant open a group instead of being a subcommand.
	Marker bool
	// Prefix is the name prefix shared by the members of a marker's group.
	// It defaults to the marker's Name.
	Prefix string
	// EndGroup closes the current group after this variant.
	EndGroup bool
	// BareFields counts unnamed fields; a marker may carry at most one.
	BareFields int
	Params     []option.Param
}

// Member is a subcommand produced by GroupVariants.
type Member struct {
	// Group is empty for subcommands outside any group.
	Group      string
	Subcommand string
	Variant    Variant
}

// GroupVariants sorts variants into groups. A group starts at a marker and
// takes every following variant whose name carries the marker's prefix. It
// ends at the first variant without the prefix, after a variant marked
// EndGroup, or at the next marker. Markers never become subcommands.
func GroupVariants(variants []Variant) ([]Member, error) {
	var members []Member
	var group, prefix string
	size := 0

	closeGroup := func() error {
		if group != "" && size == 0 {
			return errs.ErrEmptyGroup.WithArgs(group)
		}
		group, prefix, size = "", "", 0
		return nil
	}

	for _, v := range variants {
		if v.Marker {
			if v.EndGroup {
				return nil, errs.ErrContradictoryGroupMarker.WithArgs(v.Name)
			}
			if v.BareFields > 1 || len(v.Params) > 0 {
				return nil, errs.ErrGroupMarkerFields.WithArgs(v.Name)
			}
			if err := closeGroup(); err != nil {
				return nil, err
			}
			group, prefix = strcase.ToKebab(v.Name), v.Prefix
			if prefix == "" {
				prefix = v.Name
			}
			continue
		}

		if group != "" && !strings.HasPrefix(v.Name, prefix) {
			if err := closeGroup(); err != nil {
				return nil, err
			}
		}

		m := Member{Group: group, Subcommand: strcase.ToKebab(v.Name), Variant: v}
		if group != "" {
			if rest := strings.TrimPrefix(v.Name, prefix); rest != "" {
				m.Subcommand = strcase.ToKebab(rest)
			}
			size++
		}
		members = append(members, m)

		if v.EndGroup && group != "" {
			if err := closeGroup(); err != nil {
				return nil, err
			}
		}
	}

	if err := closeGroup(); err != nil {
		return nil, err
	}

	return members, nil
}

// VariantDefs groups the variants of the command name and returns one Def
// per subcommand.
func VariantDefs(name string, variants []Variant) ([]Def, error) {
	members, err := GroupVariants(variants)
	if err != nil {
		return nil, err
	}

	defs := make([]Def, len(members))
	for i, m := range members {
		path := l10n.SubcommandOf(name, m.Subcommand)
		if m.Group != "" {
			path = l10n.GroupedOf(name, m.Group, m.Subcommand)
		}
		defs[i] = Def{Path: path, Params: m.Variant.Params}
	}

	return defs, nil
}
