package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/napalu/slashopt/errs"
	"github.com/napalu/slashopt/internal/util"
	"github.com/napalu/slashopt/l10n"
	"github.com/napalu/slashopt/schema"
)

// maxSuggestionDistance bounds the edit distance of command suggestions.
const maxSuggestionDistance = 2

// Map holds defs keyed by their wire path. A node either runs a def or holds
// subcommands, never both.
type Map struct {
	root node
	defs []*Def
}

type node struct {
	def      *Def
	children map[string]*node
	order    []string
}

// NewMap adds every def and returns all merge errors together.
func NewMap(defs ...*Def) (*Map, error) {
	m := &Map{}
	if err := m.Merge(defs...); err != nil {
		return nil, err
	}

	return m, nil
}

// Merge adds defs in order. A def whose path is already taken is reported with
// errs.ErrDuplicateCommand; a def that would give a command both a handler
// and subcommands with errs.ErrAmbiguousSubcommand. Rejected defs are skipped
// and the rest are still added.
func (m *Map) Merge(defs ...*Def) error {
	var errList []error
	for _, d := range defs {
		if err := m.Add(d); err != nil {
			errList = append(errList, err)
		}
	}

	return errors.Join(errList...)
}

// Add inserts one def.
func (m *Map) Add(d *Def) error {
	segments := wireSegments(d.Path)
	n := &m.root

	for i, seg := range segments {
		child, ok := n.children[seg]
		last := i == len(segments)-1

		switch {
		case ok && last && child.def != nil:
			return errs.ErrDuplicateCommand.WithArgs(strings.Join(segments, " "))
		case ok && last:
			return errs.ErrAmbiguousSubcommand.WithArgs(strings.Join(segments, " "))
		case ok && child.def != nil:
			return errs.ErrAmbiguousSubcommand.WithArgs(strings.Join(segments[:i+1], " "))
		case !ok:
			child = &node{}
			if n.children == nil {
				n.children = map[string]*node{}
			}
			n.children[seg] = child
			n.order = append(n.order, seg)
		}
		n = child
	}

	n.def = d
	m.defs = append(m.defs, d)

	return nil
}

// Find returns the def at path. Path segments may be given in programmatic
// or wire form.
func (m *Map) Find(path l10n.CommandPath) (*Def, bool) {
	n := &m.root
	for _, seg := range wireSegments(path) {
		child, ok := n.children[seg]
		if !ok {
			return nil, false
		}
		n = child
	}
	if n.def == nil {
		return nil, false
	}

	return n.def, true
}

// Defs returns every def in the order it was added.
func (m *Map) Defs() []*Def {
	return append([]*Def(nil), m.defs...)
}

// Names returns the top-level command names in the order they were added.
func (m *Map) Names() []string {
	return append([]string(nil), m.root.order...)
}

// Suggest returns the known command path closest to path, if one is close
// enough to be a likely typo.
func (m *Map) Suggest(path l10n.CommandPath) (string, bool) {
	var candidates []string
	m.root.paths("", &candidates)

	return util.Closest(strings.Join(wireSegments(path), " "), candidates, maxSuggestionDistance)
}

func (n *node) paths(prefix string, out *[]string) {
	if n.def != nil {
		*out = append(*out, prefix)
	}
	for _, seg := range n.order {
		p := seg
		if prefix != "" {
			p = prefix + " " + seg
		}
		n.children[seg].paths(p, out)
	}
}

// Schema synthesizes the registration payload of every def.
func (m *Map) Schema(s *schema.Synthesizer) ([]*schema.Command, error) {
	defs := make([]schema.Def, len(m.defs))
	for i, d := range m.defs {
		defs[i] = d.SchemaDef()
	}

	return s.Build(defs)
}

func (m *Map) String() string {
	var paths []string
	m.root.paths("", &paths)

	return fmt.Sprintf("command.Map%v", paths)
}

func wireSegments(path l10n.CommandPath) []string {
	segments := path.Segments()
	for i, s := range segments {
		segments[i] = strcase.ToKebab(s)
	}

	return segments
}
