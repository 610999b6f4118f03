package l10n

import "strings"

// PathKind distinguishes the three shapes of a CommandPath.
type PathKind int

const (
	PathCommand PathKind = iota
	PathSubcommand
	PathGrouped
)

// CommandPath identifies a command, a subcommand or a subcommand inside a
// group. Build one with CommandOf, SubcommandOf or GroupedOf.
type CommandPath struct {
	Name       string
	Group      string
	Subcommand string
}

func CommandOf(name string) CommandPath {
	return CommandPath{Name: name}
}

func SubcommandOf(name, subcommand string) CommandPath {
	return CommandPath{Name: name, Subcommand: subcommand}
}

func GroupedOf(name, group, subcommand string) CommandPath {
	return CommandPath{Name: name, Group: group, Subcommand: subcommand}
}

func (p CommandPath) Kind() PathKind {
	switch {
	case p.Group != "":
		return PathGrouped
	case p.Subcommand != "":
		return PathSubcommand
	default:
		return PathCommand
	}
}

// Leaf returns the name of the innermost element: the subcommand if there is
// one, the command otherwise.
func (p CommandPath) Leaf() string {
	if p.Subcommand != "" {
		return p.Subcommand
	}

	return p.Name
}

// Segments returns the non-empty path elements from the root.
func (p CommandPath) Segments() []string {
	switch p.Kind() {
	case PathGrouped:
		return []string{p.Name, p.Group, p.Subcommand}
	case PathSubcommand:
		return []string{p.Name, p.Subcommand}
	default:
		return []string{p.Name}
	}
}

// String renders the path the way a user types it, without the leading slash.
func (p CommandPath) String() string {
	return strings.Join(p.Segments(), " ")
}
