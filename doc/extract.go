package doc

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/napalu/slashopt/errs"
	"github.com/napalu/slashopt/internal/parse"
	"github.com/napalu/slashopt/l10n"
	"github.com/napalu/slashopt/option"
)

// Directive marks a function or type whose doc comment describes a command.
// It is followed by the command path, e.g. "//slash:command config role add".
const Directive = "//slash:command"

// Extractor collects command docs from Go sources into a localization store.
// Only the comment lines below the directive are parsed.
// The fields of a struct type carrying the directive become the command's
// options, in declaration order.
type Extractor struct {
	store   *l10n.Store
	errList []error
}

func NewExtractor() *Extractor {
	return &Extractor{store: l10n.New()}
}

// ExtractFromFiles extracts every file matching pattern.
func (e *Extractor) ExtractFromFiles(pattern string) error {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}

	for _, file := range matches {
		src, err := os.ReadFile(file)
		if err != nil {
			e.errList = append(e.errList, errs.ErrLoadingFile.WithArgs(file).Wrap(err))
			continue
		}
		if err := e.ExtractFromString(file, string(src)); err != nil {
			return err
		}
	}

	return nil
}

// ExtractFromString extracts one Go source file. A source that does not parse
// is returned as an error; doc comment problems are collected and reported by
// Store.
func (e *Extractor) ExtractFromString(filename, source string) error {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, source, parser.ParseComments)
	if err != nil {
		return err
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			e.extract(fset, d.Doc, nil)
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts := spec.(*ast.TypeSpec)
				comments := ts.Doc
				if comments == nil && len(d.Specs) == 1 {
					comments = d.Doc
				}
				st, _ := ts.Type.(*ast.StructType)
				e.extract(fset, comments, st)
			}
		}
	}

	return nil
}

// Store returns the collected docs and every problem found on the way.
func (e *Extractor) Store() (*l10n.Store, error) {
	return e.store, errors.Join(e.errList...)
}

// Extract runs an Extractor over every file matching the patterns.
func Extract(patterns ...string) (*l10n.Store, error) {
	e := NewExtractor()
	for _, pattern := range patterns {
		if err := e.ExtractFromFiles(pattern); err != nil {
			return nil, err
		}
	}

	return e.Store()
}

func (e *Extractor) extract(fset *token.FileSet, comments *ast.CommentGroup, st *ast.StructType) {
	if comments == nil {
		return
	}
	idx := findDirective(comments)
	if idx < 0 {
		return
	}
	directive := comments.List[idx]

	fail := func(err error) {
		e.errList = append(e.errList, fmt.Errorf("%s: %w", fset.Position(directive.Pos()), err))
	}

	path, err := pathOf(directive.Text)
	if err != nil {
		fail(err)
		return
	}

	// prose above the directive is ordinary Go documentation
	text := (&ast.CommentGroup{List: comments.List[idx+1:]}).Text()
	d, err := Parse(text)
	if err != nil {
		fail(fmt.Errorf("%s: %w", path, err))
		return
	}

	entry := d.Command()
	if st != nil {
		options, err := optionsOf(st)
		if err != nil {
			fail(fmt.Errorf("%s: %w", path, err))
			return
		}
		entry.Options = options
	}

	if err := e.store.Insert(path, entry); err != nil {
		fail(err)
	}
}

func findDirective(comments *ast.CommentGroup) int {
	for i, c := range comments.List {
		if c.Text == Directive || strings.HasPrefix(c.Text, Directive+" ") {
			return i
		}
	}

	return -1
}

func pathOf(directive string) (l10n.CommandPath, error) {
	segments := strings.Fields(strings.TrimPrefix(directive, Directive))
	switch len(segments) {
	case 1:
		return l10n.CommandOf(segments[0]), nil
	case 2:
		return l10n.SubcommandOf(segments[0], segments[1]), nil
	case 3:
		return l10n.GroupedOf(segments[0], segments[1], segments[2]), nil
	default:
		return l10n.CommandPath{}, errs.ErrMalformedDocComment.WithArgs(directive)
	}
}

// optionsOf lists the options declared by a struct in field order. Fields
// without a doc comment get an empty entry so that positions stay intact.
func optionsOf(st *ast.StructType) (*l10n.OptionList, error) {
	options := &l10n.OptionList{}

	for _, field := range st.Fields.List {
		tag := ""
		if field.Tag != nil {
			raw, err := strconv.Unquote(field.Tag.Value)
			if err != nil {
				return nil, errs.ErrInvalidTagFormat.WithArgs(field.Tag.Value)
			}
			tag = reflect.StructTag(raw).Get(option.TagName)
		}
		if tag == "-" || len(field.Names) == 0 {
			continue
		}

		cfg, err := parse.UnmarshalTagFormat(tag, field.Names[0].Name)
		if err != nil {
			return nil, err
		}

		for _, ident := range field.Names {
			if !ident.IsExported() {
				continue
			}
			name := ident.Name
			if cfg.Name != "" {
				name = cfg.Name
			}
			key := strcase.ToKebab(name)

			entry := &l10n.OptionL10n{}
			if field.Doc != nil {
				d, err := Parse(field.Doc.Text())
				if err != nil {
					return nil, fmt.Errorf("%s: %w", key, err)
				}
				entry = d.Option()
			}
			if !options.SetIfAbsent(key, entry) {
				return nil, errs.ErrDuplicateOption.WithArgs(key)
			}
		}
	}

	return options, nil
}
