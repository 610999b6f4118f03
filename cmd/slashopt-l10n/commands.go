package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/napalu/slashopt/command"
	"github.com/napalu/slashopt/doc"
	"github.com/napalu/slashopt/errs"
	"github.com/napalu/slashopt/internal/parse"
	"github.com/napalu/slashopt/l10n"
	"github.com/napalu/slashopt/option"
	"github.com/napalu/slashopt/token"
)

var (
	errNoInput       = errors.New("no localization files given")
	errTokenMode     = errors.New("give exactly one of --encode and --decode")
	errBadAssignment = errors.New("expected name:value")
	errResolveFailed = errors.New("invocation rejected")
	errUnknownShape  = errors.New("unknown field type")
	errShapeMismatch = errors.New("payload does not match shape")
)

func expandInputFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%s: %w", pattern, os.ErrNotExist)
		}
		files = append(files, matches...)
	}

	return files, nil
}

// loadInput merges the input files, falling back to the configured ones.
func loadInput(cfg *AppConfig) (*l10n.Store, error) {
	patterns := cfg.Input
	if len(patterns) == 0 {
		patterns = cfg.Env.L10nFiles
	}
	if len(patterns) == 0 {
		return nil, errNoInput
	}

	files, err := expandInputFiles(patterns)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "loading %d files\n", len(files))
	}

	return l10n.LoadFiles(files...)
}

func writeOutput(cfg *AppConfig, data []byte) error {
	if cfg.Output == "" {
		_, err := cfg.Stdout.Write(data)
		return err
	}

	return os.WriteFile(cfg.Output, data, 0o644)
}

func writeYAML(cfg *AppConfig, store *l10n.Store, locales []string) error {
	if len(locales) > 0 {
		parsed, err := l10n.ParseLocales(locales...)
		if err != nil {
			return err
		}
		store.FillStubs(parsed...)
	}

	data, err := store.ToYAML()
	if err != nil {
		return err
	}

	return writeOutput(cfg, data)
}

func runStub(cfg *AppConfig) error {
	store, err := loadInput(cfg)
	if err != nil {
		return err
	}

	locales := cfg.Stub.Locales
	if len(locales) == 0 {
		locales = cfg.Env.StubLocales
	}

	return writeYAML(cfg, store, locales)
}

func runMerge(cfg *AppConfig) error {
	store, err := loadInput(cfg)
	if err != nil {
		return err
	}

	return writeYAML(cfg, store, nil)
}

func runValidate(cfg *AppConfig) error {
	store, err := loadInput(cfg)
	if err != nil {
		return err
	}
	if err := store.Validate(); err != nil {
		return err
	}
	if cfg.Verbose {
		fmt.Fprintf(cfg.Stdout, "%d locales, no problems found\n", len(store.Locales()))
	}

	return nil
}

func runExtract(cfg *AppConfig) error {
	store, err := doc.Extract(cfg.Extract.Files...)
	if err != nil {
		return err
	}

	return writeYAML(cfg, store, cfg.Extract.Locales)
}

// shapeTypes are the field types a token shape can name.
var shapeTypes = map[string]reflect.Type{
	"string":  reflect.TypeOf(""),
	"bool":    reflect.TypeOf(false),
	"int":     reflect.TypeOf(0),
	"int8":    reflect.TypeOf(int8(0)),
	"int16":   reflect.TypeOf(int16(0)),
	"int32":   reflect.TypeOf(int32(0)),
	"int64":   reflect.TypeOf(int64(0)),
	"uint":    reflect.TypeOf(uint(0)),
	"uint8":   reflect.TypeOf(uint8(0)),
	"uint16":  reflect.TypeOf(uint16(0)),
	"uint32":  reflect.TypeOf(uint32(0)),
	"uint64":  reflect.TypeOf(uint64(0)),
	"float32": reflect.TypeOf(float32(0)),
	"float64": reflect.TypeOf(float64(0)),
	"bytes":   reflect.TypeOf([]byte(nil)),
	"strings": reflect.TypeOf([]string(nil)),
	"time":    reflect.TypeOf(time.Time{}),
}

// payloadOf builds a struct type whose fields follow shape in order.
func payloadOf(shape string) (reflect.Type, error) {
	var fields []reflect.StructField
	for i, name := range strings.Split(shape, ",") {
		t, ok := shapeTypes[strings.TrimSpace(name)]
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, errUnknownShape)
		}
		fields = append(fields, reflect.StructField{Name: "F" + strconv.Itoa(i), Type: t})
	}

	return reflect.StructOf(fields), nil
}

func runToken(cfg *AppConfig) error {
	if (cfg.Token.Encode == "") == (cfg.Token.Decode == "") {
		return errTokenMode
	}
	t, err := payloadOf(cfg.Token.Shape)
	if err != nil {
		return err
	}
	payload := reflect.New(t).Elem()

	if cfg.Token.Encode != "" {
		var items []json.RawMessage
		if err := json.Unmarshal([]byte(cfg.Token.Encode), &items); err != nil {
			return err
		}
		if len(items) != t.NumField() {
			return fmt.Errorf("%d values for %d fields: %w", len(items), t.NumField(), errShapeMismatch)
		}
		for i, item := range items {
			if err := json.Unmarshal(item, payload.Field(i).Addr().Interface()); err != nil {
				return fmt.Errorf("field %d: %w", i+1, err)
			}
		}
		tok, err := token.Encode(payload.Interface())
		if err != nil {
			return err
		}
		return writeOutput(cfg, []byte(tok+"\n"))
	}

	if err := token.Decode(cfg.Token.Decode, payload.Addr().Interface()); err != nil {
		return err
	}
	items := make([]any, t.NumField())
	for i := range items {
		items[i] = payload.Field(i).Interface()
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}

	return writeOutput(cfg, append(data, '\n'))
}

// paramDecl is one entry of a resolve declaration file:
//
//	[{"name": "count", "tag": "type:integer;min:1;max:10"}]
type paramDecl struct {
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

func runResolve(cfg *AppConfig) error {
	data, err := os.ReadFile(cfg.Resolve.Params)
	if err != nil {
		return err
	}
	var decls []paramDecl
	if err := json.Unmarshal(data, &decls); err != nil {
		return fmt.Errorf("%s: %w", cfg.Resolve.Params, err)
	}

	params := make([]option.Param, 0, len(decls))
	for _, d := range decls {
		p, err := option.ParseParam(d.Name, d.Tag)
		if err != nil {
			return err
		}
		params = append(params, p)
	}

	m, err := command.NewMap(command.MustDef("resolve", command.WithParams(params...)))
	if err != nil {
		return err
	}

	options, err := wireOptions(params, cfg.Resolve.Line)
	if err != nil {
		return err
	}

	inv := &command.Invocation{Name: "resolve", Options: options, Locale: cfg.Resolve.Locale}
	call, err := m.Resolve(inv)
	if err != nil {
		if !errs.IsUser(err) {
			return err
		}
		path, _ := command.PathOf(inv)
		report := command.NewReporter(cfg.Env.Logger(io.Discard), nil).Invocation(context.Background(), path, inv.Locale, err)
		printReport(cfg.Stdout, report)
		return errResolveFailed
	}

	var b strings.Builder
	for _, p := range params {
		fmt.Fprintf(&b, "%s = %s\n", p.WireName(), display(call.Values[p.WireName()]))
	}

	return writeOutput(cfg, []byte(b.String()))
}

func printReport(w io.Writer, r command.Report) {
	fmt.Fprintln(w, r.Title)
	for _, f := range r.Fields {
		fmt.Fprintf(w, "  %s: %s\n", f.Name, f.Message)
	}
}

// display renders a resolved value the way a handler would see it.
func display(v any) string {
	switch x := v.(type) {
	case option.Opt:
		if inner, ok := x.Get(); ok {
			return display(inner)
		}
		return "none"
	case option.Focused:
		if x.HasFocus {
			return "focused " + strconv.Quote(x.Partial)
		}
		return display(x.Value)
	case option.BoundedInt:
		return strconv.FormatInt(x.Value(), 10)
	case option.BoundedFloat:
		return strconv.FormatFloat(x.Value(), 'g', -1, 64)
	case option.BoundedString:
		return strconv.Quote(x.Value())
	case string:
		return strconv.Quote(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

// wireOptions turns "name:value" arguments into wire options typed after the
// declared parameter of the same name.
func wireOptions(params []option.Param, line string) ([]command.WireOption, error) {
	args, err := parse.Split(line)
	if err != nil {
		return nil, err
	}

	kinds := make(map[string]option.Kind, len(params))
	for _, p := range params {
		kinds[p.WireName()] = p.Type.Describe().Kind
	}

	options := make([]command.WireOption, 0, len(args))
	for _, arg := range args {
		name, raw, ok := parse.Assignment(arg)
		if !ok {
			return nil, fmt.Errorf("%q: %w", arg, errBadAssignment)
		}
		v, err := wireValue(kinds[name], raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		options = append(options, command.Value(name, v))
	}

	return options, nil
}

// wireValue parses raw the way the platform would send it for kind. Entity
// kinds take an id; unknown names travel as strings.
func wireValue(kind option.Kind, raw string) (option.WireValue, error) {
	switch kind {
	case option.KindInteger:
		i, err := strconv.ParseInt(raw, 10, 64)
		return option.IntegerValue(i), err
	case option.KindNumber:
		f, err := strconv.ParseFloat(raw, 64)
		return option.NumberValue(f), err
	case option.KindBoolean:
		b, err := strconv.ParseBool(raw)
		return option.BooleanValue(b), err
	case option.KindUser, option.KindMentionable:
		id, err := option.ParseSnowflake(raw)
		v := option.UserValue(option.User{ID: id}, &option.PartialMember{})
		if kind == option.KindMentionable {
			v = option.MentionableValue(v)
		}
		return v, err
	case option.KindRole:
		id, err := option.ParseSnowflake(raw)
		return option.RoleValue(option.Role{ID: id}), err
	case option.KindChannel:
		id, err := option.ParseSnowflake(raw)
		return option.ChannelValue(option.Channel{ID: id}), err
	case option.KindAttachment:
		id, err := option.ParseSnowflake(raw)
		return option.AttachmentValue(option.Attachment{ID: id}), err
	default:
		return option.StringValue(raw), nil
	}
}

func printErrors(w io.Writer, err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			printErrors(w, e)
		}
		return
	}
	fmt.Fprintln(w, err)
}
