package l10n

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/napalu/slashopt/errs"
	"github.com/napalu/slashopt/i18n"
)

// Format is the syntax of a localization document.
type Format int

const (
	FormatYAML Format = iota
	// FormatJSONC is JSON that may carry comments and trailing commas.
	FormatJSONC
)

func (f Format) String() string {
	if f == FormatJSONC {
		return "jsonc"
	}

	return "yaml"
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSONC, nil
	default:
		return 0, errs.ErrUnsupportedFormat.WithArgs(ext)
	}
}

//go:embed l10n.schema.json
var documentSchemaJSON []byte

const documentSchemaURL = "l10n.schema.json"

var documentSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var doc any
	if err := json.Unmarshal(documentSchemaJSON, &doc); err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(documentSchemaURL, doc); err != nil {
		return nil, err
	}

	return c.Compile(documentSchemaURL)
})

// Parse decodes one localization document. After decoding, the document shape
// is checked against the embedded JSON Schema, which rejects unknown keys at
// every level including inside option lists.
func Parse(data []byte, format Format) (*Store, error) {
	if format == FormatJSONC {
		// JSON is valid YAML once comments and trailing commas are gone
		data = jsonc.ToJSON(data)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	store := New()
	if err := dec.Decode(store); err != nil {
		var te i18n.TranslatableError
		if errors.As(err, &te) {
			return nil, err
		}
		return nil, errs.ErrInvalidDocument.Wrap(err)
	}

	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, errs.ErrInvalidDocument.Wrap(err)
	}

	schema, err := documentSchema()
	if err != nil {
		return nil, errs.ErrInternal.Wrap(err)
	}
	if err := schema.Validate(generic); err != nil {
		return nil, errs.ErrInvalidDocument.Wrap(err)
	}
	store.ensure()

	return store, nil
}

// LoadFile reads and parses one file; the format follows the extension.
func LoadFile(path string) (*Store, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, errs.ErrLoadingFile.WithArgs(path).Wrap(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.ErrLoadingFile.WithArgs(path).Wrap(err)
	}

	store, err := Parse(data, format)
	if err != nil {
		return nil, errs.ErrLoadingFile.WithArgs(path).Wrap(err)
	}

	return store, nil
}

// LoadFiles loads and merges every file. All read, parse and duplicate-key
// errors are collected and returned together; on error no store is returned.
func LoadFiles(paths ...string) (*Store, error) {
	acc := New()

	var errList []error
	for _, path := range paths {
		store, err := LoadFile(path)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		if err := acc.Merge(store); err != nil {
			errList = append(errList, unjoin(err)...)
		}
	}

	if len(errList) > 0 {
		return nil, errors.Join(errList...)
	}

	return acc, nil
}

// ToYAML renders the store for humans to edit: two-space indentation, options
// in declared order, locales in platform order.
func (s *Store) ToYAML() ([]byte, error) {
	s.ensure()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func unjoin(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}

	return []error{err}
}
