package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/napalu/slashopt/errs"
)

//go:embed command.schema.json
var documentSchemaJSON []byte

const documentSchemaURL = "command.schema.json"

var documentSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(documentSchemaJSON))
	if err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(documentSchemaURL, doc); err != nil {
		return nil, err
	}

	return c.Compile(documentSchemaURL)
})

// Validate checks an emitted registration document, a JSON array of
// commands, against the platform's limits.
func Validate(doc []byte) error {
	schema, err := documentSchema()
	if err != nil {
		return errs.ErrInternal.Wrap(err)
	}

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return errs.ErrInvalidSchemaDocument.Wrap(err)
	}
	if err := schema.Validate(v); err != nil {
		return errs.ErrInvalidSchemaDocument.Wrap(err)
	}

	return nil
}

// Marshal renders commands as a registration document and validates it.
func Marshal(commands []*Command) ([]byte, error) {
	if commands == nil {
		commands = []*Command{}
	}

	data, err := json.MarshalIndent(commands, "", "  ")
	if err != nil {
		return nil, errs.ErrInternal.Wrap(err)
	}
	if err := Validate(data); err != nil {
		return nil, err
	}

	return data, nil
}
