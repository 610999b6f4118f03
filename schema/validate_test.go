package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napalu/slashopt/errs"
	"github.com/napalu/slashopt/l10n"
	"github.com/napalu/slashopt/option"
)

func TestMarshal(t *testing.T) {
	s := New(loadStore(t, storeYAML))
	commands, err := s.Build([]Def{{Path: l10n.CommandOf("kick"), Params: kickParams()}})
	require.NoError(t, err)

	data, err := Marshal(commands)
	require.NoError(t, err)

	var decoded []*Command
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, commands, decoded)

	empty, err := Marshal(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(empty))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"minimal", `[{"name":"ping","description":"Ping"}]`, false},
		{"not json", `[{`, true},
		{"not an array", `{"name":"ping","description":"Ping"}`, true},
		{"missing description", `[{"name":"ping"}]`, true},
		{"long name", `[{"name":"` + strings.Repeat("a", 33) + `","description":"Ping"}]`, true},
		{"unknown locale", `[{"name":"ping","description":"Ping","name_localizations":{"xx":"ping"}}]`, true},
		{"unknown key", `[{"name":"ping","description":"Ping","nsfw":true}]`, true},
		{"bad option type", `[{"name":"ping","description":"Ping","options":[{"type":12,"name":"a","description":"b"}]}]`, true},
		{
			"autocomplete with choices",
			`[{"name":"ping","description":"Ping","options":[{"type":3,"name":"a","description":"b","autocomplete":true,"choices":[{"name":"x","value":"x"}]}]}]`,
			true,
		},
		{
			"nested options",
			`[{"name":"config","description":"Settings","options":[{"type":2,"name":"role","description":"Roles","options":[{"type":1,"name":"add","description":"Add","options":[{"type":8,"name":"role","description":"Role","required":true}]}]}]}]`,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.doc))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, errs.ErrInvalidSchemaDocument)
		})
	}
}

func TestMarshal_RejectsInvalid(t *testing.T) {
	_, err := Marshal([]*Command{{
		Text: Text{Name: "ping", Description: "Ping"},
		Options: []*Option{{
			Type:         option.KindString,
			Text:         Text{Name: "colour", Description: "Colour"},
			Choices:      []Choice{{Name: "Red", Value: "red"}},
			Autocomplete: true,
		}},
	}})
	assert.ErrorIs(t, err, errs.ErrInvalidSchemaDocument)
}
