package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napalu/slashopt/config"
	"github.com/napalu/slashopt/errs"
	"github.com/napalu/slashopt/l10n"
	"github.com/napalu/slashopt/option"
)

const pingYAML = `
commands:
  ping:
    description:
      en-US: Check latency
      de: Latenz prüfen
choices: {}
`

func newTestConfig(t *testing.T) (*AppConfig, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cfg := &AppConfig{
		Env:    &config.Config{Language: "en", LogFormat: "text"},
		Stdout: &out,
	}
	bindCommands(cfg)

	return cfg, &out
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestBindCommands(t *testing.T) {
	cfg, _ := newTestConfig(t)

	for _, fn := range []any{cfg.Stub.Exec, cfg.Merge.Exec, cfg.Validate.Exec, cfg.Extract.Exec, cfg.Token.Exec, cfg.Resolve.Exec} {
		assert.NotNil(t, fn)
	}
}

func TestStub(t *testing.T) {
	cfg, out := newTestConfig(t)
	cfg.Input = []string{writeTemp(t, "ping.yaml", pingYAML)}
	cfg.Stub.Locales = []string{"fr"}

	require.NoError(t, runStub(cfg))

	store, err := l10n.Parse(out.Bytes(), l10n.FormatYAML)
	require.NoError(t, err)
	ping := store.Commands["ping"]
	require.NotNil(t, ping)
	assert.Equal(t, l10n.StubMarker, ping.Description[l10n.French])
	assert.Equal(t, "Latenz prüfen", ping.Description[l10n.German])
}

func TestStub_LocalesFromEnvironment(t *testing.T) {
	cfg, out := newTestConfig(t)
	cfg.Env.L10nFiles = []string{writeTemp(t, "ping.yaml", pingYAML)}
	cfg.Env.StubLocales = []string{"ja"}

	require.NoError(t, runStub(cfg))
	assert.Contains(t, out.String(), "ja: "+l10n.StubMarker)
}

func TestMerge_WritesOutputFile(t *testing.T) {
	cfg, out := newTestConfig(t)
	cfg.Input = []string{writeTemp(t, "ping.yaml", pingYAML)}
	cfg.Output = filepath.Join(t.TempDir(), "merged.yaml")

	require.NoError(t, runMerge(cfg))
	assert.Empty(t, out.String())

	store, err := l10n.LoadFile(cfg.Output)
	require.NoError(t, err)
	assert.Contains(t, store.Commands, "ping")
}

func TestLoadInput_Errors(t *testing.T) {
	cfg, _ := newTestConfig(t)
	_, err := loadInput(cfg)
	assert.ErrorIs(t, err, errNoInput)

	cfg.Input = []string{filepath.Join(t.TempDir(), "*.yaml")}
	_, err = loadInput(cfg)
	assert.ErrorIs(t, err, os.ErrNotExist)

	cfg.Input = []string{writeTemp(t, "partial.yaml", "commands: {}\n")}
	_, err = loadInput(cfg)
	assert.ErrorIs(t, err, errs.ErrInvalidDocument)
}

func TestValidate(t *testing.T) {
	cfg, _ := newTestConfig(t)
	cfg.Input = []string{writeTemp(t, "ping.yaml", pingYAML)}
	require.NoError(t, runValidate(cfg))

	cfg.Input = []string{writeTemp(t, "bad.yaml", `
commands:
  ping:
    name:
      de: Ping Pong
    description:
      en-US: Check latency
choices: {}
`)}
	err := runValidate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commands.ping.name.de")
}

func TestToken(t *testing.T) {
	cfg, out := newTestConfig(t)
	cfg.Token.Shape = "string,int"
	cfg.Token.Encode = `["go", 20]`
	require.NoError(t, runToken(cfg))
	tok := strings.TrimSpace(out.String())
	assert.Equal(t, "CAAAAAAA#T.JFAAAAAAAA", tok)

	out.Reset()
	cfg.Token.Encode = ""
	cfg.Token.Decode = tok
	require.NoError(t, runToken(cfg))
	assert.JSONEq(t, `["go", 20]`, out.String())

	cfg.Token.Shape = "string,int,bool"
	assert.ErrorIs(t, runToken(cfg), errs.ErrMalformedToken)

	cfg.Token.Encode = "1"
	assert.ErrorIs(t, runToken(cfg), errTokenMode)
}

func TestToken_ShapeErrors(t *testing.T) {
	cfg, _ := newTestConfig(t)
	cfg.Token.Encode = `["go"]`

	cfg.Token.Shape = "string,complex"
	assert.ErrorIs(t, runToken(cfg), errUnknownShape)

	cfg.Token.Shape = "string,int"
	assert.ErrorIs(t, runToken(cfg), errShapeMismatch)
}

func TestResolve(t *testing.T) {
	params := writeTemp(t, "params.json", `[
  {"name": "count", "tag": "type:integer;min:1;max:5"},
  {"name": "note", "tag": "optional:true"},
  {"name": "loud", "tag": "type:boolean;optional:true"}
]`)

	t.Run("values", func(t *testing.T) {
		cfg, out := newTestConfig(t)
		cfg.Resolve.Params = params
		cfg.Resolve.Line = `count:3 note:"hello there"`
		cfg.Resolve.Locale = "en-US"

		require.NoError(t, runResolve(cfg))
		assert.Equal(t, "count = 3\nnote = \"hello there\"\nloud = none\n", out.String())
	})

	t.Run("localized report", func(t *testing.T) {
		cfg, out := newTestConfig(t)
		cfg.Resolve.Params = params
		cfg.Resolve.Line = "count:9"
		cfg.Resolve.Locale = "de"

		assert.ErrorIs(t, runResolve(cfg), errResolveFailed)
		assert.Contains(t, out.String(), "9 liegt nicht zwischen 1 und 5")
	})

	t.Run("bad assignment", func(t *testing.T) {
		cfg, _ := newTestConfig(t)
		cfg.Resolve.Params = params
		cfg.Resolve.Line = "count"

		assert.ErrorIs(t, runResolve(cfg), errBadAssignment)
	})
}

func TestWireValue(t *testing.T) {
	v, err := wireValue(option.KindInteger, "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v.Int)

	v, err = wireValue(option.KindRole, "80351110224678912")
	require.NoError(t, err)
	require.NotNil(t, v.Entity)
	assert.Equal(t, option.Snowflake(80351110224678912), v.Entity.Role.ID)

	v, err = wireValue(option.KindMentionable, "80351110224678912")
	require.NoError(t, err)
	assert.Equal(t, option.KindMentionable, v.Kind)

	_, err = wireValue(option.KindNumber, "many")
	assert.Error(t, err)

	v, err = wireValue(option.KindString, "5")
	require.NoError(t, err)
	assert.Equal(t, "5", v.Str)
}
