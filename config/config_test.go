package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/napalu/slashopt/errs"
	"github.com/napalu/slashopt/l10n"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(env.Options{Environment: map[string]string{}})
	require.NoError(t, err)

	assert.Empty(t, cfg.L10nFiles)
	assert.Empty(t, cfg.StubLocales)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, language.English, cfg.Tag())
}

func TestParse(t *testing.T) {
	cfg, err := Parse(env.Options{Environment: map[string]string{
		"SLASHOPT_L10N_FILES":   "a.yaml,b.jsonc",
		"SLASHOPT_STUB_LOCALES": "de,pt-BR",
		"SLASHOPT_LANGUAGE":     "de",
		"SLASHOPT_LOG_LEVEL":    "debug",
		"SLASHOPT_LOG_FORMAT":   "json",
		"L10N_FILES":            "ignored.yaml",
	}})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.yaml", "b.jsonc"}, cfg.L10nFiles)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, language.German, cfg.Tag())

	locales, err := cfg.Locales()
	require.NoError(t, err)
	assert.Equal(t, []l10n.Locale{l10n.German, l10n.PortugueseBrazilian}, locales)

	var buf bytes.Buffer
	cfg.Logger(&buf).Debug("loaded", slog.Int("files", 2))
	assert.Contains(t, buf.String(), `"msg":"loaded"`)
	assert.Contains(t, buf.String(), `"files":2`)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(env.Options{Environment: map[string]string{"SLASHOPT_LOG_LEVEL": "loud"}})
	assert.Error(t, err)

	cfg, err := Parse(env.Options{Environment: map[string]string{"SLASHOPT_STUB_LOCALES": "de,xx"}})
	require.NoError(t, err)
	_, err = cfg.Locales()
	assert.ErrorIs(t, err, errs.ErrUnknownLocale)

	cfg.Language = "not a tag!"
	assert.Equal(t, language.English, cfg.Tag())
}

func TestConfig_Logger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogLevel: slog.LevelWarn, LogFormat: "text"}
	logger := cfg.Logger(&buf)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "commands.yaml")
	require.NoError(t, os.WriteFile(store, []byte("commands:\n  ping:\n    description:\n      en-US: Ping\nchoices: {}\n"), 0o600))

	dotenv := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(dotenv, []byte("SLASHOPT_L10N_FILES="+store+"\nSLASHOPT_LOG_FORMAT=json\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SLASHOPT_L10N_FILES")
		os.Unsetenv("SLASHOPT_LOG_FORMAT")
	})

	cfg, err := Load(filepath.Join(dir, "missing.env"), dotenv)
	require.NoError(t, err)
	assert.Equal(t, []string{store}, cfg.L10nFiles)
	assert.Equal(t, "json", cfg.LogFormat)

	s, err := cfg.Store()
	require.NoError(t, err)
	_, ok := s.Command(l10n.CommandOf("ping"))
	assert.True(t, ok)
}

func TestConfig_Store_Empty(t *testing.T) {
	s, err := (&Config{}).Store()
	require.NoError(t, err)
	assert.Empty(t, s.Commands)
}
