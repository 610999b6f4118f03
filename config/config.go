// Package config loads slashopt settings from the environment. Variables use
// the SLASHOPT_ prefix and may be placed in a .env file:
//
//	SLASHOPT_L10N_FILES=l10n/commands.yaml,l10n/choices.jsonc
//	SLASHOPT_STUB_LOCALES=de,fr
//	SLASHOPT_LOG_LEVEL=debug
package config

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/napalu/slashopt/l10n"
)

// Prefix is prepended to every variable name.
const Prefix = "SLASHOPT_"

// Config holds the settings shared by the library and the CLI.
type Config struct {
	// L10nFiles are the localization documents merged into one store.
	L10nFiles []string `env:"L10N_FILES" envSeparator:","`
	// StubLocales are the locales FillStubs adds when generating stubs.
	StubLocales []string `env:"STUB_LOCALES" envSeparator:","`
	// Language selects the language of error and report messages.
	Language  string     `env:"LANGUAGE" envDefault:"en"`
	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads the given .env files, then parses the environment. Missing .env
// files are skipped; with no arguments ".env" is tried.
func Load(dotenv ...string) (*Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, file := range dotenv {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return Parse(env.Options{})
}

// Parse reads the configuration with opts. Tests pass opts.Environment to
// avoid touching the process environment.
func Parse(opts env.Options) (*Config, error) {
	opts.Prefix = Prefix

	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(dotenv ...string) *Config {
	cfg, err := Load(dotenv...)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Locales parses StubLocales.
func (c *Config) Locales() ([]l10n.Locale, error) {
	return l10n.ParseLocales(c.StubLocales...)
}

// Tag returns the message language, or English when Language cannot be
// parsed.
func (c *Config) Tag() language.Tag {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.English
	}

	return tag
}

// Logger returns a logger writing to w in the configured format and level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// Store loads and merges L10nFiles. With no files configured the store is
// empty.
func (c *Config) Store() (*l10n.Store, error) {
	if len(c.L10nFiles) == 0 {
		return l10n.New(), nil
	}

	return l10n.LoadFiles(c.L10nFiles...)
}
