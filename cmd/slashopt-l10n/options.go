package main

import (
	"io"

	"github.com/napalu/goopt/v2"

	"github.com/napalu/slashopt/config"
)

// StubCmd command configuration
type StubCmd struct {
	Locales []string `goopt:"short:l;desc:Locales to add placeholders for (default: SLASHOPT_STUB_LOCALES)"`
	Exec    goopt.CommandFunc
}

// MergeCmd command configuration
type MergeCmd struct {
	Exec goopt.CommandFunc
}

// ValidateCmd command configuration
type ValidateCmd struct {
	Exec goopt.CommandFunc
}

// ExtractCmd command configuration
type ExtractCmd struct {
	Files   []string `goopt:"short:s;desc:Go files to scan with wildcards;default:*.go"`
	Locales []string `goopt:"desc:Locales to add placeholders for"`
	Exec    goopt.CommandFunc
}

// TokenCmd command configuration
type TokenCmd struct {
	Encode string `goopt:"short:e;desc:JSON array holding the payload fields to encode"`
	Decode string `goopt:"short:d;desc:Token to decode into a JSON array"`
	Shape  string `goopt:"desc:Comma-separated field types of the payload such as string,int,bool;required:true"`
	Exec   goopt.CommandFunc
}

// ResolveCmd command configuration
type ResolveCmd struct {
	Params string `goopt:"short:p;desc:JSON file declaring the parameters;required:true"`
	Line   string `goopt:"short:L;desc:Invocation line such as 'count:3 note:hello'"`
	Locale string `goopt:"desc:Client locale of the invoking user;default:en-US"`
	Exec   goopt.CommandFunc
}

// AppConfig main application configuration
type AppConfig struct {
	Input    []string    `goopt:"short:i;desc:Localization files in YAML or JSONC with wildcards (default: SLASHOPT_L10N_FILES)"`
	Output   string      `goopt:"short:o;desc:Output file (default: stdout)"`
	Verbose  bool        `goopt:"short:v;desc:Enable verbose output"`
	Help     bool        `goopt:"short:h;desc:Show help"`
	Stub     StubCmd     `goopt:"kind:command;name:stub;desc:Write localization files with placeholders for missing locales"`
	Merge    MergeCmd    `goopt:"kind:command;name:merge;desc:Merge localization files into one YAML document"`
	Validate ValidateCmd `goopt:"kind:command;name:validate;desc:Check every name and description of localization files"`
	Extract  ExtractCmd  `goopt:"kind:command;name:extract;desc:Extract localizations from doc comments in Go sources"`
	Token    TokenCmd    `goopt:"kind:command;name:token;desc:Encode or decode opaque component tokens"`
	Resolve  ResolveCmd  `goopt:"kind:command;name:resolve;desc:Resolve an invocation line against declared parameters"`

	Env    *config.Config `ignore:"true"`
	Stdout io.Writer      `ignore:"true"`
}
