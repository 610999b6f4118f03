// Command slashopt-l10n maintains the localization files of slash commands:
// it generates stubs, merges and validates files, extracts localizations from
// doc comments and helps debugging tokens and option resolution.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/napalu/goopt/v2"

	"github.com/napalu/slashopt/config"
	"github.com/napalu/slashopt/errs"
	"github.com/napalu/slashopt/i18n"
)

func main() {
	env, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	errs.UpdateMessageProvider(i18n.NewLanguageProvider(i18n.Default(), env.Tag()))

	cfg := &AppConfig{Env: env, Stdout: os.Stdout}
	bindCommands(cfg)

	parser, err := goopt.NewParserFromStruct(cfg,
		goopt.WithFlagNameConverter(goopt.ToKebabCase),
		goopt.WithCommandNameConverter(goopt.ToKebabCase))
	if err != nil {
		log.Fatalf("Failed to create parser: %v", err)
	}

	success := parser.Parse(os.Args)

	if cfg.Help {
		parser.PrintUsageWithGroups(os.Stdout)
		os.Exit(0)
	}

	if !success {
		for _, err := range parser.GetErrors() {
			fmt.Fprintln(os.Stderr, err)
		}
		parser.PrintUsageWithGroups(os.Stderr)
		os.Exit(1)
	}

	if errCount := parser.ExecuteCommands(); errCount > 0 {
		for _, cmdErr := range parser.GetCommandExecutionErrors() {
			fmt.Fprintf(os.Stderr, "%s failed:\n", cmdErr.Key)
			printErrors(os.Stderr, cmdErr.Value)
		}
		os.Exit(1)
	}
}

// bindCommands assigns the command functions; each runs against cfg.
func bindCommands(cfg *AppConfig) {
	bind := func(run func(*AppConfig) error) goopt.CommandFunc {
		return func(_ *goopt.Parser, _ *goopt.Command) error {
			return run(cfg)
		}
	}

	cfg.Stub.Exec = bind(runStub)
	cfg.Merge.Exec = bind(runMerge)
	cfg.Validate.Exec = bind(runValidate)
	cfg.Extract.Exec = bind(runExtract)
	cfg.Token.Exec = bind(runToken)
	cfg.Resolve.Exec = bind(runResolve)
}
