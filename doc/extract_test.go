package doc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napalu/slashopt/errs"
	"github.com/napalu/slashopt/l10n"
)

const moderationSource = `package moderation

import "github.com/napalu/slashopt/option"

// kickArgs are the options of /kick.
//
//slash:command kick
// Removes a member from the server
//
// - ` + "`de` `rauswerfen`" + ` Entfernt ein Mitglied vom Server
type kickArgs struct {
	// Who to kick
	//
	// - ` + "`de` `mitglied`" + ` Wer fliegt
	Member option.Member
	// Shown in the audit log
	Reason *string ` + "`slash:\"maxlen:512\"`" + `
	DeleteDays uint8 ` + "`slash:\"name:purgeDays\"`" + `
	Internal string ` + "`slash:\"-\"`" + `
	hidden int
}

//slash:command config role add
// Grants a role
func addRole() {}

//slash:command config
// Changes the configuration
func config() {}

// not a command
func helper() {}
`

func TestExtractFromString(t *testing.T) {
	e := NewExtractor()
	require.NoError(t, e.ExtractFromString("moderation.go", moderationSource))

	store, err := e.Store()
	require.NoError(t, err)

	kick, ok := store.Command(l10n.CommandOf("kick"))
	require.True(t, ok)
	assert.Equal(t, l10n.Translations{l10n.German: "rauswerfen"}, kick.Name)
	assert.Equal(t, "Removes a member from the server", kick.Description[l10n.EnglishUS])
	assert.Equal(t, []string{"member", "reason", "purge-days"}, kick.OptionNames())

	member, ok := store.Option(l10n.CommandOf("kick"), "member")
	require.True(t, ok)
	assert.Equal(t, l10n.Translations{l10n.German: "mitglied"}, member.Name)
	assert.Equal(t, l10n.Translations{l10n.EnglishUS: "Who to kick", l10n.German: "Wer fliegt"}, member.Description)

	purge, ok := kick.Options.Get("purge-days")
	require.True(t, ok)
	assert.Nil(t, purge.Description)

	add, ok := store.Command(l10n.GroupedOf("config", "role", "add"))
	require.True(t, ok)
	assert.Equal(t, "Grants a role", add.Description[l10n.EnglishUS])

	config, ok := store.Command(l10n.CommandOf("config"))
	require.True(t, ok)
	assert.Equal(t, "Changes the configuration", config.Description[l10n.EnglishUS])
	assert.Contains(t, config.Subcommands, "role", "the group created by the earlier path survives")

	_, ok = store.Command(l10n.CommandOf("helper"))
	assert.False(t, ok)
}

func TestExtractFromString_Errors(t *testing.T) {
	e := NewExtractor()
	require.NoError(t, e.ExtractFromString("bad.go", `package bad

//slash:command ping
// `+"`Ping`"+` Pings
func ping() {}

//slash:command
// Nothing
func nameless() {}

//slash:command a b c d
// Too deep
func deep() {}

//slash:command pong
// Pongs
func pong() {}

//slash:command pong
// Pongs again
func pong2() {}
`))

	store, err := e.Store()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNameNotLowercase)
	assert.ErrorIs(t, err, errs.ErrMalformedDocComment)
	assert.ErrorIs(t, err, errs.ErrDuplicateCommand)
	assert.Contains(t, err.Error(), "bad.go:3:1")

	var joined interface{ Unwrap() []error }
	require.ErrorAs(t, err, &joined)
	assert.Len(t, joined.Unwrap(), 4)

	_, ok := store.Command(l10n.CommandOf("pong"))
	assert.True(t, ok, "the first declaration is kept")

	assert.Error(t, NewExtractor().ExtractFromString("broken.go", "package"))
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte(moderationSource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.go"), []byte("package moderation\n\n//slash:command ping\n// Pings the bot\nfunc ping() {}\n"), 0o644))

	store, err := Extract(filepath.Join(dir, "*.go"))
	require.NoError(t, err)
	assert.Contains(t, store.Commands, "kick")
	assert.Contains(t, store.Commands, "ping")

	store.FillStubs(l10n.German)
	out, err := store.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "de: TODO")

	_, err = Extract("[")
	assert.Error(t, err)
}
