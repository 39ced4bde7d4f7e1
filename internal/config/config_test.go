package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SymphonyNineth/batchren/internal/rename"
)

func TestLoad_FlashMessageDisplaySeconds(t *testing.T) {
	content := `
[ui]
flash_message_display_seconds = 10
`
	config := &Config{}
	err := config.Load(content)
	assert.NoError(t, err)
	assert.Equal(t, 10, config.UI.FlashMessageDisplaySeconds)
	assert.Equal(t, 10*time.Second, GetExpiringFlashMessageTimeout(config))
}

func TestLoad_Colors_StringAndObject(t *testing.T) {
	content := `
[ui.colors]
simple = "red"
complex = { fg = "blue", bg = "white", bold = true }
`
	config := &Config{}
	err := config.Load(content)
	assert.NoError(t, err)
	assert.Len(t, config.UI.Colors, 2)

	assert.Equal(t, "red", config.UI.Colors["simple"].Fg)
	assert.Equal(t, "", config.UI.Colors["simple"].Bg)
	assert.Nil(t, config.UI.Colors["simple"].Bold)

	assert.Equal(t, "blue", config.UI.Colors["complex"].Fg)
	assert.Equal(t, "white", config.UI.Colors["complex"].Bg)
	if assert.NotNil(t, config.UI.Colors["complex"].Bold) {
		assert.True(t, *config.UI.Colors["complex"].Bold)
	}
}

func TestLoad_Colors_ExplicitFalsePreserved(t *testing.T) {
	content := `
[ui.colors]
unset = { fg = "red" }
explicit_false = { fg = "blue", underline = false }
`
	config := &Config{}
	err := config.Load(content)
	assert.NoError(t, err)

	assert.Nil(t, config.UI.Colors["unset"].Underline)
	if assert.NotNil(t, config.UI.Colors["explicit_false"].Underline) {
		assert.False(t, *config.UI.Colors["explicit_false"].Underline)
	}
}

func TestLoad_Colors_OverlayMergesKeys(t *testing.T) {
	config := loadDefaultConfig()
	require.Contains(t, config.UI.Colors, "diff added")
	require.Contains(t, config.UI.Colors, "match")

	err := config.Load(`
[ui.colors]
"diff added" = "blue"
`)
	assert.NoError(t, err)

	// the overridden key changes, the rest of the defaults survive
	assert.Equal(t, "blue", config.UI.Colors["diff added"].Fg)
	assert.Contains(t, config.UI.Colors, "match")
	assert.Contains(t, config.UI.Colors, "collision")
}

func TestLoadDefaultConfig(t *testing.T) {
	config := loadDefaultConfig()

	assert.Equal(t, 5, config.UI.FlashMessageDisplaySeconds)
	assert.True(t, config.UI.ConfirmApply)
	assert.False(t, config.Rename.CaseSensitive)
	assert.False(t, config.Rename.Numbering.Enabled)
	assert.Equal(t, 1, config.Rename.Numbering.StartAt)
	assert.Equal(t, 1, config.Rename.Numbering.Increment)
	assert.Equal(t, "suffix", config.Rename.Numbering.Position.Name)
	assert.Equal(t, "_", config.Rename.Numbering.Separator)
}

func TestLoad_Position(t *testing.T) {
	config := &Config{}
	err := config.Load(`
[rename.numbering]
position = "prefix"
`)
	assert.NoError(t, err)
	assert.Equal(t, Position{Name: "prefix"}, config.Rename.Numbering.Position)

	err = config.Load(`
[rename.numbering]
position = 3
`)
	assert.NoError(t, err)
	assert.Equal(t, Position{Insert: true, At: 3}, config.Rename.Numbering.Position)

	err = config.Load(`
[rename.numbering]
position = "middle"
`)
	assert.Error(t, err)
}

func TestRenameConfig_Options(t *testing.T) {
	config := &Config{}
	require.NoError(t, config.Load(`
[rename]
case_sensitive = true
regex_mode = true

[rename.numbering]
enabled = true
start_at = 10
increment = 5
padding = 3
position = "prefix"
separator = "-"
`))

	opts := config.Rename.Options()

	assert.True(t, opts.CaseSensitive)
	assert.True(t, opts.RegexMode)
	assert.False(t, opts.ReplaceFirstOnly)
	assert.Equal(t, rename.NumberingOptions{
		Enabled:   true,
		StartAt:   10,
		Increment: 5,
		Padding:   3,
		Position:  rename.Prefix,
		Separator: "-",
	}, opts.Numbering)
}

func TestNumberingConfig_InsertOptions(t *testing.T) {
	cfg := NumberingConfig{Enabled: true, StartAt: 1, Increment: 1, Position: Position{Insert: true, At: 4}}

	opts := cfg.Options()

	assert.Equal(t, rename.Insert, opts.Position)
	assert.Equal(t, 4, opts.InsertAt)
}
