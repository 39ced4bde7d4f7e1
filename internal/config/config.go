package config

import (
	"embed"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/SymphonyNineth/batchren/internal/rename"
)

//go:embed default/config.toml
var configFS embed.FS

// Current is the effective configuration: the embedded defaults overlaid
// with the user's config file when one exists.
var Current = load()

type Config struct {
	UI     UIConfig     `toml:"ui"`
	Rename RenameConfig `toml:"rename"`
}

type UIConfig struct {
	FlashMessageDisplaySeconds int              `toml:"flash_message_display_seconds"`
	ConfirmApply               bool             `toml:"confirm_apply"`
	Colors                     map[string]Color `toml:"colors"`
}

// RenameConfig seeds the form's initial toggle state; find and replace text
// are always entered interactively.
type RenameConfig struct {
	CaseSensitive    bool            `toml:"case_sensitive"`
	RegexMode        bool            `toml:"regex_mode"`
	ReplaceFirstOnly bool            `toml:"replace_first_only"`
	IncludeExtension bool            `toml:"include_extension"`
	Numbering        NumberingConfig `toml:"numbering"`
}

type NumberingConfig struct {
	Enabled   bool     `toml:"enabled"`
	StartAt   int      `toml:"start_at"`
	Increment int      `toml:"increment"`
	Padding   int      `toml:"padding"`
	Position  Position `toml:"position"`
	Separator string   `toml:"separator"`
}

// Position allows TOML values to be specified as "prefix", "suffix" or a
// bare integer taken as a rune insertion index.
type Position struct {
	Name   string
	Insert bool
	At     int
}

func (p *Position) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		if v != "prefix" && v != "suffix" {
			return fmt.Errorf(`expected "prefix", "suffix" or an insertion index, got %q`, v)
		}
		*p = Position{Name: v}
		return nil
	case int64:
		*p = Position{Insert: true, At: int(v)}
		return nil
	default:
		return fmt.Errorf("expected string or integer position, got %T", value)
	}
}

// Options converts the configured defaults into engine options.
func (r RenameConfig) Options() rename.Options {
	return rename.Options{
		CaseSensitive:    r.CaseSensitive,
		RegexMode:        r.RegexMode,
		ReplaceFirstOnly: r.ReplaceFirstOnly,
		IncludeExtension: r.IncludeExtension,
		Numbering:        r.Numbering.Options(),
	}
}

func (n NumberingConfig) Options() rename.NumberingOptions {
	opts := rename.NumberingOptions{
		Enabled:   n.Enabled,
		StartAt:   n.StartAt,
		Increment: n.Increment,
		Padding:   n.Padding,
		Separator: n.Separator,
	}
	switch {
	case n.Position.Insert:
		opts.Position = rename.Insert
		opts.InsertAt = n.Position.At
	case n.Position.Name == "prefix":
		opts.Position = rename.Prefix
	}
	return opts
}

// Load decodes data over the current values, so later files overlay earlier
// ones; [ui.colors] entries merge key by key.
func (c *Config) Load(data string) error {
	_, err := toml.Decode(data, c)
	return err
}

func GetExpiringFlashMessageTimeout(c *Config) time.Duration {
	return time.Duration(c.UI.FlashMessageDisplaySeconds) * time.Second
}
