package rename

import "regexp"

// Position says where the sequence number goes in a name.
type Position int

const (
	Suffix Position = iota
	Prefix
	Insert
)

func (p Position) String() string {
	switch p {
	case Prefix:
		return "prefix"
	case Insert:
		return "insert"
	default:
		return "suffix"
	}
}

// NumberingOptions control the optional sequence number appended to each new
// name. InsertAt is a rune index into the name and only applies to the Insert
// position.
type NumberingOptions struct {
	Enabled   bool
	StartAt   int
	Increment int
	Padding   int
	Position  Position
	InsertAt  int
	Separator string
}

// DefaultNumbering returns the disabled baseline: count from 1 by 1, no
// padding, suffix position.
func DefaultNumbering() NumberingOptions {
	return NumberingOptions{StartAt: 1, Increment: 1}
}

// Options is the full transformation configuration. It is a plain value;
// compile it into a Config before planning.
type Options struct {
	FindText         string
	ReplaceText      string
	CaseSensitive    bool
	RegexMode        bool
	ReplaceFirstOnly bool
	IncludeExtension bool
	Numbering        NumberingOptions
}

// Config is an Options value with its find pattern compiled exactly once, so
// planning over a large list never recompiles and pattern validity has a
// single source of truth.
type Config struct {
	Options
	re         *regexp.Regexp
	patternErr error
}

// Compile builds the matching pattern for opts. An empty find text compiles
// to a Config that matches nothing. An invalid pattern in regex mode is kept
// on the Config as its PatternErr rather than returned, so a plan can carry
// it as the blocking reason.
func Compile(opts Options) Config {
	cfg := Config{Options: opts}
	if opts.FindText == "" {
		return cfg
	}
	pattern := opts.FindText
	if !opts.RegexMode {
		pattern = regexp.QuoteMeta(pattern)
	} else if _, err := regexp.Compile(pattern); err != nil {
		cfg.patternErr = &PatternError{Pattern: opts.FindText, Err: err}
		return cfg
	}
	if !opts.CaseSensitive {
		pattern = "(?i)" + pattern
	}
	cfg.re = regexp.MustCompile(pattern)
	return cfg
}

// PatternErr returns the compile failure for the find pattern, if any.
func (c Config) PatternErr() error { return c.patternErr }

// Pattern returns the compiled find pattern, nil when the find text is empty
// or invalid.
func (c Config) Pattern() *regexp.Regexp { return c.re }

func (c Config) matchLimit() int {
	if c.ReplaceFirstOnly {
		return 1
	}
	return -1
}
