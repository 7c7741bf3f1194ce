// Package config loads display and editing settings from TOML files.
// A missing file is not an error; settings fall back to defaults so an
// embedding application works with zero configuration.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/textcore/editor"
	"github.com/dshills/textcore/glyph"
	"github.com/dshills/textcore/undo"
)

// Settings is the user-tunable engine configuration.
type Settings struct {
	// TabWidth is the tab stop distance in screen columns.
	TabWidth int `toml:"tab_width"`

	// WrapMode is "none", "hard" or "word".
	WrapMode string `toml:"wrap_mode"`

	// ShowControl renders control characters as picture glyphs.
	ShowControl bool `toml:"show_control"`

	// WrapControl renders hidden break opportunities visibly.
	WrapControl bool `toml:"wrap_control"`

	// HistoryLimit caps the undo history group count.
	HistoryLimit int `toml:"history_limit"`
}

// Default returns the settings used when no file is present.
func Default() Settings {
	return Settings{
		TabWidth:     glyph.DefaultTabWidth,
		WrapMode:     "none",
		HistoryLimit: undo.DefaultHistoryLimit,
	}
}

// Load reads settings from a TOML file, applying defaults for absent
// keys. A missing file returns the defaults without error.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Default(), err
	}
	return s, nil
}

// Validate checks the settings for out-of-range values.
func (s Settings) Validate() error {
	if s.TabWidth < 1 {
		return fmt.Errorf("tab_width %d: must be at least 1", s.TabWidth)
	}
	if s.HistoryLimit < 1 {
		return fmt.Errorf("history_limit %d: must be at least 1", s.HistoryLimit)
	}
	if _, err := s.wrapMode(); err != nil {
		return err
	}
	return nil
}

func (s Settings) wrapMode() (glyph.WrapMode, error) {
	switch s.WrapMode {
	case "", "none":
		return glyph.WrapNone, nil
	case "hard":
		return glyph.WrapHard, nil
	case "word":
		return glyph.WrapWord, nil
	}
	return glyph.WrapNone, fmt.Errorf("wrap_mode %q: must be none, hard or word", s.WrapMode)
}

// Options converts the settings into editor options.
func (s Settings) Options() []editor.Option {
	mode, err := s.wrapMode()
	if err != nil {
		mode = glyph.WrapNone
	}
	return []editor.Option{
		editor.WithTabWidth(s.TabWidth),
		editor.WithWrapMode(mode),
		editor.WithShowControl(s.ShowControl),
		editor.WithWrapControl(s.WrapControl),
		editor.WithHistoryLimit(s.HistoryLimit),
	}
}
