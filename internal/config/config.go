// Package config holds the user-tunable settings for the fold
// subsystem.
package config

import (
	"fmt"

	"github.com/dshills/textfold/internal/input/key"
)

// Config holds fold settings.
type Config struct {
	// PersistFolds enables carrying folds across a document's
	// unload/reload cycle within this process.
	PersistFolds bool

	// Glyph is the placeholder shown in place of hidden text.
	Glyph string

	// ConfirmKey and CancelKey are the chord specs captured at a fold
	// placeholder; either one unfolds the span under it.
	ConfirmKey string
	CancelKey  string
}

// Option configures a Config.
type Option func(*Config)

// WithPersistFolds sets the persistence toggle.
func WithPersistFolds(enabled bool) Option {
	return func(c *Config) {
		c.PersistFolds = enabled
	}
}

// WithGlyph sets the placeholder glyph.
func WithGlyph(glyph string) Option {
	return func(c *Config) {
		c.Glyph = glyph
	}
}

// WithCaptureKeys sets the confirm and cancel chord specs.
func WithCaptureKeys(confirm, cancel string) Option {
	return func(c *Config) {
		c.ConfirmKey = confirm
		c.CancelKey = cancel
	}
}

// Default returns the default configuration: persistence off, "…" as
// the glyph, Enter to confirm and Esc to cancel at a placeholder.
func Default(opts ...Option) Config {
	c := Config{
		Glyph:      "…",
		ConfirmKey: "Enter",
		CancelKey:  "Esc",
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.Glyph == "" {
		return fmt.Errorf("config: empty placeholder glyph")
	}
	if _, err := key.ParseBinding(c.ConfirmKey); err != nil {
		return fmt.Errorf("config: confirm key: %w", err)
	}
	if _, err := key.ParseBinding(c.CancelKey); err != nil {
		return fmt.Errorf("config: cancel key: %w", err)
	}
	return nil
}
