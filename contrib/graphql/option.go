package graphql

import (
	"errors"
	"log/slog"
)

// DefaultMaxPasses is the default number of Build passes over pending fields.
const DefaultMaxPasses = 8

// Config holds the settings shared by the Converter and the Builder.
type Config struct {
	// Logger receives dropped union candidates and unresolved fields.
	Logger *slog.Logger
	// UnionNamer names the unions built for generic fields.
	UnionNamer UnionNamer
	// StrictUnions defers a whole union while any candidate is missing,
	// instead of building it from the registered candidates.
	StrictUnions bool
	// MaxPasses bounds the replay of pending fields in Build.
	MaxPasses int
}

// Option configures the Converter or the Builder.
type Option func(*Config) error

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		Logger:     slog.Default(),
		UnionNamer: UniqueUnionName,
		MaxPasses:  DefaultMaxPasses,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return errors.New("graphql: nil logger")
		}
		c.Logger = l
		return nil
	}
}

// WithUnionNamer sets the function naming generic-field unions.
func WithUnionNamer(fn UnionNamer) Option {
	return func(c *Config) error {
		if fn == nil {
			return errors.New("graphql: nil union namer")
		}
		c.UnionNamer = fn
		return nil
	}
}

// WithStableUnionNames names unions deterministically, so that
// rebuilding a schema yields the same type names.
func WithStableUnionNames() Option {
	return WithUnionNamer(StableUnionName)
}

// WithStrictUnions makes generic fields defer until every candidate
// model is registered.
func WithStrictUnions() Option {
	return func(c *Config) error {
		c.StrictUnions = true
		return nil
	}
}

// WithMaxPasses sets the number of Build passes over pending fields.
func WithMaxPasses(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return errors.New("graphql: max passes must be positive")
		}
		c.MaxPasses = n
		return nil
	}
}
