package lptable

import (
	"io"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// DefaultCapacity is the number of slots a table starts with when no
	// capacity is configured.
	DefaultCapacity = 7
	// DefaultLoadFactor is the occupied fraction (live entries plus
	// tombstones over capacity) that an insert is never allowed to reach.
	DefaultLoadFactor = 0.7
	// DefaultGrowthFactor multiplies the capacity on every resize step.
	DefaultGrowthFactor = 2.0
)

// Config defines configurable Table options.
//
// The exported fields can be decoded from TOML (see LoadConfig); the
// remaining options are only reachable through the With* functions because
// they carry Go values.
type Config struct {
	// Capacity is the initial number of slots. Zero or negative values
	// select DefaultCapacity.
	Capacity int `toml:"capacity"`
	// LoadFactor is the resize threshold in (0, 1]. Zero selects
	// DefaultLoadFactor.
	LoadFactor float64 `toml:"load_factor"`
	// GrowthFactor is the capacity multiplier applied on resize, greater
	// than 1. Zero selects DefaultGrowthFactor.
	GrowthFactor float64 `toml:"growth_factor"`
	// UpdateInvalidatesIterators makes an in-place value overwrite count as
	// a structural change, failing any live iterator.
	UpdateInvalidatesIterators bool `toml:"update_invalidates_iterators"`

	keyHash     any // func(K) uint64
	sentinelKey any // K
	hasSentinel bool
	logger      *zap.Logger
}

// WithCapacity configures the initial number of slots. If capacity is zero
// or negative, the value is ignored.
func WithCapacity(capacity int) func(*Config) {
	return func(c *Config) {
		c.Capacity = capacity
	}
}

// WithLoadFactor configures the occupied fraction that triggers growth.
// Values outside (0, 1] are ignored.
func WithLoadFactor(loadFactor float64) func(*Config) {
	return func(c *Config) {
		c.LoadFactor = loadFactor
	}
}

// WithGrowthFactor configures the capacity multiplier used on resize.
// Values not greater than 1 are ignored.
func WithGrowthFactor(growthFactor float64) func(*Config) {
	return func(c *Config) {
		c.GrowthFactor = growthFactor
	}
}

// WithUpdateInvalidatesIterators makes overwriting the value of an existing
// key bump the table generation, so iterators created before the overwrite
// fail with ErrConcurrentModification. By default only insertions of new
// keys, deletions, resizes and clears do.
func WithUpdateInvalidatesIterators() func(*Config) {
	return func(c *Config) {
		c.UpdateInvalidatesIterators = true
	}
}

// WithKeyHasher replaces the default key hash function. The type parameter
// must match the key type of the table it is passed to; New panics
// otherwise.
func WithKeyHasher[K comparable](keyHash func(key K) uint64) func(*Config) {
	return func(c *Config) {
		if keyHash != nil {
			c.keyHash = keyHash
		}
	}
}

// WithSentinelKey registers a key value that Insert and Delete reject with
// ErrInvalidArgument, such as "" for string keys or 0 for ids that start at
// one. Nil pointer, channel and interface keys are always rejected.
func WithSentinelKey[K comparable](key K) func(*Config) {
	return func(c *Config) {
		c.sentinelKey = key
		c.hasSentinel = true
	}
}

// WithLogger sets the logger used to report resizes. A nil logger disables
// logging.
func WithLogger(logger *zap.Logger) func(*Config) {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithConfig copies the file-loadable fields of cfg. Options applied after
// it override individual fields.
func WithConfig(cfg Config) func(*Config) {
	return func(c *Config) {
		c.Capacity = cfg.Capacity
		c.LoadFactor = cfg.LoadFactor
		c.GrowthFactor = cfg.GrowthFactor
		c.UpdateInvalidatesIterators = cfg.UpdateInvalidatesIterators
	}
}

// Validate reports the first field holding a value New would silently
// replace with its default.
func (c Config) Validate() error {
	if c.Capacity < 0 {
		return errors.Wrapf(ErrInvalidArgument, "capacity %d is negative", c.Capacity)
	}
	if c.LoadFactor < 0 || c.LoadFactor > 1 {
		return errors.Wrapf(ErrInvalidArgument, "load factor %v is outside (0, 1]", c.LoadFactor)
	}
	if c.GrowthFactor != 0 && c.GrowthFactor <= 1 {
		return errors.Wrapf(ErrInvalidArgument, "growth factor %v must be greater than 1", c.GrowthFactor)
	}
	return nil
}

// normalize replaces unset or out-of-range fields with their defaults.
func (c *Config) normalize() {
	if c.Capacity <= 0 {
		c.Capacity = DefaultCapacity
	}
	if c.LoadFactor <= 0 || c.LoadFactor > 1 {
		c.LoadFactor = DefaultLoadFactor
	}
	if c.GrowthFactor <= 1 {
		c.GrowthFactor = DefaultGrowthFactor
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
}

// DecodeConfig reads a TOML document into a Config and validates it.
func DecodeConfig(r io.Reader) (Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode table config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and validates a TOML table configuration file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "load table config %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.WithMessagef(err, "table config %q", path)
	}
	return cfg, nil
}
