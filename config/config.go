package config

import "github.com/pkg/errors"

const (
	// DefaultMaxReads is the number of read pairs sampled before stopping.
	DefaultMaxReads = 50000
	// DefaultMinMapQ is the minimum mapping quality of a sampled pair.
	DefaultMinMapQ = 40
)

// Config holds the sampling parameters.
type Config struct {
	Cpu, MaxReads, Skip, MinMapQ, MinChromLength int
	Reference                                    string
}

// NewConfig returns a Config with the given parameters.
func NewConfig(cpu, maxReads, skip, minMapQ, minChromLength int, reference string) *Config {
	return &Config{cpu, maxReads, skip, minMapQ, minChromLength, reference}
}

// DefaultConfig returns a Config with the default sampling parameters.
func DefaultConfig() *Config {
	return NewConfig(1, DefaultMaxReads, 0, DefaultMinMapQ, 0, "")
}

// Validate reports parameters that would make sampling meaningless.
func (c *Config) Validate() error {
	switch {
	case c.MaxReads <= 0:
		return errors.Errorf("maximum number of reads must be positive, got %d", c.MaxReads)
	case c.Skip < 0:
		return errors.Errorf("number of skipped records cannot be negative, got %d", c.Skip)
	case c.Cpu < 0:
		return errors.Errorf("number of cpus cannot be negative, got %d", c.Cpu)
	}
	return nil
}
