package sentinel

import (
	"fmt"
	"tripwire/pkg/primitives"
)

// ResponseMode selects what happens when a monitored row is about to leave
// the pipeline.
type ResponseMode int

const (
	// Corrupt perturbs the monitored integer column with bounded random
	// noise and lets the row through. Invisible to the caller.
	Corrupt ResponseMode = iota

	// AbortStatement fatally terminates the current statement on the
	// first monitored row.
	AbortStatement

	// AbortSession terminates the whole session, not just the statement.
	AbortSession
)

// String returns a string representation of the response mode
func (m ResponseMode) String() string {
	switch m {
	case Corrupt:
		return "CORRUPT"
	case AbortStatement:
		return "ABORT_STATEMENT"
	case AbortSession:
		return "ABORT_SESSION"
	default:
		return "UNKNOWN"
	}
}

// Default noise interval, symmetric around zero. Matches the deployed
// policy of +/-5; not independently tunable per statement.
const (
	DefaultNoiseLow  int64 = -5
	DefaultNoiseHigh int64 = 5
)

// Config is the process-wide tamper configuration: which (relation, column)
// pair is monitored and how to respond when it surfaces in an output
// stream. Built once at startup, immutable afterwards, and passed by
// reference into the interceptor. A partially configured target means the
// feature is disabled, never an error.
type Config struct {
	// Table is the monitored relation. InvalidTableID disables tampering.
	Table primitives.TableID

	// Column is the 1-based position of the monitored integer column.
	// Zero disables tampering.
	Column primitives.ColumnID

	// Mode is the configured response.
	Mode ResponseMode

	// NoiseLow and NoiseHigh bound the perturbation delta, inclusive on
	// both ends.
	NoiseLow  int64
	NoiseHigh int64
}

// NewConfig builds a validated configuration with the default noise
// interval.
func NewConfig(table primitives.TableID, column primitives.ColumnID, mode ResponseMode) (*Config, error) {
	c := &Config{
		Table:     table,
		Column:    column,
		Mode:      mode,
		NoiseLow:  DefaultNoiseLow,
		NoiseHigh: DefaultNoiseHigh,
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Enabled reports whether tampering is active. Both the relation and the
// column must be set; leaving either at its disabled default degrades the
// interceptor to a pure pass-through.
func (c *Config) Enabled() bool {
	return c != nil &&
		c.Table != primitives.InvalidTableID &&
		c.Column >= 1
}

// Validate checks internal consistency. A disabled configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}

	switch c.Mode {
	case Corrupt, AbortStatement, AbortSession:
	default:
		return fmt.Errorf("unknown response mode %d", c.Mode)
	}

	if c.NoiseLow > c.NoiseHigh {
		return fmt.Errorf("noise interval [%d, %d] is empty", c.NoiseLow, c.NoiseHigh)
	}

	if c.NoiseLow != -c.NoiseHigh {
		return fmt.Errorf("noise interval [%d, %d] must be symmetric around zero",
			c.NoiseLow, c.NoiseHigh)
	}

	return nil
}

// Severity returns the abort severity the mode implies. Corrupt mode never
// aborts; its severity is only meaningful for the abort modes.
func (c *Config) Severity() Severity {
	if c.Mode == AbortSession {
		return SeveritySession
	}
	return SeverityStatement
}
