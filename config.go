package pathkit

import "github.com/kelseyhightower/envconfig"

// Limits caps bulk export work. Attached per call; never persisted.
type Limits struct {
	// MaxFiles caps the number of file sections an export collects.
	MaxFiles int `envconfig:"MAX_FILES" default:"500"`

	// MaxTotalBytes caps the cumulative content size an export collects.
	MaxTotalBytes int64 `envconfig:"MAX_TOTAL_BYTES" default:"10000000"`

	// IgnoreVenv skips virtual-environment and dependency directories
	// (venv, .venv, env, __pycache__, node_modules, site-packages) without
	// descending into them.
	IgnoreVenv bool `envconfig:"IGNORE_VENV" default:"true"`
}

// DefaultLimits returns the documented default caps.
func DefaultLimits() Limits {
	return Limits{
		MaxFiles:      500,
		MaxTotalBytes: 10_000_000,
		IgnoreVenv:    true,
	}
}

// LimitsFromEnv loads limits from PATHKIT_* environment variables, falling
// back to the defaults when the environment is unset or invalid.
func LimitsFromEnv() Limits {
	var l Limits
	if err := envconfig.Process("pathkit", &l); err != nil {
		return DefaultLimits()
	}
	return l
}
