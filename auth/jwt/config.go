package jwt

import (
	"errors"
	"time"
)

// DefaultTTL is how long issued tokens stay valid.
const DefaultTTL = 60 * 24 * time.Hour

// Config configures the token service. The secret is read once at
// construction and never changes for the life of the process.
type Config struct {
	// Secret is the HMAC-SHA256 signing key (required).
	Secret string `mapstructure:"secret"`

	// TTL is the token lifetime (default: 60 days).
	TTL time.Duration `mapstructure:"ttl"`

	// TimeFunc supplies the current time for issuance and verification.
	// Defaults to time.Now; tests inject a fixed clock.
	TimeFunc func() time.Time `mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.TTL == 0 {
		c.TTL = DefaultTTL
	}
	if c.TimeFunc == nil {
		c.TimeFunc = time.Now
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("jwt: secret is required")
	}
	return nil
}
