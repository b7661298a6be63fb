package config

import (
	"fmt"
	"time"

	"github.com/conduit-labs/conduit/auth/jwt"
	"github.com/conduit-labs/conduit/database"
	"github.com/conduit-labs/conduit/logger"
	"github.com/conduit-labs/conduit/server"
)

// Config is the full application configuration.
type Config struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Version     string `yaml:"version" mapstructure:"version"`

	Server   server.Config   `yaml:"server" mapstructure:"server"`
	Database database.Config `yaml:"database" mapstructure:"database"`
	Auth     AuthConfig      `yaml:"auth" mapstructure:"auth"`
	Logging  logger.Config   `yaml:"logging" mapstructure:"logging"`
}

// AuthConfig configures token issuance and password derivation.
type AuthConfig struct {
	// Secret signs every token; the process refuses to start without it.
	Secret string `yaml:"secret" mapstructure:"secret"`
	// TokenTTL defaults to the 60-day contract value.
	TokenTTL time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
	// KDFConcurrency bounds parallel password derivations; 0 means one
	// per CPU.
	KDFConcurrency int `yaml:"kdf_concurrency" mapstructure:"kdf_concurrency"`
	// KDFMaxWait bounds how long a request queues for a derivation slot.
	KDFMaxWait time.Duration `yaml:"kdf_max_wait" mapstructure:"kdf_max_wait"`
}

// TokenConfig builds the token service config from this section.
func (c *AuthConfig) TokenConfig() jwt.Config {
	return jwt.Config{Secret: c.Secret, TTL: c.TokenTTL}
}

// ApplyDefaults fills unset fields across all sections.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "conduit"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = jwt.DefaultTTL
	}
	if c.Auth.KDFMaxWait == 0 {
		c.Auth.KDFMaxWait = 5 * time.Second
	}
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Logging.ApplyDefaults()
}

// Validate checks the configuration across all sections.
func (c *Config) Validate() error {
	validEnvs := []string{"development", "staging", "production"}
	if !contains(validEnvs, c.Environment) {
		return fmt.Errorf("environment must be one of %v (got: %s)", validEnvs, c.Environment)
	}
	if c.Auth.Secret == "" {
		return fmt.Errorf("auth.secret is required")
	}
	if c.Auth.KDFConcurrency < 0 {
		return fmt.Errorf("auth.kdf_concurrency must be non-negative (got: %d)", c.Auth.KDFConcurrency)
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return nil
}

func contains(slice []string, val string) bool {
	for _, s := range slice {
		if s == val {
			return true
		}
	}
	return false
}
