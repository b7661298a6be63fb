// Package config loads the application configuration from a config.yml
// next to the binary plus CONDUIT_* environment overrides, with an
// optional .env file for local development.
package config
