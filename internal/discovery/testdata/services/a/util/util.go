// Package util holds configuration for service a.
package util

// Config configures service a.
type Config struct {
	Path string
}

// Load reads the configuration from Path.
func (c Config) Load() error {
	return nil
}

// New returns a Config for path.
func New(path string) Config {
	return Config{Path: path}
}
