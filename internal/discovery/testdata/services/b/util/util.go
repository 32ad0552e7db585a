// Package util holds configuration for service b.
package util

// Config configures service b.
type Config struct {
	Port int
}

// New returns a Config listening on port.
func New(port int) Config {
	return Config{Port: port}
}
