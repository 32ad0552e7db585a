// Package ok loads fine.
package ok

// Ready reports readiness.
func Ready() bool {
	return true
}
