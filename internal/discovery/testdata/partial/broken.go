// Package partial mixes loadable and broken packages.
package partial

// Fallback is used while broken is unavailable.
func Fallback() string {
	return "fallback"
}
