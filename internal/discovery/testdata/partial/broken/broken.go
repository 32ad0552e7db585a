// Package broken does not type-check.
package broken

// Count returns the wrong type.
func Count() int {
	return "three"
}
