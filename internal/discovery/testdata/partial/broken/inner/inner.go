// Package inner sits below a package that fails to load.
package inner

// Depth is the nesting depth.
func Depth() int {
	return 3
}
