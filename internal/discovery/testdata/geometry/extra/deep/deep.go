// Package deep sits below a directory without Go files.
package deep

// Depth reports how far down this package is.
func Depth() int { return 3 }
