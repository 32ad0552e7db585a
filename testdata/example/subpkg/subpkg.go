// Package subpkg is nested below example to exercise package trees.
package subpkg

// Message exposes a sample constant.
const Message = "hi"

// Echo returns msg unchanged.
func Echo(msg string) string {
	return msg
}
