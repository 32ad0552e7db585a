package element

import "strings"

const (
	// InitMarker is the module name segment of a package initializer.
	InitMarker = "__init__"
	// LocalsMarker marks a scope nested inside a function body.
	LocalsMarker = "<locals>."

	initSuffix = "." + InitMarker
)

// QualifiedName computes the canonical dotted path of r. Packages resolve to
// their directory path, never to their initializer file.
func QualifiedName(r *Record) string {
	name := r.Name
	if name == "" {
		name = r.TypeExpr
	}
	scope := strings.ReplaceAll(r.Scope, LocalsMarker, "")
	if scope == "" {
		return stripInit(name)
	}
	module := r.Module
	if module == "" {
		module = name
	}
	return stripInit(module) + "." + scope
}

// ShortName is the declared, unqualified name used to spot duplicates.
func ShortName(r *Record) string {
	if r.Name == "" {
		return r.TypeExpr
	}
	return r.Name
}

// Classify maps the record's shape to an element kind.
func Classify(r *Record) Kind {
	switch r.Shape {
	case ShapeModule:
		if r.Initializer || r.Name == InitMarker || strings.HasSuffix(r.Name, initSuffix) {
			return Package
		}
		return Module
	case ShapeType:
		return Class
	default:
		return Function
	}
}

// LocalName returns the last segment of a qualified name.
func LocalName(qualified string) string {
	if idx := strings.LastIndexByte(qualified, '.'); idx >= 0 {
		return qualified[idx+1:]
	}
	return qualified
}

func stripInit(name string) string {
	return strings.ReplaceAll(name, initSuffix, "")
}
