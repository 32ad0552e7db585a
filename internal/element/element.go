// Package element defines the records produced by discovery and the naming
// rules that turn them into qualified, dot-separated paths.
package element

// Shape is the runtime shape of a discovered element, before classification.
type Shape int

const (
	ShapeModule   Shape = iota // module or package initializer
	ShapeType                  // type object
	ShapeCallable              // function, method or any other callable
)

// String returns the manifest spelling of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeModule:
		return "module"
	case ShapeType:
		return "type"
	case ShapeCallable:
		return "callable"
	default:
		return "unknown"
	}
}

// ParseShape maps the manifest spelling back to a Shape.
func ParseShape(s string) (Shape, bool) {
	switch s {
	case "module":
		return ShapeModule, true
	case "type", "class":
		return ShapeType, true
	case "callable", "function":
		return ShapeCallable, true
	default:
		return 0, false
	}
}

// Kind is one of the four element kinds the tree and renderer know about.
type Kind int

const (
	Package Kind = iota
	Module
	Class
	Function
)

// String returns the kind name used in headers and interlink anchors.
func (k Kind) String() string {
	switch k {
	case Package:
		return "Package"
	case Module:
		return "Module"
	case Class:
		return "Class"
	case Function:
		return "Function"
	default:
		return "Unknown"
	}
}

// IsNamespace reports whether elements of this kind can own children.
func (k Kind) IsNamespace() bool {
	return k != Function
}

// Pair is one entry of an ordered string mapping.
type Pair struct {
	Key   string
	Value string
}

// Pairs is an ordered string mapping. Order is discovery order.
type Pairs []Pair

// Get returns the value stored under key.
func (p Pairs) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Set replaces the value under key, or appends it.
func (p *Pairs) Set(key, value string) {
	for i := range *p {
		if (*p)[i].Key == key {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, Pair{Key: key, Value: value})
}

// Keys returns the keys in order.
func (p Pairs) Keys() []string {
	keys := make([]string, len(p))
	for i, kv := range p {
		keys[i] = kv.Key
	}
	return keys
}

// DocTag is the structured documentation an author attaches to an element.
type DocTag struct {
	Short     string
	Arguments Pairs // argument name -> description
	Fields    Pairs // field name -> description
	Sections  Pairs // section title -> body
}

// ReturnKey is the annotation key holding the return type.
const ReturnKey = "return"

// Record is one discovered program element.
type Record struct {
	Shape Shape
	// Name is the declared name. Modules carry their full dotted name,
	// classes and functions their short name.
	Name string
	// Scope is the owning-scope path, e.g. "Widget.resize". Empty for
	// modules and packages.
	Scope string
	// Module is the name of the enclosing module.
	Module string
	// Initializer marks a module that is a package's initializer.
	Initializer bool
	// TypeExpr is the textual form of a type expression, used for elements
	// that carry no declared name.
	TypeExpr string

	Doc         string
	Annotations Pairs // parameter name -> type text; ReturnKey for results
	Tag         *DocTag

	Source     string
	SourceLang string
}

// Kind classifies the record into one of the four element kinds.
func (r *Record) Kind() Kind {
	return Classify(r)
}

// Params returns the parameter annotations without the return entry.
func (r *Record) Params() Pairs {
	var out Pairs
	for _, kv := range r.Annotations {
		if kv.Key == ReturnKey {
			continue
		}
		out = append(out, kv)
	}
	return out
}

// Return returns the annotated return type.
func (r *Record) Return() (string, bool) {
	return r.Annotations.Get(ReturnKey)
}
