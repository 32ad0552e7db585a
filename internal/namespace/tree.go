// Package namespace builds the namespace tree that documentation is rendered
// from.
//
// Elements are inserted by qualified name: every prefix of the name must
// already exist as a Package, Module or Class node. Functions are leaves.
// The Registry maps each qualified name to the node holding it and is what
// the renderer consults to resolve interlinks.
package namespace

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agentflare-ai/go-dock/internal/element"
)

var (
	// ErrMissingParent reports an insertion whose ancestor namespace has not
	// been inserted yet.
	ErrMissingParent = errors.New("parent namespace not found")
	// ErrNotNamespace reports an insertion below a Function leaf.
	ErrNotNamespace = errors.New("element cannot own children")
	// ErrDuplicateName reports a second element with an already registered
	// qualified name.
	ErrDuplicateName = errors.New("qualified name already registered")
)

// Node is a Package, Module, Class or Function in the tree.
type Node struct {
	Name          string
	QualifiedName string
	Kind          element.Kind
	Record        *element.Record

	children []*Node
	index    map[string]int
}

// Children returns the direct children in insertion order.
func (n *Node) Children() []*Node {
	return n.children
}

// Child returns the direct child registered under name.
func (n *Node) Child(name string) (*Node, bool) {
	idx, ok := n.index[name]
	if !ok {
		return nil, false
	}
	return n.children[idx], true
}

// Functions returns the direct Function children in insertion order.
func (n *Node) Functions() []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.Kind == element.Function {
			out = append(out, c)
		}
	}
	return out
}

// Namespaces returns the direct Package, Module and Class children in
// insertion order.
func (n *Node) Namespaces() []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.Kind.IsNamespace() {
			out = append(out, c)
		}
	}
	return out
}

// IsRoot reports whether n is the unnamed tree root.
func (n *Node) IsRoot() bool {
	return n.Record == nil && n.QualifiedName == ""
}

func (n *Node) add(child *Node) {
	if n.index == nil {
		n.index = make(map[string]int)
	}
	n.index[child.Name] = len(n.children)
	n.children = append(n.children, child)
}

// Registry maps qualified names to tree nodes.
type Registry struct {
	byName map[string]*Node
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Node)}
}

// Lookup returns the node registered under qualified.
func (r *Registry) Lookup(qualified string) (*Node, bool) {
	n, ok := r.byName[qualified]
	return n, ok
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	return len(r.byName)
}

// Names returns every registered qualified name, unordered.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	return names
}

func (r *Registry) register(n *Node) error {
	if _, ok := r.byName[n.QualifiedName]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, n.QualifiedName)
	}
	r.byName[n.QualifiedName] = n
	return nil
}

// Tree is a namespace tree together with its registry.
type Tree struct {
	Root     *Node
	Registry *Registry
}

// NewTree returns a tree holding only the root node.
func NewTree() *Tree {
	return &Tree{
		Root:     &Node{},
		Registry: NewRegistry(),
	}
}

// Insert adds rec under its qualified name. Either the node is attached and
// registered, or the tree is left untouched and an error is returned.
func (t *Tree) Insert(rec *element.Record) (*Node, error) {
	qualified := element.QualifiedName(rec)
	if qualified == "" {
		return nil, fmt.Errorf("element %q has no qualified name", element.ShortName(rec))
	}
	segments := strings.Split(qualified, ".")
	parent, err := t.walk(segments[:len(segments)-1])
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", qualified, err)
	}
	node := &Node{
		Name:          segments[len(segments)-1],
		QualifiedName: qualified,
		Kind:          element.Classify(rec),
		Record:        rec,
	}
	if _, exists := parent.Child(node.Name); exists {
		return nil, fmt.Errorf("insert %s: %w", qualified, ErrDuplicateName)
	}
	if err := t.Registry.register(node); err != nil {
		return nil, fmt.Errorf("insert %s: %w", qualified, err)
	}
	parent.add(node)
	return node, nil
}

// Walk follows a qualified name from the root.
func (t *Tree) Walk(qualified string) (*Node, bool) {
	if qualified == "" {
		return t.Root, true
	}
	node := t.Root
	for _, seg := range strings.Split(qualified, ".") {
		next, ok := node.Child(seg)
		if !ok {
			return nil, false
		}
		node = next
	}
	return node, true
}

func (t *Tree) walk(segments []string) (*Node, error) {
	node := t.Root
	for i, seg := range segments {
		if !node.IsRoot() && !node.Kind.IsNamespace() {
			return nil, fmt.Errorf("%w: %s is a %s", ErrNotNamespace, node.QualifiedName, node.Kind)
		}
		next, ok := node.Child(seg)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingParent, strings.Join(segments[:i+1], "."))
		}
		node = next
	}
	if !node.IsRoot() && !node.Kind.IsNamespace() {
		return nil, fmt.Errorf("%w: %s is a %s", ErrNotNamespace, node.QualifiedName, node.Kind)
	}
	return node, nil
}
