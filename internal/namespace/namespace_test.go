package namespace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentflare-ai/go-dock/internal/element"
)

func pkg(name string) element.Record {
	return element.Record{Shape: element.ShapeModule, Name: name + ".__init__"}
}

func mod(name string) element.Record {
	return element.Record{Shape: element.ShapeModule, Name: name}
}

func class(module, scope string) element.Record {
	return element.Record{Shape: element.ShapeType, Name: element.LocalName(scope), Scope: scope, Module: module}
}

func fn(module, scope string) element.Record {
	return element.Record{Shape: element.ShapeCallable, Name: element.LocalName(scope), Scope: scope, Module: module}
}

func sampleRecords() []element.Record {
	return []element.Record{
		pkg("pkg"),
		mod("pkg.mod"),
		class("pkg.mod", "Widget"),
		fn("pkg.mod", "Widget.resize"),
		fn("pkg.mod", "helper"),
		fn("pkg.mod", "assemble"),
		pkg("pkg.sub"),
		mod("pkg.sub.tools"),
		fn("pkg.sub.tools", "run"),
	}
}

func TestInsertBuildsNestedTree(t *testing.T) {
	tree := NewTree()
	for _, rec := range sampleRecords() {
		rec := rec
		_, err := tree.Insert(&rec)
		require.NoError(t, err)
	}

	node, ok := tree.Walk("pkg.mod.Widget.resize")
	require.True(t, ok)
	assert.Equal(t, element.Function, node.Kind)
	assert.Equal(t, "resize", node.Name)

	p, ok := tree.Walk("pkg")
	require.True(t, ok)
	assert.Equal(t, element.Package, p.Kind)

	m, ok := tree.Walk("pkg.mod")
	require.True(t, ok)
	assert.Equal(t, element.Module, m.Kind)
	assert.Len(t, m.Children(), 3)
}

func TestTreeRegistryConsistency(t *testing.T) {
	tree, err := Build(sampleRecords(), nil)
	require.NoError(t, err)
	require.Equal(t, len(sampleRecords()), tree.Registry.Len())

	for _, q := range tree.Registry.Names() {
		registered, ok := tree.Registry.Lookup(q)
		require.True(t, ok)
		walked, ok := tree.Walk(q)
		require.True(t, ok, "walking %s", q)
		assert.Same(t, registered, walked)
		assert.Same(t, registered.Record, walked.Record)
	}
}

func TestInsertMissingParent(t *testing.T) {
	tree := NewTree()
	rec := fn("pkg.mod", "f")
	_, err := tree.Insert(&rec)
	require.ErrorIs(t, err, ErrMissingParent)
	assert.Empty(t, tree.Root.Children())
	assert.Zero(t, tree.Registry.Len())
}

func TestInsertBelowFunctionFails(t *testing.T) {
	tree := NewTree()
	for _, rec := range []element.Record{mod("m"), fn("m", "f")} {
		rec := rec
		_, err := tree.Insert(&rec)
		require.NoError(t, err)
	}
	inner := fn("m", "f.<locals>.g")
	_, err := tree.Insert(&inner)
	require.ErrorIs(t, err, ErrNotNamespace)

	f, ok := tree.Walk("m.f")
	require.True(t, ok)
	assert.Empty(t, f.Children())
	_, ok = tree.Registry.Lookup("m.f.g")
	assert.False(t, ok)
}

func TestInsertDuplicateQualifiedName(t *testing.T) {
	tree := NewTree()
	first := mod("m")
	_, err := tree.Insert(&first)
	require.NoError(t, err)
	second := mod("m")
	_, err = tree.Insert(&second)
	require.ErrorIs(t, err, ErrDuplicateName)

	node, ok := tree.Registry.Lookup("m")
	require.True(t, ok)
	assert.Same(t, &first, node.Record)
}

func TestChildOrderFollowsInsertion(t *testing.T) {
	tree, err := Build([]element.Record{
		mod("m"),
		fn("m", "zeta"),
		class("m", "Alpha"),
		fn("m", "beta"),
	}, nil)
	require.NoError(t, err)
	m, _ := tree.Walk("m")

	var names []string
	for _, c := range m.Children() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"zeta", "Alpha", "beta"}, names)

	var funcs []string
	for _, f := range m.Functions() {
		funcs = append(funcs, f.Name)
	}
	assert.Equal(t, []string{"zeta", "beta"}, funcs)
	require.Len(t, m.Namespaces(), 1)
	assert.Equal(t, "Alpha", m.Namespaces()[0].Name)
}

func TestDedupePrefersReexport(t *testing.T) {
	records := []element.Record{
		pkg("pkg"),
		mod("pkg.mod"),
		class("pkg.mod", "Widget"),
		class("pkg", "Widget"),
	}
	out := Dedupe(records)
	require.Len(t, out, 3)

	var widgets []string
	for i := range out {
		if element.ShortName(&out[i]) == "Widget" {
			widgets = append(widgets, element.QualifiedName(&out[i]))
		}
	}
	assert.Equal(t, []string{"pkg.Widget"}, widgets)

	tree, err := Build(records, nil)
	require.NoError(t, err)
	_, ok := tree.Registry.Lookup("pkg.Widget")
	assert.True(t, ok)
	_, ok = tree.Registry.Lookup("pkg.mod.Widget")
	assert.False(t, ok)
}

func TestDedupePreservesRelativeOrder(t *testing.T) {
	records := []element.Record{
		mod("a"),
		fn("a", "x"),
		fn("a", "y"),
		fn("a", "x"),
		fn("a", "z"),
	}
	out := Dedupe(records)
	var names []string
	for i := range out {
		names = append(names, out[i].Name)
	}
	assert.Equal(t, []string{"a", "y", "x", "z"}, names)
}

func TestDedupeIdempotent(t *testing.T) {
	records := append(sampleRecords(), fn("pkg.sub.tools", "helper"), class("pkg", "Widget"))
	once := Dedupe(records)
	twice := Dedupe(once)
	assert.Equal(t, once, twice)
}

func TestBuildAbortsOnOrderingViolation(t *testing.T) {
	tree, err := Build([]element.Record{fn("pkg.mod", "f"), mod("pkg.mod")}, nil)
	require.Error(t, err)
	assert.Nil(t, tree)
	assert.True(t, strings.Contains(err.Error(), "pkg.mod.f"))
}

func TestDedupeByQualifiedNameKeepsUnrelated(t *testing.T) {
	records := []element.Record{
		mod("a"),
		mod("b"),
		fn("a", "New"),
		fn("b", "New"),
	}
	assert.Len(t, Dedupe(records), 3)

	key, err := ParseKey("qualified")
	require.NoError(t, err)
	tree, err := BuildWith(records, BuildOptions{Key: key})
	require.NoError(t, err)
	_, ok := tree.Registry.Lookup("a.New")
	assert.True(t, ok)
	_, ok = tree.Registry.Lookup("b.New")
	assert.True(t, ok)

	_, err = ParseKey("fuzzy")
	assert.Error(t, err)
}
