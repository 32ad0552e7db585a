package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualifiedName(t *testing.T) {
	cases := []struct {
		name string
		rec  Record
		want string
	}{
		{
			name: "package initializer",
			rec:  Record{Shape: ShapeModule, Name: "pkg.sub.__init__"},
			want: "pkg.sub",
		},
		{
			name: "plain module",
			rec:  Record{Shape: ShapeModule, Name: "pkg.mod"},
			want: "pkg.mod",
		},
		{
			name: "function in module",
			rec:  Record{Shape: ShapeCallable, Name: "f", Scope: "f", Module: "pkg.mod"},
			want: "pkg.mod.f",
		},
		{
			name: "function defined in package initializer",
			rec:  Record{Shape: ShapeCallable, Name: "f", Scope: "f", Module: "pkg.__init__"},
			want: "pkg.f",
		},
		{
			name: "method",
			rec:  Record{Shape: ShapeCallable, Name: "resize", Scope: "Widget.resize", Module: "pkg.mod"},
			want: "pkg.mod.Widget.resize",
		},
		{
			name: "local scope collapses",
			rec:  Record{Shape: ShapeType, Name: "Inner", Scope: "outer.<locals>.Inner", Module: "pkg.mod"},
			want: "pkg.mod.outer.Inner",
		},
		{
			name: "generic type falls back to expression",
			rec:  Record{Shape: ShapeType, TypeExpr: "typing.List[int]"},
			want: "typing.List[int]",
		},
		{
			name: "missing module uses name",
			rec:  Record{Shape: ShapeCallable, Name: "pkg", Scope: "g"},
			want: "pkg.g",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := tc.rec
			assert.Equal(t, tc.want, QualifiedName(&rec))
			// Same metadata, same answer.
			assert.Equal(t, QualifiedName(&rec), QualifiedName(&rec))
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, Package, Classify(&Record{Shape: ShapeModule, Name: "pkg.__init__"}))
	assert.Equal(t, Package, Classify(&Record{Shape: ShapeModule, Name: "pkg", Initializer: true}))
	assert.Equal(t, Module, Classify(&Record{Shape: ShapeModule, Name: "pkg.mod"}))
	assert.Equal(t, Class, Classify(&Record{Shape: ShapeType, Name: "Widget"}))
	assert.Equal(t, Function, Classify(&Record{Shape: ShapeCallable, Name: "f"}))
}

func TestShortNameFallsBackToTypeExpr(t *testing.T) {
	assert.Equal(t, "Widget", ShortName(&Record{Name: "Widget"}))
	assert.Equal(t, "List[int]", ShortName(&Record{TypeExpr: "List[int]"}))
}

func TestPairsKeepOrder(t *testing.T) {
	var p Pairs
	p.Set("b", "1")
	p.Set("a", "2")
	p.Set("b", "3")
	assert.Equal(t, []string{"b", "a"}, p.Keys())
	v, ok := p.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestRecordParamsSkipReturn(t *testing.T) {
	rec := Record{Annotations: Pairs{{"x", "int"}, {ReturnKey, "str"}, {"y", ""}}}
	assert.Equal(t, Pairs{{"x", "int"}, {"y", ""}}, rec.Params())
	ret, ok := rec.Return()
	assert.True(t, ok)
	assert.Equal(t, "str", ret)
}
