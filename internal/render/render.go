// Package render turns a namespace tree into cross-linked Markdown.
//
// Each node gets one section whose shape depends on its kind. Type names
// used in function signatures become links to the section documenting the
// type whenever the registry knows the name; the anchor is
// "<Kind>-<qualified name>" with the kind the name was registered under.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/agentflare-ai/go-dock/internal/element"
	"github.com/agentflare-ai/go-dock/internal/namespace"
)

const (
	missingType = "?"
	noDesc      = "(no description)"
)

// Renderer renders namespace nodes. The registry is only read.
type Renderer struct {
	registry *namespace.Registry
}

// New returns a renderer resolving interlinks against reg.
func New(reg *namespace.Registry) *Renderer {
	if reg == nil {
		reg = namespace.NewRegistry()
	}
	return &Renderer{registry: reg}
}

// Render renders every node below root: the Function children of a
// namespace come first, then each namespace child followed by its own
// subtree, all in insertion order.
func (r *Renderer) Render(root *namespace.Node) []byte {
	var buf bytes.Buffer
	r.renderNamespace(&buf, root)
	return buf.Bytes()
}

func (r *Renderer) renderNamespace(w io.Writer, ns *namespace.Node) {
	for _, f := range ns.Functions() {
		r.RenderNode(w, f)
	}
	for _, child := range ns.Namespaces() {
		r.RenderNode(w, child)
		r.renderNamespace(w, child)
	}
}

// RenderNode writes the section of a single node.
func (r *Renderer) RenderNode(w io.Writer, n *namespace.Node) {
	if n.Record == nil {
		return
	}
	fmt.Fprintf(w, "<a name=\"%s\"></a>\n", Anchor(n.Kind, n.QualifiedName))
	switch n.Kind {
	case element.Package:
		r.renderPackage(w, n)
	case element.Module:
		r.renderModule(w, n)
	case element.Class:
		r.renderClass(w, n)
	case element.Function:
		r.renderFunction(w, n)
	}
}

// Anchor returns the link target of an element section.
func Anchor(kind element.Kind, qualified string) string {
	return kind.String() + "-" + qualified
}

// Header returns the heading line of a node's section.
func Header(n *namespace.Node) string {
	level := "#"
	switch n.Kind {
	case element.Module:
		level = "##"
	case element.Class:
		level = "###"
	case element.Function:
		level = "####"
	}
	return fmt.Sprintf("%s %s `%s`", level, n.Kind, n.QualifiedName)
}

func (r *Renderer) renderPackage(w io.Writer, n *namespace.Node) {
	fmt.Fprintf(w, "%s\n\n", Header(n))
	writeDoc(w, n.Record.Doc)
}

func (r *Renderer) renderModule(w io.Writer, n *namespace.Node) {
	fmt.Fprintf(w, "%s\n\n", Header(n))
	writeDoc(w, n.Record.Doc)
	children := n.Children()
	if len(children) == 0 {
		return
	}
	for _, child := range children {
		fmt.Fprintf(w, "- %s [%s](#%s)\n", child.Kind, child.Name, Anchor(child.Kind, child.QualifiedName))
	}
	fmt.Fprintln(w)
}

func (r *Renderer) renderClass(w io.Writer, n *namespace.Node) {
	fmt.Fprintf(w, "%s\n\n", Header(n))
	if tag := n.Record.Tag; tag != nil && len(tag.Fields) > 0 {
		fmt.Fprint(w, "**Fields**\n\n")
		for _, field := range tag.Fields {
			fmt.Fprintf(w, "- `%s`: *%s*\n", field.Key, field.Value)
		}
		fmt.Fprintln(w)
	}
	writeDoc(w, n.Record.Doc)
}

func (r *Renderer) renderFunction(w io.Writer, n *namespace.Node) {
	rec := n.Record
	tag := rec.Tag
	if tag == nil {
		tag = &element.DocTag{}
	}
	fmt.Fprintf(w, "%s\n\n", Header(n))
	if short := strings.TrimSpace(tag.Short); short != "" {
		fmt.Fprintf(w, "> %s\n\n", short)
	}

	if args := arguments(rec, tag); len(args) > 0 {
		fmt.Fprint(w, "**Arguments**\n\n")
		for _, arg := range args {
			desc := noDesc
			if d, ok := tag.Arguments.Get(arg.Key); ok && strings.TrimSpace(d) != "" {
				desc = "*" + strings.TrimSpace(d) + "*"
			}
			fmt.Fprintf(w, "- `%s` -> %s: %s\n", arg.Key, r.typeRef(arg.Value), desc)
		}
		fmt.Fprintln(w)
	}
	if ret, ok := rec.Return(); ok {
		if ret == "" {
			ret = missingType
		}
		fmt.Fprintf(w, "**Return Type:** `%s`\n\n", ret)
	}

	writeDoc(w, rec.Doc)

	for _, section := range tag.Sections {
		fmt.Fprintf(w, "**%s**\n\n", section.Key)
		if body := dedentMarkdown(strings.Trim(section.Value, "\n")); strings.TrimSpace(body) != "" {
			fmt.Fprintf(w, "%s\n\n", strings.TrimRight(body, " \t\n"))
		}
	}

	if src := strings.Trim(rec.Source, "\n"); strings.TrimSpace(src) != "" {
		fmt.Fprint(w, "<details><summary>Source</summary>\n\n")
		fmt.Fprintf(w, "```%s\n%s\n```\n\n", rec.SourceLang, strings.TrimRight(dedentMarkdown(src), " \t\n"))
		fmt.Fprint(w, "</details>\n\n")
	}
}

// arguments lists annotated parameters in declaration order followed by
// parameters that are only described by the documentation tag.
func arguments(rec *element.Record, tag *element.DocTag) element.Pairs {
	args := rec.Params()
	for _, described := range tag.Arguments {
		if described.Key == element.ReturnKey {
			continue
		}
		if _, ok := args.Get(described.Key); !ok {
			args = append(args, element.Pair{Key: described.Key})
		}
	}
	return args
}

// typeRef renders a type reference, linking it when the registry knows it.
func (r *Renderer) typeRef(typ string) string {
	if typ == "" {
		return "`" + missingType + "`"
	}
	if target, ok := r.registry.Lookup(typ); ok {
		return fmt.Sprintf("[%s](#%s)", typ, Anchor(target.Kind, target.QualifiedName))
	}
	return "`" + typ + "`"
}

func writeDoc(w io.Writer, doc string) {
	if md := docMarkdown(doc); md != "" {
		fmt.Fprintln(w, md)
		fmt.Fprintln(w)
	}
}
