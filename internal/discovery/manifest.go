package discovery

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/agentflare-ai/go-dock/internal/element"
)

// ManifestSource reads records from a manifest file. JSON manifests are
// read through the same YAML decoder.
//
//	elements:
//	  - shape: module
//	    name: shop.__init__
//	    doc: Shop front.
//	  - shape: callable
//	    name: checkout
//	    qualname: checkout
//	    module: shop.cart
//	    annotations:
//	      cart: shop.cart.Cart
//	      coupon: null
//	      return: {type_repr: "typing.List[int]"}
//	    dock:
//	      short: Checks a cart out.
//	      arguments: {cart: the cart}
//	      sections: {Example: "checkout(cart)"}
//	    source: "def checkout(cart): ..."
//	    language: python
//	failures:
//	  - module: shop.legacy
//	    error: "ImportError: no module named six"
type ManifestSource struct {
	Path   string
	Logger *log.Logger
}

type manifest struct {
	Elements []manifestElement `yaml:"elements"`
	Failures []manifestFailure `yaml:"failures"`
}

type manifestFailure struct {
	Module string `yaml:"module"`
	Error  string `yaml:"error"`
}

type manifestElement struct {
	Shape       string       `yaml:"shape"`
	Name        string       `yaml:"name"`
	Qualname    string       `yaml:"qualname"`
	Module      string       `yaml:"module"`
	Initializer bool         `yaml:"initializer"`
	TypeRepr    string       `yaml:"type_repr"`
	Doc         string       `yaml:"doc"`
	Annotations typeMap      `yaml:"annotations"`
	Dock        *manifestTag `yaml:"dock"`
	Source      string       `yaml:"source"`
	Language    string       `yaml:"language"`
}

type manifestTag struct {
	Short     string  `yaml:"short"`
	Arguments textMap `yaml:"arguments"`
	Fields    textMap `yaml:"fields"`
	Sections  textMap `yaml:"sections"`
}

// typeRef is an annotation given as element metadata rather than text.
type typeRef struct {
	Name     string `yaml:"name"`
	Qualname string `yaml:"qualname"`
	Module   string `yaml:"module"`
	TypeRepr string `yaml:"type_repr"`
}

// textMap is a mapping of string values that keeps document order.
type textMap element.Pairs

func (m *textMap) UnmarshalYAML(node *yaml.Node) error {
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	var pairs element.Pairs
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		var text string
		if !isNull(val) {
			if err := val.Decode(&text); err != nil {
				return fmt.Errorf("line %d: %s: %w", val.Line, key.Value, err)
			}
		}
		pairs.Set(key.Value, text)
	}
	*m = textMap(pairs)
	return nil
}

// typeMap is an annotation mapping. Values are type text, null for a
// missing annotation, or a type reference resolved to its qualified name.
type typeMap element.Pairs

func (m *typeMap) UnmarshalYAML(node *yaml.Node) error {
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	var pairs element.Pairs
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		var text string
		switch {
		case isNull(val):
		case val.Kind == yaml.MappingNode:
			var ref typeRef
			if err := val.Decode(&ref); err != nil {
				return fmt.Errorf("line %d: %s: %w", val.Line, key.Value, err)
			}
			text = element.QualifiedName(&element.Record{
				Shape:    element.ShapeType,
				Name:     ref.Name,
				Scope:    ref.Qualname,
				Module:   ref.Module,
				TypeExpr: ref.TypeRepr,
			})
		default:
			if err := val.Decode(&text); err != nil {
				return fmt.Errorf("line %d: %s: %w", val.Line, key.Value, err)
			}
		}
		pairs.Set(key.Value, text)
	}
	*m = typeMap(pairs)
	return nil
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}

// Discover reads and converts the manifest. Listed failures are logged as
// warnings; the modules they name simply contribute no records.
func (s *ManifestSource) Discover(ctx context.Context) ([]element.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return s.decode(data)
}

func (s *ManifestSource) decode(data []byte) ([]element.Record, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", s.Path, err)
	}
	for _, f := range m.Failures {
		s.logger().Warn("failed to import module", "module", f.Module, "error", f.Error)
	}
	records := make([]element.Record, 0, len(m.Elements))
	for i, el := range m.Elements {
		rec, err := el.record()
		if err != nil {
			return nil, fmt.Errorf("manifest %s: element %d: %w", s.Path, i, err)
		}
		records = append(records, rec)
	}
	s.logger().Debug("manifest loaded", "path", s.Path, "elements", len(records), "failures", len(m.Failures))
	return records, nil
}

func (s *ManifestSource) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

func (el manifestElement) record() (element.Record, error) {
	shape, ok := element.ParseShape(el.Shape)
	if !ok {
		return element.Record{}, fmt.Errorf("unknown shape %q", el.Shape)
	}
	if el.Name == "" && el.TypeRepr == "" {
		return element.Record{}, fmt.Errorf("element has neither name nor type_repr")
	}
	rec := element.Record{
		Shape:       shape,
		Name:        el.Name,
		Scope:       el.Qualname,
		Module:      el.Module,
		Initializer: el.Initializer,
		TypeExpr:    el.TypeRepr,
		Doc:         el.Doc,
		Annotations: element.Pairs(el.Annotations),
		Source:      el.Source,
		SourceLang:  el.Language,
	}
	if el.Dock != nil {
		rec.Tag = &element.DocTag{
			Short:     el.Dock.Short,
			Arguments: element.Pairs(el.Dock.Arguments),
			Fields:    element.Pairs(el.Dock.Fields),
			Sections:  element.Pairs(el.Dock.Sections),
		}
	}
	return rec, nil
}
