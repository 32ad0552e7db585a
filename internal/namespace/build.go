package namespace

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/agentflare-ai/go-dock/internal/element"
)

// BuildOptions tune a build pass.
type BuildOptions struct {
	// Key identifies duplicates. Nil means ByShortName.
	Key    KeyFunc
	Logger *log.Logger
}

// Build deduplicates records by short name and inserts the survivors in
// order.
func Build(records []element.Record, logger *log.Logger) (*Tree, error) {
	return BuildWith(records, BuildOptions{Logger: logger})
}

// BuildWith is Build with explicit options. The first insertion failure
// aborts the build; no partially built tree is returned.
func BuildWith(records []element.Record, opts BuildOptions) (*Tree, error) {
	logger := opts.Logger
	unique := dedupe(records, opts.Key, logger)
	tree := NewTree()
	for i := range unique {
		node, err := tree.Insert(&unique[i])
		if err != nil {
			return nil, err
		}
		if logger != nil {
			logger.Debug("inserted element", "kind", node.Kind, "qualified", node.QualifiedName)
		}
	}
	if logger != nil {
		logger.Info("namespace tree built",
			"discovered", len(records),
			"unique", len(unique),
			"registered", tree.Registry.Len())
	}
	return tree, nil
}

// ParseKey maps a configuration value to a KeyFunc.
func ParseKey(name string) (KeyFunc, error) {
	switch name {
	case "", "name":
		return ByShortName, nil
	case "qualified":
		return ByQualifiedName, nil
	default:
		return nil, fmt.Errorf("unknown dedupe key %q (want name or qualified)", name)
	}
}
