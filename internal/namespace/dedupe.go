package namespace

import (
	"github.com/charmbracelet/log"

	"github.com/agentflare-ai/go-dock/internal/element"
)

// KeyFunc returns the identity two records are compared by when removing
// duplicates.
type KeyFunc func(*element.Record) string

var (
	// ByShortName compares declared names. It is the default.
	ByShortName KeyFunc = element.ShortName
	// ByQualifiedName compares qualified names, so only elements landing on
	// the same path collapse.
	ByQualifiedName KeyFunc = element.QualifiedName
)

// Dedupe drops elements whose short name was already seen when scanning the
// discovery order backwards. The surviving occurrence of a name is the last
// one discovered, so a symbol re-exported by a package (discovered after its
// modules) wins over its defining module. Survivors keep their relative
// order.
//
// Unrelated elements that share a short name collapse too.
func Dedupe(records []element.Record) []element.Record {
	return dedupe(records, ByShortName, nil)
}

// DedupeBy is Dedupe with a caller-chosen identity.
func DedupeBy(records []element.Record, key KeyFunc) []element.Record {
	return dedupe(records, key, nil)
}

func dedupe(records []element.Record, key KeyFunc, logger *log.Logger) []element.Record {
	if key == nil {
		key = ByShortName
	}
	seen := make(map[string]struct{}, len(records))
	reversed := make([]element.Record, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		name := key(&records[i])
		if _, ok := seen[name]; ok {
			if logger != nil {
				logger.Debug("dropping duplicate element",
					"key", name,
					"qualified", element.QualifiedName(&records[i]))
			}
			continue
		}
		seen[name] = struct{}{}
		reversed = append(reversed, records[i])
	}
	out := make([]element.Record, len(reversed))
	for i, rec := range reversed {
		out[len(reversed)-1-i] = rec
	}
	return out
}
