package config

import (
	"sort"
	"strings"

	"serde-generator/internal/analyze"
)

// ResolveTypeID resolves a type name like:
//   - "serde-generator/examples/basic.Order" (full)
//   - "basic.Order" (short)
//   - "Order" (name only, when exactly one loaded type has that name).
func ResolveTypeID(typeIDStr string, graph *analyze.TypeGraph) *analyze.TypeInfo {
	if graph == nil || typeIDStr == "" {
		return nil
	}

	pkgStr, name := analyze.SplitQualified(typeIDStr)
	if name == "" {
		return nil
	}

	if pkgStr == "" {
		var found *analyze.TypeInfo

		for id, t := range graph.Types {
			if id.Name != name {
				continue
			}

			if found != nil {
				return nil
			}

			found = t
		}

		return found
	}

	if t := graph.GetType(analyze.TypeID{PkgPath: pkgStr, Name: name}); t != nil {
		return t
	}

	for id, t := range graph.Types {
		if id.Name == name && strings.HasSuffix(id.PkgPath, "/"+pkgStr) {
			return t
		}
	}

	return nil
}

// typeNames lists the short names of every loaded type, for suggestions.
func typeNames(graph *analyze.TypeGraph) []string {
	out := make([]string, 0, len(graph.Types))
	for id := range graph.Types {
		out = append(out, graph.PackageName(id.PkgPath)+"."+id.Name)
	}

	sort.Strings(out)

	return out
}
