package config

import (
	"fmt"

	"github.com/samber/lo"

	"serde-generator/internal/analyze"
	"serde-generator/internal/diagnostic"
	"serde-generator/internal/match"
)

// maxSuggestions bounds the "did you mean" list of a diagnostic.
const maxSuggestions = 3

// Validate checks a configuration against the loaded type graph. It never
// stops at the first problem.
func Validate(f *File, graph *analyze.TypeGraph) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError(diagnostic.CodeBadConfig, "config is nil", "", "")
		return res
	}

	if graph == nil {
		res.AddError(diagnostic.CodeBadConfig, "type graph is nil", "", "")
		return res
	}

	if f.Version != DefaultVersion {
		res.AddError(diagnostic.CodeBadConfig, fmt.Sprintf("unsupported config version %q", f.Version), "", "")
	}

	if f.Generation.Workers < 0 {
		res.AddError(diagnostic.CodeBadConfig, "generation.workers must not be negative", "", "")
	}

	seen := map[analyze.TypeID]string{}

	for i := range f.Types {
		tc := &f.Types[i]

		if tc.Type == "" {
			res.AddError(diagnostic.CodeBadConfig, fmt.Sprintf("types[%d] has no type name", i), "", "")
			continue
		}

		t := ResolveTypeID(tc.Type, graph)
		if t == nil {
			res.AddError(diagnostic.CodeUnknownType, fmt.Sprintf("type %q not found", tc.Type), tc.Type, "",
				match.Suggest(tc.Type, typeNames(graph), maxSuggestions)...)

			continue
		}

		if prev, dup := seen[t.ID]; dup {
			res.AddError(diagnostic.CodeBadConfig,
				fmt.Sprintf("type %s configured twice (also as %q)", t.ID, prev), tc.Type, "")

			continue
		}

		seen[t.ID] = tc.Type

		validateMembers(res, tc, t)
	}

	return res
}

func validateMembers(res *diagnostic.Diagnostics, tc *TypeConfig, t *analyze.TypeInfo) {
	if len(tc.Members) == 0 {
		return
	}

	if t.Kind != analyze.TypeKindStruct {
		res.AddError(diagnostic.CodeBadConfig,
			fmt.Sprintf("members configured on %s type", t.Kind), tc.Type, "")

		return
	}

	fields := lo.FilterMap(t.Fields, func(f analyze.FieldInfo, _ int) (string, bool) {
		return f.Name, f.Exported
	})

	seen := map[string]bool{}

	for _, m := range tc.Members {
		switch {
		case m.Name == "":
			res.AddError(diagnostic.CodeBadConfig, "member record has no name", tc.Type, "")
			continue
		case seen[m.Name]:
			res.AddError(diagnostic.CodeBadConfig, "member configured twice", tc.Type, m.Name)
			continue
		}

		seen[m.Name] = true

		if !lo.Contains(fields, m.Name) {
			res.AddError(diagnostic.CodeUnknownMember,
				fmt.Sprintf("%s has no exported member %q", tc.Type, m.Name), tc.Type, m.Name,
				match.Suggest(m.Name, fields, maxSuggestions)...)

			continue
		}

		if m.Skip && (m.Rename != "" || m.Wrap != "" || m.Optional || m.KeepNull) {
			res.AddWarning(diagnostic.CodeBadConfig,
				"skipped member carries other options that have no effect", tc.Type, m.Name)
		}
	}
}
