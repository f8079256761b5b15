package services

import (
	"project_analysis_backend/models"
	"strings"
)

// MergeResults folds results left to right. The first non-empty value of a
// field wins; collections are unioned by case-insensitive name or content,
// keeping the casing that arrived first. Inputs are not modified.
func MergeResults(results []*models.AnalysisResult) *models.AnalysisResult {
	var acc *models.AnalysisResult
	for _, r := range results {
		if r == nil {
			continue
		}
		if acc == nil {
			acc = seedResult(r)
			continue
		}
		mergeInto(acc, r)
	}
	if acc == nil {
		return (&models.AnalysisResult{}).Normalize()
	}
	return acc.Normalize()
}

// seedResult copies r and dedups it, so the invariant holds even when a
// single model reply repeats itself.
func seedResult(r *models.AnalysisResult) *models.AnalysisResult {
	acc := &models.AnalysisResult{
		ProjectName: r.ProjectName,
		Description: r.Description,
	}
	if r.Errors != nil {
		acc.Errors = append([]models.FileError(nil), r.Errors...)
	}
	mergeCollections(acc, r)
	return acc
}

func mergeInto(acc, in *models.AnalysisResult) {
	if acc.ProjectName == "" {
		acc.ProjectName = in.ProjectName
	}

	switch {
	case acc.Description == "":
		acc.Description = in.Description
	case in.Description != "" && !strings.Contains(acc.Description, in.Description):
		acc.Description += "\n\n" + in.Description
	}

	mergeCollections(acc, in)
	acc.Errors = append(acc.Errors, in.Errors...)
}

func mergeCollections(acc, in *models.AnalysisResult) {
	for _, p := range in.Phases {
		if indexByName(len(acc.Phases), func(i int) string { return acc.Phases[i].Name }, p.Name) < 0 {
			acc.Phases = append(acc.Phases, p)
		}
	}

	for _, p := range in.Personas {
		i := indexByName(len(acc.Personas), func(i int) string { return acc.Personas[i].Name }, p.Name)
		if i < 0 {
			acc.Personas = append(acc.Personas, models.Persona{
				Name:        p.Name,
				Description: p.Description,
				Goals:       unionFold(nil, p.Goals),
				PainPoints:  unionFold(nil, p.PainPoints),
			})
			continue
		}
		existing := &acc.Personas[i]
		if existing.Description == "" {
			existing.Description = p.Description
		}
		existing.Goals = unionFold(existing.Goals, p.Goals)
		existing.PainPoints = unionFold(existing.PainPoints, p.PainPoints)
	}

	acc.Requirements = unionFold(acc.Requirements, in.Requirements)
}

func indexByName(n int, name func(int) string, want string) int {
	for i := 0; i < n; i++ {
		if strings.EqualFold(name(i), want) {
			return i
		}
	}
	return -1
}

// unionFold appends the items of add missing from base (case-insensitively)
// and returns a new slice.
func unionFold(base, add []string) []string {
	out := make([]string, 0, len(base)+len(add))
	seen := make(map[string]struct{}, len(base)+len(add))
	for _, list := range [][]string{base, add} {
		for _, s := range list {
			k := strings.ToLower(s)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
