package models

import "fmt"

type Phase struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Persona struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Goals       []string `json:"goals"`
	PainPoints  []string `json:"painPoints"`
}

// FileError describes one file of a batch that could not be analyzed.
type FileError struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// AnalysisResult is the structured project data extracted from a text segment,
// a file or a whole upload batch.
type AnalysisResult struct {
	ProjectName  string      `json:"projectName"`
	Description  string      `json:"description"`
	Phases       []Phase     `json:"phases"`
	Personas     []Persona   `json:"personas"`
	Requirements []string    `json:"requirements"`
	Errors       []FileError `json:"errors,omitempty"`
}

// Normalize replaces missing collections with empty ones so the JSON contract
// always carries arrays instead of null.
func (r *AnalysisResult) Normalize() *AnalysisResult {
	if r.Phases == nil {
		r.Phases = []Phase{}
	}
	if r.Personas == nil {
		r.Personas = []Persona{}
	}
	for i := range r.Personas {
		if r.Personas[i].Goals == nil {
			r.Personas[i].Goals = []string{}
		}
		if r.Personas[i].PainPoints == nil {
			r.Personas[i].PainPoints = []string{}
		}
	}
	if r.Requirements == nil {
		r.Requirements = []string{}
	}
	return r
}

// Clone returns a deep copy, so merging never aliases slices of its inputs.
func (r *AnalysisResult) Clone() *AnalysisResult {
	if r == nil {
		return nil
	}
	out := &AnalysisResult{
		ProjectName:  r.ProjectName,
		Description:  r.Description,
		Phases:       append([]Phase(nil), r.Phases...),
		Requirements: append([]string(nil), r.Requirements...),
	}
	if r.Personas != nil {
		out.Personas = make([]Persona, len(r.Personas))
		for i, p := range r.Personas {
			out.Personas[i] = Persona{
				Name:        p.Name,
				Description: p.Description,
				Goals:       append([]string(nil), p.Goals...),
				PainPoints:  append([]string(nil), p.PainPoints...),
			}
		}
	}
	if r.Errors != nil {
		out.Errors = append([]FileError(nil), r.Errors...)
	}
	return out
}

// FailedResult encodes a file-level failure into an otherwise empty result.
func FailedResult(err error) *AnalysisResult {
	return (&AnalysisResult{
		Description: fmt.Sprintf("Error: %s", err.Error()),
	}).Normalize()
}
