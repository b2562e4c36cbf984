package skills

import (
	"context"
	"fmt"
	"strings"
)

// SkillRecord is one BNCC curriculum competency descriptor. Records are
// immutable reference data sourced from the curriculum corpus.
type SkillRecord struct {
	// Code is the BNCC skill code, e.g. "EF08MA06" or "EM13MAT302".
	Code string `json:"code"`

	// Description is the competency text.
	Description string `json:"description"`

	// GradeBand is the school year the skill belongs to, e.g. "8º" or "1ª".
	GradeBand string `json:"grade_band"`

	// ThematicUnit groups skills by strand, e.g. "Álgebra", "Geometria".
	ThematicUnit string `json:"thematic_unit"`

	// KnowledgeObject is the curriculum's knowledge-object label.
	KnowledgeObject string `json:"knowledge_object"`
}

// SearchFilters narrows a retrieval query.
type SearchFilters struct {
	// GradeBand filters results to one school year. Empty means no filter.
	GradeBand string
}

// Retriever is semantic search over the skill corpus. Implementations
// return an empty slice when nothing matches or the backing index is
// unavailable; "not found" is never an error.
type Retriever interface {
	Search(ctx context.Context, query string, filters SearchFilters, limit int) ([]SkillRecord, error)

	// Mode reports the retrieval backend in use ("weaviate" or "static").
	// The static corpus is a degraded mode and callers are expected to
	// make it visible, not hide it.
	Mode() string
}

// Format renders records as a stable numbered list for prompt context.
// Formatting the same records twice yields the same text.
func Format(records []SkillRecord) string {
	if len(records) == 0 {
		return "No matching skills found."
	}

	var b strings.Builder
	for i, r := range records {
		fmt.Fprintf(&b, "%d. [%s] %s", i+1, r.Code, r.Description)
		if r.GradeBand != "" {
			fmt.Fprintf(&b, " (year: %s", r.GradeBand)
			if r.ThematicUnit != "" {
				fmt.Fprintf(&b, ", unit: %s", r.ThematicUnit)
			}
			b.WriteString(")")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Dedup removes duplicate codes, keeping first occurrence order.
func Dedup(records []SkillRecord) []SkillRecord {
	seen := make(map[string]bool, len(records))
	out := records[:0:0]
	for _, r := range records {
		if seen[r.Code] {
			continue
		}
		seen[r.Code] = true
		out = append(out, r)
	}
	return out
}
