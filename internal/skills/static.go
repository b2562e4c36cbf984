package skills

import (
	"context"
	"sort"
	"strings"
)

// StaticRetriever is the explicit fallback mode used when no vector index
// endpoint is configured. It scores the seeded corpus by keyword overlap.
// It never pretends to be the real index: Mode() reports "static" and the
// serve path logs which mode is active at startup.
type StaticRetriever struct {
	corpus []SkillRecord
}

// NewStaticRetriever creates a retriever over the given corpus. A nil
// corpus falls back to the built-in seed.
func NewStaticRetriever(corpus []SkillRecord) *StaticRetriever {
	if corpus == nil {
		corpus = SeedCorpus()
	}
	return &StaticRetriever{corpus: corpus}
}

func (r *StaticRetriever) Mode() string { return "static" }

// Search scores corpus entries by token overlap with the query across
// description, thematic unit and knowledge object. Zero-score entries are
// excluded; an empty result is not an error.
func (r *StaticRetriever) Search(_ context.Context, query string, filters SearchFilters, limit int) ([]SkillRecord, error) {
	if limit <= 0 {
		limit = 5
	}

	tokens := tokenize(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	type scored struct {
		rec   SkillRecord
		score int
		pos   int
	}

	var hits []scored
	for i, rec := range r.corpus {
		if filters.GradeBand != "" && rec.GradeBand != filters.GradeBand {
			continue
		}
		haystack := strings.ToLower(rec.Description + " " + rec.ThematicUnit + " " + rec.KnowledgeObject)
		score := 0
		for _, tok := range tokens {
			if strings.Contains(haystack, tok) {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, scored{rec: rec, score: score, pos: i})
		}
	}

	// Stable ordering: score desc, then corpus order.
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].pos < hits[j].pos
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]SkillRecord, len(hits))
	for i, h := range hits {
		out[i] = h.rec
	}
	return out, nil
}

// tokenize lowercases and splits a query, dropping short stop-ish tokens.
func tokenize(q string) []string {
	fields := strings.Fields(strings.ToLower(q))
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?()[]\"'")
		if len([]rune(f)) < 3 {
			continue
		}
		out = append(out, f)
	}
	return out
}
