package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/varix/internal/llm"
	"github.com/abhisek/varix/internal/prompts"
	"github.com/abhisek/varix/internal/skills"
)

// Interpreter maps an original question to the curriculum skills it
// exercises. It consults the skill retriever before calling the model and
// only accepts codes the retriever actually produced.
type Interpreter struct {
	provider  llm.Provider
	retriever skills.Retriever
	cfg       Config
	system    string
}

// NewInterpreter creates an Interpreter.
func NewInterpreter(provider llm.Provider, retriever skills.Retriever, cfg Config) *Interpreter {
	return &Interpreter{
		provider:  provider,
		retriever: retriever,
		cfg:       cfg,
		system:    prompts.MustLoad("interpreter"),
	}
}

// interpretOutput is the raw model response before code resolution.
type interpretOutput struct {
	SkillCodes       []string `json:"skill_codes"`
	CoreConcepts     []string `json:"core_concepts"`
	RecommendedGrade string   `json:"recommended_grade"`
}

// Interpret runs once per session and is not retried internally; any
// failure surfaces as *InterpretationError.
func (it *Interpreter) Interpret(ctx context.Context, question string) (*IdentifiedSkills, error) {
	if strings.TrimSpace(question) == "" {
		return nil, &InterpretationError{Err: fmt.Errorf("question text is empty")}
	}

	ctx = llm.WithPurpose(ctx, "interpret")

	// First retrieval pass: the raw question text.
	candidates, err := it.retriever.Search(ctx, question, skills.SearchFilters{}, it.cfg.RetrievalLimit)
	if err != nil {
		return nil, &InterpretationError{Err: fmt.Errorf("skill retrieval: %w", err)}
	}
	retrievalCalls := 1

	req := llm.Request{
		System: it.system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildInterpretMessage(question, candidates)},
		},
		Schema:    IdentifiedSkillsSchema,
		MaxTokens: it.cfg.InterpretMaxTokens,
	}

	resp, err := it.provider.Generate(ctx, req)
	if err != nil {
		return nil, &InterpretationError{Err: err}
	}

	var raw interpretOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &InterpretationError{Err: fmt.Errorf("parse interpreter response: %w", err)}
	}

	// Second retrieval pass: the extracted concepts, grade-filtered.
	// Widens the candidate pool so concept-level codes can resolve too.
	if len(raw.CoreConcepts) > 0 && retrievalCalls < it.cfg.MaxRetrievalCalls {
		extra, err := it.retriever.Search(ctx,
			strings.Join(raw.CoreConcepts, " "),
			skills.SearchFilters{GradeBand: raw.RecommendedGrade},
			it.cfg.RetrievalLimit)
		if err == nil {
			candidates = skills.Dedup(append(candidates, extra...))
		}
		retrievalCalls++
	}

	resolved := resolveCodes(raw.SkillCodes, candidates)
	if len(resolved) == 0 {
		return nil, &InterpretationError{
			Err: fmt.Errorf("no skill code resolved against the retrieved candidates"),
		}
	}

	return &IdentifiedSkills{
		Skills:           resolved,
		CoreConcepts:     raw.CoreConcepts,
		RecommendedGrade: raw.RecommendedGrade,
	}, nil
}

// resolveCodes maps model-selected codes back to retrieved records.
// Codes the retriever never produced are dropped, not trusted.
func resolveCodes(codes []string, candidates []skills.SkillRecord) []skills.SkillRecord {
	byCode := make(map[string]skills.SkillRecord, len(candidates))
	for _, c := range candidates {
		byCode[c.Code] = c
	}

	var out []skills.SkillRecord
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if seen[code] {
			continue
		}
		seen[code] = true
		if rec, ok := byCode[code]; ok {
			out = append(out, rec)
		}
	}
	return out
}
