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

// CreateInput is the generation context for one creator call.
type CreateInput struct {
	Skills    []skills.SkillRecord
	Concepts  []string
	GradeBand string

	// Count is how many new statements are still needed this attempt.
	Count int

	// Exclude carries already-accepted statements so the creator does
	// not duplicate them.
	Exclude []string
}

// Creator produces new candidate statements for the target skills.
type Creator struct {
	provider llm.Provider
	cfg      Config
	system   string
}

// NewCreator creates a Creator.
func NewCreator(provider llm.Provider, cfg Config) *Creator {
	return &Creator{
		provider: provider,
		cfg:      cfg,
		system:   prompts.MustLoad("creator"),
	}
}

// draftsOutput is the raw model response.
type draftsOutput struct {
	Questions []struct {
		Statement  string   `json:"statement"`
		SkillCodes []string `json:"skill_codes"`
	} `json:"questions"`
}

// Create asks for in.Count fresh statements. Statements that merely echo
// an excluded one are dropped here rather than sent on to the solver.
func (c *Creator) Create(ctx context.Context, in CreateInput) ([]Draft, error) {
	if in.Count <= 0 {
		return nil, nil
	}

	ctx = llm.WithPurpose(ctx, "create")

	req := llm.Request{
		System: c.system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildCreateMessage(in)},
		},
		Schema:      DraftsSchema,
		MaxTokens:   c.cfg.CreateMaxTokens,
		Temperature: c.cfg.Temperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("creator call: %w", err)
	}

	var raw draftsOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse creator response: %w", err)
	}

	excluded := make(map[string]bool, len(in.Exclude))
	for _, s := range in.Exclude {
		excluded[normalizeStatement(s)] = true
	}

	var drafts []Draft
	for _, q := range raw.Questions {
		stmt := strings.TrimSpace(q.Statement)
		if stmt == "" || excluded[normalizeStatement(stmt)] {
			continue
		}
		drafts = append(drafts, Draft{
			Statement:  stmt,
			SkillCodes: q.SkillCodes,
		})
	}
	return drafts, nil
}

// normalizeStatement collapses whitespace and case for duplicate checks.
func normalizeStatement(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
