package questiongen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/varix/internal/llm"
	"github.com/abhisek/varix/internal/prompts"
)

// Solver computes the authoritative answer-key entry for one statement.
type Solver struct {
	provider llm.Provider
	cfg      Config
	system   string
}

// NewSolver creates a Solver.
func NewSolver(provider llm.Provider, cfg Config) *Solver {
	return &Solver{
		provider: provider,
		cfg:      cfg,
		system:   prompts.MustLoad("solver"),
	}
}

// answerItemOutput is the raw model response.
type answerItemOutput struct {
	Answer          string            `json:"answer"`
	SolutionSteps   []string          `json:"solution_steps"`
	AppliedConcepts []string          `json:"applied_concepts"`
	CommonErrors    []string          `json:"common_errors"`
	Options         map[string]string `json:"options"`
	CorrectLetter   string            `json:"correct_letter"`
}

// Solve produces the CandidateItem for a draft. The sequence number is
// assigned later, on acceptance.
func (s *Solver) Solve(ctx context.Context, d Draft) (*CandidateItem, error) {
	ctx = llm.WithPurpose(ctx, "solve")

	req := llm.Request{
		System: s.system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildSolveMessage(d)},
		},
		Schema:      AnswerItemSchema,
		MaxTokens:   s.cfg.SolveMaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("solver call: %w", err)
	}

	var raw answerItemOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse solver response: %w", err)
	}

	return &CandidateItem{
		Statement:       d.Statement,
		Answer:          raw.Answer,
		SolutionSteps:   raw.SolutionSteps,
		AppliedConcepts: raw.AppliedConcepts,
		CommonErrors:    raw.CommonErrors,
		Options:         raw.Options,
		CorrectLetter:   raw.CorrectLetter,
	}, nil
}
