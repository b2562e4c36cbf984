package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/varix/internal/llm"
	"github.com/abhisek/varix/internal/prompts"
)

// checkStructure runs the mechanical consistency checks on a candidate
// before spending a model call on it. Returns "" when the item passes,
// otherwise a reject reason code.
func checkStructure(item *CandidateItem) string {
	if strings.TrimSpace(item.Statement) == "" {
		return "unsolvable"
	}
	if strings.TrimSpace(item.Answer) == "" {
		return "wrong_answer"
	}
	if len(item.Options) < 2 {
		return "ambiguous_options"
	}

	correct, ok := item.Options[item.CorrectLetter]
	if !ok {
		// The correct letter must key into the options mapping.
		return "ambiguous_options"
	}

	normCorrect := strings.TrimSpace(strings.ToLower(correct))
	for letter, text := range item.Options {
		if letter == item.CorrectLetter {
			continue
		}
		if strings.TrimSpace(strings.ToLower(text)) == normCorrect {
			return "duplicate_option"
		}
	}
	return ""
}

// Validator reviews a solved candidate for internal consistency.
type Validator struct {
	provider llm.Provider
	cfg      Config
	system   string
}

// NewValidator creates a Validator.
func NewValidator(provider llm.Provider, cfg Config) *Validator {
	return &Validator{
		provider: provider,
		cfg:      cfg,
		system:   prompts.MustLoad("validator"),
	}
}

// Review returns the model's verdict on a structurally sound candidate.
// It runs at zero temperature: the same item should get the same verdict.
func (v *Validator) Review(ctx context.Context, item *CandidateItem) (*Verdict, error) {
	ctx = llm.WithPurpose(ctx, "review")

	req := llm.Request{
		System: v.system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildReviewMessage(*item)},
		},
		Schema:    VerdictSchema,
		MaxTokens: v.cfg.ReviewMaxTokens,
	}

	resp, err := v.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("validator call: %w", err)
	}

	var verdict Verdict
	if err := json.Unmarshal(resp.Content, &verdict); err != nil {
		return nil, fmt.Errorf("parse validator response: %w", err)
	}
	return &verdict, nil
}
