package correction

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/varix/internal/llm"
	"github.com/abhisek/varix/internal/prompts"
	"github.com/abhisek/varix/internal/questiongen"
)

// FeedbackSchema is the corrector's output shape.
var FeedbackSchema = &llm.Schema{
	Name:        "correction-feedback",
	Description: "Natural-language feedback for a graded answer sheet",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary_text": map[string]any{
				"type":        "string",
				"description": "Overall assessment of the student's performance, in Brazilian Portuguese",
			},
			"per_question": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question_number": map[string]any{"type": "integer"},
						"feedback_text": map[string]any{
							"type":        "string",
							"description": "What the student got right or where the reasoning went wrong",
						},
					},
					"required":             []any{"question_number", "feedback_text"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"summary_text", "per_question"},
		"additionalProperties": false,
	},
}

// Corrector runs the optional qualitative-feedback pass over a graded
// report. It is best effort: any failure leaves the templated text from
// Grade in place and is only logged.
type Corrector struct {
	provider llm.Provider
	logger   *slog.Logger
	system   string
}

// NewCorrector creates a Corrector.
func NewCorrector(provider llm.Provider, logger *slog.Logger) *Corrector {
	return &Corrector{
		provider: provider,
		logger:   logger,
		system:   prompts.MustLoad("corrector"),
	}
}

type feedbackOutput struct {
	SummaryText string `json:"summary_text"`
	PerQuestion []struct {
		QuestionNumber int    `json:"question_number"`
		FeedbackText   string `json:"feedback_text"`
	} `json:"per_question"`
}

// Enrich replaces the report's templated summary and per-question text
// with model-written feedback. The numeric fields are never touched.
func (c *Corrector) Enrich(ctx context.Context, report *Report, key *questiongen.AnswerKey) {
	ctx = llm.WithPurpose(ctx, "correct")

	resp, err := c.provider.Generate(ctx, llm.Request{
		System: c.system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildFeedbackMessage(report, key)},
		},
		Schema:    FeedbackSchema,
		MaxTokens: 1024,
	})
	if err != nil {
		c.logger.Warn("corrector unavailable, keeping templated feedback", "error", err)
		return
	}

	var out feedbackOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		c.logger.Warn("corrector response unusable, keeping templated feedback", "error", err)
		return
	}

	if strings.TrimSpace(out.SummaryText) != "" {
		report.SummaryText = out.SummaryText
	}
	byNumber := make(map[int]string, len(out.PerQuestion))
	for _, fq := range out.PerQuestion {
		if strings.TrimSpace(fq.FeedbackText) != "" {
			byNumber[fq.QuestionNumber] = fq.FeedbackText
		}
	}
	for i := range report.PerQuestion {
		if text, ok := byNumber[report.PerQuestion[i].QuestionNumber]; ok {
			report.PerQuestion[i].FeedbackText = text
		}
	}
}

// buildFeedbackMessage lays out the full grading detail for the model:
// each question, the key's solution, and what the student chose.
func buildFeedbackMessage(report *Report, key *questiongen.AnswerKey) string {
	itemByNumber := make(map[int]questiongen.CandidateItem, len(key.Items))
	for _, item := range key.Items {
		itemByNumber[item.SequenceNumber] = item
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Resultado: %d de %d questões corretas (%.1f%%).\n\n",
		report.TotalCorrect, report.TotalQuestions, report.PercentCorrect)

	for _, res := range report.PerQuestion {
		item := itemByNumber[res.QuestionNumber]
		fmt.Fprintf(&b, "Questão %d: %s\n", res.QuestionNumber, item.Statement)
		fmt.Fprintf(&b, "Resposta correta: %s) %s\n", item.CorrectLetter, item.Options[item.CorrectLetter])
		if res.UserChoice == "" {
			b.WriteString("Resposta do aluno: (em branco)\n")
		} else {
			fmt.Fprintf(&b, "Resposta do aluno: %s) %s\n", res.UserChoice, item.Options[res.UserChoice])
		}
		if len(item.SolutionSteps) > 0 {
			fmt.Fprintf(&b, "Resolução: %s\n", strings.Join(item.SolutionSteps, " | "))
		}
		if len(item.CommonErrors) > 0 {
			fmt.Fprintf(&b, "Erros comuns: %s\n", strings.Join(item.CommonErrors, "; "))
		}
		b.WriteString("\n")
	}
	return b.String()
}
