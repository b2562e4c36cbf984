package correction

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/abhisek/varix/internal/questiongen"
)

// Grade scores the submitted answers against the answer key. Missing
// entries count as incorrect, never as a processing error, and the
// denominator is always the key length. A skill linked to both a correct
// and an incorrect question appears in both SkillsToReview and Strengths.
//
// The result carries templated feedback text; Corrector.Enrich replaces
// it with model-written feedback when available.
func Grade(key *questiongen.AnswerKey, questions []questiongen.GeneratedQuestion, answers map[int]string) *Report {
	codesByNumber := make(map[int][]string, len(questions))
	for _, q := range questions {
		codesByNumber[q.Number] = q.SkillCodes
	}

	total := len(key.Items)
	correct := 0
	perQuestion := make([]QuestionResult, 0, total)
	review := make(map[string]bool)
	strengths := make(map[string]bool)

	for _, item := range key.Items {
		choice := normalizeLetter(answers[item.SequenceNumber])
		wasCorrect := choice != "" && choice == normalizeLetter(item.CorrectLetter)
		if wasCorrect {
			correct++
		}

		for _, code := range codesByNumber[item.SequenceNumber] {
			if wasCorrect {
				strengths[code] = true
			} else {
				review[code] = true
			}
		}

		perQuestion = append(perQuestion, QuestionResult{
			QuestionNumber: item.SequenceNumber,
			UserChoice:     choice,
			CorrectChoice:  normalizeLetter(item.CorrectLetter),
			WasCorrect:     wasCorrect,
			FeedbackText:   templateFeedback(choice, wasCorrect, item),
		})
	}

	percent := 0.0
	if total > 0 {
		percent = math.Round(1000*float64(correct)/float64(total)) / 10
	}

	return &Report{
		SummaryText:    templateSummary(correct, total, percent),
		TotalQuestions: total,
		TotalCorrect:   correct,
		PercentCorrect: percent,
		PerQuestion:    perQuestion,
		SkillsToReview: sortedKeys(review),
		Strengths:      sortedKeys(strengths),
	}
}

func normalizeLetter(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// templateFeedback is the deterministic fallback used when the corrector
// role is unavailable.
func templateFeedback(choice string, wasCorrect bool, item questiongen.CandidateItem) string {
	correctText := item.Options[item.CorrectLetter]
	if wasCorrect {
		return fmt.Sprintf("Você acertou. A alternativa %s) %s está correta.",
			item.CorrectLetter, correctText)
	}
	if choice == "" {
		return fmt.Sprintf("Questão não respondida. A alternativa correta é %s) %s.",
			item.CorrectLetter, correctText)
	}
	return fmt.Sprintf("Você marcou %s, mas a alternativa correta é %s) %s.",
		choice, item.CorrectLetter, correctText)
}

func templateSummary(correct, total int, percent float64) string {
	return fmt.Sprintf("Você acertou %d de %d questões (%.1f%%).", correct, total, percent)
}
