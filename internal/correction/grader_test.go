package correction

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/abhisek/varix/internal/llm"
	"github.com/abhisek/varix/internal/questiongen"
)

func testKey() (*questiongen.AnswerKey, []questiongen.GeneratedQuestion) {
	key := &questiongen.AnswerKey{Items: []questiongen.CandidateItem{
		{
			SequenceNumber: 1, Statement: "Qual é 10% de 250?", Answer: "25",
			CorrectLetter: "A",
			Options:       map[string]string{"A": "25", "B": "20", "C": "30", "D": "35", "E": "40"},
		},
		{
			SequenceNumber: 2, Statement: "Resolva 2x + 4 = 10.", Answer: "x = 3",
			CorrectLetter: "X",
			Options:       map[string]string{"A": "1", "B": "2", "X": "3", "D": "4", "E": "5"},
		},
		{
			SequenceNumber: 3, Statement: "Qual a área de um quadrado de lado 4?", Answer: "16",
			CorrectLetter: "C",
			Options:       map[string]string{"A": "8", "B": "12", "C": "16", "D": "20", "E": "24"},
		},
	}}
	questions := []questiongen.GeneratedQuestion{
		{Number: 1, SkillCodes: []string{"EF06MA13"}},
		{Number: 2, SkillCodes: []string{"EF08MA06"}},
		{Number: 3, SkillCodes: []string{"EF08MA19", "EF06MA13"}},
	}
	return key, questions
}

func TestGrade_TwoOfThreeCorrect(t *testing.T) {
	key, questions := testKey()
	report := Grade(key, questions, map[int]string{1: "A", 2: "B", 3: "C"})

	if report.TotalCorrect != 2 {
		t.Errorf("TotalCorrect = %d, want 2", report.TotalCorrect)
	}
	if report.TotalQuestions != 3 {
		t.Errorf("TotalQuestions = %d, want 3", report.TotalQuestions)
	}
	if report.PercentCorrect != 66.7 {
		t.Errorf("PercentCorrect = %v, want 66.7", report.PercentCorrect)
	}
	if !contains(report.SkillsToReview, "EF08MA06") {
		t.Errorf("missed question 2's skill should be in SkillsToReview: %v", report.SkillsToReview)
	}
	if !contains(report.Strengths, "EF06MA13") || !contains(report.Strengths, "EF08MA19") {
		t.Errorf("correct questions' skills should be strengths: %v", report.Strengths)
	}
}

func TestGrade_MissingAnswerIsIncorrectNotError(t *testing.T) {
	key, questions := testKey()
	report := Grade(key, questions, map[int]string{1: "A", 3: "C"})

	if report.TotalQuestions != 3 {
		t.Errorf("denominator must stay at key length, got %d", report.TotalQuestions)
	}
	if report.TotalCorrect != 2 {
		t.Errorf("TotalCorrect = %d, want 2", report.TotalCorrect)
	}
	q2 := report.PerQuestion[1]
	if q2.WasCorrect || q2.UserChoice != "" {
		t.Errorf("unanswered question must be incorrect with empty choice: %+v", q2)
	}
	if q2.FeedbackText == "" {
		t.Error("unanswered question still gets templated feedback")
	}
}

func TestGrade_CaseInsensitiveTrimmed(t *testing.T) {
	key, questions := testKey()
	report := Grade(key, questions, map[int]string{1: " a ", 2: "x", 3: "C"})
	if report.TotalCorrect != 3 {
		t.Errorf("TotalCorrect = %d, want 3", report.TotalCorrect)
	}
}

func TestGrade_Deterministic(t *testing.T) {
	key, questions := testKey()
	answers := map[int]string{1: "A", 2: "B"}
	first := Grade(key, questions, answers)
	second := Grade(key, questions, answers)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must yield identical reports")
	}
}

func TestGrade_SkillInBothSets(t *testing.T) {
	// EF06MA13 backs questions 1 and 3; answer one right and one wrong.
	key, questions := testKey()
	report := Grade(key, questions, map[int]string{1: "A", 2: "X", 3: "E"})
	if !contains(report.Strengths, "EF06MA13") || !contains(report.SkillsToReview, "EF06MA13") {
		t.Errorf("a skill split across outcomes appears in both sets: strengths=%v review=%v",
			report.Strengths, report.SkillsToReview)
	}
}

func TestGrade_EmptyKey(t *testing.T) {
	report := Grade(&questiongen.AnswerKey{}, nil, nil)
	if report.TotalQuestions != 0 || report.PercentCorrect != 0 {
		t.Errorf("empty key grades to zero, got %+v", report)
	}
}

func TestCorrector_FailureKeepsTemplatedText(t *testing.T) {
	key, questions := testKey()
	report := Grade(key, questions, map[int]string{1: "A"})
	before := report.SummaryText

	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	c := NewCorrector(mock, slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.Enrich(context.Background(), report, key)

	if report.SummaryText != before {
		t.Error("failed enrichment must not disturb the templated summary")
	}
	if report.TotalCorrect != 1 {
		t.Error("numeric fields must never change")
	}
}

func TestCorrector_SuccessOverwritesText(t *testing.T) {
	key, questions := testKey()
	report := Grade(key, questions, map[int]string{1: "A", 2: "X", 3: "C"})

	b, _ := json.Marshal(map[string]any{
		"summary_text": "Excelente desempenho! Você domina porcentagens e áreas.",
		"per_question": []map[string]any{
			{"question_number": 1, "feedback_text": "Cálculo de porcentagem aplicado corretamente."},
		},
	})
	mock := llm.NewMockProvider(llm.MockResponse{Content: b})
	c := NewCorrector(mock, slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.Enrich(context.Background(), report, key)

	if report.SummaryText != "Excelente desempenho! Você domina porcentagens e áreas." {
		t.Errorf("summary not replaced: %q", report.SummaryText)
	}
	if report.PerQuestion[0].FeedbackText != "Cálculo de porcentagem aplicado corretamente." {
		t.Errorf("question 1 feedback not replaced: %q", report.PerQuestion[0].FeedbackText)
	}
	if report.PerQuestion[1].FeedbackText == "" {
		t.Error("questions the model skipped keep their templated feedback")
	}
	if report.PercentCorrect != 100 {
		t.Errorf("numeric fields untouched, got %v", report.PercentCorrect)
	}
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
