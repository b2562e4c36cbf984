// Package correction grades a submitted answer sheet against a session's
// answer key and produces the diagnostic report. Grading is a pure
// function of the key and the answers; the qualitative feedback pass is
// an optional enrichment layered on top.
package correction

// QuestionResult is the per-question line of a report.
type QuestionResult struct {
	QuestionNumber int    `json:"question_number"`
	UserChoice     string `json:"user_choice"`
	CorrectChoice  string `json:"correct_choice"`
	WasCorrect     bool   `json:"was_correct"`
	FeedbackText   string `json:"feedback_text"`
}

// Report is the diagnostic outcome of one submission. Numeric fields are
// recomputable from the answer key and the submitted answers; only
// SummaryText and the per-question FeedbackText may be enriched by the
// corrector role.
type Report struct {
	SummaryText    string           `json:"summary_text"`
	TotalQuestions int              `json:"total_questions"`
	TotalCorrect   int              `json:"total_correct"`
	PercentCorrect float64          `json:"percent_correct"`
	PerQuestion    []QuestionResult `json:"per_question"`
	SkillsToReview []string         `json:"skills_to_review"`
	Strengths      []string         `json:"strengths"`
}
