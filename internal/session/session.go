// Package session holds the session aggregate and the orchestration
// service that drives a session through its lifecycle: generation at
// start, grading at submission.
package session

import (
	"time"

	"github.com/abhisek/varix/internal/correction"
	"github.com/abhisek/varix/internal/questiongen"
)

// Session is the unit of work: one original question in, one generated
// question set and (after submission) one diagnostic report out. All
// lifecycle state lives here; the pipelines themselves are stateless.
type Session struct {
	ID               string                          `json:"session_id"`
	OriginalQuestion string                          `json:"original_question"`
	Identified       *questiongen.IdentifiedSkills   `json:"identified_skills,omitempty"`
	Questions        []questiongen.GeneratedQuestion `json:"questions,omitempty"`
	AnswerKey        *questiongen.AnswerKey          `json:"answer_key,omitempty"`
	SubmittedAnswers map[int]string                  `json:"submitted_answers,omitempty"`
	Report           *correction.Report              `json:"report,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// Submitted reports whether an answer sheet has been graded already.
func (s *Session) Submitted() bool {
	return s.SubmittedAt != nil
}
