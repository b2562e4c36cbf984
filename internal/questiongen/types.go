package questiongen

import "github.com/abhisek/varix/internal/skills"

// IdentifiedSkills is the interpreter's reading of the original question:
// which curriculum skills it exercises, the concepts involved, and the
// school year it fits. Produced once per session, never mutated after.
type IdentifiedSkills struct {
	Skills           []skills.SkillRecord `json:"skills"`
	CoreConcepts     []string             `json:"core_concepts"`
	RecommendedGrade string               `json:"recommended_grade"`
}

// Draft is one candidate statement from the creator, before solving.
type Draft struct {
	Statement  string   `json:"statement"`
	SkillCodes []string `json:"skill_codes"`
}

// CandidateItem is one fully solved question attempt: the statement plus
// everything the solver derived from it. Items are validated before
// acceptance; a rejected item is discarded whole, never patched.
type CandidateItem struct {
	SequenceNumber  int               `json:"sequence_number"`
	Statement       string            `json:"statement"`
	Answer          string            `json:"answer"`
	SolutionSteps   []string          `json:"solution_steps"`
	AppliedConcepts []string          `json:"applied_concepts"`
	CommonErrors    []string          `json:"common_errors"`
	CorrectLetter   string            `json:"correct_letter"`
	Options         map[string]string `json:"options"`
}

// GeneratedQuestion is the student-facing view of an accepted item.
type GeneratedQuestion struct {
	Number     int      `json:"number"`
	Statement  string   `json:"statement"`
	SkillCodes []string `json:"skill_codes"`
}

// AnswerKey is the authoritative key for a finalized session. Items are
// ordered by sequence number and positionally aligned with the generated
// question list.
type AnswerKey struct {
	Items []CandidateItem `json:"items"`
}

// Verdict is the validator's decision on one candidate.
type Verdict struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason"`
}
