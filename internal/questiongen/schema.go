package questiongen

import "github.com/abhisek/varix/internal/llm"

// IdentifiedSkillsSchema is the interpreter's output shape.
var IdentifiedSkillsSchema = &llm.Schema{
	Name:        "identified-skills",
	Description: "Curriculum skills, concepts and school year identified in a question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"skill_codes": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "BNCC codes chosen from the candidate list, most specific first",
			},
			"core_concepts": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Short noun phrases naming the concepts the question depends on",
			},
			"recommended_grade": map[string]any{
				"type":        "string",
				"description": "School year the question best fits, e.g. \"9º\" or \"1ª\"",
			},
		},
		"required":             []any{"skill_codes", "core_concepts", "recommended_grade"},
		"additionalProperties": false,
	},
}

// DraftsSchema is the creator's output shape: new statements only.
var DraftsSchema = &llm.Schema{
	Name:        "question-drafts",
	Description: "New question statements targeting the given skills",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"statement": map[string]any{
							"type":        "string",
							"description": "The full self-contained question text",
						},
						"skill_codes": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "BNCC codes this statement targets",
						},
					},
					"required":             []any{"statement", "skill_codes"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// optionLetters is the fixed multiple-choice alphabet.
var optionLetters = []string{"A", "B", "C", "D", "E"}

// AnswerItemSchema is the solver's output shape for one statement.
var AnswerItemSchema = &llm.Schema{
	Name:        "answer-key-item",
	Description: "Authoritative answer, solution and options for one question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"answer": map[string]any{
				"type":        "string",
				"description": "The final simplified answer, with unit when applicable",
			},
			"solution_steps": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Ordered worked-solution steps",
			},
			"applied_concepts": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"common_errors": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Mistakes students typically make on this question",
			},
			"options": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"A": map[string]any{"type": "string"},
					"B": map[string]any{"type": "string"},
					"C": map[string]any{"type": "string"},
					"D": map[string]any{"type": "string"},
					"E": map[string]any{"type": "string"},
				},
				"required":             []any{"A", "B", "C", "D", "E"},
				"additionalProperties": false,
			},
			"correct_letter": map[string]any{
				"type": "string",
				"enum": []any{"A", "B", "C", "D", "E"},
			},
		},
		"required":             []any{"answer", "solution_steps", "applied_concepts", "common_errors", "options", "correct_letter"},
		"additionalProperties": false,
	},
}

// VerdictSchema is the validator's output shape.
var VerdictSchema = &llm.Schema{
	Name:        "review-verdict",
	Description: "Accept/reject decision for one candidate item",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"approved": map[string]any{"type": "boolean"},
			"reason": map[string]any{
				"type":        "string",
				"enum":        []any{"ok", "unsolvable", "wrong_answer", "ambiguous_options", "duplicate_option", "broken_steps"},
				"description": "\"ok\" when approved, otherwise the failure code",
			},
		},
		"required":             []any{"approved", "reason"},
		"additionalProperties": false,
	},
}
