package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/varix/internal/skills"
)

// buildInterpretMessage formats the original question plus the retrieved
// candidate skills for the interpreter.
func buildInterpretMessage(question string, candidates []skills.SkillRecord) string {
	var b strings.Builder

	b.WriteString("Original question:\n")
	b.WriteString(strings.TrimSpace(question))
	b.WriteString("\n\nCandidate BNCC skills from the curriculum index:\n")
	b.WriteString(skills.Format(candidates))

	return b.String()
}

// buildCreateMessage formats the generation context for the creator,
// including the exclusion list of already-accepted statements.
func buildCreateMessage(in CreateInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "New questions needed: %d\n", in.Count)
	fmt.Fprintf(&b, "School year: %s\n", in.GradeBand)
	fmt.Fprintf(&b, "Core concepts: %s\n", strings.Join(in.Concepts, ", "))

	b.WriteString("\nTarget skills:\n")
	b.WriteString(skills.Format(in.Skills))

	b.WriteString("\n\nExclusion list (do not repeat or rephrase these):\n")
	if len(in.Exclude) == 0 {
		b.WriteString("None")
	} else {
		for i, s := range in.Exclude {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// buildSolveMessage hands one statement to the solver.
func buildSolveMessage(d Draft) string {
	var b strings.Builder
	b.WriteString("Question statement:\n")
	b.WriteString(strings.TrimSpace(d.Statement))
	if len(d.SkillCodes) > 0 {
		fmt.Fprintf(&b, "\n\nTargeted skills: %s", strings.Join(d.SkillCodes, ", "))
	}
	return b.String()
}

// buildReviewMessage lays out the full candidate for the validator.
func buildReviewMessage(item CandidateItem) string {
	var b strings.Builder

	b.WriteString("Statement:\n")
	b.WriteString(strings.TrimSpace(item.Statement))
	fmt.Fprintf(&b, "\n\nComputed answer: %s\n", item.Answer)

	b.WriteString("\nSolution steps:\n")
	for i, s := range item.SolutionSteps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}

	b.WriteString("\nOptions:\n")
	for _, letter := range optionLetters {
		if text, ok := item.Options[letter]; ok {
			fmt.Fprintf(&b, "%s) %s\n", letter, text)
		}
	}
	fmt.Fprintf(&b, "\nMarked correct: %s", item.CorrectLetter)

	return b.String()
}
