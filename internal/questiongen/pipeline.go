package questiongen

import (
	"context"
	"log/slog"
)

// phase names the state the generation loop is in. The loop is a bounded
// finite-state machine: AwaitingCandidates ↔ Validating until it lands in
// one of the three terminal phases.
type phase int

const (
	phaseAwaitingCandidates phase = iota
	phaseValidating
	phaseAcceptedFull
	phaseAcceptedPartial
	phaseExhausted
)

func (p phase) String() string {
	switch p {
	case phaseAwaitingCandidates:
		return "awaiting_candidates"
	case phaseValidating:
		return "validating"
	case phaseAcceptedFull:
		return "accepted_full"
	case phaseAcceptedPartial:
		return "accepted_partial"
	case phaseExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Pipeline runs the creator→solver→validator loop until the target count
// of internally consistent items exists or the attempt budget runs out.
type Pipeline struct {
	creator   *Creator
	solver    *Solver
	validator *Validator
	cfg       Config
	logger    *slog.Logger
}

// NewPipeline assembles the generation pipeline.
func NewPipeline(creator *Creator, solver *Solver, validator *Validator, cfg Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		creator:   creator,
		solver:    solver,
		validator: validator,
		cfg:       cfg,
		logger:    logger,
	}
}

// accepted pairs a validated item with the skill codes its draft carried.
type accepted struct {
	item  CandidateItem
	codes []string
}

// GenerateValidatedSet runs the bounded-retry loop. On full success the
// returned error is nil; on a partial result it is *DegradedError (the
// partial questions and key are still returned); with nothing accepted it
// is *ExhaustedError. Role failures inside an attempt consume the attempt,
// they never abort the loop.
//
// Guarantees on every non-exhausted return: the question list and key
// have equal length, items are numbered 1..n in acceptance order, and
// every item passed both the structural checks and the validator.
func (p *Pipeline) GenerateValidatedSet(ctx context.Context, identified *IdentifiedSkills) ([]GeneratedQuestion, *AnswerKey, error) {
	target := p.cfg.TargetCount
	var acc []accepted

	state := phaseAwaitingCandidates
	attempt := 0

	for len(acc) < target && attempt < p.cfg.MaxAttempts {
		attempt++
		state = phaseAwaitingCandidates

		drafts, err := p.creator.Create(ctx, CreateInput{
			Skills:    identified.Skills,
			Concepts:  identified.CoreConcepts,
			GradeBand: identified.RecommendedGrade,
			Count:     target - len(acc),
			Exclude:   statements(acc),
		})
		if err != nil {
			p.logger.Warn("attempt failed at creation",
				"attempt", attempt, "state", state.String(), "error", err)
			continue
		}

		state = phaseValidating
		for i := range drafts {
			if len(acc) >= target {
				// The creator over-delivered; surplus is dropped.
				break
			}
			d := drafts[i]

			item, err := p.solver.Solve(ctx, d)
			if err != nil {
				p.logger.Warn("candidate failed at solving",
					"attempt", attempt, "error", err)
				continue
			}

			if reason := checkStructure(item); reason != "" {
				p.logger.Info("candidate rejected structurally",
					"attempt", attempt, "reason", reason)
				continue
			}

			verdict, err := p.validator.Review(ctx, item)
			if err != nil {
				p.logger.Warn("candidate failed at review",
					"attempt", attempt, "error", err)
				continue
			}
			if !verdict.Approved {
				p.logger.Info("candidate rejected by validator",
					"attempt", attempt, "reason", verdict.Reason)
				continue
			}

			acc = append(acc, accepted{item: *item, codes: d.SkillCodes})
		}

		p.logger.Info("generation attempt finished",
			"attempt", attempt, "accepted", len(acc), "target", target)
	}

	switch {
	case len(acc) == 0:
		state = phaseExhausted
		p.logger.Error("generation exhausted", "attempts", attempt, "state", state.String())
		return nil, nil, &ExhaustedError{Attempts: attempt}
	case len(acc) < target:
		state = phaseAcceptedPartial
	default:
		state = phaseAcceptedFull
	}

	questions, key := assemble(acc)

	if state == phaseAcceptedPartial {
		p.logger.Warn("generation degraded",
			"generated", len(acc), "requested", target, "attempts", attempt)
		return questions, key, &DegradedError{
			Requested: target,
			Generated: len(acc),
			Attempts:  attempt,
		}
	}
	return questions, key, nil
}

// assemble numbers accepted items 1..n in acceptance order and builds the
// positionally aligned question list and answer key.
func assemble(acc []accepted) ([]GeneratedQuestion, *AnswerKey) {
	questions := make([]GeneratedQuestion, len(acc))
	key := &AnswerKey{Items: make([]CandidateItem, len(acc))}

	for i, a := range acc {
		n := i + 1
		a.item.SequenceNumber = n
		key.Items[i] = a.item
		questions[i] = GeneratedQuestion{
			Number:     n,
			Statement:  a.item.Statement,
			SkillCodes: a.codes,
		}
	}
	return questions, key
}

func statements(acc []accepted) []string {
	out := make([]string, len(acc))
	for i, a := range acc {
		out[i] = a.item.Statement
	}
	return out
}
