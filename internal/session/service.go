package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/varix/internal/correction"
	"github.com/abhisek/varix/internal/questiongen"
)

// ErrAlreadySubmitted is returned when a graded session receives a second
// answer sheet. Re-submission is rejected, not re-graded.
var ErrAlreadySubmitted = errors.New("session already submitted")

// ErrMissingAnswerKey is returned when a submission arrives before the
// session has a finalized answer key.
var ErrMissingAnswerKey = errors.New("session has no answer key")

// ErrGenerationInFlight is returned when generation for a session id is
// already running.
var ErrGenerationInFlight = errors.New("generation already in flight for session")

// Interpreter identifies the curriculum skills behind a question.
type Interpreter interface {
	Interpret(ctx context.Context, question string) (*questiongen.IdentifiedSkills, error)
}

// Generator produces a validated question set for identified skills.
type Generator interface {
	GenerateValidatedSet(ctx context.Context, identified *questiongen.IdentifiedSkills) ([]questiongen.GeneratedQuestion, *questiongen.AnswerKey, error)
}

// Enricher adds qualitative feedback to a graded report. Best effort.
type Enricher interface {
	Enrich(ctx context.Context, report *correction.Report, key *questiongen.AnswerKey)
}

// Service orchestrates the session lifecycle over the pipelines and the
// store. Safe for concurrent use.
type Service struct {
	interpreter Interpreter
	generator   Generator
	enricher    Enricher
	store       Store
	logger      *slog.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewService creates a Service. enricher may be nil, in which case
// reports keep their templated feedback.
func NewService(interpreter Interpreter, generator Generator, enricher Enricher, store Store, logger *slog.Logger) *Service {
	return &Service{
		interpreter: interpreter,
		generator:   generator,
		enricher:    enricher,
		store:       store,
		logger:      logger,
		inflight:    make(map[string]struct{}),
	}
}

// Start creates a session for the question text and runs the generation
// pipeline. The session shell is persisted before the model calls so a
// failed generation still leaves an inspectable record. On degraded
// generation the partial set is committed and the *questiongen.DegradedError
// is returned alongside the session.
func (svc *Service) Start(ctx context.Context, questionText string) (*Session, error) {
	id := uuid.NewString()
	if err := svc.acquire(id); err != nil {
		return nil, err
	}
	defer svc.release(id)

	now := time.Now().UTC()
	sess := &Session{
		ID:               id,
		OriginalQuestion: questionText,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := svc.store.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return svc.generate(ctx, sess)
}

// Regenerate re-runs interpretation and generation for an existing
// session that has not been graded yet, replacing its question set and
// key. This is the retry path after a degraded or exhausted start. At
// most one generation runs per session id; a concurrent call gets
// ErrGenerationInFlight.
func (svc *Service) Regenerate(ctx context.Context, id string) (*Session, error) {
	if err := svc.acquire(id); err != nil {
		return nil, err
	}
	defer svc.release(id)

	sess, err := svc.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Submitted() {
		return nil, ErrAlreadySubmitted
	}

	return svc.generate(ctx, sess)
}

// generate runs interpret + generate and commits the result. The caller
// must hold the session's in-flight slot.
func (svc *Service) generate(ctx context.Context, sess *Session) (*Session, error) {
	log := svc.logger.With("session_id", sess.ID)

	identified, err := svc.interpreter.Interpret(ctx, sess.OriginalQuestion)
	if err != nil {
		log.Error("interpretation failed", "error", err)
		return nil, err
	}
	log.Info("skills identified",
		"skills", len(identified.Skills), "grade", identified.RecommendedGrade)

	questions, key, genErr := svc.generator.GenerateValidatedSet(ctx, identified)
	var degraded *questiongen.DegradedError
	switch {
	case genErr == nil:
	case errors.As(genErr, &degraded):
		log.Warn("generation degraded",
			"generated", degraded.Generated, "requested", degraded.Requested)
	default:
		log.Error("generation failed", "error", genErr)
		return nil, genErr
	}

	sess.Identified = identified
	sess.Questions = questions
	sess.AnswerKey = key
	sess.UpdatedAt = time.Now().UTC()
	if err := svc.store.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("commit generated set: %w", err)
	}

	log.Info("session ready", "questions", len(questions))
	return sess, genErr
}

// Submit grades the answer sheet against the session's key, enriches the
// report, and persists the result. A session is graded at most once.
func (svc *Service) Submit(ctx context.Context, id string, answers map[int]string) (*correction.Report, error) {
	sess, err := svc.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Submitted() {
		return nil, ErrAlreadySubmitted
	}
	if sess.AnswerKey == nil || len(sess.AnswerKey.Items) == 0 {
		return nil, ErrMissingAnswerKey
	}

	report := correction.Grade(sess.AnswerKey, sess.Questions, answers)
	if svc.enricher != nil {
		svc.enricher.Enrich(ctx, report, sess.AnswerKey)
	}

	now := time.Now().UTC()
	sess.SubmittedAnswers = answers
	sess.Report = report
	sess.SubmittedAt = &now
	sess.UpdatedAt = now
	if err := svc.store.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("commit report: %w", err)
	}

	svc.logger.Info("session graded", "session_id", id,
		"correct", report.TotalCorrect, "total", report.TotalQuestions)
	return report, nil
}

// Get returns the full session snapshot.
func (svc *Service) Get(ctx context.Context, id string) (*Session, error) {
	return svc.store.Get(ctx, id)
}

func (svc *Service) acquire(id string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if _, busy := svc.inflight[id]; busy {
		return ErrGenerationInFlight
	}
	svc.inflight[id] = struct{}{}
	return nil
}

func (svc *Service) release(id string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	delete(svc.inflight, id)
}
