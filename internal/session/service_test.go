package session_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/abhisek/varix/internal/questiongen"
	"github.com/abhisek/varix/internal/session"
	"github.com/abhisek/varix/internal/store"
)

type stubInterpreter struct {
	identified *questiongen.IdentifiedSkills
	err        error
}

func (s *stubInterpreter) Interpret(context.Context, string) (*questiongen.IdentifiedSkills, error) {
	return s.identified, s.err
}

type stubGenerator struct {
	questions []questiongen.GeneratedQuestion
	key       *questiongen.AnswerKey
	err       error
	calls     int
}

func (s *stubGenerator) GenerateValidatedSet(context.Context, *questiongen.IdentifiedSkills) ([]questiongen.GeneratedQuestion, *questiongen.AnswerKey, error) {
	s.calls++
	return s.questions, s.key, s.err
}

// blockingGenerator parks inside the generation call until released, so
// tests can hold a session's in-flight slot open.
type blockingGenerator struct {
	entered   chan struct{}
	release   chan struct{}
	questions []questiongen.GeneratedQuestion
	key       *questiongen.AnswerKey
}

func (g *blockingGenerator) GenerateValidatedSet(context.Context, *questiongen.IdentifiedSkills) ([]questiongen.GeneratedQuestion, *questiongen.AnswerKey, error) {
	g.entered <- struct{}{}
	<-g.release
	return g.questions, g.key, nil
}

func fullSet() ([]questiongen.GeneratedQuestion, *questiongen.AnswerKey) {
	questions := []questiongen.GeneratedQuestion{
		{Number: 1, Statement: "Qual é 10% de 250?", SkillCodes: []string{"EF06MA13"}},
		{Number: 2, Statement: "Resolva 2x + 4 = 10.", SkillCodes: []string{"EF08MA06"}},
	}
	key := &questiongen.AnswerKey{Items: []questiongen.CandidateItem{
		{
			SequenceNumber: 1, Statement: questions[0].Statement, Answer: "25",
			CorrectLetter: "A",
			Options:       map[string]string{"A": "25", "B": "20", "C": "30", "D": "35", "E": "40"},
		},
		{
			SequenceNumber: 2, Statement: questions[1].Statement, Answer: "x = 3",
			CorrectLetter: "C",
			Options:       map[string]string{"A": "1", "B": "2", "C": "3", "D": "4", "E": "5"},
		},
	}}
	return questions, key
}

func newService(interp session.Interpreter, gen session.Generator, st session.Store) *session.Service {
	return session.NewService(interp, gen, nil, st,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStart_FullLifecycle(t *testing.T) {
	questions, key := fullSet()
	st := store.NewMemory()
	svc := newService(
		&stubInterpreter{identified: &questiongen.IdentifiedSkills{RecommendedGrade: "6º"}},
		&stubGenerator{questions: questions, key: key},
		st,
	)

	sess, err := svc.Start(context.Background(), "Quanto é 10% de 250?")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("session id must be assigned")
	}
	if len(sess.Questions) != 2 || sess.AnswerKey == nil {
		t.Fatalf("generated set not attached: %+v", sess)
	}

	// The committed record matches what Start returned.
	stored, err := svc.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored.Questions) != 2 || stored.AnswerKey == nil || stored.Submitted() {
		t.Fatalf("committed session wrong: %+v", stored)
	}
}

func TestStart_InterpretationFailureLeavesShell(t *testing.T) {
	st := store.NewMemory()
	gen := &stubGenerator{}
	svc := newService(
		&stubInterpreter{err: &questiongen.InterpretationError{Err: errors.New("no skills")}},
		gen,
		st,
	)

	_, err := svc.Start(context.Background(), "texto ilegível")
	var ierr *questiongen.InterpretationError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected InterpretationError, got %v", err)
	}
	if gen.calls != 0 {
		t.Error("generation must not run after failed interpretation")
	}
}

func TestStart_DegradedCommitsPartialSet(t *testing.T) {
	questions, key := fullSet()
	st := store.NewMemory()
	svc := newService(
		&stubInterpreter{identified: &questiongen.IdentifiedSkills{}},
		&stubGenerator{
			questions: questions[:1],
			key:       &questiongen.AnswerKey{Items: key.Items[:1]},
			err:       &questiongen.DegradedError{Requested: 3, Generated: 1, Attempts: 3},
		},
		st,
	)

	sess, err := svc.Start(context.Background(), "pergunta")
	var degraded *questiongen.DegradedError
	if !errors.As(err, &degraded) {
		t.Fatalf("expected DegradedError alongside the session, got %v", err)
	}
	if sess == nil || len(sess.Questions) != 1 {
		t.Fatalf("partial set must be committed and returned: %+v", sess)
	}

	stored, err := svc.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored.AnswerKey.Items) != 1 {
		t.Errorf("partial key not persisted: %+v", stored.AnswerKey)
	}
}

func TestStart_ExhaustionCommitsNoQuestions(t *testing.T) {
	st := store.NewMemory()
	svc := newService(
		&stubInterpreter{identified: &questiongen.IdentifiedSkills{}},
		&stubGenerator{err: &questiongen.ExhaustedError{Attempts: 3}},
		st,
	)

	_, err := svc.Start(context.Background(), "pergunta")
	var exhausted *questiongen.ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ExhaustedError, got %v", err)
	}
}

func TestRegenerate_ReplacesQuestionSet(t *testing.T) {
	questions, key := fullSet()
	st := store.NewMemory()
	ctx := context.Background()

	// A shell left behind by a failed start: no questions, no key.
	shell := &session.Session{ID: "retry-me", OriginalQuestion: "pergunta"}
	if err := st.Create(ctx, shell); err != nil {
		t.Fatalf("create: %v", err)
	}

	svc := newService(
		&stubInterpreter{identified: &questiongen.IdentifiedSkills{}},
		&stubGenerator{questions: questions, key: key},
		st,
	)

	sess, err := svc.Regenerate(ctx, "retry-me")
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if len(sess.Questions) != 2 || sess.AnswerKey == nil {
		t.Fatalf("regenerated set not attached: %+v", sess)
	}

	stored, _ := svc.Get(ctx, "retry-me")
	if len(stored.AnswerKey.Items) != 2 {
		t.Errorf("regenerated key not persisted: %+v", stored.AnswerKey)
	}
}

func TestRegenerate_UnknownSession(t *testing.T) {
	svc := newService(&stubInterpreter{}, &stubGenerator{}, store.NewMemory())
	_, err := svc.Regenerate(context.Background(), "nope")
	if !errors.Is(err, session.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRegenerate_SubmittedSessionRejected(t *testing.T) {
	questions, key := fullSet()
	st := store.NewMemory()
	gen := &stubGenerator{questions: questions, key: key}
	svc := newService(&stubInterpreter{identified: &questiongen.IdentifiedSkills{}}, gen, st)

	sess, err := svc.Start(context.Background(), "pergunta")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.Submit(context.Background(), sess.ID, map[int]string{1: "A"}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	calls := gen.calls
	_, err = svc.Regenerate(context.Background(), sess.ID)
	if !errors.Is(err, session.ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}
	if gen.calls != calls {
		t.Error("graded session must not reach the generator again")
	}
}

func TestRegenerate_SingleFlightPerSession(t *testing.T) {
	questions, key := fullSet()
	st := store.NewMemory()
	ctx := context.Background()

	if err := st.Create(ctx, &session.Session{ID: "busy", OriginalQuestion: "pergunta"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	gen := &blockingGenerator{
		entered:   make(chan struct{}, 2),
		release:   make(chan struct{}),
		questions: questions,
		key:       key,
	}
	svc := newService(&stubInterpreter{identified: &questiongen.IdentifiedSkills{}}, gen, st)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Regenerate(ctx, "busy")
		done <- err
	}()
	<-gen.entered // first call now holds the session's slot

	if _, err := svc.Regenerate(ctx, "busy"); !errors.Is(err, session.ErrGenerationInFlight) {
		t.Fatalf("expected ErrGenerationInFlight while generation runs, got %v", err)
	}

	close(gen.release)
	if err := <-done; err != nil {
		t.Fatalf("first regenerate: %v", err)
	}

	// The slot is released once the first generation finishes.
	if _, err := svc.Regenerate(ctx, "busy"); err != nil {
		t.Fatalf("regenerate after release: %v", err)
	}
}

func TestSubmit_GradesAndPersistsOnce(t *testing.T) {
	questions, key := fullSet()
	st := store.NewMemory()
	svc := newService(
		&stubInterpreter{identified: &questiongen.IdentifiedSkills{}},
		&stubGenerator{questions: questions, key: key},
		st,
	)

	sess, err := svc.Start(context.Background(), "pergunta")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	report, err := svc.Submit(context.Background(), sess.ID, map[int]string{1: "A", 2: "E"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if report.TotalCorrect != 1 || report.TotalQuestions != 2 {
		t.Errorf("report = %d/%d, want 1/2", report.TotalCorrect, report.TotalQuestions)
	}

	stored, _ := svc.Get(context.Background(), sess.ID)
	if !stored.Submitted() || stored.Report == nil {
		t.Fatalf("submission not persisted: %+v", stored)
	}

	// Second submission is rejected, and the stored report is untouched.
	_, err = svc.Submit(context.Background(), sess.ID, map[int]string{1: "B", 2: "B"})
	if !errors.Is(err, session.ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}
	again, _ := svc.Get(context.Background(), sess.ID)
	if again.Report.TotalCorrect != 1 {
		t.Error("rejected resubmission must not alter the report")
	}
}

func TestSubmit_UnknownSession(t *testing.T) {
	svc := newService(&stubInterpreter{}, &stubGenerator{}, store.NewMemory())
	_, err := svc.Submit(context.Background(), "nope", nil)
	if !errors.Is(err, session.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmit_MissingAnswerKey(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	shell := &session.Session{ID: "bare", OriginalQuestion: "q"}
	if err := st.Create(ctx, shell); err != nil {
		t.Fatalf("create: %v", err)
	}

	svc := newService(&stubInterpreter{}, &stubGenerator{}, st)
	_, err := svc.Submit(ctx, "bare", map[int]string{1: "A"})
	if !errors.Is(err, session.ErrMissingAnswerKey) {
		t.Errorf("expected ErrMissingAnswerKey, got %v", err)
	}
}
