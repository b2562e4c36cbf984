package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/varix/internal/correction"
	"github.com/abhisek/varix/internal/questiongen"
	"github.com/abhisek/varix/internal/session"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "varix.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSession() *session.Session {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &session.Session{
		ID:               "s-1",
		OriginalQuestion: "Qual é 10% de 250?",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestSQLite_ShellRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := sampleSession()
	require.NoError(t, s.Create(ctx, want))

	got, err := s.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, want.OriginalQuestion, got.OriginalQuestion)
	assert.Nil(t, got.Identified)
	assert.Nil(t, got.AnswerKey)
	assert.Nil(t, got.Report)
	assert.True(t, got.CreatedAt.Equal(want.CreatedAt), "created_at drifted: %v != %v", got.CreatedAt, want.CreatedAt)
}

func TestSQLite_FullLifecycleRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess := sampleSession()
	require.NoError(t, s.Create(ctx, sess))

	sess.Identified = &questiongen.IdentifiedSkills{
		CoreConcepts:     []string{"porcentagem"},
		RecommendedGrade: "6º",
	}
	sess.Questions = []questiongen.GeneratedQuestion{
		{Number: 1, Statement: "Qual é 20% de 150?", SkillCodes: []string{"EF06MA13"}},
	}
	sess.AnswerKey = &questiongen.AnswerKey{Items: []questiongen.CandidateItem{
		{
			SequenceNumber: 1, Statement: "Qual é 20% de 150?", Answer: "30",
			CorrectLetter: "B",
			Options:       map[string]string{"A": "25", "B": "30", "C": "35", "D": "40", "E": "45"},
		},
	}}
	require.NoError(t, s.Update(ctx, sess))

	now := time.Now().UTC().Truncate(time.Millisecond)
	sess.SubmittedAnswers = map[int]string{1: "B"}
	sess.Report = &correction.Report{
		SummaryText:    "Você acertou 1 de 1 questões (100.0%).",
		TotalQuestions: 1,
		TotalCorrect:   1,
		PercentCorrect: 100,
		Strengths:      []string{"EF06MA13"},
	}
	sess.SubmittedAt = &now
	require.NoError(t, s.Update(ctx, sess))

	got, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AnswerKey)
	require.Len(t, got.AnswerKey.Items, 1)
	assert.Equal(t, "30", got.AnswerKey.Items[0].Options["B"])
	assert.Equal(t, "B", got.SubmittedAnswers[1])
	require.NotNil(t, got.Report)
	assert.Equal(t, 1, got.Report.TotalCorrect)
	assert.Equal(t, []string{"EF06MA13"}, got.Report.Strengths)
	require.NotNil(t, got.SubmittedAt)
	assert.True(t, got.SubmittedAt.Equal(now))
}

func TestSQLite_GetUnknownID(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestSQLite_UpdateUnknownID(t *testing.T) {
	s := openTestStore(t)
	err := s.Update(context.Background(), sampleSession())
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestMemory_RoundTripAndIsolation(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	sess := sampleSession()
	require.NoError(t, m.Create(ctx, sess))

	// Mutating the original after Create must not leak into the store.
	sess.OriginalQuestion = "mutated"

	got, err := m.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "Qual é 10% de 250?", got.OriginalQuestion)

	assert.ErrorIs(t, m.Update(ctx, &session.Session{ID: "missing"}), session.ErrNotFound)
	assert.Error(t, m.Create(ctx, got), "duplicate create must fail")
}
