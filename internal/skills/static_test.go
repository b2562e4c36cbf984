package skills

import (
	"context"
	"testing"
)

func TestStaticSearch_MatchesByKeyword(t *testing.T) {
	r := NewStaticRetriever(nil)

	recs, err := r.Search(context.Background(), "problemas envolvendo porcentagens e proporcionalidade", SearchFilters{}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected at least one match")
	}
	if recs[0].Code != "EF06MA13" {
		t.Errorf("expected EF06MA13 first (highest overlap), got %s", recs[0].Code)
	}
}

func TestStaticSearch_GradeBandFilter(t *testing.T) {
	r := NewStaticRetriever(nil)

	recs, err := r.Search(context.Background(), "resolver problemas de área", SearchFilters{GradeBand: "8º"}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, rec := range recs {
		if rec.GradeBand != "8º" {
			t.Errorf("grade filter leaked: got record %s with band %s", rec.Code, rec.GradeBand)
		}
	}
}

func TestStaticSearch_NoMatchIsEmptyNotError(t *testing.T) {
	r := NewStaticRetriever(nil)

	recs, err := r.Search(context.Background(), "xylophone zebra quantum", SearchFilters{}, 5)
	if err != nil {
		t.Fatalf("no-match must not error, got: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected no matches, got %d", len(recs))
	}
}

func TestStaticSearch_LimitRespected(t *testing.T) {
	r := NewStaticRetriever(nil)

	recs, err := r.Search(context.Background(), "resolver e elaborar problemas", SearchFilters{}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) > 2 {
		t.Fatalf("expected at most 2 results, got %d", len(recs))
	}
}

func TestFormat_Idempotent(t *testing.T) {
	recs := SeedCorpus()[:3]

	first := Format(recs)
	second := Format(recs)
	if first != second {
		t.Fatal("formatting the same records twice must yield identical text")
	}
	if first == "" {
		t.Fatal("expected non-empty formatted output")
	}
}

func TestFormat_Empty(t *testing.T) {
	if got := Format(nil); got != "No matching skills found." {
		t.Fatalf("unexpected empty-format text: %q", got)
	}
}

func TestDedup(t *testing.T) {
	recs := []SkillRecord{
		{Code: "EF08MA06"},
		{Code: "EF09MA06"},
		{Code: "EF08MA06"},
	}
	got := Dedup(recs)
	if len(got) != 2 {
		t.Fatalf("expected 2 unique records, got %d", len(got))
	}
	if got[0].Code != "EF08MA06" || got[1].Code != "EF09MA06" {
		t.Fatalf("dedup must keep first-occurrence order, got %+v", got)
	}
}

func TestStaticRetriever_Mode(t *testing.T) {
	if mode := NewStaticRetriever(nil).Mode(); mode != "static" {
		t.Fatalf("expected mode static, got %q", mode)
	}
}
