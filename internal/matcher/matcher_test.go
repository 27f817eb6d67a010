package matcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubSource struct {
	targets []ParamTarget
	err     error
	calls   int
}

func (s *stubSource) ListParamTargets(ctx context.Context) ([]ParamTarget, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.targets, nil
}

func testCorpus() []ParamTarget {
	min := func(v float64) *float64 { return &v }
	return []ParamTarget{
		{Code: "GLU_FAST", TargetMin: min(70), TargetMax: min(100), PreferredUnit: "mg/dL",
			Description: "Fasting blood glucose", Notes: "measured before breakfast", OrganSystem: "metabolic"},
		{Code: "GLU_PP", TargetMin: min(70), TargetMax: min(140), PreferredUnit: "mg/dL",
			Description: "Postprandial blood glucose", Notes: "measured two hours after a meal", OrganSystem: "metabolic"},
		{Code: "HBA1C", TargetMin: min(4), TargetMax: min(5.7), PreferredUnit: "%",
			Description: "Glycated hemoglobin hba1c", Notes: "three month glucose average", OrganSystem: "metabolic"},
		{Code: "BP_SYS", TargetMin: min(90), TargetMax: min(120), PreferredUnit: "mmHg",
			Description: "Systolic blood pressure bloodpressure", OrganSystem: "cardiovascular"},
		{Code: "TSH", TargetMin: min(0.4), TargetMax: min(4.0), PreferredUnit: "mIU/L",
			Description: "Thyroid stimulating hormone", OrganSystem: "endocrine"},
	}
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("My blood SUGAR was 105 mg/dL after breakfast!")
	want := map[string]bool{"blood": true, "glucose": true, "105": true, "mg": true, "dl": true, "breakfast": true}
	for _, tok := range tokens {
		if !want[tok] {
			t.Errorf("unexpected token %q", tok)
		}
	}
	for _, tok := range tokens {
		if tok == "sugar" {
			t.Error("synonym mapping should replace sugar with glucose")
		}
		if tok == "my" || tok == "after" || tok == "was" {
			t.Errorf("stop word %q survived", tok)
		}
	}
}

func TestTokenize_KeepsPercent(t *testing.T) {
	tokens := Tokenize("hba1c 6.5%")
	foundName, foundPercent := false, false
	for _, tok := range tokens {
		if tok == "hba1c" {
			foundName = true
		}
		if tok == "5%" {
			foundPercent = true
		}
	}
	if !foundName || !foundPercent {
		t.Errorf("expected hba1c and percent-bearing tokens, got %v", tokens)
	}
}

func TestMatch_RanksGlucoseFirst(t *testing.T) {
	src := &stubSource{targets: testCorpus()}
	m := New(src, discardLogger())

	matches, err := m.Match(context.Background(), "fasting blood sugar before breakfast", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("expected matches")
	}
	if matches[0].Code != "GLU_FAST" {
		t.Errorf("expected GLU_FAST first, got %s", matches[0].Code)
	}
	for i, match := range matches {
		if match.Score <= 0 || match.Score > 1 {
			t.Errorf("score out of (0,1]: %f", match.Score)
		}
		if i > 0 && matches[i-1].Score < match.Score {
			t.Errorf("matches not sorted descending at index %d", i)
		}
	}
}

func TestMatch_LimitApplied(t *testing.T) {
	src := &stubSource{targets: testCorpus()}
	m := New(src, discardLogger())

	matches, err := m.Match(context.Background(), "blood glucose pressure hormone", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) > 2 {
		t.Errorf("expected at most 2 matches, got %d", len(matches))
	}
}

func TestMatch_LimitCapped(t *testing.T) {
	var targets []ParamTarget
	for i := 0; i < 30; i++ {
		targets = append(targets, ParamTarget{
			Code:        fmt.Sprintf("GLU_%02d", i),
			Description: "blood glucose variant",
		})
	}
	src := &stubSource{targets: targets}
	m := New(src, discardLogger())

	matches, err := m.Match(context.Background(), "glucose", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) > MaxLimit {
		t.Errorf("expected limit capped at %d, got %d", MaxLimit, len(matches))
	}
}

func TestMatch_EmptyQuery(t *testing.T) {
	src := &stubSource{targets: testCorpus()}
	m := New(src, discardLogger())

	matches, err := m.Match(context.Background(), "!!! ??", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches for empty query, got %d", len(matches))
	}
}

func TestMatch_NoOverlap(t *testing.T) {
	src := &stubSource{targets: testCorpus()}
	m := New(src, discardLogger())

	matches, err := m.Match(context.Background(), "quarterly financial projections", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %v", matches)
	}
}

func TestMatch_CorpusCached(t *testing.T) {
	src := &stubSource{targets: testCorpus()}
	m := New(src, discardLogger())

	for i := 0; i < 3; i++ {
		if _, err := m.Match(context.Background(), "glucose", 5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if src.calls != 1 {
		t.Errorf("expected 1 corpus load, got %d", src.calls)
	}
}

func TestInvalidate_ForcesRebuild(t *testing.T) {
	src := &stubSource{targets: testCorpus()}
	m := New(src, discardLogger())

	if _, err := m.Match(context.Background(), "glucose", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.Invalidate()
	if _, err := m.Match(context.Background(), "glucose", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.calls != 2 {
		t.Errorf("expected 2 corpus loads after invalidate, got %d", src.calls)
	}
}

func TestMatch_ServesStaleOnRefreshError(t *testing.T) {
	src := &stubSource{targets: testCorpus()}
	m := New(src, discardLogger())

	if _, err := m.Match(context.Background(), "glucose", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src.err = fmt.Errorf("connection refused")
	m.Invalidate()

	matches, err := m.Match(context.Background(), "glucose", 5)
	if err != nil {
		t.Fatalf("expected stale cache to be served, got error: %v", err)
	}
	if len(matches) == 0 {
		t.Error("expected matches from stale cache")
	}
}

func TestHasCode(t *testing.T) {
	m := New(&stubSource{targets: testCorpus()}, discardLogger())

	if !m.HasCode(context.Background(), "GLU_FAST") {
		t.Error("expected GLU_FAST present")
	}
	if m.HasCode(context.Background(), "XYZZY_9") {
		t.Error("expected XYZZY_9 absent")
	}
}

func TestHasCode_FailsOpenWhenCorpusUnavailable(t *testing.T) {
	src := &stubSource{err: fmt.Errorf("db down")}
	m := New(src, discardLogger())

	if !m.HasCode(context.Background(), "XYZZY_9") {
		t.Error("expected code accepted when corpus cannot be loaded")
	}
}

func TestCosine_Identical(t *testing.T) {
	v := Vectorize(Tokenize("fasting blood glucose"))
	if got := cosine(v, v); got < 0.999 || got > 1.001 {
		t.Errorf("identical vectors should score 1.0, got %f", got)
	}
}
