package prompts

import (
	"strings"
	"testing"
)

func TestGet_AllScenarios(t *testing.T) {
	s := NewStore()
	for _, sc := range []Scenario{
		ScenarioClassifier, ScenarioVital, ScenarioMedication,
		ScenarioActivity, ScenarioLab, ScenarioTrend,
	} {
		tmpl, err := s.Get(sc)
		if err != nil {
			t.Fatalf("Get(%s): %v", sc, err)
		}
		if tmpl == "" {
			t.Errorf("empty template for %s", sc)
		}
	}
}

func TestGet_Unknown(t *testing.T) {
	s := NewStore()
	if _, err := s.Get("nonsense"); err == nil {
		t.Fatal("expected error for unknown scenario")
	}
}

func TestGet_CachedAfterFirstUse(t *testing.T) {
	s := NewStore()
	first, err := s.Get(ScenarioVital)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.Get(ScenarioVital)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("expected identical template on cache hit")
	}
}

func TestInvalidate(t *testing.T) {
	s := NewStore()
	if _, err := s.Get(ScenarioClassifier); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Invalidate()
	tmpl, err := s.Get(ScenarioClassifier)
	if err != nil {
		t.Fatalf("unexpected error after invalidate: %v", err)
	}
	if tmpl == "" {
		t.Error("expected repopulated template after invalidate")
	}
}

func TestExtractionScenario(t *testing.T) {
	tests := []struct {
		route string
		want  Scenario
	}{
		{"medication", ScenarioMedication},
		{"activity", ScenarioActivity},
		{"lab", ScenarioLab},
		{"vital", ScenarioVital},
		{"note", ScenarioVital},
		{"", ScenarioVital},
	}
	for _, tt := range tests {
		if got := ExtractionScenario(tt.route); got != tt.want {
			t.Errorf("ExtractionScenario(%q) = %s, want %s", tt.route, got, tt.want)
		}
	}
}

func TestExtractionPromptsMentionPlaceholder(t *testing.T) {
	s := NewStore()
	for _, sc := range []Scenario{ScenarioVital, ScenarioMedication, ScenarioActivity, ScenarioLab} {
		tmpl, _ := s.Get(sc)
		if !strings.Contains(tmpl, "{{NOW}}") {
			t.Errorf("%s template should document the {{NOW}} token", sc)
		}
	}
}
