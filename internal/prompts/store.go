package prompts

import (
	"fmt"
	"sync"
)

// Scenario names one stored instruction template.
type Scenario string

const (
	ScenarioClassifier Scenario = "classifier"
	ScenarioVital      Scenario = "vital"
	ScenarioMedication Scenario = "medication"
	ScenarioActivity   Scenario = "activity"
	ScenarioLab        Scenario = "lab"
	ScenarioTrend      Scenario = "trend"
)

// Store is a process-wide cache of instruction templates keyed by scenario.
// Templates are compiled into the binary; the cache exists so a future
// external template source can slot in behind the same interface, and so
// operators can force a reload with Invalidate.
type Store struct {
	mu    sync.RWMutex
	cache map[Scenario]string
}

func NewStore() *Store {
	return &Store{cache: make(map[Scenario]string)}
}

// Get returns the template for a scenario, populating the cache on first use.
func (s *Store) Get(scenario Scenario) (string, error) {
	s.mu.RLock()
	tmpl, ok := s.cache[scenario]
	s.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	tmpl, ok = builtin[scenario]
	if !ok {
		return "", fmt.Errorf("unknown prompt scenario %q", scenario)
	}

	s.mu.Lock()
	s.cache[scenario] = tmpl
	s.mu.Unlock()
	return tmpl, nil
}

// Invalidate drops all cached templates. The next Get repopulates.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.cache = make(map[Scenario]string)
	s.mu.Unlock()
}

// ExtractionScenario maps a router target to its extraction scenario.
// Unknown targets fall back to the vital template, the broadest extractor.
func ExtractionScenario(route string) Scenario {
	switch route {
	case "medication":
		return ScenarioMedication
	case "activity":
		return ScenarioActivity
	case "lab":
		return ScenarioLab
	default:
		return ScenarioVital
	}
}
