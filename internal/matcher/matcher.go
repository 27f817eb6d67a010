package matcher

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"
	"time"
)

// ParamTarget is one row of the clinical parameter reference corpus.
type ParamTarget struct {
	Code          string   `json:"param_code"`
	TargetMin     *float64 `json:"target_min,omitempty"`
	TargetMax     *float64 `json:"target_max,omitempty"`
	PreferredUnit string   `json:"preferred_unit,omitempty"`
	Description   string   `json:"description,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	OrganSystem   string   `json:"organ_system,omitempty"`
}

// Match is one scored corpus hit.
type Match struct {
	Code          string   `json:"param_code"`
	Score         float64  `json:"score"`
	TargetMin     *float64 `json:"target_min,omitempty"`
	TargetMax     *float64 `json:"target_max,omitempty"`
	PreferredUnit string   `json:"preferred_unit,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// CorpusSource supplies the parameter corpus, typically the param_targets
// table.
type CorpusSource interface {
	ListParamTargets(ctx context.Context) ([]ParamTarget, error)
}

// StaticSource serves a fixed in-memory corpus. Used when the service runs
// without a database.
type StaticSource []ParamTarget

func (s StaticSource) ListParamTargets(ctx context.Context) ([]ParamTarget, error) {
	return s, nil
}

const (
	// DefaultLimit is the result count when the caller passes limit <= 0.
	DefaultLimit = 5
	// MaxLimit caps caller-supplied limits.
	MaxLimit = 20

	cacheTTL = 5 * time.Minute
)

type corpusVector struct {
	target ParamTarget
	vec    map[string]int
}

// Matcher scores free text against the parameter corpus by cosine similarity
// of term-frequency vectors. Corpus vectors are cached and rebuilt wholesale
// after the TTL expires; the rebuild holds a single-writer lock so concurrent
// requests never see a half-built cache.
type Matcher struct {
	source CorpusSource
	ttl    time.Duration
	logger *slog.Logger

	mu      sync.RWMutex
	vectors []corpusVector
	builtAt time.Time
}

func New(source CorpusSource, logger *slog.Logger) *Matcher {
	return &Matcher{source: source, ttl: cacheTTL, logger: logger}
}

// Match returns the top-limit corpus entries with positive similarity to the
// message, sorted by descending score.
func (m *Matcher) Match(ctx context.Context, message string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	vectors, err := m.corpus(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	query := Vectorize(Tokenize(message))
	if len(query) == 0 {
		return []Match{}, nil
	}

	matches := make([]Match, 0, limit)
	for _, cv := range vectors {
		score := cosine(query, cv.vec)
		if score <= 0 {
			continue
		}
		matches = append(matches, Match{
			Code:          cv.target.Code,
			Score:         math.Round(score*10000) / 10000,
			TargetMin:     cv.target.TargetMin,
			TargetMax:     cv.target.TargetMax,
			PreferredUnit: cv.target.PreferredUnit,
			Description:   cv.target.Description,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// HasCode reports whether code exists in the corpus. Fails open when the
// corpus cannot be loaded, so a storage outage never voids entries.
func (m *Matcher) HasCode(ctx context.Context, code string) bool {
	vectors, err := m.corpus(ctx)
	if err != nil {
		m.logger.Warn("corpus unavailable for code check, accepting code", "code", code, "error", err)
		return true
	}
	for _, cv := range vectors {
		if cv.target.Code == code {
			return true
		}
	}
	return false
}

// corpus returns the cached corpus vectors, rebuilding when stale.
func (m *Matcher) corpus(ctx context.Context) ([]corpusVector, error) {
	m.mu.RLock()
	if m.vectors != nil && time.Since(m.builtAt) < m.ttl {
		v := m.vectors
		m.mu.RUnlock()
		return v, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another request may have rebuilt while we waited for the lock.
	if m.vectors != nil && time.Since(m.builtAt) < m.ttl {
		return m.vectors, nil
	}

	targets, err := m.source.ListParamTargets(ctx)
	if err != nil {
		// Serve the stale cache over failing the request.
		if m.vectors != nil {
			m.logger.Warn("corpus refresh failed, serving stale vectors", "error", err)
			return m.vectors, nil
		}
		return nil, err
	}

	vectors := make([]corpusVector, 0, len(targets))
	for _, t := range targets {
		text := strings.Join([]string{t.Code, t.Description, t.Notes, t.OrganSystem}, " ")
		vec := Vectorize(Tokenize(text))
		if len(vec) == 0 {
			continue
		}
		vectors = append(vectors, corpusVector{target: t, vec: vec})
	}

	m.vectors = vectors
	m.builtAt = time.Now()
	m.logger.Debug("corpus vectors rebuilt", "targets", len(vectors))
	return vectors, nil
}

// Invalidate forces a rebuild on the next Match, e.g. after an operator
// upsert to the corpus.
func (m *Matcher) Invalidate() {
	m.mu.Lock()
	m.builtAt = time.Time{}
	m.mu.Unlock()
}

// Vectorize builds a term-frequency map from tokens.
func Vectorize(tokens []string) map[string]int {
	vec := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		vec[tok]++
	}
	return vec
}

// cosine computes cosine similarity between two term-frequency vectors,
// iterating over the smaller map for the dot product.
func cosine(a, b map[string]int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}

	dot := 0
	for tok, n := range small {
		if m, ok := large[tok]; ok {
			dot += n * m
		}
	}
	if dot == 0 {
		return 0
	}
	return float64(dot) / (norm(a) * norm(b))
}

func norm(v map[string]int) float64 {
	sum := 0
	for _, n := range v {
		sum += n * n
	}
	return math.Sqrt(float64(sum))
}
