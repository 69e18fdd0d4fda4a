// Package match resolves free-text company queries against the dataset index
// using a tiered exact / substring / fuzzy policy, and serves autocomplete
// suggestions.
package match

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/divestwatch/internal/dataset"
	"github.com/sells-group/divestwatch/internal/model"
	"github.com/sells-group/divestwatch/internal/normalize"
)

// DefaultSimilarityThreshold is the minimum fuzzy-tier score for a match.
// Candidates below it fall through to NotFound rather than returning a poor
// guess.
const DefaultSimilarityThreshold = 0.70

// DefaultSuggestLimit caps autocomplete results when no limit is given.
const DefaultSuggestLimit = 10

// ErrNotFound means no tier produced a candidate.
var ErrNotFound = eris.New("match: company not found")

// Config tunes the resolver.
type Config struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold" mapstructure:"similarity_threshold"`
	SuggestLimit        int     `yaml:"suggest_limit" mapstructure:"suggest_limit"`
}

// Resolver maps raw query text to at most one company record.
type Resolver struct {
	index     *dataset.Index
	threshold float64
	limit     int
}

// NewResolver creates a resolver over the index. Zero config fields take the
// package defaults.
func NewResolver(index *dataset.Index, cfg Config) *Resolver {
	r := &Resolver{
		index:     index,
		threshold: cfg.SimilarityThreshold,
		limit:     cfg.SuggestLimit,
	}
	if r.threshold <= 0 {
		r.threshold = DefaultSimilarityThreshold
	}
	if r.limit <= 0 {
		r.limit = DefaultSuggestLimit
	}
	return r
}

// Resolve finds the single record for rawQuery, or ErrNotFound. Three tiers,
// each attempted only when the previous yields nothing, first match in
// insertion order wins within a tier:
//  1. Exact normalized-name equality.
//  2. Normalized query contained in the normalized name.
//  3. Ratcliff/Obershelp similarity; the first-seen highest scorer wins if
//     its score meets the threshold.
func (r *Resolver) Resolve(rawQuery string) (*model.CompanyRecord, error) {
	q := normalize.Normalize(rawQuery)
	if q == "" {
		return nil, ErrNotFound
	}

	records := r.index.All()
	norms := r.index.Normalized()

	// Tier 1: exact.
	for i, n := range norms {
		if n == q {
			zap.L().Debug("resolve: exact match",
				zap.String("query", rawQuery),
				zap.String("name", records[i].Name),
			)
			return &records[i], nil
		}
	}

	// Tier 2: query inside name.
	if recs := r.index.ContainsSubstring(q); len(recs) > 0 {
		zap.L().Debug("resolve: substring match",
			zap.String("query", rawQuery),
			zap.String("name", recs[0].Name),
		)
		return &recs[0], nil
	}

	// Tier 3: fuzzy. Strict > keeps the first-seen candidate on score ties.
	best, bestScore := -1, 0.0
	for i, n := range norms {
		if s := Ratio(q, n); s > bestScore {
			best, bestScore = i, s
		}
	}
	if best >= 0 && bestScore >= r.threshold {
		zap.L().Debug("resolve: fuzzy match",
			zap.String("query", rawQuery),
			zap.String("name", records[best].Name),
			zap.Float64("score", bestScore),
		)
		return &records[best], nil
	}

	return nil, ErrNotFound
}

// Suggest returns up to limit distinct names whose case-folded form contains
// the case-folded query, in first-seen dataset order. An empty query returns
// the first limit distinct names. Suggestions use Fold rather than Normalize:
// autocomplete matches what the user sees, diacritics included.
func (r *Resolver) Suggest(query string, limit int) []string {
	if limit <= 0 {
		limit = r.limit
	}
	q := normalize.Fold(query)

	seen := make(map[string]struct{})
	out := make([]string, 0, limit)
	for _, name := range r.index.Names() {
		if name == "" {
			continue
		}
		if q != "" && !strings.Contains(normalize.Fold(name), q) {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
		if len(out) >= limit {
			break
		}
	}
	return out
}
