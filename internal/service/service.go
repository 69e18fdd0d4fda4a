// Package service orchestrates search, detail, and finance lookups over the
// dataset index, the entity resolver, and the finance window builder.
package service

import (
	"context"
	"strings"

	"github.com/sells-group/divestwatch/internal/dataset"
	"github.com/sells-group/divestwatch/internal/finance"
	"github.com/sells-group/divestwatch/internal/match"
	"github.com/sells-group/divestwatch/internal/model"
	"github.com/sells-group/divestwatch/internal/normalize"
)

const (
	// DefaultPerPage is the search page size when none is requested.
	DefaultPerPage = 5
	// MaxPerPage caps the requested page size.
	MaxPerPage = 50
)

// Service is the stateless orchestration layer. All state lives in the
// immutable index; every call is an independent computation.
type Service struct {
	index    *dataset.Index
	resolver *match.Resolver
	builder  *finance.Builder
}

// New wires the query service.
func New(index *dataset.Index, resolver *match.Resolver, builder *finance.Builder) *Service {
	return &Service{index: index, resolver: resolver, builder: builder}
}

// Search returns one page of records whose name or description contains the
// case-folded query. An empty query lists the whole dataset. Search matches
// on the fold key only; diacritic-insensitive matching is the resolver's
// job, not the list view's.
func (s *Service) Search(query string, page, perPage int) model.SearchPage {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	q := normalize.Fold(query)
	var results []model.CompanyRecord
	for _, rec := range s.index.All() {
		if q == "" ||
			strings.Contains(normalize.Fold(rec.Name), q) ||
			strings.Contains(normalize.Fold(rec.Description), q) {
			results = append(results, rec)
		}
	}

	total := len(results)
	pages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	stop := start + perPage
	if stop > total {
		stop = total
	}

	return model.SearchPage{
		Results: results[start:stop],
		Pagination: model.Pagination{
			Total:   total,
			Page:    page,
			PerPage: perPage,
			Pages:   pages,
		},
	}
}

// Suggest returns autocomplete candidates for a prefix-style query.
func (s *Service) Suggest(query string, limit int) []string {
	return s.resolver.Suggest(query, limit)
}

// Detail resolves a free-text name to its record, or match.ErrNotFound.
func (s *Service) Detail(name string) (*model.CompanyRecord, error) {
	return s.resolver.Resolve(name)
}

// Finance resolves a name and builds its event window. Resolution failures
// short-circuit before any external call is made.
func (s *Service) Finance(ctx context.Context, name string) (*model.FinanceWindow, error) {
	rec, err := s.resolver.Resolve(name)
	if err != nil {
		return nil, err
	}
	return s.builder.Build(ctx, *rec)
}
