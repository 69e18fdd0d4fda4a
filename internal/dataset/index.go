// Package dataset builds and serves the immutable in-memory table of
// boycott/divestment company records.
package dataset

import (
	"strings"

	"github.com/sells-group/divestwatch/internal/model"
	"github.com/sells-group/divestwatch/internal/normalize"
)

// Index is the read-only collection of company records, in source-table
// order. It is built once at startup and then shared across request handlers
// without locking; nothing mutates it after construction.
type Index struct {
	records []model.CompanyRecord
	norms   []string // normalize(record.Name), parallel to records
}

// NewIndex builds an index over records, preserving insertion order.
// Normalized names are precomputed once so per-query matching never
// re-normalizes the table.
func NewIndex(records []model.CompanyRecord) *Index {
	ix := &Index{
		records: records,
		norms:   make([]string, len(records)),
	}
	for i, rec := range records {
		ix.norms[i] = normalize.Normalize(rec.Name)
	}
	return ix
}

// Len returns the number of records.
func (ix *Index) Len() int { return len(ix.records) }

// All returns the records in insertion order. Callers must treat the slice
// as read-only.
func (ix *Index) All() []model.CompanyRecord { return ix.records }

// Normalized returns the normalized names, parallel to All. Read-only.
func (ix *Index) Normalized() []string { return ix.norms }

// ContainsSubstring returns records whose normalized name contains the
// already-normalized query as a substring, in insertion order.
func (ix *Index) ContainsSubstring(normQuery string) []model.CompanyRecord {
	var out []model.CompanyRecord
	for i, n := range ix.norms {
		if strings.Contains(n, normQuery) {
			out = append(out, ix.records[i])
		}
	}
	return out
}

// Names returns the raw record names in insertion order. Read-only.
func (ix *Index) Names() []string {
	names := make([]string, len(ix.records))
	for i, rec := range ix.records {
		names[i] = rec.Name
	}
	return names
}
