package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/divestwatch/internal/dataset"
	"github.com/sells-group/divestwatch/internal/model"
)

func newTestResolver(records []model.CompanyRecord) *Resolver {
	return NewResolver(dataset.NewIndex(records), Config{})
}

func TestResolve_ExactBeatsSubstring(t *testing.T) {
	// "ACME" would substring-match the first record, but the second record
	// matches exactly after normalization and must win.
	r := newTestResolver([]model.CompanyRecord{
		{Name: "Acme Global Corp"},
		{Name: "ACME"},
	})

	rec, err := r.Resolve("acme")
	require.NoError(t, err)
	assert.Equal(t, "ACME", rec.Name)
}

func TestResolve_SubstringTier(t *testing.T) {
	r := newTestResolver([]model.CompanyRecord{
		{Name: "Zenith Industries"},
		{Name: "Acme Global Corp", Ticker: "ACME"},
	})

	rec, err := r.Resolve("acme global")
	require.NoError(t, err)
	assert.Equal(t, "Acme Global Corp", rec.Name)
}

func TestResolve_SubstringIsQueryInsideName(t *testing.T) {
	// The name being a substring of the query does not satisfy tier 2.
	r := newTestResolver([]model.CompanyRecord{
		{Name: "Acme"},
		{Name: "Acme Global Corp"},
	})

	rec, err := r.Resolve("acme global")
	require.NoError(t, err)
	assert.Equal(t, "Acme Global Corp", rec.Name)
}

func TestResolve_FuzzyTier_OneLetterTypo(t *testing.T) {
	r := newTestResolver([]model.CompanyRecord{
		{Name: "Zenith Industries"},
		{Name: "Acme Global Corp"},
	})

	rec, err := r.Resolve("Acme Globle Corp")
	require.NoError(t, err)
	assert.Equal(t, "Acme Global Corp", rec.Name)
}

func TestResolve_BelowThresholdIsNotFound(t *testing.T) {
	r := newTestResolver([]model.CompanyRecord{
		{Name: "Acme Global Corp"},
		{Name: "Zenith Industries"},
	})

	_, err := r.Resolve("Acme Unrelated Holdings")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_FirstMatchWinsWithinTier(t *testing.T) {
	r := newTestResolver([]model.CompanyRecord{
		{Name: "Acme Foods", Source: "first"},
		{Name: "Acme Foods", Source: "second"},
	})

	rec, err := r.Resolve("Acme Foods")
	require.NoError(t, err)
	assert.Equal(t, "first", rec.Source)
}

func TestResolve_DiacriticInsensitive(t *testing.T) {
	r := newTestResolver([]model.CompanyRecord{
		{Name: "Nestlé"},
	})

	rec, err := r.Resolve("nestle")
	require.NoError(t, err)
	assert.Equal(t, "Nestlé", rec.Name)
}

func TestResolve_EmptyQuery(t *testing.T) {
	r := newTestResolver([]model.CompanyRecord{{Name: "Acme"}})

	_, err := r.Resolve("   ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_EmptyIndex(t *testing.T) {
	r := newTestResolver(nil)

	_, err := r.Resolve("anything")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_CustomThreshold(t *testing.T) {
	records := []model.CompanyRecord{{Name: "Acme Global Corp"}}

	strict := NewResolver(dataset.NewIndex(records), Config{SimilarityThreshold: 0.99})
	_, err := strict.Resolve("Acme Globle Corp")
	assert.ErrorIs(t, err, ErrNotFound)

	lax := NewResolver(dataset.NewIndex(records), Config{SimilarityThreshold: 0.5})
	rec, err := lax.Resolve("Acme Globle Corp")
	require.NoError(t, err)
	assert.Equal(t, "Acme Global Corp", rec.Name)
}

func TestSuggest(t *testing.T) {
	r := newTestResolver([]model.CompanyRecord{
		{Name: "Acme Global Corp"},
		{Name: "Acme Foods"},
		{Name: "Acme Foods"}, // duplicate name, deduped
		{Name: "Zenith Industries"},
		{Name: "Café Holdings"},
	})

	t.Run("substring match preserves first-seen order", func(t *testing.T) {
		got := r.Suggest("acme", 0)
		assert.Equal(t, []string{"Acme Global Corp", "Acme Foods"}, got)
	})

	t.Run("empty query returns first distinct names", func(t *testing.T) {
		got := r.Suggest("", 3)
		assert.Equal(t, []string{"Acme Global Corp", "Acme Foods", "Zenith Industries"}, got)
	})

	t.Run("limit caps results", func(t *testing.T) {
		got := r.Suggest("acme", 1)
		assert.Equal(t, []string{"Acme Global Corp"}, got)
	})

	t.Run("case folded but diacritic sensitive", func(t *testing.T) {
		assert.Equal(t, []string{"Café Holdings"}, r.Suggest("café", 0))
		assert.Empty(t, r.Suggest("cafe", 0))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, r.Suggest("nonexistent", 0))
	})
}
