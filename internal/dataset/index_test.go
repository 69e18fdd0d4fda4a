package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/divestwatch/internal/model"
)

func testRecords() []model.CompanyRecord {
	return []model.CompanyRecord{
		{Name: "Acme Global Corp", Ticker: "ACME"},
		{Name: "Café Holdings"},
		{Name: "Acme Foods"},
		{Name: "Zenith Industries"},
	}
}

func TestIndex_All_PreservesInsertionOrder(t *testing.T) {
	ix := NewIndex(testRecords())
	require.Equal(t, 4, ix.Len())

	names := ix.Names()
	assert.Equal(t, []string{"Acme Global Corp", "Café Holdings", "Acme Foods", "Zenith Industries"}, names)
}

func TestIndex_Normalized(t *testing.T) {
	ix := NewIndex(testRecords())
	assert.Equal(t, "cafe holdings", ix.Normalized()[1])
}

func TestIndex_ContainsSubstring(t *testing.T) {
	ix := NewIndex(testRecords())

	matches := ix.ContainsSubstring("acme")
	require.Len(t, matches, 2)
	assert.Equal(t, "Acme Global Corp", matches[0].Name)
	assert.Equal(t, "Acme Foods", matches[1].Name)

	assert.Empty(t, ix.ContainsSubstring("unrelated"))
}

func TestIndex_Empty(t *testing.T) {
	ix := NewIndex(nil)
	assert.Zero(t, ix.Len())
	assert.Empty(t, ix.All())
	assert.Empty(t, ix.ContainsSubstring("anything"))
}
