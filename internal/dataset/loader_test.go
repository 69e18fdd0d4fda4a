package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/divestwatch/internal/model"
)

func TestParse(t *testing.T) {
	csvData := `Company,Description,Source,Link,Month,Year,Ticker
Acme Global Corp,Widgets,BDS,https://example.org/acme,June,2020,ACME
Nestlé,Food,BDS,https://example.org/nestle,,2019,NSRGY (OTC)
No Date Co,—,Press,,NotAMonth,soon,
,orphan row without a name,,,,,
Numeric Month Inc,,List,,11,2021,"NMI, Class A"
`

	records, err := Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, records, 4, "row without a company name is dropped")

	assert.Equal(t, model.CompanyRecord{
		Name:        "Acme Global Corp",
		Description: "Widgets",
		Source:      "BDS",
		Link:        "https://example.org/acme",
		EventMonth:  6,
		EventYear:   2020,
		Ticker:      "ACME",
	}, records[0])

	// Missing month degrades to absent, ticker is cut at the first space.
	assert.Equal(t, 0, records[1].EventMonth)
	assert.Equal(t, 2019, records[1].EventYear)
	assert.Equal(t, "NSRGY", records[1].Ticker)

	// Unparseable month and year both degrade to absent; empty ticker stays empty.
	assert.Equal(t, 0, records[2].EventMonth)
	assert.Equal(t, 0, records[2].EventYear)
	assert.Equal(t, "", records[2].Ticker)
	assert.False(t, records[2].HasEventDate())

	// Numeric months are accepted; ticker is cut at the first comma.
	assert.Equal(t, 11, records[3].EventMonth)
	assert.Equal(t, "NMI", records[3].Ticker)
}

func TestParse_EmptyInput(t *testing.T) {
	records, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParse_HeaderOnly(t *testing.T) {
	records, err := Parse(strings.NewReader("Company,Month,Year,Ticker\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseRow_MonthVariants(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
	}{
		{name: "title case name", raw: "June", expected: 6},
		{name: "lower case name", raw: "december", expected: 12},
		{name: "upper case name", raw: "MARCH", expected: 3},
		{name: "padded", raw: " July ", expected: 7},
		{name: "numeric", raw: "2", expected: 2},
		{name: "numeric out of range", raw: "13", expected: 0},
		{name: "garbage", raw: "Juneish", expected: 0},
		{name: "empty", raw: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ParseRow(map[string]string{"company": "X", "month": tt.raw})
			assert.Equal(t, tt.expected, rec.EventMonth)
		})
	}
}

func TestParseRow_YearVariants(t *testing.T) {
	assert.Equal(t, 2020, ParseRow(map[string]string{"company": "X", "year": "2020"}).EventYear)
	assert.Equal(t, 2020, ParseRow(map[string]string{"company": "X", "year": "2020.0"}).EventYear)
	assert.Equal(t, 0, ParseRow(map[string]string{"company": "X", "year": "next year"}).EventYear)
}

func TestCleanTicker(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "plain symbol", raw: "ACME", expected: "ACME"},
		{name: "exchange suffix in parens", raw: "NSRGY(OTC)", expected: "NSRGY"},
		{name: "space separated note", raw: "MSFT Nasdaq", expected: "MSFT"},
		{name: "comma separated", raw: "BP, London", expected: "BP"},
		{name: "padded", raw: "  KO  ", expected: "KO"},
		{name: "empty", raw: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanTicker(tt.raw))
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	ix := Load("testdata/does-not-exist.csv")
	require.NotNil(t, ix)
	assert.Zero(t, ix.Len())
}
