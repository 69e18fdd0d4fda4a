package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain ascii",
			input:    "Acme Global Corp",
			expected: "acme global corp",
		},
		{
			name:     "accented characters fold to base letters",
			input:    "Café Société",
			expected: "cafe societe",
		},
		{
			name:     "upper case",
			input:    "CAFE",
			expected: "cafe",
		},
		{
			name:     "leading and trailing whitespace",
			input:    "  Nestlé  ",
			expected: "nestle",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "non-ascii runes dropped",
			input:    "Møller—Mærsk",
			expected: "mllermrsk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"Café", "  ACME Corp  ", "naïve façade", "", "already normal"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize(%q) must be idempotent", in)
	}
}

func TestNormalize_CaseAndDiacriticInsensitive(t *testing.T) {
	assert.Equal(t, Normalize("Café"), Normalize("cafe"))
	assert.Equal(t, Normalize("Café"), Normalize("CAFE"))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "acme corp", Fold("  Acme CORP "))
	// Fold keeps diacritics: it is the autocomplete key, not the match key.
	assert.Equal(t, "café", Fold("Café"))
	assert.Equal(t, "", Fold(""))
}
