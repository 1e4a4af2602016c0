package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebwray/portal/internal/catalog"
)

func TestCharacters_RowOrderAndMatching(t *testing.T) {
	a := catalog.Character{
		Status:   "Alive",
		Species:  "Human",
		Gender:   "Male",
		Origin:   catalog.Reference{Name: "Earth (C-137)"},
		Location: catalog.Reference{Name: "Citadel of Ricks"},
		Episodes: []string{"e1", "e2", "e3"},
	}
	b := catalog.Character{
		Status:   "Dead",
		Species:  "Human",
		Gender:   "Male",
		Origin:   catalog.Reference{Name: "unknown"},
		Location: catalog.Reference{Name: "Citadel of Ricks"},
		Episodes: []string{"e1", "e2", "e3"},
	}

	rows := Characters(a, b)
	require.Len(t, rows, 6)

	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = r.Label
	}
	assert.Equal(t, []string{"Status", "Species", "Gender", "Origin", "Location", "Episodes"}, labels)

	assert.Equal(t, Row{Label: "Status", ValueA: "Alive", ValueB: "Dead", Match: false}, rows[0])
	assert.Equal(t, Row{Label: "Species", ValueA: "Human", ValueB: "Human", Match: true}, rows[1])
	assert.False(t, rows[3].Match)
	assert.True(t, rows[4].Match)
	assert.Equal(t, Row{Label: "Episodes", ValueA: "3", ValueB: "3", Match: true}, rows[5])
}

func TestCharacters_CaseSensitive(t *testing.T) {
	a := catalog.Character{Status: "Alive"}
	b := catalog.Character{Status: "alive"}
	rows := Characters(a, b)
	assert.False(t, rows[0].Match)
}

func TestCharacters_MissingFieldsCompareAsEmpty(t *testing.T) {
	rows := Characters(catalog.Character{}, catalog.Character{})
	for _, r := range rows[:5] {
		assert.Equal(t, "", r.ValueA, r.Label)
		assert.True(t, r.Match, r.Label)
	}
	// A nil episode list is a count of zero, not an empty string.
	assert.Equal(t, Row{Label: "Episodes", ValueA: "0", ValueB: "0", Match: true}, rows[5])
}
