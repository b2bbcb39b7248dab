package scout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/dhi-eol/internal/model"
)

// testDefs is a realistic tag catalog: two versioned streams plus a
// "latest" stream, in catalog order.
var testDefs = []model.TagDefinition{
	{
		DisplayName: "2.38",
		TagNames:    []string{"2.38", "2.38.2"},
		EndOfLife:   "2026-06-30",
	},
	{
		DisplayName: "2.39",
		TagNames:    []string{"2", "2.39", "2.39.0", "latest"},
		EndOfLife:   "2027-04-30",
	},
	{
		DisplayName: "3.0-rc",
		TagNames:    []string{"3.0-rc1"},
	},
}

// TestMatchTagDefinition verifies the full preference chain:
// exact match > prefix match (either direction) > "latest" alias >
// first definition.
func TestMatchTagDefinition(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		wantName string
	}{
		{
			name:     "exact match wins",
			version:  "2.38.2",
			wantName: "2.38",
		},
		{
			name:     "exact match beats prefix candidates",
			version:  "2.39",
			wantName: "2.39",
		},
		{
			name:     "version is a prefix of an alias",
			version:  "2.3",
			wantName: "2.38",
		},
		{
			name:     "alias is a prefix of the version",
			version:  "2.38.2.1",
			wantName: "2.38",
		},
		{
			name:     "alias prefix match on a pre-release stream",
			version:  "3.0-rc1-build4",
			wantName: "3.0-rc",
		},
		{
			name:     "no match falls back to the latest alias",
			version:  "9.9",
			wantName: "2.39",
		},
		{
			name:     "empty version goes straight to the latest alias",
			version:  "",
			wantName: "2.39",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			td, ok := MatchTagDefinition(tt.version, testDefs)
			require.True(t, ok)
			assert.Equal(t, tt.wantName, td.DisplayName)
		})
	}
}

// TestMatchTagDefinition_ExactBeatsPrefix pins the ordering between the
// first two rungs of the chain: an exact alias elsewhere in the catalog
// wins over an earlier prefix candidate.
func TestMatchTagDefinition_ExactBeatsPrefix(t *testing.T) {
	defs := []model.TagDefinition{
		// "2" is a prefix of this definition's "2.38" alias...
		{DisplayName: "2.38", TagNames: []string{"2.38"}},
		// ...but this one lists "2" verbatim and must win.
		{DisplayName: "2.39", TagNames: []string{"2", "2.39"}},
	}

	td, ok := MatchTagDefinition("2", defs)
	require.True(t, ok)
	assert.Equal(t, "2.39", td.DisplayName)
}

// TestMatchTagDefinition_FirstItemFallback verifies that a catalog without
// a "latest" alias falls back to its first definition.
func TestMatchTagDefinition_FirstItemFallback(t *testing.T) {
	defs := []model.TagDefinition{
		{DisplayName: "1.0", TagNames: []string{"1.0"}},
		{DisplayName: "2.0", TagNames: []string{"2.0"}},
	}

	t.Run("unmatched version", func(t *testing.T) {
		td, ok := MatchTagDefinition("9.9", defs)
		require.True(t, ok)
		assert.Equal(t, "1.0", td.DisplayName)
	})

	t.Run("empty version", func(t *testing.T) {
		td, ok := MatchTagDefinition("", defs)
		require.True(t, ok)
		assert.Equal(t, "1.0", td.DisplayName)
	})
}

// TestMatchTagDefinition_Empty verifies that an empty catalog yields
// no match regardless of the version.
func TestMatchTagDefinition_Empty(t *testing.T) {
	_, ok := MatchTagDefinition("2.39", nil)
	assert.False(t, ok)

	_, ok = MatchTagDefinition("", []model.TagDefinition{})
	assert.False(t, ok)
}
