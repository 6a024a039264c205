package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTier(t *testing.T) {
	cases := []struct {
		raw  string
		tier Tier
		ok   bool
	}{
		{"standard", TierStandard, true},
		{" Premium ", TierPremium, true},
		{"", TierStandard, true},
		{"platinum", "", false},
	}
	for _, tc := range cases {
		tier, ok := ParseTier(tc.raw)
		assert.Equal(t, tc.ok, ok, "raw %q", tc.raw)
		assert.Equal(t, tc.tier, tier, "raw %q", tc.raw)
	}
}

func TestParseCourtLevel(t *testing.T) {
	cases := []struct {
		raw   string
		level CourtLevel
		ok    bool
	}{
		{"federal", CourtLevelFederal, true},
		{"STATE", CourtLevelState, true},
		{"county", CourtLevelCounty, true},
		{"", CourtLevelState, true},
		{"municipal", "", false},
	}
	for _, tc := range cases {
		level, ok := ParseCourtLevel(tc.raw)
		assert.Equal(t, tc.ok, ok, "raw %q", tc.raw)
		assert.Equal(t, tc.level, level, "raw %q", tc.raw)
	}
}
