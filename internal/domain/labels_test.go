package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRiskLevel(t *testing.T) {
	level, ok := ParseRiskLevel(" Low-Stock ")
	assert.True(t, ok)
	assert.Equal(t, "low_stock", level)

	level, ok = ParseRiskLevel("CRITICAL")
	assert.True(t, ok)
	assert.Equal(t, "critical", level)

	_, ok = ParseRiskLevel("dangerous")
	assert.False(t, ok)
}

func TestParseRiskLevels(t *testing.T) {
	levels, err := ParseRiskLevels("critical, bogus,OVERSTOCK,critical")
	require.NoError(t, err)
	assert.Equal(t, []string{"critical", "overstock"}, levels)

	levels, err = ParseRiskLevels("")
	require.NoError(t, err)
	assert.Nil(t, levels)
}

func TestParseRiskLevels_NothingKnown(t *testing.T) {
	for _, raw := range []string{"dangerous", "bogus, nope", " , dangerous ,"} {
		levels, err := ParseRiskLevels(raw)
		assert.ErrorIs(t, err, ErrUnknownRiskLevel, raw)
		assert.Nil(t, levels)
	}
}

func TestRiskLevelLabel(t *testing.T) {
	assert.Equal(t, "Low Stock", RiskLevelLabel("low_stock"))
	assert.Equal(t, "Unknown", RiskLevelLabel("nope"))
}
