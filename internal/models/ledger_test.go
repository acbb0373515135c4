package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReasonCategoryPunitive(t *testing.T) {
	assert.True(t, CategoryManual.Punitive())
	assert.True(t, ReasonCategory("").Punitive())
	assert.False(t, CategoryRedemption.Punitive())
	assert.False(t, CategoryDrawCost.Punitive())
	assert.False(t, CategoryDrawBonus.Punitive())
}

func TestReasonCategoryValid(t *testing.T) {
	assert.True(t, CategoryManual.Valid())
	assert.True(t, CategoryDrawBonus.Valid())
	assert.False(t, ReasonCategory("").Valid())
	assert.False(t, ReasonCategory("BOGUS").Valid())
}

func TestFormatChange(t *testing.T) {
	assert.Equal(t, "+15", FormatChange(15))
	assert.Equal(t, "-5", FormatChange(-5))
	assert.Equal(t, "0", FormatChange(0))
}

func TestPrizeBonusPoints(t *testing.T) {
	cases := []struct {
		label string
		want  int
	}{
		{"+5", 5},
		{"+5积分", 5},
		{" +20 ", 20},
		{"谢谢参与", 0},
		{"5积分", 0},
		{"+", 0},
		{"+abc", 0},
		{"+0", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TurntablePrize{Label: tc.label}.BonusPoints(), "label %q", tc.label)
	}
}
