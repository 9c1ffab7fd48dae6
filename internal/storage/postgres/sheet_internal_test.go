package postgres

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestExperienceColumn_ClampsAboveMaxInt64(t *testing.T) {
	assert.Equal(t, int64(0), experienceColumn(0))
	assert.Equal(t, int64(math.MaxInt64), experienceColumn(math.MaxInt64))
	assert.Equal(t, int64(math.MaxInt64), experienceColumn(math.MaxInt64+1))
	assert.Equal(t, int64(math.MaxInt64), experienceColumn(math.MaxUint64))
}

func TestExperienceColumn_Property_NeverNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		exp := rapid.Uint64().Draw(rt, "experience")
		got := experienceColumn(exp)
		assert.GreaterOrEqual(rt, got, int64(0))
		if exp <= math.MaxInt64 {
			assert.Equal(rt, int64(exp), got)
		}
	})
}
