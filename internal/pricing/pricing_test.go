package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRates(t *testing.T) {
	table := Default()

	cases := map[string]int64{
		CategoryAdult:   200,
		CategoryChild:   100,
		CategoryStudent: 150,
		CategorySenior:  100,
		CategoryVIP:     500,
	}
	for category, want := range cases {
		rate, ok := table.Rate(category)
		assert.True(t, ok, category)
		assert.Equal(t, want, rate, category)
	}
}

func TestRateUnknownCategory(t *testing.T) {
	_, ok := Default().Rate("Backstage Pass")
	assert.False(t, ok)
}

func TestTotal(t *testing.T) {
	total, ok := Default().Total(CategoryVIP, 3)
	assert.True(t, ok)
	assert.Equal(t, int64(1500), total)

	_, ok = Default().Total("Backstage Pass", 2)
	assert.False(t, ok)
}
