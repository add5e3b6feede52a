package pricing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PRASHANT-tech870/Embroidery/internal/catalog"
)

func testDesign() *catalog.Design {
	return &catalog.Design{
		ID:         "design-1",
		Name:       "Nature Collection",
		PriceRange: "500-2000",
		PageCount:  54,
	}
}

func TestResolve_Deterministic(t *testing.T) {
	design := testDesign()

	first, err := Resolve(design, 12)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Resolve(design, 12)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolve_PriceWithinRange(t *testing.T) {
	design := testDesign()

	for page := 1; page <= design.PageCount; page++ {
		quote, err := Resolve(design, page)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, quote.UnitPrice, int64(500*100))
		assert.LessOrEqual(t, quote.UnitPrice, int64(2000*100))
		assert.Zero(t, quote.UnitPrice%100, "prices are whole rupees")
	}
}

func TestResolve_Label(t *testing.T) {
	quote, err := Resolve(testDesign(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Nature Collection (Page 7)", quote.Label)
}

func TestResolve_OutOfRangePageHasNoQuote(t *testing.T) {
	design := testDesign()

	for _, page := range []int{0, -1, 55, 1000} {
		t.Run(fmt.Sprintf("page_%d", page), func(t *testing.T) {
			quote, err := Resolve(design, page)
			assert.ErrorIs(t, err, ErrNoQuote)
			assert.Nil(t, quote)
		})
	}
}

func TestResolve_DifferentPagesCanDiffer(t *testing.T) {
	design := testDesign()

	prices := make(map[int64]bool)
	for page := 1; page <= design.PageCount; page++ {
		quote, err := Resolve(design, page)
		require.NoError(t, err)
		prices[quote.UnitPrice] = true
	}

	// the hash spreads prices over the range, not one constant value
	assert.Greater(t, len(prices), 1)
}

func TestResolve_MalformedPriceRange(t *testing.T) {
	cases := []string{"", "cheap", "2000-500", "-100-500"}

	for _, rangeStr := range cases {
		t.Run(rangeStr, func(t *testing.T) {
			design := testDesign()
			design.PriceRange = rangeStr

			quote, err := Resolve(design, 1)
			assert.Error(t, err)
			assert.NotErrorIs(t, err, ErrNoQuote)
			assert.Nil(t, quote)
		})
	}
}
