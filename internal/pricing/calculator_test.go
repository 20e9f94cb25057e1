package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() Params {
	return Params{
		ShippingPerBox:           5,
		CustomsPercent:           10,
		OperationalPercent:       4,
		DistributorMarginPercent: 30,
		DealerMarginPercent:      5,
		VATPercent:               7,
	}
}

func TestCalculateBreakdown(t *testing.T) {
	b := Calculate(testParams(), 100, 12, Overrides{})

	// customs = (100+5)*10% = 10.5, operational = 100*4% = 4
	assert.InDelta(t, 10.5, b.CustomsCost, 1e-9)
	assert.InDelta(t, 4.0, b.OperationalCost, 1e-9)
	assert.InDelta(t, 119.5, b.LandedCostPerBox, 1e-9)
	assert.InDelta(t, 119.5*1.30, b.CustomerNetPerBox, 1e-9)
	assert.InDelta(t, 119.5*1.05, b.DealerNetPerBox, 1e-9)
	assert.InDelta(t, b.CustomerNetPerBox/12, b.CustomerNetPerSlice, 1e-9)
	assert.InDelta(t, b.DealerNetPerBox/12, b.DealerNetPerSlice, 1e-9)
	assert.InDelta(t, b.CustomerNetPerBox*0.07, b.VATAmount, 1e-9)
	assert.Equal(t, 12, b.SliceCount)
}

func TestCalculateLandedCostIsExactSum(t *testing.T) {
	b := Calculate(testParams(), 73.37, 6, Overrides{})
	require.InDelta(t, b.PurchaseCostPerBox+b.ShippingPerBox+b.CustomsCost+b.OperationalCost,
		b.LandedCostPerBox, 1e-12)
}

func TestCalculateSliceCountFloor(t *testing.T) {
	for _, slices := range []int{0, -3} {
		b := Calculate(testParams(), 100, slices, Overrides{})
		assert.Equal(t, 1, b.SliceCount)
		assert.InDelta(t, b.CustomerNetPerBox, b.CustomerNetPerSlice, 1e-9)
	}
}

func TestCalculateOverridesReplaceNetBeforeSliceDivision(t *testing.T) {
	customer := 200.0
	dealer := 150.0
	b := Calculate(testParams(), 100, 10, Overrides{
		CustomerNetPerBox: &customer,
		DealerNetPerBox:   &dealer,
	})

	assert.InDelta(t, 200, b.CustomerNetPerBox, 1e-9)
	assert.InDelta(t, 20, b.CustomerNetPerSlice, 1e-9)
	assert.InDelta(t, 150, b.DealerNetPerBox, 1e-9)
	assert.InDelta(t, 15, b.DealerNetPerSlice, 1e-9)
	// VAT follows the overridden customer net
	assert.InDelta(t, 200*0.07, b.VATAmount, 1e-9)
}

func TestCalculateZeroParams(t *testing.T) {
	b := Calculate(Params{}, 100, 1, Overrides{})
	assert.InDelta(t, 100, b.LandedCostPerBox, 1e-9)
	assert.InDelta(t, 100, b.CustomerNetPerBox, 1e-9)
	assert.InDelta(t, 100, b.DealerNetPerBox, 1e-9)
	assert.InDelta(t, 0, b.VATAmount, 1e-9)
}

func TestParseAmount(t *testing.T) {
	assert.InDelta(t, 12.5, ParseAmount("12.5", 0), 1e-9)
	assert.InDelta(t, 12.5, ParseAmount("12,5", 0), 1e-9)
	assert.InDelta(t, 3, ParseAmount(" 3 ", 0), 1e-9)
	assert.InDelta(t, 1, ParseAmount("", 1), 1e-9)
	assert.InDelta(t, 0, ParseAmount("abc", 0), 1e-9)
}
