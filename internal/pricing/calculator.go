package pricing

import (
	"strconv"
	"strings"
)

// Calculate derives the full price breakdown for one product.
//
//	customs     = (purchase + shipping) * customs%/100
//	operational = purchase * operational%/100
//	landed      = purchase + shipping + customs + operational
//	customerNet = landed * (1 + distributorMargin%/100)
//	dealerNet   = landed * (1 + dealerMargin%/100)
//
// Per-slice values divide the per-box values by max(1, sliceCount).
// VAT is computed on the customer net per box. Overrides replace the
// computed per-box nets before the per-slice division.
func Calculate(params Params, purchaseCostPerBox float64, sliceCount int, overrides Overrides) Breakdown {
	if sliceCount < 1 {
		sliceCount = 1
	}

	customs := (purchaseCostPerBox + params.ShippingPerBox) * params.CustomsPercent / 100
	operational := purchaseCostPerBox * params.OperationalPercent / 100
	landed := purchaseCostPerBox + params.ShippingPerBox + customs + operational

	customerNet := landed * (1 + params.DistributorMarginPercent/100)
	dealerNet := landed * (1 + params.DealerMarginPercent/100)

	if overrides.CustomerNetPerBox != nil {
		customerNet = *overrides.CustomerNetPerBox
	}
	if overrides.DealerNetPerBox != nil {
		dealerNet = *overrides.DealerNetPerBox
	}

	slices := float64(sliceCount)
	return Breakdown{
		PurchaseCostPerBox:  purchaseCostPerBox,
		ShippingPerBox:      params.ShippingPerBox,
		CustomsCost:         customs,
		OperationalCost:     operational,
		LandedCostPerBox:    landed,
		CustomerNetPerBox:   customerNet,
		CustomerNetPerSlice: customerNet / slices,
		DealerNetPerBox:     dealerNet,
		DealerNetPerSlice:   dealerNet / slices,
		VATAmount:           customerNet * params.VATPercent / 100,
		SliceCount:          sliceCount,
	}
}

// ParseAmount parses a user-supplied numeric field, accepting a decimal
// comma, and falls back to def. No pricing input ever aborts a
// computation; bad numbers coerce to their defaults.
func ParseAmount(s string, def float64) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}
