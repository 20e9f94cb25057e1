package pricing

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// PreviewRequest is the calculator input submitted by the admin UI.
type PreviewRequest struct {
	PurchaseCostPerBox       float64   `json:"purchase_cost_per_box" validate:"gte=0"`
	SliceCount               int       `json:"slice_count" validate:"gte=0"`
	ShippingPerBox           float64   `json:"shipping_per_box" validate:"gte=0"`
	CustomsPercent           float64   `json:"customs_percent" validate:"gte=0,lte=100"`
	OperationalPercent       float64   `json:"operational_percent" validate:"gte=0,lte=100"`
	DistributorMarginPercent float64   `json:"distributor_margin_percent" validate:"gte=0,lte=500"`
	DealerMarginPercent      float64   `json:"dealer_margin_percent" validate:"gte=0,lte=500"`
	VATPercent               float64   `json:"vat_percent" validate:"gte=0,lte=100"`
	Overrides                Overrides `json:"overrides"`
}

// Validate checks field ranges.
func (r PreviewRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// Params extracts the calculator parameters from the request.
func (r PreviewRequest) Params() Params {
	return Params{
		ShippingPerBox:           r.ShippingPerBox,
		CustomsPercent:           r.CustomsPercent,
		OperationalPercent:       r.OperationalPercent,
		DistributorMarginPercent: r.DistributorMarginPercent,
		DealerMarginPercent:      r.DealerMarginPercent,
		VATPercent:               r.VATPercent,
	}
}

// BulkRepriceRequest triggers a background repricing run. Zero fields
// fall back to the configured defaults.
type BulkRepriceRequest struct {
	ShippingPerBox           float64 `json:"shipping_per_box" validate:"gte=0"`
	CustomsPercent           float64 `json:"customs_percent" validate:"gte=0,lte=100"`
	OperationalPercent       float64 `json:"operational_percent" validate:"gte=0,lte=100"`
	DistributorMarginPercent float64 `json:"distributor_margin_percent" validate:"gte=0,lte=500"`
	DealerMarginPercent      float64 `json:"dealer_margin_percent" validate:"gte=0,lte=500"`
	VATPercent               float64 `json:"vat_percent" validate:"gte=0,lte=100"`
}

// Validate checks field ranges.
func (r BulkRepriceRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// Params extracts the calculator parameters from the request.
func (r BulkRepriceRequest) Params() Params {
	return Params{
		ShippingPerBox:           r.ShippingPerBox,
		CustomsPercent:           r.CustomsPercent,
		OperationalPercent:       r.OperationalPercent,
		DistributorMarginPercent: r.DistributorMarginPercent,
		DealerMarginPercent:      r.DealerMarginPercent,
		VATPercent:               r.VATPercent,
	}
}
