package pricing

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates the requested pricing record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidInput indicates a request field failed validation.
	ErrInvalidInput = errors.New("invalid input")
)

// Channel is a sales path with independent pricing.
type Channel string

const (
	// ChannelCustomer is the direct B2C/B2B-customer path.
	ChannelCustomer Channel = "customer"
	// ChannelDealer is the sub-dealer reseller path.
	ChannelDealer Channel = "dealer"
)

// Valid reports whether the channel is one of the known sales paths.
func (c Channel) Valid() bool {
	return c == ChannelCustomer || c == ChannelDealer
}

// RuleScope restricts what a pricing rule applies to.
type RuleScope string

const (
	ScopeGlobal   RuleScope = "global"
	ScopeCategory RuleScope = "category"
	ScopeProduct  RuleScope = "product"
)

// Rule is a percentage price adjustment. Scope decides what TargetID
// refers to; CompanyID and MinQuantity optionally narrow it further.
type Rule struct {
	ID            int64      `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	Scope         RuleScope  `json:"scope" db:"scope"`
	TargetID      *int64     `json:"target_id,omitempty" db:"target_id"`
	Channel       Channel    `json:"channel" db:"channel"`
	CompanyID     *int64     `json:"company_id,omitempty" db:"company_id"`
	MinQuantity   *int       `json:"min_quantity,omitempty" db:"min_quantity"`
	PercentChange float64    `json:"percent_change" db:"percent_change"`
	Priority      int        `json:"priority" db:"priority"`
	ValidFrom     *time.Time `json:"valid_from,omitempty" db:"valid_from"`
	ValidTo       *time.Time `json:"valid_to,omitempty" db:"valid_to"`
	IsActive      bool       `json:"is_active" db:"is_active"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// Exception is a fixed contractual net price for one exact
// (product, company, channel) tuple. While active and inside its
// validity window it supersedes every rule-derived price.
type Exception struct {
	ID            int64      `json:"id" db:"id"`
	ProductID     int64      `json:"product_id" db:"product_id"`
	CompanyID     int64      `json:"company_id" db:"company_id"`
	Channel       Channel    `json:"channel" db:"channel"`
	FixedNetPrice float64    `json:"fixed_net_price" db:"fixed_net_price"`
	ValidFrom     *time.Time `json:"valid_from,omitempty" db:"valid_from"`
	ValidTo       *time.Time `json:"valid_to,omitempty" db:"valid_to"`
	IsActive      bool       `json:"is_active" db:"is_active"`
}

// CustomerProfile supplies a baseline discount assignable to companies,
// layered under category rules.
type CustomerProfile struct {
	ID                     int64   `json:"id" db:"id"`
	Name                   string  `json:"name" db:"name"`
	GeneralDiscountPercent float64 `json:"general_discount_percent" db:"general_discount_percent"`
	IsActive               bool    `json:"is_active" db:"is_active"`
}

// Params are the bulk-calculator inputs. ShippingPerBox is an absolute
// amount per box; everything else is a percentage.
type Params struct {
	ShippingPerBox           float64 `json:"shipping_per_box"`
	CustomsPercent           float64 `json:"customs_percent"`
	OperationalPercent       float64 `json:"operational_percent"`
	DistributorMarginPercent float64 `json:"distributor_margin_percent"`
	DealerMarginPercent      float64 `json:"dealer_margin_percent"`
	VATPercent               float64 `json:"vat_percent"`
}

// Overrides replace computed per-box net prices before the per-slice
// division. Nil fields leave the computed value in place.
type Overrides struct {
	CustomerNetPerBox *float64 `json:"customer_net_per_box,omitempty"`
	DealerNetPerBox   *float64 `json:"dealer_net_per_box,omitempty"`
}

// Breakdown is the full per-product cost and price derivation.
type Breakdown struct {
	PurchaseCostPerBox  float64 `json:"purchase_cost_per_box"`
	ShippingPerBox      float64 `json:"shipping_per_box"`
	CustomsCost         float64 `json:"customs_cost"`
	OperationalCost     float64 `json:"operational_cost"`
	LandedCostPerBox    float64 `json:"landed_cost_per_box"`
	CustomerNetPerBox   float64 `json:"customer_net_per_box"`
	CustomerNetPerSlice float64 `json:"customer_net_per_slice"`
	DealerNetPerBox     float64 `json:"dealer_net_per_box"`
	DealerNetPerSlice   float64 `json:"dealer_net_per_slice"`
	VATAmount           float64 `json:"vat_amount"`
	SliceCount          int     `json:"slice_count"`
}

// PriceSource names the precedence layer a resolved price came from.
type PriceSource string

const (
	SourceException PriceSource = "exception"
	SourceRule      PriceSource = "rule"
	SourceProfile   PriceSource = "profile"
	SourceBase      PriceSource = "base"
)

// Resolution is the outcome of the precedence chain for one
// (product, company, channel) query.
type Resolution struct {
	NetPrice float64     `json:"net_price"`
	Source   PriceSource `json:"source"`
	RuleID   *int64      `json:"rule_id,omitempty"`
}
