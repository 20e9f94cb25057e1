package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Service provides the pricing business logic: calculator previews,
// precedence-resolved quotes and bulk repricing runs.
type Service struct {
	repo     Repository
	logger   *slog.Logger
	defaults Params
	now      func() time.Time
}

// NewService constructs a pricing service. defaults fill unset
// parameters on bulk reprice runs.
func NewService(repo Repository, logger *slog.Logger, defaults Params) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger, defaults: defaults, now: time.Now}
}

// Defaults returns the configured default parameters.
func (s *Service) Defaults() Params {
	return s.defaults
}

// Preview computes a calculator breakdown without touching persistence.
func (s *Service) Preview(params Params, purchaseCostPerBox float64, sliceCount int, overrides Overrides) Breakdown {
	return Calculate(params, purchaseCostPerBox, sliceCount, overrides)
}

// QuoteRequest asks for the effective net price of one product for one
// company on one channel.
type QuoteRequest struct {
	ProductID int64
	CompanyID int64
	Channel   Channel
	Quantity  int
}

// Quote runs the precedence chain over the persisted channel price:
// exception, then single best rule, then profile discount, then base.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (*Resolution, error) {
	if !req.Channel.Valid() {
		return nil, fmt.Errorf("%w: unknown channel %q", ErrInvalidInput, req.Channel)
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	product, err := s.repo.GetPricedProduct(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	exceptions, err := s.repo.ListExceptions(ctx, req.ProductID, req.CompanyID, req.Channel)
	if err != nil {
		return nil, fmt.Errorf("list exceptions: %w", err)
	}
	rules, err := s.repo.ListRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	profile, err := s.repo.GetProfileForCompany(ctx, req.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	base := product.CustomerPrice
	if req.Channel == ChannelDealer {
		base = product.DealerPrice
	}

	resolution := Resolve(base, s.now(), Query{
		ProductID:  req.ProductID,
		CategoryID: product.CategoryID,
		CompanyID:  req.CompanyID,
		Channel:    req.Channel,
		Quantity:   req.Quantity,
	}, exceptions, rules, profile)

	return &resolution, nil
}

// ListRules returns the active rules ordered by evaluation precedence.
func (s *Service) ListRules(ctx context.Context) ([]Rule, error) {
	return s.repo.ListRules(ctx)
}

// BulkReprice recomputes and persists both channel prices for every
// active product using the given parameters. Unset (zero) percentages
// fall back to the configured defaults. Returns the number of products
// updated.
func (s *Service) BulkReprice(ctx context.Context, runID string, params Params) (int, error) {
	params = s.fillDefaults(params)

	targets, err := s.repo.ListRepricingTargets(ctx)
	if err != nil {
		return 0, fmt.Errorf("list reprice targets: %w", err)
	}

	updated := 0
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		for _, target := range targets {
			breakdown := Calculate(params, target.PurchaseCostPerBox, target.Attributes.SliceCount(), Overrides{})
			if err := tx.UpdateProductPrices(ctx, target.ID, breakdown.CustomerNetPerBox, breakdown.DealerNetPerBox); err != nil {
				return fmt.Errorf("update product %d: %w", target.ID, err)
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("bulk reprice finished",
		slog.String("run_id", runID),
		slog.Int("products", updated))
	return updated, nil
}

func (s *Service) fillDefaults(p Params) Params {
	if p.ShippingPerBox == 0 {
		p.ShippingPerBox = s.defaults.ShippingPerBox
	}
	if p.CustomsPercent == 0 {
		p.CustomsPercent = s.defaults.CustomsPercent
	}
	if p.OperationalPercent == 0 {
		p.OperationalPercent = s.defaults.OperationalPercent
	}
	if p.DistributorMarginPercent == 0 {
		p.DistributorMarginPercent = s.defaults.DistributorMarginPercent
	}
	if p.DealerMarginPercent == 0 {
		p.DealerMarginPercent = s.defaults.DealerMarginPercent
	}
	if p.VATPercent == 0 {
		p.VATPercent = s.defaults.VATPercent
	}
	return p
}
