package pricing

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suessland/suessland-platform/internal/catalog"
	"github.com/suessland/suessland-platform/internal/platform/db"
)

// PricedProduct is the slice of a product row the pricing core needs.
type PricedProduct struct {
	ID                 int64
	CategoryID         int64
	PurchaseCostPerBox float64
	CustomerPrice      float64
	DealerPrice        float64
	Attributes         catalog.TechnicalAttributes
}

// Repository provides persistence for rules, exceptions, profiles and
// the priced product rows.
type Repository interface {
	ListRules(ctx context.Context) ([]Rule, error)
	ListExceptions(ctx context.Context, productID, companyID int64, channel Channel) ([]Exception, error)
	GetProfileForCompany(ctx context.Context, companyID int64) (*CustomerProfile, error)
	GetPricedProduct(ctx context.Context, productID int64) (PricedProduct, error)
	ListRepricingTargets(ctx context.Context) ([]PricedProduct, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the transactional write side of a reprice run.
type TxRepository interface {
	UpdateProductPrices(ctx context.Context, productID int64, customerNet, dealerNet float64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) ListRules(ctx context.Context) ([]Rule, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, scope, target_id, channel, company_id, min_quantity,
		        percent_change, priority, valid_from, valid_to, is_active, created_at
		 FROM pricing_rules
		 WHERE is_active = true
		 ORDER BY priority, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []Rule
	for rows.Next() {
		var rule Rule
		if err := rows.Scan(&rule.ID, &rule.Name, &rule.Scope, &rule.TargetID, &rule.Channel,
			&rule.CompanyID, &rule.MinQuantity, &rule.PercentChange, &rule.Priority,
			&rule.ValidFrom, &rule.ValidTo, &rule.IsActive, &rule.CreatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (r *repository) ListExceptions(ctx context.Context, productID, companyID int64, channel Channel) ([]Exception, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, product_id, company_id, channel, fixed_net_price, valid_from, valid_to, is_active
		 FROM price_exceptions
		 WHERE product_id = $1 AND company_id = $2 AND channel = $3 AND is_active = true`,
		productID, companyID, channel)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exceptions []Exception
	for rows.Next() {
		var e Exception
		if err := rows.Scan(&e.ID, &e.ProductID, &e.CompanyID, &e.Channel,
			&e.FixedNetPrice, &e.ValidFrom, &e.ValidTo, &e.IsActive); err != nil {
			return nil, err
		}
		exceptions = append(exceptions, e)
	}
	return exceptions, rows.Err()
}

// GetProfileForCompany returns nil without error when the company has
// no profile assigned; a missing profile is not a failure.
func (r *repository) GetProfileForCompany(ctx context.Context, companyID int64) (*CustomerProfile, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT p.id, p.name, p.general_discount_percent, p.is_active
		 FROM customer_profiles p
		 JOIN company_profiles cp ON cp.profile_id = p.id
		 WHERE cp.company_id = $1`, companyID)

	var p CustomerProfile
	if err := row.Scan(&p.ID, &p.Name, &p.GeneralDiscountPercent, &p.IsActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

const pricedProductColumns = `id, category_id, purchase_cost_per_box, customer_price, dealer_price, technical_attributes`

func (r *repository) GetPricedProduct(ctx context.Context, productID int64) (PricedProduct, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+pricedProductColumns+` FROM products WHERE id = $1`, productID)
	p, err := scanPricedProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PricedProduct{}, ErrNotFound
		}
		return PricedProduct{}, err
	}
	return p, nil
}

func (r *repository) ListRepricingTargets(ctx context.Context) ([]PricedProduct, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+pricedProductColumns+` FROM products WHERE is_active = true ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var targets []PricedProduct
	for rows.Next() {
		p, err := scanPricedProduct(rows)
		if err != nil {
			return nil, err
		}
		targets = append(targets, p)
	}
	return targets, rows.Err()
}

func scanPricedProduct(row pgx.Row) (PricedProduct, error) {
	var p PricedProduct
	err := row.Scan(&p.ID, &p.CategoryID, &p.PurchaseCostPerBox,
		&p.CustomerPrice, &p.DealerPrice, &p.Attributes)
	return p, err
}

type txRepo struct {
	tx pgx.Tx
}

// WithTx wraps a reprice run in a repeatable-read transaction.
func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{tx: tx})
	})
}

func (t *txRepo) UpdateProductPrices(ctx context.Context, productID int64, customerNet, dealerNet float64) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE products SET customer_price = $2, dealer_price = $3, updated_at = now() WHERE id = $1`,
		productID, customerNet, dealerNet)
	return err
}
