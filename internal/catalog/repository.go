package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates the requested catalog record does not exist.
	ErrNotFound = errors.New("record not found")
)

// Repository loads flat catalog snapshots. The core never joins or
// mutates; every query is a plain equality scan and all shaping happens
// in memory.
type Repository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListAttributeFields(ctx context.Context) ([]AttributeField, error)
	ListActiveProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int64) (Product, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, slug, name, parent_id FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name, &c.ParentID); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListAttributeFields preserves insertion order (by id); per-category
// ordering by sort_order happens in TemplateIndex so ties stay stable.
func (r *repository) ListAttributeFields(ctx context.Context) ([]AttributeField, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT category_id, field_key, display_name, sort_order FROM attribute_template_fields ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []AttributeField
	for rows.Next() {
		var f AttributeField
		if err := rows.Scan(&f.CategoryID, &f.FieldKey, &f.DisplayName, &f.SortOrder); err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

const productColumns = `id, slug, name, category_id, images, avg_rating, review_count,
	technical_attributes, purchase_cost_per_box, customer_price, dealer_price, is_active`

func (r *repository) ListActiveProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE is_active = true ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) GetProduct(ctx context.Context, id int64) (Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.CategoryID, &p.Images, &p.AvgRating,
		&p.ReviewCount, &p.Attributes, &p.PurchaseCostPerBox, &p.CustomerPrice,
		&p.DealerPrice, &p.IsActive)
	return p, err
}
