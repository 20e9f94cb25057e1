package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	categories []Category
	fields     []AttributeField
	products   []Product

	listErr error
}

func (r *memoryRepo) ListCategories(ctx context.Context) ([]Category, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.categories, nil
}

func (r *memoryRepo) ListAttributeFields(ctx context.Context) ([]AttributeField, error) {
	return r.fields, nil
}

func (r *memoryRepo) ListActiveProducts(ctx context.Context) ([]Product, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	active := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, nil
}

func (r *memoryRepo) GetProduct(ctx context.Context, id int64) (Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func newTestService(repo *memoryRepo) *Service {
	return NewService(repo, nil, nil, ServiceConfig{
		PrioritySlug: "pralinen",
		Locales:      testLocales,
	})
}

func TestServiceListProducts(t *testing.T) {
	repo := &memoryRepo{
		categories: testCategories(),
		products: []Product{
			{ID: 1, CategoryID: 4, IsActive: true, Name: LocalizedText{"de": "Tafel"}},
			{ID: 2, CategoryID: 1, IsActive: true, Name: LocalizedText{"de": "Praline"}},
			{ID: 3, CategoryID: 4, IsActive: false},
		},
	}
	svc := newTestService(repo)

	result, err := svc.ListProducts(context.Background(), Filters{CategorySlug: "schokolade"})
	require.NoError(t, err)
	require.Equal(t, 1, result.Pagination.Total)
	assert.Equal(t, int64(1), result.Products[0].ID)
}

func TestServiceListProductsUnknownSlugListsAll(t *testing.T) {
	repo := &memoryRepo{
		categories: testCategories(),
		products: []Product{
			{ID: 1, CategoryID: 4, IsActive: true, Name: LocalizedText{"de": "A"}},
			{ID: 2, CategoryID: 1, IsActive: true, Name: LocalizedText{"de": "B"}},
		},
	}
	svc := newTestService(repo)

	result, err := svc.ListProducts(context.Background(), Filters{CategorySlug: "zuckerwatte"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Pagination.Total)
}

func TestServiceCategoryTree(t *testing.T) {
	repo := &memoryRepo{
		categories: testCategories(),
		products: []Product{
			{ID: 1, CategoryID: 4, IsActive: true},
			{ID: 2, CategoryID: 2, IsActive: true},
		},
	}
	svc := newTestService(repo)

	nodes, err := svc.CategoryTree(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	assert.Equal(t, "pralinen", nodes[0].Slug)
	assert.Equal(t, 0, nodes[0].Count)

	assert.Equal(t, "schokolade", nodes[1].Slug)
	assert.Equal(t, 2, nodes[1].Count)
	require.Len(t, nodes[1].Children, 2)
	assert.Equal(t, 1, nodes[1].Children[0].Count)
	assert.Equal(t, 0, nodes[1].Children[1].Count)
}

func TestServiceGetProductResolvesTemplate(t *testing.T) {
	repo := &memoryRepo{
		categories: testCategories(),
		fields: []AttributeField{
			{CategoryID: 2, FieldKey: "cocoa", SortOrder: 1},
		},
		products: []Product{
			{ID: 7, CategoryID: 4, IsActive: true,
				Attributes: TechnicalAttributes{"cocoa": "70%"}},
		},
	}
	svc := newTestService(repo)

	detail, err := svc.GetProduct(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, detail.Fields, 1)
	assert.Equal(t, "cocoa", detail.Fields[0].FieldKey)
	assert.Equal(t, "70%", detail.Fields[0].Value)
}

func TestServiceGetProductNotFound(t *testing.T) {
	repo := &memoryRepo{categories: testCategories()}
	svc := newTestService(repo)

	_, err := svc.GetProduct(context.Background(), 99)
	require.ErrorIs(t, err, ErrNotFound)
}
