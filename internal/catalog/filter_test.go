package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLocales = []string{"de", "en"}

func TestPipelineFiltersCombineWithAnd(t *testing.T) {
	tree := NewTree(testCategories())
	pipeline := NewPipeline(tree, "", testLocales)

	products := []Product{
		{ID: 1, CategoryID: 2, IsActive: true, Name: LocalizedText{"de": "A"},
			Attributes: TechnicalAttributes{"vegan": true, "flavor": "schokolade", "dilim": "12"}},
		{ID: 2, CategoryID: 2, IsActive: true, Name: LocalizedText{"de": "B"},
			Attributes: TechnicalAttributes{"vegan": true, "flavor": "vanille", "dilim": "12"}},
		{ID: 3, CategoryID: 2, IsActive: true, Name: LocalizedText{"de": "C"},
			Attributes: TechnicalAttributes{"vegan": false, "flavor": "schokolade", "dilim": "12"}},
		{ID: 4, CategoryID: 2, IsActive: true, Name: LocalizedText{"de": "D"},
			Attributes: TechnicalAttributes{"vegan": true, "flavor": []any{"nuss", "schokolade"}, "dilim": "12"}},
	}

	page, pagination := pipeline.Run(products, nil, Filters{
		DietaryFlag: "vegan",
		Flavor:      "schokolade",
	})

	require.Equal(t, 2, pagination.Total)
	ids := []int64{page[0].ID, page[1].ID}
	assert.Contains(t, ids, int64(1))
	assert.Contains(t, ids, int64(4))
}

func TestPipelinePortionFilterMatchesEitherKey(t *testing.T) {
	tree := NewTree(testCategories())
	pipeline := NewPipeline(tree, "", testLocales)

	products := []Product{
		{ID: 1, CategoryID: 2, IsActive: true, Attributes: TechnicalAttributes{"dilim_sayisi": "12"}},
		{ID: 2, CategoryID: 2, IsActive: true, Attributes: TechnicalAttributes{"kutu_adedi": "12"}},
		{ID: 3, CategoryID: 2, IsActive: true, Attributes: TechnicalAttributes{"dilim_sayisi": "6"}},
	}

	_, pagination := pipeline.Run(products, nil, Filters{PortionCount: 12})
	assert.Equal(t, 2, pagination.Total)
}

func TestPipelineExcludesInactiveAndFiltered(t *testing.T) {
	tree := NewTree(testCategories())
	pipeline := NewPipeline(tree, "", testLocales)

	products := []Product{
		{ID: 1, CategoryID: 2, IsActive: true},
		{ID: 2, CategoryID: 2, IsActive: false},
		{ID: 3, CategoryID: 1, IsActive: true},
	}
	set := tree.ResolveFilter(nil, "schokolade", "")

	page, pagination := pipeline.Run(products, set, Filters{CategorySlug: "schokolade"})
	require.Equal(t, 1, pagination.Total)
	assert.Equal(t, int64(1), page[0].ID)
}

func TestPipelineDefaultSortPriorityFirst(t *testing.T) {
	tree := NewTree(testCategories())
	pipeline := NewPipeline(tree, "pralinen", testLocales)

	products := []Product{
		{ID: 1, CategoryID: 2, IsActive: true, Name: LocalizedText{"de": "Zartbitter"}},
		{ID: 2, CategoryID: 1, IsActive: true, AvgRating: 3.5, Name: LocalizedText{"de": "Marzipan"}},
		{ID: 3, CategoryID: 2, IsActive: true, Name: LocalizedText{"de": "Alpenmilch"}},
		{ID: 4, CategoryID: 3, IsActive: true, AvgRating: 4.8, Name: LocalizedText{"de": "Cognac"}},
	}

	page, _ := pipeline.Run(products, nil, Filters{})
	require.Len(t, page, 4)
	// priority group (pralinen + child trueffel) first, rating descending
	assert.Equal(t, int64(4), page[0].ID)
	assert.Equal(t, int64(2), page[1].ID)
	// remainder alphabetical by localized name
	assert.Equal(t, int64(3), page[2].ID)
	assert.Equal(t, int64(1), page[3].ID)
}

func TestPipelineNoCustomSortWhenCategorySelected(t *testing.T) {
	tree := NewTree(testCategories())
	pipeline := NewPipeline(tree, "pralinen", testLocales)

	products := []Product{
		{ID: 1, CategoryID: 2, IsActive: true, Name: LocalizedText{"de": "Zartbitter"}},
		{ID: 2, CategoryID: 2, IsActive: true, Name: LocalizedText{"de": "Alpenmilch"}},
	}
	set := tree.ResolveFilter(nil, "schokolade", "")

	page, _ := pipeline.Run(products, set, Filters{CategorySlug: "schokolade"})
	require.Len(t, page, 2)
	assert.Equal(t, int64(1), page[0].ID, "input order preserved under a category filter")
}

func TestPipelinePagination(t *testing.T) {
	tree := NewTree(testCategories())
	pipeline := NewPipeline(tree, "", testLocales)

	products := make([]Product, 50)
	for i := range products {
		products[i] = Product{ID: int64(i + 1), CategoryID: 2, IsActive: true,
			Name: LocalizedText{"de": "P"}}
	}

	for _, tc := range []struct {
		page    int
		wantLen int
		want    int
	}{
		{1, 24, 1},
		{2, 24, 2},
		{3, 2, 3},
		{5, 2, 3}, // clamps to last page
		{0, 24, 1},
	} {
		page, pagination := pipeline.Run(products, nil, Filters{CategorySlug: "schokolade", Page: tc.page, PerPage: 24})
		assert.Len(t, page, tc.wantLen, "page %d", tc.page)
		assert.Equal(t, tc.want, pagination.Page, "page %d", tc.page)
		assert.Equal(t, 50, pagination.Total)
	}
}
