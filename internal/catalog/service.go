package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/suessland/suessland-platform/internal/shared"
)

// ServiceConfig carries the storefront knobs the pipeline needs.
type ServiceConfig struct {
	PrioritySlug string
	Locales      []string
}

// Service provides the read side of the catalog: category tree with
// counts, filtered product listings and product detail with resolved
// attribute templates.
type Service struct {
	repo   Repository
	counts *CountsCache
	logger *slog.Logger
	cfg    ServiceConfig
}

// NewService constructs a catalog service.
func NewService(repo Repository, counts *CountsCache, logger *slog.Logger, cfg ServiceConfig) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, counts: counts, logger: logger, cfg: cfg}
}

// snapshot is one request-scoped view of the catalog tables.
type snapshot struct {
	tree      *Tree
	templates *TemplateIndex
	products  []Product
}

// loadSnapshot fetches the three independent tables concurrently.
func (s *Service) loadSnapshot(ctx context.Context) (*snapshot, error) {
	var (
		categories []Category
		fields     []AttributeField
		products   []Product
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.repo.ListCategories(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		fields, err = s.repo.ListAttributeFields(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.repo.ListActiveProducts(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load catalog snapshot: %w", err)
	}
	tree := NewTree(categories)
	return &snapshot{
		tree:      tree,
		templates: NewTemplateIndex(tree, fields),
		products:  products,
	}, nil
}

// ProductPage is one page of a filtered listing.
type ProductPage struct {
	Products   []Product         `json:"products"`
	Pagination shared.Pagination `json:"pagination"`
}

// ListProducts applies the filter/sort/paginate pipeline to the current
// catalog snapshot.
func (s *Service) ListProducts(ctx context.Context, f Filters) (*ProductPage, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	set := snap.tree.ResolveFilter(s.logger, f.CategorySlug, f.SubcategorySlug)
	pipeline := NewPipeline(snap.tree, s.cfg.PrioritySlug, s.cfg.Locales)
	page, pagination := pipeline.Run(snap.products, set, f)
	return &ProductPage{Products: page, Pagination: pagination}, nil
}

// CategoryNode is a root category with its rolled-up product count and
// children.
type CategoryNode struct {
	Category
	Count    int            `json:"count"`
	Children []CategoryNode `json:"children,omitempty"`
}

// CategoryTree returns the two-level tree with per-category product
// counts, served from cache when fresh.
func (s *Service) CategoryTree(ctx context.Context) ([]CategoryNode, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	tree := NewTree(categories)

	counts, ok := s.counts.Get(ctx)
	if !ok {
		products, err := s.repo.ListActiveProducts(ctx)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		counts = tree.ProductCounts(products)
		s.counts.Set(ctx, counts)
	}

	roots := tree.Roots()
	nodes := make([]CategoryNode, 0, len(roots))
	for _, root := range roots {
		node := CategoryNode{Category: root, Count: counts[root.ID]}
		for _, child := range tree.Children(root.ID) {
			node.Children = append(node.Children, CategoryNode{
				Category: child,
				Count:    counts[child.ID],
			})
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// ProductDetail is a product with its resolved display fields.
type ProductDetail struct {
	Product
	Fields []DisplayField `json:"fields"`
}

// GetProduct loads one product and renders its attribute template,
// falling back to the parent category's template when the product's own
// category defines none.
func (s *Service) GetProduct(ctx context.Context, id int64) (*ProductDetail, error) {
	var (
		categories []Category
		fields     []AttributeField
		product    Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.repo.ListCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		fields, err = s.repo.ListAttributeFields(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		product, err = s.repo.GetProduct(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	templates := NewTemplateIndex(NewTree(categories), fields)
	return &ProductDetail{
		Product: product,
		Fields:  templates.DisplayFields(product),
	}, nil
}
