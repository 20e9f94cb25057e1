package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/suessland/suessland-platform/internal/shared"
)

// Filters are the listing parameters taken from the request.
type Filters struct {
	CategorySlug    string
	SubcategorySlug string
	PortionCount    int    // 0 = off
	DietaryFlag     string // attribute name, e.g. "vegan"
	Flavor          string
	Page            int
	PerPage         int
}

// Pipeline applies category filtering, attribute filters, the default
// sort and pagination to an in-memory product snapshot.
type Pipeline struct {
	tree         *Tree
	prioritySlug string
	locales      []string
}

// NewPipeline constructs a pipeline. prioritySlug names the category
// whose products (including its children's) lead unfiltered listings.
func NewPipeline(tree *Tree, prioritySlug string, locales []string) *Pipeline {
	return &Pipeline{tree: tree, prioritySlug: prioritySlug, locales: locales}
}

// Run filters, sorts and paginates. The returned slice holds one page,
// alongside the pagination metadata for the full filtered total.
func (p *Pipeline) Run(products []Product, set FilterSet, f Filters) ([]Product, shared.Pagination) {
	matched := make([]Product, 0, len(products))
	for _, prod := range products {
		if !prod.IsActive {
			continue
		}
		if !set.Contains(prod.CategoryID) {
			continue
		}
		if !p.matches(prod, f) {
			continue
		}
		matched = append(matched, prod)
	}

	// The custom sort only applies to the unfiltered storefront view.
	if f.CategorySlug == "" {
		p.sortDefault(matched)
	}

	page := shared.NewPagination(f.Page, f.PerPage, len(matched))
	lo, hi := page.Bounds()
	return matched[lo:hi], page
}

// matches applies the attribute filters, AND-combined.
func (p *Pipeline) matches(prod Product, f Filters) bool {
	if f.PortionCount > 0 {
		ok := prod.Attributes.SliceCount() == f.PortionCount
		if !ok {
			if n, has := prod.Attributes.BoxUnitCount(); has && n == f.PortionCount {
				ok = true
			}
		}
		if !ok {
			return false
		}
	}
	if f.DietaryFlag != "" && !prod.Attributes.Flag(f.DietaryFlag) {
		return false
	}
	if f.Flavor != "" && !prod.Attributes.HasFlavor(f.Flavor) {
		return false
	}
	return true
}

// sortDefault orders the priority category (and its children) first,
// by rating descending within that group, and everything else
// alphabetically by localized name under German collation.
func (p *Pipeline) sortDefault(products []Product) {
	priority := p.prioritySet()
	coll := collate.New(language.German)
	sort.SliceStable(products, func(i, j int) bool {
		pi, pj := priority.Contains(products[i].CategoryID), priority.Contains(products[j].CategoryID)
		if pi != pj {
			return pi
		}
		if pi {
			return products[i].AvgRating > products[j].AvgRating
		}
		ni := products[i].Name.Resolve(p.locales)
		nj := products[j].Name.Resolve(p.locales)
		return coll.CompareString(ni, nj) < 0
	})
}

// prioritySet resolves the priority category and its children; empty
// (not nil) when the slug is unset or unknown so Contains stays false.
func (p *Pipeline) prioritySet() FilterSet {
	set := FilterSet{}
	if p.prioritySlug == "" {
		return set
	}
	cat, ok := p.tree.BySlug(p.prioritySlug)
	if !ok {
		return set
	}
	set[cat.ID] = struct{}{}
	for _, child := range p.tree.Children(cat.ID) {
		set[child.ID] = struct{}{}
	}
	return set
}
