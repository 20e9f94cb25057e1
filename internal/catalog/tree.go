package catalog

import (
	"log/slog"
)

// Tree indexes the flat category list into its two-level shape.
type Tree struct {
	byID     map[int64]Category
	bySlug   map[string]Category
	children map[int64][]Category
	roots    []Category
}

// NewTree builds the category tree from a flat list. Input order is
// preserved for roots and for each child list.
func NewTree(categories []Category) *Tree {
	t := &Tree{
		byID:     make(map[int64]Category, len(categories)),
		bySlug:   make(map[string]Category, len(categories)),
		children: make(map[int64][]Category),
	}
	for _, c := range categories {
		t.byID[c.ID] = c
		t.bySlug[c.Slug] = c
		if c.ParentID == nil {
			t.roots = append(t.roots, c)
		} else {
			t.children[*c.ParentID] = append(t.children[*c.ParentID], c)
		}
	}
	return t
}

// Roots returns the root categories in input order.
func (t *Tree) Roots() []Category {
	return t.roots
}

// Children returns the direct children of a category in input order.
func (t *Tree) Children(id int64) []Category {
	return t.children[id]
}

// Get looks a category up by ID.
func (t *Tree) Get(id int64) (Category, bool) {
	c, ok := t.byID[id]
	return c, ok
}

// BySlug looks a category up by slug.
func (t *Tree) BySlug(slug string) (Category, bool) {
	c, ok := t.bySlug[slug]
	return c, ok
}

// FilterSet is the set of category IDs a listing is restricted to.
// A nil set means no filter: all products are listed.
type FilterSet map[int64]struct{}

// Contains reports whether the set admits the category. A nil set
// admits everything.
func (s FilterSet) Contains(id int64) bool {
	if s == nil {
		return true
	}
	_, ok := s[id]
	return ok
}

// ResolveFilter turns the selected category slug (and optional
// subcategory slug) into the set of category IDs to filter by.
//
// No slug selects nothing (nil set, all products). A slug with a
// subcategory slug selects the subcategory alone. A slug on its own
// selects the category plus all of its direct children. An unknown slug
// is logged and ignored: listings fail open, never closed.
func (t *Tree) ResolveFilter(logger *slog.Logger, slug, subSlug string) FilterSet {
	if slug == "" {
		return nil
	}
	cat, ok := t.bySlug[slug]
	if !ok {
		if logger != nil {
			logger.Warn("category slug not found, listing unfiltered", slog.String("slug", slug))
		}
		return nil
	}
	set := FilterSet{cat.ID: {}}
	for _, child := range t.children[cat.ID] {
		set[child.ID] = struct{}{}
	}
	if subSlug == "" {
		return set
	}
	sub, ok := t.bySlug[subSlug]
	if !ok || !set.Contains(sub.ID) {
		if logger != nil {
			logger.Warn("subcategory slug not found, keeping category filter",
				slog.String("slug", slug), slog.String("subcategory", subSlug))
		}
		return set
	}
	return FilterSet{sub.ID: {}}
}

// ProductCounts computes per-category product counts over the active
// products. A product increments its own category's count and, when
// that category has a parent, the parent's count as well. Root counts
// therefore roll up their children without double-listing any product.
func (t *Tree) ProductCounts(products []Product) map[int64]int {
	counts := make(map[int64]int, len(t.byID))
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		counts[p.CategoryID]++
		if c, ok := t.byID[p.CategoryID]; ok && c.ParentID != nil {
			counts[*c.ParentID]++
		}
	}
	return counts
}
