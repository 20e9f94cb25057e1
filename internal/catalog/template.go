package catalog

import "sort"

// TemplateIndex resolves which attribute template applies to a product's
// category. Templates are defined per category; a category without its
// own fields adopts its direct parent's list verbatim. There is no merge
// and no recursion past the parent.
type TemplateIndex struct {
	tree       *Tree
	byCategory map[int64][]AttributeField
}

// NewTemplateIndex groups the flat field list by category and sorts each
// group by SortOrder ascending. The sort is stable so equal orders keep
// their original insertion order.
func NewTemplateIndex(tree *Tree, fields []AttributeField) *TemplateIndex {
	idx := &TemplateIndex{
		tree:       tree,
		byCategory: make(map[int64][]AttributeField),
	}
	for _, f := range fields {
		idx.byCategory[f.CategoryID] = append(idx.byCategory[f.CategoryID], f)
	}
	for id := range idx.byCategory {
		group := idx.byCategory[id]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].SortOrder < group[j].SortOrder
		})
	}
	return idx
}

// Resolve returns the ordered field list for a category: its own fields
// when it has any, otherwise the direct parent's fields, otherwise nil.
func (idx *TemplateIndex) Resolve(categoryID int64) []AttributeField {
	if fields := idx.byCategory[categoryID]; len(fields) > 0 {
		return fields
	}
	cat, ok := idx.tree.Get(categoryID)
	if !ok || cat.ParentID == nil {
		return nil
	}
	return idx.byCategory[*cat.ParentID]
}

// DisplayField is a resolved template field paired with the product's
// value for it.
type DisplayField struct {
	FieldKey    string        `json:"field_key"`
	DisplayName LocalizedText `json:"display_name"`
	Value       string        `json:"value"`
}

// DisplayFields renders the resolved template against a product's
// attribute bag, dropping fields the product has no value for.
func (idx *TemplateIndex) DisplayFields(p Product) []DisplayField {
	fields := idx.Resolve(p.CategoryID)
	out := make([]DisplayField, 0, len(fields))
	for _, f := range fields {
		v, ok := p.Attributes.Value(f.FieldKey)
		if !ok {
			continue
		}
		out = append(out, DisplayField{
			FieldKey:    f.FieldKey,
			DisplayName: f.DisplayName,
			Value:       v,
		})
	}
	return out
}
