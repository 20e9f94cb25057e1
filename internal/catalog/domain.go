package catalog

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// LocalizedText maps a locale code ("de", "en", ...) to a translation.
type LocalizedText map[string]string

// Resolve returns the first non-empty translation following the given
// locale preference order. When none of the preferred locales has a
// value, any remaining translation is returned (smallest locale code
// first, so the result is deterministic).
func (t LocalizedText) Resolve(locales []string) string {
	for _, l := range locales {
		if v := t[l]; v != "" {
			return v
		}
	}
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if t[k] != "" {
			return t[k]
		}
	}
	return ""
}

// Category is one node of the two-level category tree. ParentID is nil
// for root categories and references a root for subcategories.
type Category struct {
	ID       int64         `json:"id"`
	Slug     string        `json:"slug"`
	Name     LocalizedText `json:"name"`
	ParentID *int64        `json:"parent_id,omitempty"`
}

// AttributeField is one display field of a category's attribute template.
type AttributeField struct {
	CategoryID  int64         `json:"category_id"`
	FieldKey    string        `json:"field_key"`
	DisplayName LocalizedText `json:"display_name"`
	SortOrder   int           `json:"sort_order"`
}

// TechnicalAttributes is the free-form attribute bag attached to a
// product. Values arrive from JSONB and may be strings, numbers, bools
// or arrays; every accessor treats a missing or malformed entry as
// "feature absent" and never fails.
type TechnicalAttributes map[string]any

// Product is a catalog product row.
type Product struct {
	ID                 int64               `json:"id"`
	Slug               string              `json:"slug"`
	Name               LocalizedText       `json:"name"`
	CategoryID         int64               `json:"category_id"`
	Images             []string            `json:"images,omitempty"`
	AvgRating          float64             `json:"avg_rating"`
	ReviewCount        int                 `json:"review_count"`
	Attributes         TechnicalAttributes `json:"technical_attributes,omitempty"`
	PurchaseCostPerBox float64             `json:"purchase_cost_per_box"`
	CustomerPrice      float64             `json:"customer_price"`
	DealerPrice        float64             `json:"dealer_price"`
	IsActive           bool                `json:"is_active"`
}

// sliceCountKeys are substrings that identify a slice/portion count
// attribute. Historical data entry used several spellings.
var sliceCountKeys = []string{"dilim", "porsiyon", "slice", "portion", "stueck", "stück"}

// boxUnitKeys identify a per-box unit count attribute.
var boxUnitKeys = []string{"kutu", "box", "unit"}

// SliceCount infers the number of slices/portions per box. It scans the
// attribute keys case-insensitively for known substrings and takes the
// first integer found in the matching value. Defaults to 1, never 0 or
// negative.
func (a TechnicalAttributes) SliceCount() int {
	if n, ok := a.intByKeySubstring(sliceCountKeys); ok && n > 0 {
		return n
	}
	return 1
}

// BoxUnitCount infers the number of retail units per box, when present.
func (a TechnicalAttributes) BoxUnitCount() (int, bool) {
	n, ok := a.intByKeySubstring(boxUnitKeys)
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

// Flag reports whether the named dietary attribute is strictly true.
// Anything other than a boolean true counts as absent.
func (a TechnicalAttributes) Flag(name string) bool {
	v, ok := a[name]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// HasFlavor reports whether the product's flavor attribute equals the
// requested value, either as a plain string or as a member of an array.
func (a TechnicalAttributes) HasFlavor(want string) bool {
	v, ok := a["flavor"]
	if !ok {
		return false
	}
	switch f := v.(type) {
	case string:
		return f == want
	case []any:
		for _, item := range f {
			if s, ok := item.(string); ok && s == want {
				return true
			}
		}
	case []string:
		for _, s := range f {
			if s == want {
				return true
			}
		}
	}
	return false
}

// Value returns the attribute value rendered as a display string, with
// ok=false when the entry is missing or empty.
func (a TechnicalAttributes) Value(key string) (string, bool) {
	v, ok := a[key]
	if !ok || v == nil {
		return "", false
	}
	s := stringify(v)
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func (a TechnicalAttributes) intByKeySubstring(substrings []string) (int, bool) {
	// Deterministic iteration: maps have no order guarantee and two keys
	// may both match, so visit them sorted.
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, sub := range substrings {
		for _, k := range keys {
			if !strings.Contains(strings.ToLower(k), sub) {
				continue
			}
			if n, ok := firstInt(a[k]); ok {
				return n, true
			}
		}
	}
	return 0, false
}

// firstInt extracts the first unsigned integer from a scalar attribute
// value ("12 adet" -> 12).
func firstInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	start := -1
	for i, r := range s {
		if unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return atoi(s[start:i])
		}
	}
	if start >= 0 {
		return atoi(s[start:])
	}
	return 0, false
}

// stringify renders a scalar JSONB value for display.
func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		if s {
			return "true"
		}
		return "false"
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}

func atoi(s string) (int, bool) {
	n := 0
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return 0, false
		}
		n = n*10 + int(r-'0')
		if n > 1<<30 {
			return 0, false
		}
	}
	return n, true
}
