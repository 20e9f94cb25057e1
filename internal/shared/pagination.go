package shared

// Listing page size bounds for the public catalog.
const (
	MinPerPage     = 12
	MaxPerPage     = 48
	DefaultPerPage = 24
)

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination clamps page and perPage to their allowed ranges and
// computes pagination metadata. Page is clamped against the resulting
// total page count so an out-of-range request lands on the last page.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage < MinPerPage {
		perPage = MinPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	if total < 0 {
		total = 0
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Bounds returns the half-open slice interval for the page over a list
// of Total elements.
func (p Pagination) Bounds() (int, int) {
	lo := (p.Page - 1) * p.PerPage
	if lo > p.Total {
		lo = p.Total
	}
	hi := lo + p.PerPage
	if hi > p.Total {
		hi = p.Total
	}
	return lo, hi
}
