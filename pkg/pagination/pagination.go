package pagination

import "math"

// PageSize is the fixed number of rows every list view shows.
const PageSize = 10

// Pagination is the page metadata returned next to a visible slice.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// PaginationParams is the page a list request asks for. Every list uses
// PageSize rows, so only the page number is read.
type PaginationParams struct {
	Page int `form:"page" json:"page"`
}

// DefaultPagination returns default pagination values
func DefaultPagination() *PaginationParams {
	return &PaginationParams{Page: 1}
}

// Validate ensures pagination parameters are within valid ranges. The upper
// bound depends on the row count and is applied by Clamp.
func (p *PaginationParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
}

// TotalPages is ceil(total/perPage), never below 1.
func TotalPages(total, perPage int) int {
	if perPage < 1 {
		perPage = PageSize
	}
	pages := int(math.Ceil(float64(total) / float64(perPage)))
	if pages < 1 {
		return 1
	}
	return pages
}

// Clamp pins page into [1, TotalPages(total, perPage)].
func Clamp(page, total, perPage int) int {
	if page < 1 {
		return 1
	}
	if last := TotalPages(total, perPage); page > last {
		return last
	}
	return page
}

// NewPagination creates a new Pagination response
func NewPagination(page, perPage int, total int64) *Pagination {
	totalPages := TotalPages(int(total), perPage)

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// PaginatedResult represents a paginated result with items and pagination info
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewPaginatedResult creates a new paginated result
func NewPaginatedResult[T any](items []T, pagination *Pagination) *PaginatedResult[T] {
	return &PaginatedResult[T]{
		Items:      items,
		Pagination: pagination,
	}
}

// Slice cuts the in-memory page out of items. The page is clamped first, so
// the result is never longer than perPage and never empty while items is not.
func Slice[T any](items []T, page, perPage int) *PaginatedResult[T] {
	if perPage < 1 {
		perPage = PageSize
	}
	page = Clamp(page, len(items), perPage)

	start := (page - 1) * perPage
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}

	visible := make([]T, 0, end-start)
	visible = append(visible, items[start:end]...)
	return NewPaginatedResult(visible, NewPagination(page, perPage, int64(len(items))))
}
