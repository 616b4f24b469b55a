package page

// Page is one slice of an ordered result list with its pagination metadata.
type Page[T any] struct {
	Items      []T
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Paginate returns the 1-based page of items. A page past the end yields an
// empty, non-nil Items slice with accurate metadata rather than an error.
// page below 1 is treated as 1; pageSize must be positive.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	total := len(items)
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	// Compare in page units first: (page-1)*pageSize can overflow.
	start := total
	if page <= totalPages {
		start = (page - 1) * pageSize
	}
	end := total
	if pageSize < total-start {
		end = start + pageSize
	}

	out := make([]T, end-start)
	copy(out, items[start:end])

	return Page[T]{
		Items:      out,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
