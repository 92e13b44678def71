// Package page computes the page window handed to the rendering layer.
package page

// Window is the pagination contract exposed to the template renderer.
type Window[T any] struct {
	Items   []T   `json:"items"`
	Number  int   `json:"page"`
	Count   int   `json:"page_count"`
	Total   int64 `json:"total"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// Clamp normalizes a requested page number against the collection size.
// Out-of-range requests land on the nearest valid page instead of
// failing. The returned offset is ready for a LIMIT/OFFSET query.
func Clamp(number int, total int64, size int) (page, pages, offset int) {
	if size < 1 {
		size = 1
	}
	pages = int((total + int64(size) - 1) / int64(size))
	if pages < 1 {
		pages = 1
	}
	page = number
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	offset = (page - 1) * size
	return page, pages, offset
}

// Build assembles a Window from the clamped page and the fetched items.
func Build[T any](items []T, number, pages int, total int64) Window[T] {
	if items == nil {
		items = []T{}
	}
	return Window[T]{
		Items:   items,
		Number:  number,
		Count:   pages,
		Total:   total,
		HasNext: number < pages,
		HasPrev: number > 1,
	}
}
