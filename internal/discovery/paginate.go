package discovery

// DefaultPageSize matches the community grid.
const DefaultPageSize = 6

// Paginate returns the 1-based page of items. Pages outside the list come
// back empty.
func Paginate[T any](items []T, page, pageSize int) []T {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if page < 1 || page-1 > len(items)/pageSize {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := min(start+pageSize, len(items))
	return items[start:end]
}

// TotalPages is ceil(total/pageSize), never below 1.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}
