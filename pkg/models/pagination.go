package models

// PaginationMeta describes one page of a list result
type PaginationMeta struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

// Paginate returns the 1-based page of items together with its metadata.
// Out of range pages yield an empty slice.
func Paginate[T any](items []T, page, pageSize int) ([]T, PaginationMeta) {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}
	total := len(items)
	meta := PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}

	start := (page - 1) * pageSize
	if start >= total {
		return []T{}, meta
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	meta.HasMore = end < total
	return items[start:end], meta
}
