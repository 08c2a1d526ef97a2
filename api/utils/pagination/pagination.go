package pagination

// Page describes one window of a paginated listing. Pages are 1-indexed.
type Page struct {
	Number     int   `json:"number"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_previous"`
	Offset     int   `json:"-"`
	Limit      int   `json:"-"`
}

// Paginate computes the window for the requested page. Out-of-range page
// numbers clamp rather than fail: anything below 1 becomes the first page,
// anything past the end becomes the last page. An empty listing still has
// one (empty) page.
func Paginate(totalItems int64, pageSize, number int) Page {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}
	return Page{
		Number:     number,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    number < totalPages,
		HasPrev:    number > 1,
		Offset:     (number - 1) * pageSize,
		Limit:      pageSize,
	}
}
