package catalog

// Pagination describes the window a [Page] was cut from.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Page is one window of a filtered product collection. Items is never nil so
// the serialized form is always a JSON array.
type Page struct {
	Items      []Product  `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// Paginate slices items into the 1-indexed window (page, limit). Out-of-range
// pages yield an empty slice, not an error. A limit below 1 is coerced to 1
// rather than dividing by zero; beyond that, callers own input validation.
func Paginate(items []Product, page, limit int) Page {
	if limit < 1 {
		limit = 1
	}
	total := len(items)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	end := start + limit
	if start < 0 || start > total {
		start, end = 0, 0
	} else if end > total {
		end = total
	}

	out := make([]Product, end-start)
	copy(out, items[start:end])

	return Page{
		Items: out,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
