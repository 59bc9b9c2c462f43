package domain

// PageQuery is the page/limit/search triple shared by the back-office
// list endpoints.
type PageQuery struct {
	Page   int64
	Limit  int64
	Search string
}

// Offset converts the 1-based page number into a row offset.
func (q PageQuery) Offset() int64 {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// PageMeta describes one page of a paginated result set.
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// NewPageMeta computes the meta block for a total row count and query.
func NewPageMeta(total int64, q PageQuery) PageMeta {
	pages := int64(0)
	if q.Limit > 0 {
		pages = (total + q.Limit - 1) / q.Limit
	}
	return PageMeta{
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: pages,
	}
}
