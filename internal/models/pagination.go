package models

// PageRef points at a neighbouring page of a listing.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
	Total   int      `json:"total"`
	Pages   int      `json:"pages"`
	HasMore bool     `json:"hasMore"`
	Next    *PageRef `json:"next,omitempty"`
	Prev    *PageRef `json:"prev,omitempty"`
}

// NewPagination computes page metadata for an offset/limit listing. A
// non-positive limit means the whole result set was returned and yields nil.
func NewPagination(page, limit, total int) *Pagination {
	if limit <= 0 {
		return nil
	}
	if page < 1 {
		page = 1
	}
	pages := (total + limit - 1) / limit
	p := &Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasMore: page*limit < total,
	}
	if p.HasMore {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return p
}

// Bounds accepted from query strings.
const (
	MaxPage  = 100000
	MaxLimit = 100
)

// ListOptions carries the paging and ordering shared by every listing.
// Sort uses a comma separated field list, a leading '-' for descending.
type ListOptions struct {
	Page  int
	Limit int
	Sort  string
}

// Offset returns the row offset for the current page.
func (o ListOptions) Offset() int {
	if o.Limit <= 0 || o.Page <= 1 {
		return 0
	}
	return (o.Page - 1) * o.Limit
}

// Normalize fills the page and applies defaultLimit when none was given.
func (o ListOptions) Normalize(defaultLimit int) ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit <= 0 {
		o.Limit = defaultLimit
	}
	return o
}
