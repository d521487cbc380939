package service

import "github.com/parceldesk/parceldesk-api/internal/store"

// Pagination describes the position of a page within a result set.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes the envelope for a normalized filter and total
// match count. TotalPages is ceil(total/limit).
func NewPagination(filter store.ListFilter, total int) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + filter.Limit - 1) / filter.Limit
	}
	return Pagination{
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Page is the standard list-response envelope.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}
