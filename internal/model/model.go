// Package model holds the marketplace entities as they are stored in
// PostgreSQL, the enum-like column values and the status lifecycles.
package model

import "time"

// Paginated is the envelope returned by list endpoints.
type Paginated[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPaginated computes TotalPages from total and limit.
func NewPaginated[T any](data []T, page, limit, total int) Paginated[T] {
	if data == nil {
		data = []T{}
	}
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Paginated[T]{
		Data:       data,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: pages,
	}
}

// Timestamps is embedded by every entity whose updated_at is maintained
// by the database trigger.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
