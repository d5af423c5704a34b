// Package paging normaliza page/pageSize de los endpoints de listado.
package paging

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Request struct {
	Page     int
	PageSize int
}

// FromQuery lee ?page=&page_size= aplicando los mismos clamps para todos los listados:
// page < 1 => 1; page_size fuera de 1..100 => 20.
func FromQuery(r *http.Request) Request {
	q := r.URL.Query()
	return New(atoi(q.Get("page"), 1), atoi(q.Get("page_size"), DefaultPageSize))
}

func New(page, pageSize int) Request {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return Request{Page: page, PageSize: pageSize}
}

func (p Request) Skip() int { return (p.Page - 1) * p.PageSize }
func (p Request) Take() int { return p.PageSize }

// Window recorta items a [skip, skip+take). take <= 0 => sin límite.
func Window[T any](items []T, skip, take int) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return []T{}
	}
	end := len(items)
	if take > 0 && skip+take < end {
		end = skip + take
	}
	return items[skip:end]
}

// Result es el sobre JSON común de los listados paginados.
type Result[T any] struct {
	Items           []T  `json:"items"`
	TotalCount      int  `json:"total_count"`
	Page            int  `json:"page"`
	PageSize        int  `json:"page_size"`
	TotalPages      int  `json:"total_pages"`
	HasPreviousPage bool `json:"has_previous_page"`
	HasNextPage     bool `json:"has_next_page"`
}

func NewResult[T any](items []T, total int, p Request) Result[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if total > 0 {
		pages = (total + p.PageSize - 1) / p.PageSize
	}
	return Result[T]{
		Items:           items,
		TotalCount:      total,
		Page:            p.Page,
		PageSize:        p.PageSize,
		TotalPages:      pages,
		HasPreviousPage: p.Page > 1,
		HasNextPage:     p.Page < pages,
	}
}

func atoi(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
