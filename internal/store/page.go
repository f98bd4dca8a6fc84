package store

import (
	"math"

	"github.com/samber/lo"
)

// PageRequest selects a zero-based page of a result set.
type PageRequest struct {
	Number int
	Size   int
}

// Offset returns the number of rows that precede the requested page. It
// saturates at math.MaxInt instead of wrapping to a negative value.
func (r PageRequest) Offset() int {
	if r.Size > 0 && r.Number > math.MaxInt/r.Size {
		return math.MaxInt
	}
	return r.Number * r.Size
}

// Page is one slice of a larger ordered result set plus the metadata a
// client needs to walk the rest of it. The JSON shape matches the page
// envelope the admin frontend consumes.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPage builds a Page for content returned by req out of total matching rows.
// A nil content slice is replaced by an empty one.
func NewPage[T any](content []T, req PageRequest, total int64) *Page[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}

	return &Page[T]{
		Content:       content,
		Number:        req.Number,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

// MapPage converts every element of p with fn, keeping the page metadata.
func MapPage[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	return &Page[U]{
		Content: lo.Map(p.Content, func(item T, _ int) U {
			return fn(item)
		}),
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}
}

// First reports whether this is the first page.
func (p *Page[T]) First() bool {
	return p.Number == 0
}

// Last reports whether no page follows this one.
func (p *Page[T]) Last() bool {
	return !p.HasNext()
}

// HasNext reports whether another page follows this one.
func (p *Page[T]) HasNext() bool {
	return p.Number < p.TotalPages-1
}
