package page

import (
	"errors"
	"math"
)

const (
	DefaultSize = 20
	MaxSize     = 100
)

var ErrInvalidPageable = errors.New("invalid page request")

// Pageable is a zero-based page request.
type Pageable struct {
	Page int `json:"pageNumber"`
	Size int `json:"pageSize"`
}

// Of validates a page request. The page number is bounded so that the
// offset of its last element still fits in an int.
func Of(number, size int) (Pageable, error) {
	if number < 0 || size < 1 || size > MaxSize {
		return Pageable{}, ErrInvalidPageable
	}
	if number > (math.MaxInt-size)/size {
		return Pageable{}, ErrInvalidPageable
	}

	return Pageable{Page: number, Size: size}, nil
}

func Default() Pageable {
	return Pageable{Page: 0, Size: DefaultSize}
}

func (p Pageable) Offset() int {
	return p.Page * p.Size
}

func (p Pageable) Limit() int {
	return p.Size
}

type Page[T any] struct {
	Content          []T      `json:"content"`
	Pageable         Pageable `json:"pageable"`
	Number           int      `json:"number"`
	Size             int      `json:"size"`
	TotalElements    int      `json:"totalElements"`
	TotalPages       int      `json:"totalPages"`
	NumberOfElements int      `json:"numberOfElements"`
	First            bool     `json:"first"`
	Last             bool     `json:"last"`
	Empty            bool     `json:"empty"`
}

// New builds a page and derives the navigation metadata from total.
func New[T any](content []T, pageable Pageable, total int) Page[T] {
	if content == nil {
		content = make([]T, 0)
	}

	totalPages := 0
	if pageable.Size > 0 {
		totalPages = (total + pageable.Size - 1) / pageable.Size
	}

	return Page[T]{
		Content:          content,
		Pageable:         pageable,
		Number:           pageable.Page,
		Size:             pageable.Size,
		TotalElements:    total,
		TotalPages:       totalPages,
		NumberOfElements: len(content),
		First:            pageable.Page == 0,
		Last:             pageable.Page >= totalPages-1,
		Empty:            len(content) == 0,
	}
}

// Map converts the content of a page, keeping its metadata.
func Map[T, R any](p Page[T], fn func(T) R) Page[R] {
	out := make([]R, 0, len(p.Content))
	for _, item := range p.Content {
		out = append(out, fn(item))
	}

	return Page[R]{
		Content:          out,
		Pageable:         p.Pageable,
		Number:           p.Number,
		Size:             p.Size,
		TotalElements:    p.TotalElements,
		TotalPages:       p.TotalPages,
		NumberOfElements: len(out),
		First:            p.First,
		Last:             p.Last,
		Empty:            len(out) == 0,
	}
}
