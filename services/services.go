// Package services holds the restaurant's business rules: order pricing,
// reservation scheduling, review binding and admin aggregation. Handlers stay
// thin and translate the returned apperr kinds into HTTP responses.
package services

import (
	"errors"
	"strings"
	"time"

	"restaurant-api/apperr"

	"gorm.io/gorm"
)

var now = time.Now

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// firstByID loads a row or reports NotFound with the given label.
func firstByID[T any](db *gorm.DB, id uint, label string) (*T, error) {
	var row T
	if err := db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("%s not found", label)
		}
		return nil, apperr.Internal(err, "failed to load "+strings.ToLower(label))
	}
	return &row, nil
}

type Page[T any] struct {
	Count    int64 `json:"count"`
	Next     *int  `json:"next"`
	Previous *int  `json:"previous"`
	Results  []T   `json:"results"`
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage keeps page*size far from overflowing.
	MaxPage = 1 << 20
)

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

func newPage[T any](results []T, count int64, page, size int) Page[T] {
	p := Page[T]{Count: count, Results: results}
	if int64(page)*int64(size) < count {
		n := page + 1
		p.Next = &n
	}
	if page > 1 {
		prev := page - 1
		p.Previous = &prev
	}
	if p.Results == nil {
		p.Results = []T{}
	}
	return p
}
