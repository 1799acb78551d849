// Package repositories contains the MongoDB persistence layer.
//
// Each repository is a thin struct over a collection handle. Storage errors
// are translated at this boundary: mongo.ErrNoDocuments becomes ErrNotFound
// and duplicate-key violations (E11000) become ErrDuplicate, so services and
// controllers never import the driver to classify failures.
package repositories

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("repositories: not found")

	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("repositories: duplicate key")
)

// Pagination carries page metadata alongside a listed result set.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

func paginate(page, limit int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// skipLimit converts page/limit into the values passed to Find options.
func skipLimit(page, limit int) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return int64(page-1) * int64(limit), int64(limit)
}

// translate maps driver errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}
