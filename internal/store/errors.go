package store

import (
	stderrors "errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a score has no recorded history.
	ErrNotFound = stderrors.New("not found")
	// ErrNoLineage is returned when a franchise lookup has no team codes to search.
	ErrNoLineage = stderrors.New("franchise has no lineage")
)

func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
