// Package store holds the GORM-backed repositories. Services depend on
// narrow interfaces over these types, so tests can swap in fakes.
package store

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors the service layer maps onto its taxonomy. The gorm
// connection must be opened with TranslateError so unique-index violations
// surface as gorm.ErrDuplicatedKey.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
