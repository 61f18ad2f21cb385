// Package repository holds the storage interfaces the services are written
// against, plus their MongoDB implementations. Uniqueness invariants are
// enforced here by unique indexes; a violated index surfaces as
// ErrDuplicateKey so callers never see raw driver errors.
package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var ErrDuplicateKey = errors.New("duplicate key")

func wrapDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func pageSkip(page, limit int) int64 {
	if page < 1 {
		page = 1
	}
	return int64((page - 1) * limit)
}
