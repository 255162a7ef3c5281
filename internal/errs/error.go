package errs

import (
	"errors"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrInvalidBookType = errors.New("invalid book type")
	ErrBadCredentials  = errors.New("invalid credentials")
)
