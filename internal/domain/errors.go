package domain

import "errors"

// ErrConflict is returned by repositories when an insert hits a unique constraint.
var ErrConflict = errors.New("record already exists")
