package model

import (
	"errors"
)

var (
	ErrNoExtension = errors.New("could not determine file extension")
	ErrNotFound    = errors.New("not found")
)
