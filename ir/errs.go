package ir

import "errors"

var (
	ErrPath = errors.New("invalid path")
	ErrType = errors.New("type mismatch")
)
