package index

import "errors"

var ErrDuplicateRef = errors.New("duplicate ref")
