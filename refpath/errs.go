package refpath

import "errors"

var ErrBadPath = errors.New("bad encoded path")
