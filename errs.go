package inject

import "errors"

var ErrUnresolved = errors.New("unresolved refs")
