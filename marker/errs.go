package marker

import "errors"

var ErrBadSpec = errors.New("bad marker spec")
