package permit

import "errors"

var ErrBadExpr = errors.New("bad permit expression")
