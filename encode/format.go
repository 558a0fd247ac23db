package encode

import (
	"errors"
	"fmt"
)

var ErrBadFormat = errors.New("bad format")

type Format int

const (
	YAMLFormat Format = iota
	JSONFormat
)

func (f Format) String() string {
	switch f {
	case JSONFormat:
		return "json"
	case YAMLFormat:
		return "yaml"
	default:
		return "<unknown format>"
	}
}

func ParseFormat(v string) (Format, error) {
	switch v {
	case "json", "j":
		return JSONFormat, nil
	case "yaml", "y", "yml":
		return YAMLFormat, nil
	}
	return 0, fmt.Errorf("%w: %q (want json/j or yaml/y)", ErrBadFormat, v)
}
