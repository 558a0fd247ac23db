package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Scan    bool
	Resolve bool
	Permit  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Scan = boolEnv("INJECT_DEBUG_SCAN")
	d.Resolve = boolEnv("INJECT_DEBUG_RESOLVE")
	d.Permit = boolEnv("INJECT_DEBUG_PERMIT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Scan() bool {
	return d.Scan
}
func Resolve() bool {
	return d.Resolve
}
func Permit() bool {
	return d.Permit
}
