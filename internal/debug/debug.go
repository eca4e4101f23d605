// Package debug provides a toggleable trace sink used by cmd/dremelcat
// and, optionally, by callers stepping through shredding or assembly.
// There is no logging framework dependency here, matching the teacher
// project, which has none either.
package debug

import (
	"fmt"
	"os"
	"sync/atomic"
)

var enabled int32

// Toggle turns tracing on or off. Off by default.
func Toggle(on bool) {
	v := int32(0)
	if on {
		v = 1
	}
	atomic.StoreInt32(&enabled, v)
}

// Enabled reports whether tracing is currently on.
func Enabled() bool {
	return atomic.LoadInt32(&enabled) != 0
}

// Tracef writes a trace line to stderr if tracing is enabled.
func Tracef(format string, args ...interface{}) {
	if !Enabled() {
		return
	}
	if format == "" || format[len(format)-1] != '\n' {
		format += "\n"
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
