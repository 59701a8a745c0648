// Package logging provides the small optional trace-logging mixin embedded
// by the heap allocator. It is nil-by-default: embedding it
// costs nothing unless a caller supplies a log function.
package logging

import (
	"fmt"
	"strings"
)

// Logging is an embeddable mixin that formats mark-prefixed trace lines
// through an optional Logf function. The mark column is kept aligned by
// padding shorter marks out to the widest one seen so far.
type Logging struct {
	Logf func(mess string, args ...interface{})

	markWidth int
}

// WithPrefix temporarily prepends prefix to every subsequent log line,
// returning a restore function, so a caller can tag nested tracing without
// threading a prefix through every call.
func (log *Logging) WithPrefix(prefix string) func() {
	logf := log.Logf
	log.Logf = func(mess string, args ...interface{}) {
		logf(prefix+mess, args...)
	}
	return func() { log.Logf = logf }
}

// Log writes one trace line under mark, left-padding mark to the widest mark
// seen so far on this Logging value.
func (log *Logging) Log(mark, mess string, args ...interface{}) {
	if log.Logf == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.Logf("%v %v", mark, mess)
}
