// Package panicerr turns a recovered goroutine panic or runtime.Goexit into
// an ordinary error, so a single compile call can report a compiler-internal
// invariant violation (an over-budget counter, a malformed jump patch) the
// same way it reports an ordinary parse error.
package panicerr

// Recover runs f in a new goroutine wrapped in a defer logic to recover any
// abnormal exits or panics as non-nil error returns. Compile uses this to
// turn a halt deep in code generation into a returned error instead of a
// crashed process.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		defer close(errch)
		defer recoverExitError(name, errch)
		defer recoverPanicError(name, errch)
		errch <- f()
	}()
	return <-errch
}
