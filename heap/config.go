package heap

import (
	"errors"
	"io"

	"github.com/jcorbin/miniscript/internal/flushio"
)

// ErrorKind names the three diagnostic channels spec §6's error-sink
// callback distinguishes.
type ErrorKind uint8

const (
	ErrorCompile ErrorKind = iota
	ErrorRuntime
	ErrorStacktrace
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorCompile:
		return "COMPILE"
	case ErrorRuntime:
		return "RUNTIME"
	case ErrorStacktrace:
		return "STACKTRACE"
	default:
		return "?"
	}
}

// ErrNoLoader is returned by LoadScript when no LoadScript callback was
// configured.
var ErrNoLoader = errors.New("heap: no script loader configured")

// Config collects the five embedder callbacks spec §6 names: Reallocate
// (bytes tracked, not allocation itself — MiniScript's Go objects are
// garbage collected by the host runtime; what spec calls "the
// reallocator" is realized here purely as the byte-accounting hook GC
// uses to decide when to trigger a collection, per spec §5), ErrorSink,
// Write, ResolvePath and LoadScript.
type Config struct {
	Reallocate  func(ptr interface{}, deltaBytes int)
	ErrorSink   func(kind ErrorKind, file string, line int, msg string)
	Write       flushio.WriteFlusher
	ResolvePath func(from, name string) (string, error)
	LoadScript  func(path string) (source string, done func(), err error)
}

// Option configures a Heap at construction time, mirroring gothird's
// VMOption/options-slice pattern (api.go, options.go): apply flattens
// nested Options so New(opts...) and Options(opts...) compose identically.
type Option interface{ apply(h *Heap) }

type options []Option

func (opts options) apply(h *Heap) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(h)
		}
	}
}

// Options flattens opts into a single Option, dropping nils, exactly as
// gothird.VMOptions does.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(*Heap) {}

type configOption func(*Config)

func (f configOption) apply(h *Heap) { f(&h.config) }

// WithReallocator sets the byte-accounting callback.
func WithReallocator(f func(ptr interface{}, deltaBytes int)) Option {
	return configOption(func(c *Config) { c.Reallocate = f })
}

// WithErrorSink sets the diagnostic callback.
func WithErrorSink(f func(kind ErrorKind, file string, line int, msg string)) Option {
	return configOption(func(c *Config) { c.ErrorSink = f })
}

// WithWrite sets the print-facility writer, wrapping it in a buffering
// WriteFlusher exactly as gothird/api.go's outputOption does.
func WithWrite(w io.Writer) Option {
	return configOption(func(c *Config) { c.Write = flushio.NewWriteFlusher(w) })
}

// WithTee adds an additional writer that also receives every Write,
// mirroring gothird/api.go's teeOption.
func WithTee(w io.Writer) Option {
	return configOption(func(c *Config) {
		c.Write = flushio.WriteFlushers(c.Write, flushio.NewWriteFlusher(w))
	})
}

// WithResolvePath sets the import path resolver.
func WithResolvePath(f func(from, name string) (string, error)) Option {
	return configOption(func(c *Config) { c.ResolvePath = f })
}

// WithLoadScript sets the script source loader.
func WithLoadScript(f func(path string) (source string, done func(), err error)) Option {
	return configOption(func(c *Config) { c.LoadScript = f })
}

// WithLogf sets the optional trace-logging sink.
func WithLogf(logf func(mess string, args ...interface{})) Option {
	return logfOption(logf)
}

type logfOption func(mess string, args ...interface{})

func (f logfOption) apply(h *Heap) { h.Logf = f }

var defaultOptions = Options()
