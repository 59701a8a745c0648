package heap_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/miniscript/heap"
	"github.com/jcorbin/miniscript/object"
)

func TestTrackLinksAllObjectsList(t *testing.T) {
	h := heap.New()
	s := object.NewScript(h)

	// NewScript tracks the Script first, then its body Function, so the
	// body leads the list with the Script directly behind it.
	assert.Same(t, object.HeaderOf(s.Body), h.AllObjects())
	assert.Same(t, object.HeaderOf(s), h.AllObjects().Next())
}

func TestAddBytesRoutesThroughReallocator(t *testing.T) {
	var got int
	h := heap.New(heap.WithReallocator(func(ptr interface{}, deltaBytes int) {
		got += deltaBytes
	}))
	h.AddBytes(64)
	h.AddBytes(-16)
	assert.Equal(t, 48, got)
	assert.Equal(t, 48, h.BytesAllocated())
}

func TestAddRootRemoveRoot(t *testing.T) {
	h := heap.New()
	s := object.NewScript(h)
	h.AddRoot(s)
	require.Len(t, h.Roots, 1)
	h.RemoveRoot(s)
	assert.Len(t, h.Roots, 0)
}

func TestWriteFlushesConfiguredWriter(t *testing.T) {
	var buf fakeWriter
	h := heap.New(heap.WithWrite(&buf))
	n, err := h.Write([]byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "hi", buf.written)
}

func TestWriteWithoutConfiguredWriterIsNoop(t *testing.T) {
	h := heap.New()
	n, err := h.Write([]byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestLoadScriptWithoutLoaderErrors(t *testing.T) {
	h := heap.New()
	_, _, err := h.LoadScript("foo.ms")
	assert.True(t, errors.Is(err, heap.ErrNoLoader))
}

func TestResolvePathDefaultsToIdentity(t *testing.T) {
	h := heap.New()
	got, err := h.ResolvePath("a.ms", "b")
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}

func TestReportErrorRoutesToSink(t *testing.T) {
	var gotKind heap.ErrorKind
	var gotMsg string
	h := heap.New(heap.WithErrorSink(func(kind heap.ErrorKind, file string, line int, msg string) {
		gotKind, gotMsg = kind, msg
	}))
	h.ReportError(heap.ErrorCompile, "a.ms", 3, "boom")
	assert.Equal(t, heap.ErrorCompile, gotKind)
	assert.Equal(t, "boom", gotMsg)
}

type fakeWriter struct {
	written string
}

func (w *fakeWriter) Write(p []byte) (int, error) {
	w.written += string(p)
	return len(p), nil
}
