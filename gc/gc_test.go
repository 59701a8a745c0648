package gc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/miniscript/gc"
	"github.com/jcorbin/miniscript/heap"
	"github.com/jcorbin/miniscript/object"
)

func TestCollectFreesUnreachableObjects(t *testing.T) {
	h := heap.New()
	c := gc.New(h)

	object.NewStringFromString(h, "garbage") // never rooted

	freed, live := c.Collect()
	assert.Equal(t, 1, freed)
	assert.Equal(t, 0, live)
}

func TestCollectKeepsRootedScriptAndItsGraph(t *testing.T) {
	h := heap.New()
	c := gc.New(h)

	s := object.NewScript(h)
	str := object.NewStringFromString(h, "kept")
	_, err := s.AddConstant(h, object.FromObj(str))
	require.NoError(t, err)
	h.AddRoot(s)

	object.NewStringFromString(h, "unrooted garbage")

	freed, live := c.Collect()
	assert.Equal(t, 1, freed)
	// Script, its body Function, and the constant String all survive.
	assert.Equal(t, 3, live)

	got, _ := s.Literals.At(0).AsObj()
	assert.Same(t, str, got)
}

func TestCollectTracesListElementsTransitively(t *testing.T) {
	h := heap.New()
	c := gc.New(h)

	s := object.NewScript(h)
	l := object.NewList(h)
	inner := object.NewStringFromString(h, "nested")
	l.Push(h, object.FromObj(inner))
	idx, err := s.Global(h, "xs")
	require.NoError(t, err)
	s.Globals.Set(idx, object.FromObj(l))
	h.AddRoot(s)

	freed, live := c.Collect()
	assert.Equal(t, 0, freed)
	assert.GreaterOrEqual(t, live, 4) // script, body, list, inner string
}

func TestCollectHandlesCyclesWithoutRootsBeingFreed(t *testing.T) {
	h := heap.New()
	c := gc.New(h)

	a := object.NewMap(h)
	b := object.NewMap(h)
	require.NoError(t, a.Set(h, object.Number(1), object.FromObj(b)))
	require.NoError(t, b.Set(h, object.Number(1), object.FromObj(a)))

	// Neither map is rooted, so the cycle they form must still be
	// collectable: mark never revisits an already-gray/black header, so
	// the cycle terminates instead of looping forever, and sweep frees both.
	freed, live := c.Collect()
	assert.Equal(t, 2, freed)
	assert.Equal(t, 0, live)
}

func TestCollectHonoursTempRoots(t *testing.T) {
	h := heap.New()
	c := gc.New(h)

	str := object.NewStringFromString(h, "held")
	done := h.TempRoots.Guard(object.HeaderOf(str))
	defer done()

	_, live := c.Collect()
	assert.Equal(t, 1, live)
}
