package object_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/miniscript/object"
)

func TestListPushPopGrowShrink(t *testing.T) {
	var a heapStub
	l := object.NewList(&a)
	require.Equal(t, 0, l.Len())

	for i := 0; i < 8; i++ {
		l.Push(&a, object.Number(float64(i)))
	}
	require.Equal(t, 8, l.Len())
	for i := 0; i < 8; i++ {
		n, _ := l.Get(i).AsNumber()
		assert.Equal(t, float64(i), n)
	}

	for i := 0; i < 6; i++ {
		l.Pop()
	}
	assert.Equal(t, 2, l.Len())
}

func TestListRemoveAtShifts(t *testing.T) {
	var a heapStub
	l := object.NewList(&a)
	for i := 0; i < 4; i++ {
		l.Push(&a, object.Number(float64(i)))
	}
	removed := l.RemoveAt(1)
	n, _ := removed.AsNumber()
	assert.Equal(t, float64(1), n)
	require.Equal(t, 3, l.Len())

	n0, _ := l.Get(0).AsNumber()
	n1, _ := l.Get(1).AsNumber()
	n2, _ := l.Get(2).AsNumber()
	assert.Equal(t, []float64{0, 2, 3}, []float64{n0, n1, n2})
}
