package object_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/miniscript/object"
)

func TestScriptHasBodyFunction(t *testing.T) {
	var a heapStub
	s := object.NewScript(&a)
	require.NotNil(t, s.Body)
	assert.Equal(t, object.BodyFunctionName, s.Body.Name)
	assert.Same(t, s, s.Body.Owner)
}

// TestAddConstantDedupes is spec §8's S4: the same literal added four
// times produces exactly one entry.
func TestAddConstantDedupes(t *testing.T) {
	var a heapStub
	s := object.NewScript(&a)

	var idx int
	for i := 0; i < 4; i++ {
		got, err := s.AddConstant(&a, object.Number(3.14))
		require.NoError(t, err)
		if i == 0 {
			idx = got
		} else {
			assert.Equal(t, idx, got)
		}
	}
	assert.Equal(t, 1, s.Literals.Len())
}

func TestAddConstantDistinguishesDistinctStrings(t *testing.T) {
	var a heapStub
	s := object.NewScript(&a)

	s1 := object.NewStringFromString(&a, "a")
	s2 := object.NewStringFromString(&a, "a")

	i1, err := s.AddConstant(&a, object.FromObj(s1))
	require.NoError(t, err)
	i2, err := s.AddConstant(&a, object.FromObj(s2))
	require.NoError(t, err)
	assert.NotEqual(t, i1, i2, "Same (not Equal) drives constant dedup, so distinct String objects each get an entry")
}

func TestGlobalInterningGrowsGlobalsInLockstep(t *testing.T) {
	var a heapStub
	s := object.NewScript(&a)

	i1, err := s.Global(&a, "x")
	require.NoError(t, err)
	i2, err := s.Global(&a, "y")
	require.NoError(t, err)
	i3, err := s.Global(&a, "x")
	require.NoError(t, err)

	assert.Equal(t, i1, i3)
	assert.NotEqual(t, i1, i2)
	assert.Equal(t, 2, s.Globals.Len())
}

func TestAddFunctionKeepsNamesParallel(t *testing.T) {
	var a heapStub
	s := object.NewScript(&a)

	fn := object.NewFunction(&a, s, "add", 2, false)
	idx, err := s.AddFunction(&a, fn)
	require.NoError(t, err)

	assert.Equal(t, fn, s.Functions.At(idx))
	assert.Equal(t, "add", s.FunctionNames.At(idx).String())
}
