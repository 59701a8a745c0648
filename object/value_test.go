package object_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/miniscript/object"
)

func TestSameIsReflexiveAndImpliesEqual(t *testing.T) {
	vals := []object.Value{
		object.Null(),
		object.Undefined(),
		object.Bool(true),
		object.Bool(false),
		object.Number(0),
		object.Number(math.NaN()),
		object.Number(math.Inf(1)),
	}
	for _, v := range vals {
		assert.True(t, object.Same(v, v), "Same(%v, %v)", v, v)
		assert.True(t, object.Equal(v, v))
	}
}

func TestSameDistinguishesSignedZero(t *testing.T) {
	assert.False(t, object.Same(object.Number(0), object.Number(math.Copysign(0, -1))))
}

func TestEqualUnwrapsStringByContent(t *testing.T) {
	var a heapStub
	s1 := object.NewStringFromString(&a, "hello")
	s2 := object.NewStringFromString(&a, "hello")
	v1, v2 := object.FromObj(s1), object.FromObj(s2)

	assert.False(t, object.Same(v1, v2), "distinct String objects are never Same")
	assert.True(t, object.Equal(v1, v2), "but they are Equal by content")
}

func TestEqualUnwrapsRangeFieldwise(t *testing.T) {
	var a heapStub
	r1 := object.NewRange(&a, 1, 10)
	r2 := object.NewRange(&a, 1, 10)
	v1, v2 := object.FromObj(r1), object.FromObj(r2)

	assert.False(t, object.Same(v1, v2))
	assert.True(t, object.Equal(v1, v2))
}

func TestEqualDoesNotUnwrapOtherKinds(t *testing.T) {
	var a heapStub
	l1 := object.NewList(&a)
	l2 := object.NewList(&a)
	assert.False(t, object.Equal(object.FromObj(l1), object.FromObj(l2)))
	assert.True(t, object.Equal(object.FromObj(l1), object.FromObj(l1)))
}

func TestIsTruthy(t *testing.T) {
	assert.False(t, object.Null().IsTruthy())
	assert.False(t, object.Bool(false).IsTruthy())
	assert.True(t, object.Bool(true).IsTruthy())
	assert.True(t, object.Number(0).IsTruthy())
	assert.True(t, object.Undefined().IsTruthy())
}
