package object_test

import (
	"hash/fnv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/miniscript/object"
)

func TestStringTrailingNULAndLength(t *testing.T) {
	var a heapStub
	s := object.NewStringFromString(&a, "abc")
	require.Equal(t, 3, s.Len())
	assert.Equal(t, "abc", s.String())
	raw := s.Bytes()
	assert.Equal(t, byte(0), raw[:len(raw)+1][len(raw)], "trailing NUL just past Len()")
}

func TestStringHashMatchesFNV1a(t *testing.T) {
	var a heapStub
	s := object.NewStringFromString(&a, "the quick brown fox")

	h := fnv.New32a()
	_, _ = h.Write([]byte("the quick brown fox"))
	assert.Equal(t, h.Sum32(), s.Hash())
}

func TestStringEmpty(t *testing.T) {
	var a heapStub
	s := object.NewStringFromString(&a, "")
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "", s.String())
}
