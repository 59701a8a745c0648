package buffer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/miniscript/buffer"
)

func TestWriteGrowsByDoubling(t *testing.T) {
	var b buffer.Buffer[int]
	require.Equal(t, 0, b.Cap())

	for i := 0; i < buffer.MinCapacity; i++ {
		b.Write(nil, i)
	}
	assert.Equal(t, buffer.MinCapacity, b.Len())
	firstCap := b.Cap()
	assert.GreaterOrEqual(t, firstCap, buffer.MinCapacity)

	b.Write(nil, 999)
	assert.Equal(t, firstCap*2, b.Cap())
}

func TestWriteAccountsGrowthBytes(t *testing.T) {
	var b buffer.Buffer[int]
	var acct fakeAccounter
	for i := 0; i < buffer.MinCapacity+1; i++ {
		b.Write(&acct, i)
	}
	require.NotZero(t, acct.total)
}

type fakeAccounter struct{ total int }

func (a *fakeAccounter) AddBytes(n int) { a.total += n }

func TestFillNAndClear(t *testing.T) {
	var b buffer.Buffer[byte]
	b.FillN(nil, 5, 0xAA)
	require.Equal(t, 5, b.Len())
	for i := 0; i < 5; i++ {
		assert.Equal(t, byte(0xAA), b.At(i))
	}

	b.Clear()
	assert.Equal(t, 0, b.Len())
	assert.GreaterOrEqual(t, b.Cap(), 5)
}

func TestTruncateKeepsBackingArray(t *testing.T) {
	var b buffer.Buffer[int]
	for i := 0; i < 4; i++ {
		b.Write(nil, i)
	}
	capBefore := b.Cap()
	b.Truncate(2)
	assert.Equal(t, []int{0, 1}, b.Items())
	assert.Equal(t, capBefore, b.Cap())
}
