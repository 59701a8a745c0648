package opcode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/miniscript/opcode"
)

func TestBinaryOpsPopTwoPushOne(t *testing.T) {
	for _, c := range []opcode.Code{opcode.ADD, opcode.SUBTRACT, opcode.EQEQ, opcode.AND} {
		assert.Equal(t, -1, opcode.StackDelta(c, 0), c.Name())
	}
}

func TestUnaryOpsAreStackNeutral(t *testing.T) {
	for _, c := range []opcode.Code{opcode.NEGATIVE, opcode.NOT, opcode.BIT_NOT} {
		assert.Equal(t, 0, opcode.StackDelta(c, 0), c.Name())
	}
}

func TestCallDeltaAccountsForCalleeAndArgs(t *testing.T) {
	assert.Equal(t, 0, opcode.StackDelta(opcode.CALL, 0))
	assert.Equal(t, -2, opcode.StackDelta(opcode.CALL, 2))
}

func TestBuildListDeltaAccountsForElementCount(t *testing.T) {
	assert.Equal(t, 1, opcode.StackDelta(opcode.BUILD_LIST, 0))
	assert.Equal(t, -2, opcode.StackDelta(opcode.BUILD_LIST, 3))
}

func TestBuildMapDeltaAccountsForPairCount(t *testing.T) {
	assert.Equal(t, 1, opcode.StackDelta(opcode.BUILD_MAP, 0))
	assert.Equal(t, -3, opcode.StackDelta(opcode.BUILD_MAP, 2))
}

func TestOperandWidthMatchesEmitterConvention(t *testing.T) {
	assert.Equal(t, 2, opcode.OperandWidth(opcode.CONSTANT))
	assert.Equal(t, 2, opcode.OperandWidth(opcode.JUMP))
	assert.Equal(t, 2, opcode.OperandWidth(opcode.BUILD_MAP))
	assert.Equal(t, 1, opcode.OperandWidth(opcode.LOAD_LOCAL))
	assert.Equal(t, 1, opcode.OperandWidth(opcode.CALL))
	assert.Equal(t, 0, opcode.OperandWidth(opcode.GET_SUBSCRIPT))
	assert.Equal(t, 0, opcode.OperandWidth(opcode.ADD))
}

func TestNamesAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range []opcode.Code{
		opcode.CONSTANT, opcode.PUSH_NULL, opcode.POP, opcode.JUMP, opcode.JUMP_IF_NOT,
		opcode.RETURN, opcode.ADD, opcode.CALL, opcode.BUILD_LIST, opcode.BUILD_MAP,
	} {
		name := c.Name()
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
	}
}
