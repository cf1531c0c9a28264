package locker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordBufferLimit(t *testing.T) {
	b := newPasswordBuffer()

	for i := 0; i < MaxPassword; i++ {
		assert.True(t, b.Push('x'))
	}
	assert.False(t, b.Push('y'))
	assert.Equal(t, MaxPassword, b.Len())
	assert.Equal(t, strings.Repeat("x", MaxPassword), b.Take())
	assert.Zero(t, b.Len())
}

func TestPasswordBufferClear(t *testing.T) {
	b := newPasswordBuffer()

	assert.False(t, b.Clear())
	b.Push('a')
	b.Push('b')
	assert.True(t, b.Clear())
	assert.False(t, b.Clear())
	assert.Zero(t, b.Len())

	for _, r := range b.runes[:cap(b.runes)] {
		assert.Zero(t, r)
	}
}

func TestPasswordBufferPop(t *testing.T) {
	b := newPasswordBuffer()

	assert.False(t, b.Pop())
	for _, r := range "héllo" {
		b.Push(r)
	}
	assert.True(t, b.Pop())
	assert.True(t, b.Pop())
	assert.Equal(t, "hél", b.Take())
}
