package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestAlignUp(t *testing.T) {
	tests := []struct {
		align, value, want uint64
	}{
		{0, 13, 13},
		{1, 13, 13},
		{4, 12, 12},
		{4, 13, 16},
		{16, 0, 0},
		{16, 76, 80},
		{16, 80, 80},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AlignUp(tt.align, tt.value), "AlignUp(%d, %d)", tt.align, tt.value)
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	assert.False(t, IsPowerOfTwo(0))
	assert.True(t, IsPowerOfTwo(1))
	assert.True(t, IsPowerOfTwo(16))
	assert.False(t, IsPowerOfTwo(12))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce[int]())
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	assert.NotNil(t, Logger())

	l := zap.NewExample()
	SetLogger(l)
	assert.Same(t, l, Logger())

	SetLogger(nil)
	assert.NotNil(t, Logger())
	assert.NotSame(t, l, Logger())
}
