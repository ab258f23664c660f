package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/Carmen-Shannon/oxy-layout/engine/renderer/uniform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraUniformFormat(t *testing.T) {
	f := CameraUniformFormat()
	assert.Same(t, f, CameraUniformFormat())
	assert.Equal(t, uint64(80), f.ByteSize())

	pos, ok := f.Lookup("camera_position")
	require.True(t, ok)
	assert.Equal(t, uint64(16), pos.Offset())
	assert.Equal(t, uint64(64), pos.ByteOffset())
}

func TestGPUCameraUniform_Marshal(t *testing.T) {
	g := &GPUCameraUniform{CameraPosition: math32.Vector3{X: 1, Y: 2, Z: 3}}
	for i := range g.ViewProj {
		g.ViewProj[i] = float32(i)
	}

	buf := g.Marshal()
	require.Len(t, buf, g.Size())
	require.Equal(t, 80, g.Size())

	for i := range 16 {
		assert.Equal(t, float32(i), math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:])))
	}
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[64:])))
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(buf[72:])))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf[76:]), "padding stays zero")
}

func TestGPUCameraUniform_WriteToWrongLayout(t *testing.T) {
	c := uniform.NewCompiler()
	f, err := c.Compile(c.Field("view_proj", uniform.FloatVec4))
	require.NoError(t, err)

	g := &GPUCameraUniform{}
	assert.ErrorIs(t, g.WriteTo(f.NewBlock()), uniform.ErrTypeMismatch)
}
