package material

import (
	"encoding/binary"
	"math"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestParamsFormats(t *testing.T) {
	assert.Equal(t, uint64(16), OverlayParamsFormat().ByteSize())
	assert.Equal(t, uint64(16), EffectParamsFormat().ByteSize())
	assert.Equal(t, []string{"tint_color"}, EffectParamsFormat().Names())
}

func TestGPUEffectParams_Marshal(t *testing.T) {
	g := &GPUEffectParams{TintColor: math32.Vector4{X: 0.25, Y: 0.5, Z: 0.75, W: 1}}
	buf := g.Marshal()

	assert.Len(t, buf, g.Size())
	want := []float32{0.25, 0.5, 0.75, 1}
	for i, v := range want {
		assert.Equal(t, v, math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:])))
	}
}

func TestGPUOverlayParams_Marshal(t *testing.T) {
	g := &GPUOverlayParams{OverlayColor: math32.Vector4{X: 1, W: 0.5}}
	buf := g.Marshal()

	assert.Len(t, buf, 16)
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, float32(0), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])))
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[12:])))
}
