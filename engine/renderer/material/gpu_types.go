package material

import (
	"sync"

	"cogentcore.org/core/math32"
	"github.com/Carmen-Shannon/oxy-layout/engine/renderer/uniform"
)

// GPUOverlayParamsSource is the canonical WGSL definition of the OverlayParams struct.
const GPUOverlayParamsSource = `struct OverlayParams {
    overlay_color: vec4<f32>,
}
`

// GPUEffectParamsSource is the canonical WGSL definition of the EffectParams struct.
const GPUEffectParamsSource = `struct EffectParams {
    tint_color: vec4<f32>,
}
`

// compileParams compiles a single-struct material uniform with WGSL alignment.
func compileParams(label string, decls ...uniform.Declaration) func() *uniform.Format {
	return sync.OnceValue(func() *uniform.Format {
		c := uniform.NewCompiler(
			uniform.WithLabel(label),
			uniform.WithAlignment(uniform.WGSLAlignment),
		)
		f, err := c.CompileDeclarations(decls)
		if err != nil {
			panic("material: " + err.Error())
		}
		return f
	})
}

// OverlayParamsFormat returns the compiled OverlayParams layout (16 bytes).
var OverlayParamsFormat = compileParams("OverlayParams",
	uniform.Declaration{Name: "overlay_color", Type: uniform.FloatVec4})

// EffectParamsFormat returns the compiled EffectParams layout (16 bytes).
var EffectParamsFormat = compileParams("EffectParams",
	uniform.Declaration{Name: "tint_color", Type: uniform.FloatVec4})

// GPUOverlayParams is the uniform for the overlay fragment shader.
type GPUOverlayParams struct {
	OverlayColor math32.Vector4 // RGBA overlay color written to all fragments
}

// Size returns the size of the OverlayParams buffer in bytes.
func (g *GPUOverlayParams) Size() int {
	return int(OverlayParamsFormat().ByteSize())
}

// Marshal serializes the overlay params into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUOverlayParams) Marshal() []byte {
	b := OverlayParamsFormat().NewBlock()
	if err := b.SetVector4("overlay_color", g.OverlayColor); err != nil {
		panic("material: " + err.Error())
	}
	return b.Bytes()
}

// GPUEffectParams is the uniform for the textured and skinned-rainbow fragment shaders.
// The RGB channels set the tint color; the alpha channel controls the tint blend intensity
// (0.0 = no tint, 1.0 = fully tinted).
type GPUEffectParams struct {
	TintColor math32.Vector4
}

// Size returns the size of the EffectParams buffer in bytes.
func (g *GPUEffectParams) Size() int {
	return int(EffectParamsFormat().ByteSize())
}

// Marshal serializes the effect params into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUEffectParams) Marshal() []byte {
	b := EffectParamsFormat().NewBlock()
	if err := b.SetVector4("tint_color", g.TintColor); err != nil {
		panic("material: " + err.Error())
	}
	return b.Bytes()
}
