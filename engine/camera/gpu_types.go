package camera

import (
	"sync"

	"cogentcore.org/core/math32"
	"github.com/Carmen-Shannon/oxy-layout/engine/renderer/uniform"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// CameraUniformFormat lays out the same fields with WGSL alignment (80 bytes).
const GPUCameraUniformSource = `struct CameraUniform {
    view_proj: mat4x4<f32>,
    camera_position: vec3<f32>,
}
`

// cameraUniformFields declares the CameraUniform members in WGSL order.
var cameraUniformFields = []uniform.Declaration{
	{Name: "view_proj", Type: uniform.FloatMat4},
	{Name: "camera_position", Type: uniform.FloatVec3},
}

// CameraUniformFormat returns the compiled layout of the camera uniform buffer. The
// vec3 position is followed by 4 bytes of padding so the block rounds to 80 bytes.
//
// Returns:
//   - *uniform.Format: the shared, immutable camera layout
var CameraUniformFormat = sync.OnceValue(func() *uniform.Format {
	c := uniform.NewCompiler(
		uniform.WithLabel("CameraUniform"),
		uniform.WithAlignment(uniform.WGSLAlignment),
	)
	f, err := c.CompileDeclarations(cameraUniformFields)
	if err != nil {
		panic("camera: " + err.Error())
	}
	return f
})

// GPUCameraUniform holds the values of the camera uniform buffer.
// Serialized through CameraUniformFormat (see GPUCameraUniformSource).
type GPUCameraUniform struct {
	ViewProj       math32.Matrix4 // combined view-projection matrix (mat4x4<f32>)
	CameraPosition math32.Vector3 // world-space camera position (vec3<f32>)
}

// Size returns the size of the camera uniform buffer in bytes.
//
// Returns:
//   - int: the buffer size in bytes (80)
func (g *GPUCameraUniform) Size() int {
	return int(CameraUniformFormat().ByteSize())
}

// WriteTo packs the uniform values into a block laid out by CameraUniformFormat.
//
// Parameters:
//   - b: the destination block
//
// Returns:
//   - error: an error if the block was created for a different layout
func (g *GPUCameraUniform) WriteTo(b *uniform.Block) error {
	if err := b.SetMatrix4("view_proj", g.ViewProj); err != nil {
		return err
	}
	return b.SetVector3("camera_position", g.CameraPosition)
}

// Marshal serializes the camera uniform into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	b := CameraUniformFormat().NewBlock()
	if err := g.WriteTo(b); err != nil {
		panic("camera: " + err.Error())
	}
	return b.Bytes()
}
