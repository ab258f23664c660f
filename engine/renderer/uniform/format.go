package uniform

import (
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// Format is a compiled uniform layout: the placed fields in declaration order, the total
// byte size and a name lookup. A Format is immutable once returned by a Compiler and may
// be read from any number of goroutines without synchronization.
type Format struct {
	label     string
	alignment string
	fields    []*PlacedField
	byteSize  uint64
	lookup    map[string]*PlacedField
}

// Label returns the debug label of the compiler that produced the format.
func (f *Format) Label() string {
	return f.label
}

// Alignment returns the name of the alignment policy the format was compiled with.
func (f *Format) Alignment() string {
	return f.alignment
}

// ByteSize returns the total buffer size in bytes.
func (f *Format) ByteSize() uint64 {
	return f.byteSize
}

// WordSize returns the total buffer size in 32-bit words.
func (f *Format) WordSize() uint64 {
	return f.byteSize / 4
}

// Len returns the number of declared fields, including shadowed duplicates.
func (f *Format) Len() int {
	return len(f.fields)
}

// Fields returns the placed fields in declaration order. The returned slice is a copy;
// the PlacedField values are shared with the format.
//
// Returns:
//   - []*PlacedField: the placed fields in declaration order
func (f *Format) Fields() []*PlacedField {
	out := make([]*PlacedField, len(f.fields))
	copy(out, f.fields)
	return out
}

// Field returns the placed field at declaration index i. Panics if i is out of range.
func (f *Format) Field(i int) *PlacedField {
	return f.fields[i]
}

// Names returns the field names in declaration order. Shadowed duplicates appear once per declaration.
func (f *Format) Names() []string {
	names := make([]string, len(f.fields))
	for i, pf := range f.fields {
		names[i] = pf.name
	}
	return names
}

// Lookup returns the placed field registered under name. The returned pointer is the same
// instance found in Fields. A miss returns nil and false; callers must not write anything
// for a missed name.
//
// Parameters:
//   - name: the uniform name
//
// Returns:
//   - *PlacedField: the placed field, or nil
//   - bool: false if no field is registered under name
func (f *Format) Lookup(name string) (*PlacedField, bool) {
	pf, ok := f.lookup[name]
	return pf, ok
}

// BindingLayout returns the WebGPU buffer binding layout for a uniform buffer holding
// this format, with MinBindingSize set to the format's byte size.
//
// Returns:
//   - wgpu.BufferBindingLayout: the uniform buffer binding layout
func (f *Format) BindingLayout() wgpu.BufferBindingLayout {
	return wgpu.BufferBindingLayout{
		Type:           wgpu.BufferBindingTypeUniform,
		MinBindingSize: f.byteSize,
	}
}

// VertexBufferLayout converts the format into a per-vertex buffer layout whose attributes
// take consecutive shader locations starting at baseLocation. Attribute offsets are the
// placed byte offsets and the stride is the total byte size.
//
// Parameters:
//   - baseLocation: the shader location of the first field
//
// Returns:
//   - wgpu.VertexBufferLayout: the constructed vertex buffer layout
//   - bool: false if a field type has no vertex format (bool vectors, mat4)
func (f *Format) VertexBufferLayout(baseLocation uint32) (wgpu.VertexBufferLayout, bool) {
	attrs := make([]wgpu.VertexAttribute, 0, len(f.fields))

	for i, pf := range f.fields {
		format := pf.tag.VertexFormat()
		if format == wgpu.VertexFormatUndefined {
			return wgpu.VertexBufferLayout{}, false
		}

		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         format,
			Offset:         pf.ByteOffset(),
			ShaderLocation: baseLocation + uint32(i),
		})
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: f.byteSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}, true
}

// NewBlock allocates a zeroed Block sized for this format.
func (f *Format) NewBlock() *Block {
	return NewBlock(f)
}

func (f *Format) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Format %q (%s, %d bytes)", f.label, f.alignment, f.byteSize)
	for _, pf := range f.fields {
		b.WriteString("\n  ")
		b.WriteString(pf.String())
	}
	return b.String()
}
