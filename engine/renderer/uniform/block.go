package uniform

import (
	"encoding/binary"
	"math"

	"cogentcore.org/core/math32"
)

// BufferWrite describes a single GPU buffer write targeting a binding at a given byte offset.
// Offset and len(Data) are always multiples of 4.
type BufferWrite struct {
	Binding int
	Offset  uint64
	Data    []byte
}

// Block is a CPU-side uniform buffer laid out by a Format. Values are written little
// endian at each field's ByteOffset. A Block tracks the byte range changed since the
// last Flush so that only that range needs uploading.
//
// A Block is not safe for concurrent writes; use one Block per writer and share the Format.
type Block struct {
	format *Format
	data   []byte

	dirty            bool
	dirtyLo, dirtyHi uint64
}

// NewBlock allocates a zeroed Block sized for format. The whole block starts dirty so the
// first Flush covers every byte.
//
// Parameters:
//   - format: the compiled layout
//
// Returns:
//   - *Block: the new block
func NewBlock(format *Format) *Block {
	b := &Block{
		format: format,
		data:   make([]byte, format.ByteSize()),
	}
	if len(b.data) > 0 {
		b.markDirty(0, uint64(len(b.data)))
	}
	return b
}

// Format returns the layout the block was created for.
func (b *Block) Format() *Format {
	return b.format
}

// Bytes returns the backing buffer. It aliases the block; copy it before retaining it
// across further writes.
func (b *Block) Bytes() []byte {
	return b.data
}

// Dirty reports whether anything was written since the last Flush.
func (b *Block) Dirty() bool {
	return b.dirty
}

// Flush returns a write covering the bytes changed since the previous Flush and clears
// the dirty range. Data is a copy.
//
// Parameters:
//   - binding: the binding index recorded in the returned write
//
// Returns:
//   - BufferWrite: the write covering the dirty range
//   - bool: false if nothing changed
func (b *Block) Flush(binding int) (BufferWrite, bool) {
	if !b.dirty {
		return BufferWrite{}, false
	}
	data := make([]byte, b.dirtyHi-b.dirtyLo)
	copy(data, b.data[b.dirtyLo:b.dirtyHi])
	w := BufferWrite{
		Binding: binding,
		Offset:  b.dirtyLo,
		Data:    data,
	}
	b.dirty = false
	b.dirtyLo, b.dirtyHi = 0, 0
	return w, true
}

// Reset zeroes the block and marks it fully dirty.
func (b *Block) Reset() {
	clear(b.data)
	if len(b.data) > 0 {
		b.markDirty(0, uint64(len(b.data)))
	}
}

func (b *Block) markDirty(lo, hi uint64) {
	if !b.dirty {
		b.dirty = true
		b.dirtyLo, b.dirtyHi = lo, hi
		return
	}
	b.dirtyLo = min(b.dirtyLo, lo)
	b.dirtyHi = max(b.dirtyHi, hi)
}

// put writes words into the field registered under name after checking the field's scalar
// kind and component count. Nothing is written on error.
func (b *Block) put(name string, kind ScalarKind, words []uint32) error {
	pf, ok := b.format.Lookup(name)
	if !ok {
		return newError(KindFieldNotFound).
			layout(b.format.label).
			field(name).
			build()
	}
	if pf.tag.Scalar() != kind || pf.tag.Components() != len(words) {
		return newError(KindTypeMismatch).
			layout(b.format.label).
			field(name).
			detail("field is %s, value is %d x %s", pf.tag, len(words), kind).
			build()
	}

	off := pf.ByteOffset()
	if n := uint64(len(words)) * 4; n > pf.byteSize || off+n > uint64(len(b.data)) {
		return newError(KindTypeMismatch).
			layout(b.format.label).
			field(name).
			detail("%d bytes do not fit the field's %d byte slot", n, pf.byteSize).
			build()
	}
	for i, w := range words {
		binary.LittleEndian.PutUint32(b.data[off+uint64(i)*4:], w)
	}
	b.markDirty(off, off+uint64(len(words))*4)
	return nil
}

// SetFloats writes float components into a float scalar, vector or matrix field.
// The number of values must equal the field's component count.
//
// Parameters:
//   - name: the field name
//   - values: the components in memory order
//
// Returns:
//   - error: KindFieldNotFound for an unknown name, KindTypeMismatch for a wrong type or count
func (b *Block) SetFloats(name string, values ...float32) error {
	words := make([]uint32, len(values))
	for i, v := range values {
		words[i] = math.Float32bits(v)
	}
	return b.put(name, ScalarFloat, words)
}

// SetInts writes signed integer components into an int scalar or vector field.
func (b *Block) SetInts(name string, values ...int32) error {
	words := make([]uint32, len(values))
	for i, v := range values {
		words[i] = uint32(v)
	}
	return b.put(name, ScalarInt, words)
}

// SetUints writes unsigned integer components into a uint scalar or vector field.
func (b *Block) SetUints(name string, values ...uint32) error {
	return b.put(name, ScalarUint, values)
}

// SetBools writes boolean components into a bool scalar or vector field, one word each.
func (b *Block) SetBools(name string, values ...bool) error {
	words := make([]uint32, len(values))
	for i, v := range values {
		if v {
			words[i] = 1
		}
	}
	return b.put(name, ScalarBool, words)
}

// SetFloat writes a float field.
func (b *Block) SetFloat(name string, v float32) error {
	return b.SetFloats(name, v)
}

// SetInt writes an int field.
func (b *Block) SetInt(name string, v int32) error {
	return b.SetInts(name, v)
}

// SetUint writes a uint field.
func (b *Block) SetUint(name string, v uint32) error {
	return b.SetUints(name, v)
}

// SetBool writes a bool field.
func (b *Block) SetBool(name string, v bool) error {
	return b.SetBools(name, v)
}

// SetVector2 writes a vec2 field.
func (b *Block) SetVector2(name string, v math32.Vector2) error {
	return b.SetFloats(name, v.X, v.Y)
}

// SetVector3 writes a vec3 field.
func (b *Block) SetVector3(name string, v math32.Vector3) error {
	return b.SetFloats(name, v.X, v.Y, v.Z)
}

// SetVector4 writes a vec4 field.
func (b *Block) SetVector4(name string, v math32.Vector4) error {
	return b.SetFloats(name, v.X, v.Y, v.Z, v.W)
}

// SetVector2i writes an ivec2 field.
func (b *Block) SetVector2i(name string, v math32.Vector2i) error {
	return b.SetInts(name, v.X, v.Y)
}

// SetVector3i writes an ivec3 field.
func (b *Block) SetVector3i(name string, v math32.Vector3i) error {
	return b.SetInts(name, v.X, v.Y, v.Z)
}

// SetMatrix4 writes a mat4 field in the matrix's column-major memory order.
func (b *Block) SetMatrix4(name string, m math32.Matrix4) error {
	return b.SetFloats(name, m[:]...)
}
