package uniform

import "fmt"

// Field is an unplaced uniform declaration: a name, a type and the byte size resolved
// from a SizeTable at construction. It has no offset; only a Compiler turns it into a
// PlacedField. Create fields with SizeTable.Field or Compiler.Field.
type Field struct {
	name     string
	tag      TypeTag
	byteSize uint64
}

// Name returns the uniform name.
func (f Field) Name() string { return f.name }

// Type returns the uniform type.
func (f Field) Type() TypeTag { return f.tag }

// ByteSize returns the size resolved from the table the field was created with.
func (f Field) ByteSize() uint64 { return f.byteSize }

func (f Field) String() string {
	return fmt.Sprintf("%s %s (%d bytes)", f.name, f.tag, f.byteSize)
}

// PlacedField is a field with its final position inside a Format. Values are only
// created by compilation and have no setters, so a PlacedField can be shared freely
// between goroutines.
type PlacedField struct {
	name     string
	tag      TypeTag
	byteSize uint64
	// offset is in 32-bit words, matching a []uint32 / []float32 view of the buffer.
	offset uint64
	index  int
}

// Name returns the uniform name.
func (f *PlacedField) Name() string { return f.name }

// Type returns the uniform type.
func (f *PlacedField) Type() TypeTag { return f.tag }

// ByteSize returns the number of bytes the field occupies.
func (f *PlacedField) ByteSize() uint64 { return f.byteSize }

// Offset returns the field position in 32-bit words from the start of the buffer.
func (f *PlacedField) Offset() uint64 { return f.offset }

// ByteOffset returns the field position in bytes, Offset() * 4.
func (f *PlacedField) ByteOffset() uint64 { return f.offset * 4 }

// End returns the byte offset immediately after the field.
func (f *PlacedField) End() uint64 { return f.ByteOffset() + f.byteSize }

// Index returns the declaration index of the field within its Format.
func (f *PlacedField) Index() int { return f.index }

func (f *PlacedField) String() string {
	return fmt.Sprintf("%s %s @%d (%d bytes)", f.name, f.tag, f.offset, f.byteSize)
}
