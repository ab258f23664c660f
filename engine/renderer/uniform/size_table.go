package uniform

import (
	"fmt"
	"slices"
	"sync"
)

// canonicalSizes are the byte sizes of every defined TypeTag. Bool components
// occupy a full 32-bit word so that a block can be indexed as a []uint32.
var canonicalSizes = map[TypeTag]uint64{
	Bool:     4,
	BoolVec2: 8,
	BoolVec3: 12,
	BoolVec4: 16,

	Int:     4,
	IntVec2: 8,
	IntVec3: 12,
	IntVec4: 16,

	Uint:     4,
	UintVec2: 8,
	UintVec3: 12,
	UintVec4: 16,

	Float:     4,
	FloatVec2: 8,
	FloatVec3: 12,
	FloatVec4: 16,

	FloatMat4: 64,
}

// SizeTable is an immutable mapping from TypeTag to byte size. It is the single
// source of truth for field sizes and is injected into a Compiler, so alternate
// tables can be swapped in without touching the compiler.
type SizeTable struct {
	sizes map[TypeTag]uint64
}

var defaultSizeTable = sync.OnceValue(func() *SizeTable {
	return NewSizeTable(canonicalSizes)
})

// DefaultSizeTable returns the canonical size table: scalars 4 bytes, vec2 8, vec3 12,
// vec4 16 and mat4 64 for every scalar kind. The same instance is returned on every call.
//
// Returns:
//   - *SizeTable: the shared canonical table
func DefaultSizeTable() *SizeTable {
	return defaultSizeTable()
}

// NewSizeTable creates a SizeTable from the given sizes. The map is copied, so later
// changes to it do not affect the table.
//
// Panics if a size is registered for UndefinedType or an unknown tag, or if a size is
// zero or not a multiple of 4, since every offset is expressed in 32-bit words.
//
// Parameters:
//   - sizes: byte sizes keyed by tag
//
// Returns:
//   - *SizeTable: the new immutable table
func NewSizeTable(sizes map[TypeTag]uint64) *SizeTable {
	t := &SizeTable{sizes: make(map[TypeTag]uint64, len(sizes))}
	for tag, size := range sizes {
		checkSizeEntry(tag, size)
		t.sizes[tag] = size
	}
	return t
}

func checkSizeEntry(tag TypeTag, size uint64) {
	if !tag.IsValid() {
		panic(fmt.Sprintf("uniform: cannot register a size for %s", tag))
	}
	if size == 0 || size%4 != 0 {
		panic(fmt.Sprintf("uniform: size %d for %s is not a positive multiple of 4", size, tag))
	}
	if minSize := uint64(tag.Components()) * 4; size < minSize {
		panic(fmt.Sprintf("uniform: size %d for %s is smaller than its %d bytes of data", size, tag, minSize))
	}
}

// SizeOf returns the byte size registered for tag.
//
// Panics if tag is not registered: an unknown size would shift every following
// offset, so it is treated as a defect in the caller rather than bad input.
//
// Parameters:
//   - tag: the type tag to resolve
//
// Returns:
//   - uint64: the byte size of tag
func (t *SizeTable) SizeOf(tag TypeTag) uint64 {
	size, ok := t.sizes[tag]
	if !ok {
		panic(fmt.Sprintf("uniform: type %s has no registered size", tag))
	}
	return size
}

// Lookup returns the byte size registered for tag and whether it is registered.
func (t *SizeTable) Lookup(tag TypeTag) (uint64, bool) {
	size, ok := t.sizes[tag]
	return size, ok
}

// Has reports whether tag is registered.
func (t *SizeTable) Has(tag TypeTag) bool {
	_, ok := t.sizes[tag]
	return ok
}

// Len returns the number of registered tags.
func (t *SizeTable) Len() int {
	return len(t.sizes)
}

// Tags returns the registered tags in ascending order.
func (t *SizeTable) Tags() []TypeTag {
	tags := make([]TypeTag, 0, len(t.sizes))
	for tag := range t.sizes {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// With returns a copy of the table with tag registered (or re-registered) at size.
// The receiver is left unchanged. Panics under the same conditions as NewSizeTable.
//
// Parameters:
//   - tag: the tag to register
//   - size: its byte size
//
// Returns:
//   - *SizeTable: the extended copy
func (t *SizeTable) With(tag TypeTag, size uint64) *SizeTable {
	checkSizeEntry(tag, size)
	sizes := make(map[TypeTag]uint64, len(t.sizes)+1)
	for k, v := range t.sizes {
		sizes[k] = v
	}
	sizes[tag] = size
	return &SizeTable{sizes: sizes}
}

// Without returns a copy of the table with tag removed.
func (t *SizeTable) Without(tag TypeTag) *SizeTable {
	sizes := make(map[TypeTag]uint64, len(t.sizes))
	for k, v := range t.sizes {
		if k != tag {
			sizes[k] = v
		}
	}
	return &SizeTable{sizes: sizes}
}

// Field creates an unplaced Field named name with its byte size resolved from this table.
//
// Panics if name is empty or tag is not registered.
//
// Parameters:
//   - name: the uniform name, unique within one format
//   - tag: the uniform type
//
// Returns:
//   - Field: the unplaced field descriptor
func (t *SizeTable) Field(name string, tag TypeTag) Field {
	if name == "" {
		panic(fmt.Sprintf("uniform: field of type %s has an empty name", tag))
	}
	return Field{
		name:     name,
		tag:      tag,
		byteSize: t.SizeOf(tag),
	}
}
