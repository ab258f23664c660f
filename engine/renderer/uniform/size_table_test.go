package uniform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSizeTable_CanonicalSizes(t *testing.T) {
	table := DefaultSizeTable()

	tests := []struct {
		tag  TypeTag
		want uint64
	}{
		{Bool, 4}, {BoolVec2, 8}, {BoolVec3, 12}, {BoolVec4, 16},
		{Int, 4}, {IntVec2, 8}, {IntVec3, 12}, {IntVec4, 16},
		{Uint, 4}, {UintVec2, 8}, {UintVec3, 12}, {UintVec4, 16},
		{Float, 4}, {FloatVec2, 8}, {FloatVec3, 12}, {FloatVec4, 16},
		{FloatMat4, 64},
	}
	for _, tt := range tests {
		t.Run(tt.tag.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, table.SizeOf(tt.tag))
		})
	}

	// every defined tag is registered
	assert.Equal(t, AllTypeTags(), table.Tags())
	assert.Equal(t, len(AllTypeTags()), table.Len())
}

func TestDefaultSizeTable_SharedInstance(t *testing.T) {
	assert.Same(t, DefaultSizeTable(), DefaultSizeTable())
}

func TestSizeTable_SizeOfUnregisteredPanics(t *testing.T) {
	table := DefaultSizeTable().Without(FloatMat4)

	assert.PanicsWithValue(t, "uniform: type mat4 has no registered size", func() {
		table.SizeOf(FloatMat4)
	})
	assert.Panics(t, func() { table.SizeOf(UndefinedType) })

	_, ok := table.Lookup(FloatMat4)
	assert.False(t, ok)
	assert.False(t, table.Has(FloatMat4))
	assert.True(t, DefaultSizeTable().Has(FloatMat4), "Without must not modify the receiver")
}

func TestNewSizeTable_RejectsBadEntries(t *testing.T) {
	tests := []struct {
		name  string
		sizes map[TypeTag]uint64
	}{
		{"undefined tag", map[TypeTag]uint64{UndefinedType: 4}},
		{"unknown tag", map[TypeTag]uint64{TypeTag(999): 4}},
		{"zero size", map[TypeTag]uint64{Float: 0}},
		{"not word sized", map[TypeTag]uint64{FloatVec3: 10}},
		{"smaller than vec4 data", map[TypeTag]uint64{FloatVec4: 4}},
		{"smaller than mat4 data", map[TypeTag]uint64{FloatMat4: 32}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { NewSizeTable(tt.sizes) })
		})
	}
}

func TestNewSizeTable_CopiesInput(t *testing.T) {
	sizes := map[TypeTag]uint64{Float: 4}
	table := NewSizeTable(sizes)
	sizes[FloatVec4] = 16

	assert.False(t, table.Has(FloatVec4))
	assert.Equal(t, 1, table.Len())
}

func TestSizeTable_With(t *testing.T) {
	base := NewSizeTable(map[TypeTag]uint64{Float: 4})
	padded := base.With(FloatVec3, 16)

	assert.Equal(t, uint64(16), padded.SizeOf(FloatVec3))
	assert.Equal(t, uint64(4), padded.SizeOf(Float))
	assert.False(t, base.Has(FloatVec3))

	assert.Panics(t, func() { base.With(FloatVec3, 6) })
	assert.PanicsWithValue(t, "uniform: size 4 for vec4 is smaller than its 16 bytes of data", func() {
		base.With(FloatVec4, 4)
	})
}

func TestSizeTable_Field(t *testing.T) {
	table := DefaultSizeTable()

	f := table.Field("color", FloatVec4)
	assert.Equal(t, "color", f.Name())
	assert.Equal(t, FloatVec4, f.Type())
	assert.Equal(t, uint64(16), f.ByteSize())

	assert.Panics(t, func() { table.Field("", Float) })
	assert.Panics(t, func() { table.Without(Int).Field("count", Int) })
}

func TestSizeTable_TagsSorted(t *testing.T) {
	table := NewSizeTable(map[TypeTag]uint64{FloatMat4: 64, Bool: 4, Float: 4})
	require.Equal(t, 3, table.Len())
	assert.Equal(t, []TypeTag{Bool, Float, FloatMat4}, table.Tags())
}
