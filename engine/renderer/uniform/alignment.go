package uniform

import "strings"

// AlignmentPolicy decides where each field may start and how the total size is
// rounded. The compiler rounds the cursor up to FieldAlign before placing a field and
// rounds the final cursor up to BlockAlign. All returned alignments must be powers of two.
type AlignmentPolicy interface {
	// Name returns the identifier used in declaration files, e.g. "packed" or "wgsl".
	//
	// Returns:
	//   - string: the policy name
	Name() string

	// FieldAlign returns the byte alignment required for a field of the given type.
	// An alignment of 1 places the field directly after the previous one.
	//
	// Parameters:
	//   - tag: the field type
	//
	// Returns:
	//   - uint64: the required alignment in bytes
	FieldAlign(tag TypeTag) uint64

	// BlockAlign returns the byte alignment applied to the total buffer size.
	//
	// Parameters:
	//   - maxFieldAlign: the largest FieldAlign among the compiled fields (1 if empty)
	//
	// Returns:
	//   - uint64: the required alignment of the total size in bytes
	BlockAlign(maxFieldAlign uint64) uint64
}

// packedAlignment places fields back-to-back in declaration order with no padding.
type packedAlignment struct{}

func (packedAlignment) Name() string              { return "packed" }
func (packedAlignment) FieldAlign(TypeTag) uint64 { return 1 }
func (packedAlignment) BlockAlign(uint64) uint64  { return 1 }

// wgslAlignment applies the WGSL AlignOf rules for the uniform address space.
//
// WGSL bool is not host-shareable, so a shader cannot declare bool or vecN<bool> in a
// uniform struct. Bool tags are laid out as the u32/vecN<u32> the shader has to declare
// in their place, which is also how Block writes them (0 or 1 per word).
//
// Reference: https://www.w3.org/TR/WGSL/#alignment-and-size
type wgslAlignment struct{}

// wgslAlignOf holds the WGSL alignment for each tag. Matrices align like their column vector.
var wgslAlignOf = map[TypeTag]uint64{
	Bool: 4, BoolVec2: 8, BoolVec3: 16, BoolVec4: 16,
	Int: 4, IntVec2: 8, IntVec3: 16, IntVec4: 16,
	Uint: 4, UintVec2: 8, UintVec3: 16, UintVec4: 16,
	Float: 4, FloatVec2: 8, FloatVec3: 16, FloatVec4: 16,
	FloatMat4: 16,
}

func (wgslAlignment) Name() string { return "wgsl" }

func (wgslAlignment) FieldAlign(tag TypeTag) uint64 {
	if align, ok := wgslAlignOf[tag]; ok {
		return align
	}
	return 4
}

// BlockAlign rounds the struct to its largest member alignment, as WGSL struct layout does.
func (wgslAlignment) BlockAlign(maxFieldAlign uint64) uint64 { return maxFieldAlign }

// std140Alignment applies the GLSL std140 base alignments for the supported tags:
// N for scalars, 2N for 2-vectors, 4N for 3- and 4-vectors and for mat4 columns.
// The block size is rounded to 16 bytes.
type std140Alignment struct{}

func (std140Alignment) Name() string { return "std140" }

func (std140Alignment) FieldAlign(tag TypeTag) uint64 {
	switch tag.Components() {
	case 1:
		return 4
	case 2:
		return 8
	}
	return 16
}

func (std140Alignment) BlockAlign(uint64) uint64 { return 16 }

var (
	// PackedAlignment is the default policy: no padding between fields or after the
	// last one. The caller is responsible for declaring fields in an order that matches
	// the consuming graphics API.
	PackedAlignment AlignmentPolicy = packedAlignment{}

	// WGSLAlignment pads fields to their WGSL alignment (vec3 and mat4 to 16 bytes) and
	// rounds the total up to the largest field alignment.
	WGSLAlignment AlignmentPolicy = wgslAlignment{}

	// Std140Alignment pads fields to their GLSL std140 base alignment and rounds the
	// total up to 16 bytes.
	Std140Alignment AlignmentPolicy = std140Alignment{}
)

// AlignmentByName resolves a policy name as used in declaration files. The empty
// string resolves to PackedAlignment. Matching is case-insensitive.
//
// Parameters:
//   - name: the policy name ("", "packed", "wgsl" or "std140")
//
// Returns:
//   - AlignmentPolicy: the matching policy
//   - bool: false if the name is unknown
func AlignmentByName(name string) (AlignmentPolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "packed":
		return PackedAlignment, true
	case "wgsl":
		return WGSLAlignment, true
	case "std140":
		return Std140Alignment, true
	}
	return nil, false
}
