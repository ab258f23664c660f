package uniform

import (
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// TypeTag identifies the shape of a uniform: a scalar, a 2/3/4-component vector
// of a scalar kind, or a 4x4 float matrix. The zero value is UndefinedType and is
// never registered in a SizeTable.
type TypeTag int32

const (
	UndefinedType TypeTag = iota

	Bool
	BoolVec2
	BoolVec3
	BoolVec4

	Int
	IntVec2
	IntVec3
	IntVec4

	Uint
	UintVec2
	UintVec3
	UintVec4

	Float
	FloatVec2
	FloatVec3 // 12 bytes; many uniform conventions align it to 16
	FloatVec4

	FloatMat4 // column-major 4x4, math32.Matrix4 works directly

	typeTagCount
)

// ScalarKind is the component type of a TypeTag.
type ScalarKind int32

const (
	ScalarUndefined ScalarKind = iota
	ScalarBool
	ScalarInt
	ScalarUint
	ScalarFloat
)

func (k ScalarKind) String() string {
	switch k {
	case ScalarBool:
		return "bool"
	case ScalarInt:
		return "int"
	case ScalarUint:
		return "uint"
	case ScalarFloat:
		return "float"
	}
	return "undefined"
}

// typeTagInfo holds the static shape information for a TypeTag.
type typeTagInfo struct {
	name         string
	scalar       ScalarKind
	components   int
	vertexFormat wgpu.VertexFormat
}

var typeTagInfos = [typeTagCount]typeTagInfo{
	UndefinedType: {"undefined", ScalarUndefined, 0, wgpu.VertexFormatUndefined},

	Bool:     {"bool", ScalarBool, 1, wgpu.VertexFormatUndefined},
	BoolVec2: {"bvec2", ScalarBool, 2, wgpu.VertexFormatUndefined},
	BoolVec3: {"bvec3", ScalarBool, 3, wgpu.VertexFormatUndefined},
	BoolVec4: {"bvec4", ScalarBool, 4, wgpu.VertexFormatUndefined},

	Int:     {"int", ScalarInt, 1, wgpu.VertexFormatSint32},
	IntVec2: {"ivec2", ScalarInt, 2, wgpu.VertexFormatSint32x2},
	IntVec3: {"ivec3", ScalarInt, 3, wgpu.VertexFormatSint32x3},
	IntVec4: {"ivec4", ScalarInt, 4, wgpu.VertexFormatSint32x4},

	Uint:     {"uint", ScalarUint, 1, wgpu.VertexFormatUint32},
	UintVec2: {"uvec2", ScalarUint, 2, wgpu.VertexFormatUint32x2},
	UintVec3: {"uvec3", ScalarUint, 3, wgpu.VertexFormatUint32x3},
	UintVec4: {"uvec4", ScalarUint, 4, wgpu.VertexFormatUint32x4},

	Float:     {"float", ScalarFloat, 1, wgpu.VertexFormatFloat32},
	FloatVec2: {"vec2", ScalarFloat, 2, wgpu.VertexFormatFloat32x2},
	FloatVec3: {"vec3", ScalarFloat, 3, wgpu.VertexFormatFloat32x3},
	FloatVec4: {"vec4", ScalarFloat, 4, wgpu.VertexFormatFloat32x4},

	FloatMat4: {"mat4", ScalarFloat, 16, wgpu.VertexFormatUndefined},
}

// typeTagAliases maps WGSL spellings onto tags, in addition to the canonical names.
var typeTagAliases = map[string]TypeTag{
	"f32":       Float,
	"vec2f":     FloatVec2,
	"vec2<f32>": FloatVec2,
	"vec3f":     FloatVec3,
	"vec3<f32>": FloatVec3,
	"vec4f":     FloatVec4,
	"vec4<f32>": FloatVec4,

	"i32":       Int,
	"vec2i":     IntVec2,
	"vec2<i32>": IntVec2,
	"vec3i":     IntVec3,
	"vec3<i32>": IntVec3,
	"vec4i":     IntVec4,
	"vec4<i32>": IntVec4,

	"u32":       Uint,
	"vec2u":     UintVec2,
	"vec2<u32>": UintVec2,
	"vec3u":     UintVec3,
	"vec3<u32>": UintVec3,
	"vec4u":     UintVec4,
	"vec4<u32>": UintVec4,

	"vec2<bool>": BoolVec2,
	"vec3<bool>": BoolVec3,
	"vec4<bool>": BoolVec4,

	"mat4x4f":     FloatMat4,
	"mat4x4<f32>": FloatMat4,
}

// typeTagsByName is built once from the canonical names and the aliases.
var typeTagsByName = func() map[string]TypeTag {
	m := make(map[string]TypeTag, int(typeTagCount)+len(typeTagAliases))
	for tag := Bool; tag < typeTagCount; tag++ {
		m[typeTagInfos[tag].name] = tag
	}
	for name, tag := range typeTagAliases {
		m[name] = tag
	}
	return m
}()

// AllTypeTags returns every defined tag except UndefinedType, in declaration order.
//
// Returns:
//   - []TypeTag: the defined tags
func AllTypeTags() []TypeTag {
	tags := make([]TypeTag, 0, typeTagCount-1)
	for tag := Bool; tag < typeTagCount; tag++ {
		tags = append(tags, tag)
	}
	return tags
}

// IsValid reports whether tag is one of the defined tags other than UndefinedType.
func (tag TypeTag) IsValid() bool {
	return tag > UndefinedType && tag < typeTagCount
}

// String returns the canonical name of the tag, e.g. "vec3" or "mat4".
func (tag TypeTag) String() string {
	if tag < UndefinedType || tag >= typeTagCount {
		return fmt.Sprintf("TypeTag(%d)", int32(tag))
	}
	return typeTagInfos[tag].name
}

// Scalar returns the component kind of the tag.
func (tag TypeTag) Scalar() ScalarKind {
	if !tag.IsValid() {
		return ScalarUndefined
	}
	return typeTagInfos[tag].scalar
}

// Components returns the number of 32-bit components the tag holds:
// 1 for scalars, 2-4 for vectors and 16 for FloatMat4.
func (tag TypeTag) Components() int {
	if !tag.IsValid() {
		return 0
	}
	return typeTagInfos[tag].components
}

// VertexFormat returns the WebGPU vertex format for the tag, or
// wgpu.VertexFormatUndefined when the tag cannot be used as a vertex attribute.
func (tag TypeTag) VertexFormat() wgpu.VertexFormat {
	if !tag.IsValid() {
		return wgpu.VertexFormatUndefined
	}
	return typeTagInfos[tag].vertexFormat
}

// ParseTypeTag resolves a type name to its tag. Canonical names ("vec3", "mat4", "uvec2")
// and WGSL spellings ("vec3f", "vec3<f32>", "mat4x4<f32>") are both accepted. Whitespace
// inside angle brackets is ignored and matching is case-insensitive.
//
// Parameters:
//   - name: the type name to resolve
//
// Returns:
//   - TypeTag: the resolved tag
//   - error: a KindInvalidDeclaration error if the name is unknown
func ParseTypeTag(name string) (TypeTag, error) {
	key := strings.ToLower(strings.Join(strings.Fields(name), ""))
	if tag, ok := typeTagsByName[key]; ok {
		return tag, nil
	}
	return UndefinedType, newError(KindInvalidDeclaration).
		detail("unknown uniform type %q", name).
		build()
}

// MarshalText implements encoding.TextMarshaler using the canonical name.
func (tag TypeTag) MarshalText() ([]byte, error) {
	if !tag.IsValid() {
		return nil, newError(KindInvalidDeclaration).detail("cannot encode %s", tag).build()
	}
	return []byte(tag.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseTypeTag.
func (tag *TypeTag) UnmarshalText(text []byte) error {
	parsed, err := ParseTypeTag(string(text))
	if err != nil {
		return err
	}
	*tag = parsed
	return nil
}
