// Package uniform compiles declarative lists of named, typed shader uniforms into byte-exact
// buffer layouts.
//
// A SizeTable maps each TypeTag to its byte size. Fields are created unplaced from a table,
// then a Compiler assigns offsets in declaration order and returns an immutable Format:
//
//	c := uniform.NewCompiler(uniform.WithAlignment(uniform.WGSLAlignment))
//	f, err := c.Compile(
//		c.Field("view_proj", uniform.FloatMat4),
//		c.Field("camera_position", uniform.FloatVec3),
//	)
//	// f.ByteSize() == 80
//
// Offsets are reported in 32-bit words; PlacedField.ByteOffset gives bytes. The default
// PackedAlignment places fields back-to-back with no padding, WGSLAlignment and
// Std140Alignment pad fields the way those conventions require.
//
// A Block packs values into a byte buffer laid out by a Format and reports the changed range
// as a BufferWrite for whatever uploads it. A Catalog compiles many layouts at once, for
// example from a YAML or TOML declaration file.
package uniform
