package uniform

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-layout/common"
	"go.uber.org/zap"
)

// DuplicatePolicy decides what happens when two fields in one list share a name.
type DuplicatePolicy int

const (
	// DuplicateReject fails compilation with a KindDuplicateField error.
	DuplicateReject DuplicatePolicy = iota

	// DuplicateShadow keeps both fields in the layout but lets the later one win the
	// name lookup. The earlier field still occupies its bytes and can only be reached
	// through Format.Fields.
	DuplicateShadow
)

func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateReject:
		return "reject"
	case DuplicateShadow:
		return "shadow"
	}
	return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
}

// DuplicatePolicyByName resolves a policy name as used in declaration files.
// The empty string resolves to DuplicateReject.
func DuplicatePolicyByName(name string) (DuplicatePolicy, bool) {
	switch name {
	case "", "reject":
		return DuplicateReject, true
	case "shadow":
		return DuplicateShadow, true
	}
	return DuplicateReject, false
}

// compiler is the implementation of the Compiler interface.
type compiler struct {
	label      string
	table      *SizeTable
	alignment  AlignmentPolicy
	duplicates DuplicatePolicy
}

// Compiler turns an ordered list of unplaced fields into an immutable Format.
//
// Fields are placed in declaration order by a bump allocator: the cursor is rounded up
// to the alignment policy's field alignment, the field's word offset is cursor/4, and the
// cursor advances by the field's byte size. The total size is the final cursor rounded to
// the policy's block alignment. With the default PackedAlignment no padding is inserted.
//
// A Compiler holds no mutable state and may be used from several goroutines at once.
type Compiler interface {
	// Label returns the debug label copied onto compiled formats.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// SizeTable returns the table used to resolve field sizes.
	//
	// Returns:
	//   - *SizeTable: the injected size table
	SizeTable() *SizeTable

	// Alignment returns the alignment policy applied to each field.
	//
	// Returns:
	//   - AlignmentPolicy: the injected alignment policy
	Alignment() AlignmentPolicy

	// DuplicatePolicy returns how repeated field names are handled.
	//
	// Returns:
	//   - DuplicatePolicy: the configured policy
	DuplicatePolicy() DuplicatePolicy

	// Field creates an unplaced field with its size resolved from the compiler's table.
	// Panics if name is empty or tag is not registered in the table.
	//
	// Parameters:
	//   - name: the uniform name
	//   - tag: the uniform type
	//
	// Returns:
	//   - Field: the unplaced field
	Field(name string, tag TypeTag) Field

	// Compile places the fields in order and returns the finished Format. Either a fully
	// populated Format is returned or an error and no Format.
	//
	// Panics if a field was not created through a SizeTable (zero Field value), if its
	// type is not registered in the compiler's table or registered with a different size,
	// or if the alignment policy returns an alignment that is not a power of two.
	//
	// Parameters:
	//   - fields: the unplaced fields in declaration order
	//
	// Returns:
	//   - *Format: the compiled, immutable format
	//   - error: a KindDuplicateField error when DuplicateReject is in effect and a name repeats
	Compile(fields ...Field) (*Format, error)

	// CompileDeclarations creates fields from name/type pairs through the compiler's table
	// and compiles them. Panics under the same conditions as Field and Compile.
	//
	// Parameters:
	//   - decls: the declarations in order
	//
	// Returns:
	//   - *Format: the compiled, immutable format
	//   - error: as for Compile
	CompileDeclarations(decls []Declaration) (*Format, error)
}

// Compile-time check that compiler implements Compiler
var _ Compiler = &compiler{}

// NewCompiler creates a Compiler. Without options it uses DefaultSizeTable,
// PackedAlignment and DuplicateReject.
//
// Parameters:
//   - options: a variadic list of options to configure the compiler
//
// Returns:
//   - Compiler: a new compiler configured with the provided options
func NewCompiler(options ...CompilerBuilderOption) Compiler {
	c := &compiler{
		table:      DefaultSizeTable(),
		alignment:  PackedAlignment,
		duplicates: DuplicateReject,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *compiler) Label() string {
	return c.label
}

func (c *compiler) SizeTable() *SizeTable {
	return c.table
}

func (c *compiler) Alignment() AlignmentPolicy {
	return c.alignment
}

func (c *compiler) DuplicatePolicy() DuplicatePolicy {
	return c.duplicates
}

func (c *compiler) Field(name string, tag TypeTag) Field {
	return c.table.Field(name, tag)
}

func (c *compiler) CompileDeclarations(decls []Declaration) (*Format, error) {
	fields := make([]Field, len(decls))
	for i, d := range decls {
		fields[i] = c.table.Field(d.Name, d.Type)
	}
	return c.Compile(fields...)
}

func (c *compiler) Compile(fields ...Field) (*Format, error) {
	placed := make([]*PlacedField, len(fields))
	lookup := make(map[string]*PlacedField, len(fields))

	var cursor uint64
	maxAlign := uint64(1)

	for i, f := range fields {
		if f.byteSize == 0 {
			panic(fmt.Sprintf("uniform: field %d (%q) was not created from a size table", i, f.name))
		}
		if size := c.table.SizeOf(f.tag); size != f.byteSize {
			panic(fmt.Sprintf("uniform: field %q is %d bytes but the compiler's table registers %d for %s",
				f.name, f.byteSize, size, f.tag))
		}

		align := c.checkedAlign(c.alignment.FieldAlign(f.tag), f.tag.String())
		cursor = common.AlignUp(align, cursor)
		maxAlign = max(maxAlign, align)

		pf := &PlacedField{
			name:     f.name,
			tag:      f.tag,
			byteSize: f.byteSize,
			offset:   cursor / 4,
			index:    i,
		}
		placed[i] = pf
		cursor += f.byteSize

		if prev, dup := lookup[f.name]; dup {
			if c.duplicates == DuplicateReject {
				return nil, newError(KindDuplicateField).
					layout(c.label).
					field(f.name).
					detail("declared at index %d and %d", prev.index, i).
					build()
			}
			common.Logger().Warn("uniform field shadowed by a later declaration",
				zap.String("layout", c.label),
				zap.String("field", f.name),
				zap.Int("shadowed_index", prev.index),
				zap.Int("index", i))
		}
		lookup[f.name] = pf
	}

	blockAlign := c.checkedAlign(c.alignment.BlockAlign(maxAlign), "block")
	total := common.AlignUp(blockAlign, cursor)

	common.Logger().Debug("compiled uniform format",
		zap.String("layout", c.label),
		zap.String("alignment", c.alignment.Name()),
		zap.Int("fields", len(placed)),
		zap.Uint64("byte_size", total))

	return &Format{
		label:     c.label,
		alignment: c.alignment.Name(),
		fields:    placed,
		byteSize:  total,
		lookup:    lookup,
	}, nil
}

// checkedAlign panics if the policy returned an alignment that AlignUp cannot honour.
func (c *compiler) checkedAlign(align uint64, what string) uint64 {
	if !common.IsPowerOfTwo(align) {
		panic(fmt.Sprintf("uniform: alignment policy %q returned %d for %s, want a power of two",
			c.alignment.Name(), align, what))
	}
	return align
}
