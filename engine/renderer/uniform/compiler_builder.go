package uniform

// CompilerBuilderOption is a functional option used to configure a Compiler during construction.
type CompilerBuilderOption func(*compiler)

// WithSizeTable sets the table used to resolve field sizes. A nil table keeps the default.
//
// Parameters:
//   - table: the size table to inject
//
// Returns:
//   - CompilerBuilderOption: a function that sets the size table on the compiler
func WithSizeTable(table *SizeTable) CompilerBuilderOption {
	return func(c *compiler) {
		if table != nil {
			c.table = table
		}
	}
}

// WithAlignment sets the alignment policy applied before each field's offset is computed.
// A nil policy keeps the default PackedAlignment.
//
// Parameters:
//   - policy: the alignment policy
//
// Returns:
//   - CompilerBuilderOption: a function that sets the alignment policy on the compiler
func WithAlignment(policy AlignmentPolicy) CompilerBuilderOption {
	return func(c *compiler) {
		if policy != nil {
			c.alignment = policy
		}
	}
}

// WithDuplicatePolicy sets how the compiler treats two fields with the same name.
//
// Parameters:
//   - policy: DuplicateReject or DuplicateShadow
//
// Returns:
//   - CompilerBuilderOption: a function that sets the duplicate policy on the compiler
func WithDuplicatePolicy(policy DuplicatePolicy) CompilerBuilderOption {
	return func(c *compiler) {
		c.duplicates = policy
	}
}

// WithLabel sets a debug label that is copied onto every Format the compiler produces
// and included in its errors and log lines.
//
// Parameters:
//   - label: the debug label
//
// Returns:
//   - CompilerBuilderOption: a function that sets the label on the compiler
func WithLabel(label string) CompilerBuilderOption {
	return func(c *compiler) {
		c.label = label
	}
}
