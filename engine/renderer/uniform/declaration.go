package uniform

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Declaration is a name/type pair as supplied by hand-authored files or a reflection step.
type Declaration struct {
	Name string  `yaml:"name" toml:"name"`
	Type TypeTag `yaml:"type" toml:"type"`
}

// LayoutDeclaration describes one uniform block: its fields in order and the compiler
// settings to lay it out with.
type LayoutDeclaration struct {
	Name string `yaml:"name" toml:"name"`
	// Alignment is a policy name accepted by AlignmentByName; empty means packed.
	Alignment string `yaml:"alignment,omitempty" toml:"alignment,omitempty"`
	// Duplicates is "reject" (default) or "shadow".
	Duplicates string        `yaml:"duplicates,omitempty" toml:"duplicates,omitempty"`
	Fields     []Declaration `yaml:"fields" toml:"fields"`
}

// LayoutFile is the top-level document of a declaration file.
type LayoutFile struct {
	Layouts []LayoutDeclaration `yaml:"layouts" toml:"layouts"`
}

// CompilerOptions returns the options that apply the declaration's alignment and duplicate
// settings on top of a base configuration.
//
// Returns:
//   - []CompilerBuilderOption: the options for this layout
//   - error: a KindInvalidDeclaration error for an unknown policy name
func (d LayoutDeclaration) CompilerOptions() ([]CompilerBuilderOption, error) {
	alignment, ok := AlignmentByName(d.Alignment)
	if !ok {
		return nil, newError(KindInvalidDeclaration).
			layout(d.Name).
			detail("unknown alignment %q", d.Alignment).
			build()
	}
	duplicates, ok := DuplicatePolicyByName(d.Duplicates)
	if !ok {
		return nil, newError(KindInvalidDeclaration).
			layout(d.Name).
			detail("unknown duplicate policy %q", d.Duplicates).
			build()
	}
	return []CompilerBuilderOption{
		WithLabel(d.Name),
		WithAlignment(alignment),
		WithDuplicatePolicy(duplicates),
	}, nil
}

// Validate checks the parts of a declaration file a compiler cannot: every layout is named
// uniquely, every field is named and typed.
func (lf *LayoutFile) Validate() error {
	seen := make(map[string]bool, len(lf.Layouts))
	for i, l := range lf.Layouts {
		if l.Name == "" {
			return newError(KindInvalidDeclaration).detail("layout %d has no name", i).build()
		}
		if seen[l.Name] {
			return newError(KindInvalidDeclaration).layout(l.Name).detail("layout declared twice").build()
		}
		seen[l.Name] = true
		for j, f := range l.Fields {
			if f.Name == "" {
				return newError(KindInvalidDeclaration).layout(l.Name).detail("field %d has no name", j).build()
			}
			if !f.Type.IsValid() {
				return newError(KindInvalidDeclaration).layout(l.Name).field(f.Name).detail("missing type").build()
			}
		}
	}
	return nil
}

// LoadLayoutFile reads and validates a declaration file. The decoder is chosen by extension:
// .yaml and .yml use YAML, .toml uses TOML.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - *LayoutFile: the decoded file
//   - error: an error if the file cannot be read, decoded or validated
func LoadLayoutFile(path string) (*LayoutFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file %s: %w", path, err)
	}
	lf, err := ParseLayoutFile(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load layout file %s: %w", path, err)
	}
	return lf, nil
}

// ParseLayoutFile decodes and validates declaration data.
//
// Parameters:
//   - data: the raw file contents
//   - ext: the file extension selecting the decoder (".yaml", ".yml" or ".toml")
//
// Returns:
//   - *LayoutFile: the decoded file
//   - error: a KindInvalidDeclaration error wrapping the decoder failure
func ParseLayoutFile(data []byte, ext string) (*LayoutFile, error) {
	var lf LayoutFile
	var err error

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&lf)
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&lf)
	default:
		return nil, newError(KindInvalidDeclaration).detail("unsupported layout file extension %q", ext).build()
	}
	if err != nil {
		return nil, newError(KindInvalidDeclaration).detail("decode").cause(err).build()
	}

	if err := lf.Validate(); err != nil {
		return nil, err
	}
	return &lf, nil
}
