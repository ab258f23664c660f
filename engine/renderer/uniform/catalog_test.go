package uniform

import (
	"errors"
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_CompileFile(t *testing.T) {
	lf, err := LoadLayoutFile("testdata/layouts.yaml")
	require.NoError(t, err)

	cat := NewCatalog(WithWorkers(2))
	formats, err := cat.CompileFile(lf)
	require.NoError(t, err)
	require.Len(t, formats, 3)

	assert.Equal(t, []string{"aliased", "camera", "scene"}, cat.Names())
	assert.Equal(t, 3, cat.Len())

	scene, ok := cat.Lookup("scene")
	require.True(t, ok)
	assert.Same(t, formats["scene"], scene)
	assert.Equal(t, uint64(32), scene.ByteSize())
	assert.Equal(t, "scene", scene.Label())

	camera, _ := cat.Lookup("camera")
	assert.Equal(t, uint64(80), camera.ByteSize())
	assert.Equal(t, "wgsl", camera.Alignment())

	aliased, _ := cat.Lookup("aliased")
	assert.Equal(t, uint64(12), aliased.ByteSize())
	x, ok := aliased.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, FloatVec2, x.Type())

	_, ok = cat.Lookup("missing")
	assert.False(t, ok)
}

func TestCatalog_AllOrNothing(t *testing.T) {
	cat := NewCatalog()
	_, err := cat.CompileAll([]LayoutDeclaration{
		{Name: "ok", Fields: []Declaration{{Name: "a", Type: Float}}},
		{Name: "dup", Fields: []Declaration{{Name: "a", Type: Float}, {Name: "a", Type: Int}}},
		{Name: "bad_alignment", Alignment: "std430"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateField))
	assert.True(t, errors.Is(err, ErrInvalidDeclaration))

	assert.Equal(t, 0, cat.Len())
	_, ok := cat.Lookup("ok")
	assert.False(t, ok)
}

func TestCatalog_DuplicateLayoutNames(t *testing.T) {
	cat := NewCatalog()
	layout := LayoutDeclaration{Name: "params", Fields: []Declaration{{Name: "tint", Type: FloatVec4}}}

	_, err := cat.CompileAll([]LayoutDeclaration{layout, layout})
	assert.True(t, errors.Is(err, ErrDuplicateLayout))

	_, err = cat.CompileAll([]LayoutDeclaration{layout})
	require.NoError(t, err)

	_, err = cat.CompileAll([]LayoutDeclaration{layout})
	assert.True(t, errors.Is(err, ErrDuplicateLayout))
	assert.Equal(t, 1, cat.Len())
}

func TestCatalog_BaseCompilerOptions(t *testing.T) {
	cat := NewCatalog(WithCompilerOptions(WithSizeTable(DefaultSizeTable().With(FloatVec3, 16))))
	formats, err := cat.CompileAll([]LayoutDeclaration{
		{Name: "padded", Fields: []Declaration{{Name: "a", Type: FloatVec3}, {Name: "b", Type: Float}}},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(20), formats["padded"].ByteSize())
}

func TestCatalog_UnregisteredTypePanics(t *testing.T) {
	cat := NewCatalog(WithCompilerOptions(WithSizeTable(DefaultSizeTable().Without(FloatMat4))))
	assert.Panics(t, func() {
		_, _ = cat.CompileAll([]LayoutDeclaration{
			{Name: "camera", Fields: []Declaration{{Name: "view_proj", Type: FloatMat4}}},
		})
	})
	assert.Equal(t, 0, cat.Len())
}

func TestCatalog_ManyLayouts(t *testing.T) {
	layouts := make([]LayoutDeclaration, 120)
	for i := range layouts {
		fields := make([]Declaration, i%7+1)
		for j := range fields {
			fields[j] = Declaration{Name: fmt.Sprintf("f%d", j), Type: FloatVec4}
		}
		layouts[i] = LayoutDeclaration{Name: fmt.Sprintf("layout_%03d", i), Fields: fields}
	}

	cat := NewCatalog(WithWorkers(4))
	formats, err := cat.CompileAll(layouts)
	require.NoError(t, err)
	require.Len(t, formats, len(layouts))

	for i, l := range layouts {
		f, ok := cat.Lookup(l.Name)
		require.True(t, ok)
		assert.Equal(t, uint64((i%7+1)*16), f.ByteSize(), l.Name)
	}
}

func TestCatalog_WorkersOption(t *testing.T) {
	assert.Equal(t, 3, NewCatalog(WithWorkers(3)).Workers())
	assert.Equal(t, defaultWorkers, NewCatalog().Workers())
	assert.Equal(t, defaultWorkers, NewCatalog(WithWorkers(-2)).Workers())
	assert.Equal(t, defaultWorkers, NewCatalog(WithWorkers(3), WithWorkers(0)).Workers())
}

func TestCatalog_DoesNotLeakGoroutines(t *testing.T) {
	layouts := []LayoutDeclaration{
		{Name: "params", Fields: []Declaration{{Name: "tint", Type: FloatVec4}}},
		{Name: "camera", Fields: []Declaration{{Name: "view_proj", Type: FloatMat4}}},
	}

	// the first compile starts the shared pool
	_, err := NewCatalog(WithWorkers(4)).CompileAll(layouts)
	require.NoError(t, err)
	before := runtime.NumGoroutine()

	for range 20 {
		_, err := NewCatalog(WithWorkers(4)).CompileAll(layouts)
		require.NoError(t, err)
	}

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, time.Second, 10*time.Millisecond)
}
