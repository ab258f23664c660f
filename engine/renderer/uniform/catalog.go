package uniform

import (
	"errors"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-layout/common"
	"go.uber.org/zap"
)

// defaultWorkers sizes the shared compile pool and is the default per-catalog limit.
var defaultWorkers = max(runtime.NumCPU()-1, 1)

// compilePool is shared by every Catalog. Pool workers are started up front and live until
// the process exits, so a single pool is created on first use and reused.
var compilePool = sync.OnceValue(func() worker.DynamicWorkerPool {
	return worker.NewDynamicWorkerPool(defaultWorkers, 256, 1*time.Second)
})

// Catalog holds compiled formats keyed by layout name. Layouts added in one call to
// CompileAll are compiled in parallel on the shared worker pool and joined at a barrier.
//
// A Catalog is safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	formats map[string]*Format

	base    []CompilerBuilderOption
	workers int
}

// NewCatalog creates an empty Catalog. Unless WithWorkers says otherwise, at most one less
// than the number of CPUs layouts are compiled at once, with a minimum of one.
//
// Parameters:
//   - options: a variadic list of options to configure the catalog
//
// Returns:
//   - *Catalog: the new catalog
func NewCatalog(options ...CatalogBuilderOption) *Catalog {
	c := &Catalog{
		formats: make(map[string]*Format),
	}
	for _, opt := range options {
		opt(c)
	}
	c.workers = common.Coalesce(c.workers, defaultWorkers)
	return c
}

// Workers returns how many layouts this catalog compiles at once.
func (c *Catalog) Workers() int {
	return c.workers
}

// compileResult is the outcome of a single layout compilation task.
type compileResult struct {
	name   string
	format *Format
	err    error
}

// CompileAll compiles every layout in parallel and stores the results. It is all or
// nothing: if any layout fails, every error is joined and returned and the catalog is left
// unchanged. Layout names must be unique within the call and must not already be present
// in the catalog.
//
// Declarations with an unregistered type still panic; the panic is re-raised on the
// calling goroutine.
//
// Parameters:
//   - layouts: the layouts to compile
//
// Returns:
//   - map[string]*Format: the compiled formats keyed by layout name
//   - error: the joined compile errors, or nil
func (c *Catalog) CompileAll(layouts []LayoutDeclaration) (map[string]*Format, error) {
	if err := c.checkNames(layouts); err != nil {
		return nil, err
	}

	results := make([]compileResult, len(layouts))
	panics := make([]any, len(layouts))

	pool := compilePool()
	inFlight := make(chan struct{}, c.workers)

	var wg sync.WaitGroup
	for i, decl := range layouts {
		wg.Add(1)
		inFlight <- struct{}{}
		id := i
		d := decl // capture for closure
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				defer func() { <-inFlight }()
				defer func() {
					if r := recover(); r != nil {
						panics[id] = r
					}
				}()

				results[id] = c.compileOne(d)
				return nil, results[id].err
			},
		})
	}
	wg.Wait()

	for _, p := range panics {
		if p != nil {
			panic(p)
		}
	}

	var errs []error
	compiled := make(map[string]*Format, len(layouts))
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		compiled[r.name] = r.format
	}
	if len(errs) > 0 {
		common.Logger().Warn("uniform catalog compile failed",
			zap.Int("layouts", len(layouts)),
			zap.Int("errors", len(errs)))
		return nil, errors.Join(errs...)
	}

	c.mu.Lock()
	for name := range compiled {
		if _, exists := c.formats[name]; exists {
			c.mu.Unlock()
			return nil, newError(KindDuplicateLayout).
				layout(name).
				detail("layout compiled concurrently").
				build()
		}
	}
	for name, f := range compiled {
		c.formats[name] = f
	}
	c.mu.Unlock()

	common.Logger().Debug("uniform catalog compiled layouts",
		zap.Int("layouts", len(compiled)),
		zap.Int("workers", c.workers))

	return compiled, nil
}

// CompileFile compiles every layout declared in lf. See CompileAll.
func (c *Catalog) CompileFile(lf *LayoutFile) (map[string]*Format, error) {
	return c.CompileAll(lf.Layouts)
}

func (c *Catalog) compileOne(d LayoutDeclaration) compileResult {
	opts, err := d.CompilerOptions()
	if err != nil {
		return compileResult{name: d.Name, err: err}
	}
	comp := NewCompiler(append(slices.Clone(c.base), opts...)...)
	f, err := comp.CompileDeclarations(d.Fields)
	return compileResult{name: d.Name, format: f, err: err}
}

func (c *Catalog) checkNames(layouts []LayoutDeclaration) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool, len(layouts))
	for _, l := range layouts {
		if _, exists := c.formats[l.Name]; exists || seen[l.Name] {
			return newError(KindDuplicateLayout).
				layout(l.Name).
				detail("layout already compiled").
				build()
		}
		seen[l.Name] = true
	}
	return nil
}

// Lookup returns the format compiled under name.
//
// Parameters:
//   - name: the layout name
//
// Returns:
//   - *Format: the compiled format, or nil
//   - bool: false if no layout is registered under name
func (c *Catalog) Lookup(name string) (*Format, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.formats[name]
	return f, ok
}

// Names returns the compiled layout names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.formats))
	for name := range c.formats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of compiled layouts.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.formats)
}
