package uniform

// CatalogBuilderOption is a functional option used to configure a Catalog during construction.
type CatalogBuilderOption func(*Catalog)

// WithWorkers caps how many of the catalog's layouts are compiled at once on the shared
// worker pool. Values below 1 select the default.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - CatalogBuilderOption: a function that sets the worker count on the catalog
func WithWorkers(n int) CatalogBuilderOption {
	return func(c *Catalog) {
		c.workers = max(n, 0)
	}
}

// WithCompilerOptions sets the base compiler options applied to every layout before the
// layout's own alignment and duplicate settings.
//
// Parameters:
//   - options: the base compiler options, e.g. WithSizeTable
//
// Returns:
//   - CatalogBuilderOption: a function that sets the base compiler options on the catalog
func WithCompilerOptions(options ...CompilerBuilderOption) CatalogBuilderOption {
	return func(c *Catalog) {
		c.base = append(c.base, options...)
	}
}
