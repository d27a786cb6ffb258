package loader

// LoaderBuilderOption configures a loader during NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers sets the worker pool size for batch decoding. Defaults to the
// CPU count; values below one are ignored.
//
// Parameters:
//   - workers: the number of concurrent decode workers
//
// Returns:
//   - LoaderBuilderOption: the option to apply
func WithWorkers(workers int) LoaderBuilderOption {
	return func(l *loader) {
		if workers < 1 {
			return
		}
		l.workers = workers
	}
}
