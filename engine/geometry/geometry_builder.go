package geometry

import "runtime"

// BuilderOption is a functional option for configuring a Builder.
type BuilderOption func(*builderImpl)

// WithWorkers sets the number of worker goroutines used to generate box faces in parallel.
// Defaults to runtime.NumCPU()-1. A value of 1 builds every face on the calling goroutine.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - BuilderOption: option function to apply
func WithWorkers(n int) BuilderOption {
	return func(b *builderImpl) {
		if n < 1 {
			n = 1
		}
		b.workers = n
	}
}

func defaultWorkers() int {
	return max(runtime.NumCPU()-1, 1)
}
