package geometry

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-sketch/engine/debug"
)

// Holder is anything that owns exactly one geometry, typically a scene mesh.
type Holder interface {
	// Geometry returns the currently held geometry.
	Geometry() Geometry

	// SetGeometry attaches g and detaches the previous geometry without disposing it.
	//
	// Parameters:
	//   - g: the replacement geometry
	//
	// Returns:
	//   - error: ErrGeometryOwned or ErrGeometryDisposed if g cannot be attached
	SetGeometry(g Geometry) error
}

// BuildFunc builds a geometry from a parameter value.
type BuildFunc func(value float64) (Geometry, error)

// RebuilderState is the rebuild lifecycle state.
type RebuilderState int

const (
	// StateIdle has nothing staged.
	StateIdle RebuilderState = iota

	// StatePendingRebuild holds a staged value awaiting Finish.
	StatePendingRebuild
)

func (s RebuilderState) String() string {
	if s == StatePendingRebuild {
		return "pending-rebuild"
	}
	return "idle"
}

// Rebuilder replaces a holder's geometry when a parameter edit completes. Intermediate
// values are only staged; Finish builds once from the last staged value, then disposes the
// old geometry and swaps in the new one within the same call, so no frame ever renders a
// disposed geometry. A failed build leaves the old geometry in place.
type Rebuilder interface {
	// State returns the lifecycle state.
	State() RebuilderState

	// Stage records an intermediate value and moves to StatePendingRebuild.
	//
	// Parameters:
	//   - value: the parameter value
	Stage(value float64)

	// Finish builds from the last staged value and swaps geometries. A Finish with nothing
	// staged does nothing and returns nil. Always ends in StateIdle.
	//
	// Returns:
	//   - error: the build or attach error; the old geometry is still held
	Finish() error

	// Value returns the value the current geometry was built from.
	Value() float64

	// Rebuilds returns the number of completed swaps.
	Rebuilds() int

	// Bind wires the rebuilder to a debug controller: every OnChange stages the value and
	// every OnFinishChange finishes. A failed rebuild is logged and the controller is
	// restored to Value(), so the panel keeps showing what the geometry was built from.
	// Replaces the controller's existing change handlers.
	//
	// Parameters:
	//   - ctrl: a numeric debug controller
	//
	// Returns:
	//   - debug.Controller: ctrl, for chaining
	Bind(ctrl debug.Controller) debug.Controller
}

type rebuilderImpl struct {
	holder   Holder
	build    BuildFunc
	state    RebuilderState
	staged   float64
	value    float64
	rebuilds int
}

var _ Rebuilder = &rebuilderImpl{}

// NewRebuilder creates a Rebuilder for holder. Panics on a nil holder or build function.
//
// Parameters:
//   - holder: the geometry owner to update
//   - initial: the value the holder's current geometry was built from
//   - build: constructs a geometry for a value
//
// Returns:
//   - Rebuilder: the new rebuilder
func NewRebuilder(holder Holder, initial float64, build BuildFunc) Rebuilder {
	if holder == nil || build == nil {
		panic("geometry: rebuilder requires a holder and a build function")
	}
	return &rebuilderImpl{holder: holder, build: build, value: initial}
}

// BoxSubdivision returns a BuildFunc making a width x height x depth box with the value,
// rounded to the nearest integer, as the segment count on every axis.
//
// Parameters:
//   - b: the builder to use
//   - width, height, depth: box size
//
// Returns:
//   - BuildFunc: the build function
func BoxSubdivision(b Builder, width, height, depth float32) BuildFunc {
	return func(value float64) (Geometry, error) {
		segments := int(value + 0.5)
		if value < 0.5 {
			return nil, fmt.Errorf("%w: subdivision must be at least 1, got %v", ErrInvalidParameter, value)
		}
		return b.Box(width, height, depth, segments, segments, segments)
	}
}

func (r *rebuilderImpl) State() RebuilderState {
	return r.state
}

func (r *rebuilderImpl) Stage(value float64) {
	r.staged = value
	r.state = StatePendingRebuild
}

func (r *rebuilderImpl) Finish() error {
	if r.state != StatePendingRebuild {
		return nil
	}
	r.state = StateIdle

	next, err := r.build(r.staged)
	if err != nil {
		return fmt.Errorf("geometry: rebuild with %v rejected: %w", r.staged, err)
	}
	old := r.holder.Geometry()
	if err := r.holder.SetGeometry(next); err != nil {
		next.Dispose()
		return fmt.Errorf("geometry: rebuild with %v could not attach: %w", r.staged, err)
	}
	if old != nil && old != next {
		old.Dispose()
	}
	r.value = r.staged
	r.rebuilds++
	return nil
}

func (r *rebuilderImpl) Value() float64 {
	return r.value
}

func (r *rebuilderImpl) Rebuilds() int {
	return r.rebuilds
}

func (r *rebuilderImpl) Bind(ctrl debug.Controller) debug.Controller {
	return ctrl.
		OnChange(func(v any) {
			if f, ok := debug.ToFloat(v); ok {
				r.Stage(f)
			}
		}).
		OnFinishChange(func(any) {
			if err := r.Finish(); err != nil {
				log.Printf("%v", err)
				if err := ctrl.Restore(r.value); err != nil {
					log.Printf("geometry: restore %q: %v", ctrl.Label(), err)
				}
			}
		})
}
