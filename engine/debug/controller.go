package debug

import (
	"fmt"
	"math"
)

// Controller is a live link between a panel row and one property of a target object.
// Reading reflects the property's current value. Input edits it, either immediately or,
// under the FinishOnly policy, staged until Finish. OnChange fires for every applied edit
// and OnFinishChange once per completed gesture, after that gesture's OnChange calls.
//
// The chainable setters return the controller itself so a binding reads like
// gui.Add(&mesh.Position, "Y").Min(-3).Max(3).Step(0.01).Name("elevation").
type Controller interface {
	// Name sets the label shown in the panel. Defaults to the property name.
	Name(name string) Controller

	// Min sets the lower bound applied to numeric input.
	Min(min float64) Controller

	// Max sets the upper bound applied to numeric input.
	Max(max float64) Controller

	// Step rounds numeric input to the nearest multiple of step. Non-positive steps are ignored.
	Step(step float64) Controller

	// OnChange registers the handler fired with the new value for every applied edit.
	// A later call replaces the earlier handler.
	OnChange(fn func(value any)) Controller

	// OnFinishChange registers the handler fired with the final value once per completed gesture.
	// A later call replaces the earlier handler.
	OnFinishChange(fn func(value any)) Controller

	// FinishOnly selects the staging policy: when enabled, Input only stages the value and
	// Finish writes it to the target.
	FinishOnly(enabled bool) Controller

	// Listen marks the controller for live display refresh of values changed outside the panel.
	Listen(enabled bool) Controller

	// Label returns the display label.
	Label() string

	// Property returns the bound property key.
	Property() string

	// Kind returns the editor kind.
	Kind() Kind

	// Bounds returns the numeric constraints.
	//
	// Returns:
	//   - min, max, step: the configured constraints
	//   - hasMin, hasMax, hasStep: whether each constraint is set
	Bounds() (min, max, step float64, hasMin, hasMax, hasStep bool)

	// Listening reports whether Listen is enabled.
	Listening() bool

	// Value returns the property's current value: float64 for numbers, bool, string,
	// common.Color for colours, nil for buttons.
	Value() any

	// Pending reports whether a staged value is waiting for Finish.
	Pending() bool

	// Input applies one intermediate edit, converting and constraining v to the property's type.
	//
	// Parameters:
	//   - v: the new value; numbers and numeric strings are accepted for numeric properties
	//
	// Returns:
	//   - error: ErrInvalidValue when v cannot be converted or the controller is a button
	Input(v any) error

	// Finish completes the current gesture. A staged value is written and its OnChange fired,
	// then OnFinishChange fires once. A Finish with no edit since the previous Finish does nothing.
	Finish()

	// Commit is Input followed by Finish.
	//
	// Parameters:
	//   - v: the new value
	//
	// Returns:
	//   - error: the Input error, if any
	Commit(v any) error

	// Restore writes v to the property without firing OnChange or OnFinishChange and drops
	// any staged value. An OnFinishChange handler uses it to roll back an edit it refused.
	//
	// Parameters:
	//   - v: the value to put back
	//
	// Returns:
	//   - error: ErrInvalidValue when v cannot be converted or the controller is a button
	Restore(v any) error

	// Press invokes a function-valued property, then fires OnChange and OnFinishChange.
	//
	// Returns:
	//   - error: ErrNotFunction if the controller is not a button
	Press() error
}

type controllerImpl struct {
	parent   *guiImpl
	target   any
	property string
	label    string
	kind     Kind
	slot     slot

	min, max, step          float64
	hasMin, hasMax, hasStep bool

	onChange       func(any)
	onFinishChange func(any)

	finishOnly bool
	listen     bool

	staged  any
	pending bool
	changed bool
}

var _ Controller = &controllerImpl{}

func newController(parent *guiImpl, target any, property string, asColor bool) (*controllerImpl, error) {
	s, err := resolve(target, property)
	if err != nil {
		return nil, err
	}
	kind, err := kindOf(s.typ, asColor)
	if err != nil {
		return nil, fmt.Errorf("%w (property %q)", err, property)
	}
	return &controllerImpl{
		parent:   parent,
		target:   target,
		property: property,
		label:    property,
		kind:     kind,
		slot:     s,
	}, nil
}

func (c *controllerImpl) Name(name string) Controller {
	c.label = name
	return c
}

func (c *controllerImpl) Min(min float64) Controller {
	c.min, c.hasMin = min, true
	return c
}

func (c *controllerImpl) Max(max float64) Controller {
	c.max, c.hasMax = max, true
	return c
}

func (c *controllerImpl) Step(step float64) Controller {
	if step > 0 {
		c.step, c.hasStep = step, true
	}
	return c
}

func (c *controllerImpl) OnChange(fn func(value any)) Controller {
	c.onChange = fn
	return c
}

func (c *controllerImpl) OnFinishChange(fn func(value any)) Controller {
	c.onFinishChange = fn
	return c
}

func (c *controllerImpl) FinishOnly(enabled bool) Controller {
	c.finishOnly = enabled
	return c
}

func (c *controllerImpl) Listen(enabled bool) Controller {
	c.listen = enabled
	return c
}

func (c *controllerImpl) Label() string {
	return c.label
}

func (c *controllerImpl) Property() string {
	return c.property
}

func (c *controllerImpl) Kind() Kind {
	return c.kind
}

func (c *controllerImpl) Bounds() (min, max, step float64, hasMin, hasMax, hasStep bool) {
	return c.min, c.max, c.step, c.hasMin, c.hasMax, c.hasStep
}

func (c *controllerImpl) Listening() bool {
	return c.listen
}

func (c *controllerImpl) Value() any {
	return normalize(c.kind, c.slot.get())
}

func (c *controllerImpl) Pending() bool {
	return c.pending
}

// constrain applies step rounding, then min/max clamping, to numeric input.
func (c *controllerImpl) constrain(f float64) float64 {
	if c.hasStep {
		f = math.Round(f/c.step) * c.step
	}
	if c.hasMin && f < c.min {
		f = c.min
	}
	if c.hasMax && f > c.max {
		f = c.max
	}
	return f
}

// prepare converts v into the normalized value that would be written.
func (c *controllerImpl) prepare(v any) (any, error) {
	if c.kind == KindFunction {
		return nil, fmt.Errorf("%w: %q takes Press, not Input", ErrInvalidValue, c.label)
	}
	if c.kind == KindNumber {
		f, ok := ToFloat(v)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %q wants a finite number, got %v", ErrInvalidValue, c.label, v)
		}
		v = c.constrain(f)
	}
	raw, err := encode(c.kind, c.slot.typ, v)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", c.label, err)
	}
	return normalize(c.kind, raw), nil
}

// write stores a prepared value into the target and fires OnChange.
func (c *controllerImpl) write(v any) {
	raw, err := encode(c.kind, c.slot.typ, v)
	if err != nil {
		// prepare already produced a value of this kind
		return
	}
	c.slot.put(raw)
	value := c.Value()
	if c.onChange != nil {
		c.onChange(value)
	}
	c.parent.notify(ChangeEvent{Controller: c, Value: value})
}

func (c *controllerImpl) Input(v any) error {
	value, err := c.prepare(v)
	if err != nil {
		return err
	}
	if c.finishOnly {
		c.staged = value
		c.pending = true
		return nil
	}
	c.write(value)
	c.changed = true
	return nil
}

func (c *controllerImpl) Finish() {
	if c.pending {
		c.pending = false
		c.write(c.staged)
		c.staged = nil
		c.changed = true
	}
	if !c.changed {
		return
	}
	c.changed = false
	if c.onFinishChange != nil {
		c.onFinishChange(c.Value())
	}
	// the handler may have restored an older value
	c.parent.notify(ChangeEvent{Controller: c, Value: c.Value(), Finished: true})
}

func (c *controllerImpl) Restore(v any) error {
	value, err := c.prepare(v)
	if err != nil {
		return err
	}
	raw, err := encode(c.kind, c.slot.typ, value)
	if err != nil {
		return fmt.Errorf("%q: %w", c.label, err)
	}
	c.slot.put(raw)
	c.staged = nil
	c.pending = false
	return nil
}

func (c *controllerImpl) Commit(v any) error {
	if err := c.Input(v); err != nil {
		return err
	}
	c.Finish()
	return nil
}

func (c *controllerImpl) Press() error {
	if c.kind != KindFunction {
		return fmt.Errorf("%w: %q", ErrNotFunction, c.label)
	}
	fn := c.slot.get()
	if fn.IsNil() {
		return fmt.Errorf("%w: %q is a nil function", ErrNotFunction, c.label)
	}
	fn.Call(nil)
	if c.onChange != nil {
		c.onChange(nil)
	}
	if c.onFinishChange != nil {
		c.onFinishChange(nil)
	}
	c.parent.notify(ChangeEvent{Controller: c, Finished: true})
	return nil
}
