// Package tween animates float32 properties toward a value over time, advanced by the
// frame loop's clock.
package tween

// Tween is one running property animation.
type Tween interface {
	// Done reports whether the tween reached its end value or was killed.
	Done() bool

	// Kill stops the tween where it is. The onComplete callback does not run.
	Kill()

	// Progress returns the linear progress in [0, 1].
	Progress() float64
}

// Manager owns running tweens and advances them from elapsed clock time.
type Manager interface {
	// To starts animating *target from its current value to value.
	// The tween starts at the manager's latest elapsed time.
	//
	// Parameters:
	//   - target: the property to animate (must not be nil)
	//   - value: the end value
	//   - options: duration, ease, delay and completion options
	//
	// Returns:
	//   - Tween: the running tween
	To(target *float32, value float32, options ...TweenBuilderOption) Tween

	// Update advances every tween to elapsed seconds and drops finished ones.
	//
	// Parameters:
	//   - elapsed: seconds since the session clock started
	Update(elapsed float64)

	// Active returns the number of running tweens.
	Active() int

	// KillAll stops every running tween.
	KillAll()
}

type tweenImpl struct {
	target     *float32
	from, to   float32
	start      float64
	delay      float64
	duration   float64
	ease       Ease
	onComplete func()

	started  bool
	progress float64
	done     bool
}

var _ Tween = &tweenImpl{}

func (t *tweenImpl) Done() bool {
	return t.done
}

func (t *tweenImpl) Kill() {
	t.done = true
}

func (t *tweenImpl) Progress() float64 {
	return t.progress
}

// advance moves the tween to elapsed seconds. The start value is read when the delay ends.
func (t *tweenImpl) advance(elapsed float64) {
	if t.done {
		return
	}
	local := elapsed - t.start - t.delay
	if local < 0 {
		return
	}
	if !t.started {
		t.started = true
		t.from = *t.target
	}
	if t.duration <= 0 || local >= t.duration {
		t.progress = 1
	} else {
		t.progress = local / t.duration
	}
	if t.progress >= 1 {
		*t.target = t.to
		t.done = true
		if t.onComplete != nil {
			t.onComplete()
		}
		return
	}
	*t.target = t.from + (t.to-t.from)*float32(t.ease(t.progress))
}

type managerImpl struct {
	now    float64
	tweens []*tweenImpl
}

var _ Manager = &managerImpl{}

// NewManager creates an empty tween manager.
//
// Returns:
//   - Manager: the new manager
func NewManager() Manager {
	return &managerImpl{}
}

func (m *managerImpl) To(target *float32, value float32, options ...TweenBuilderOption) Tween {
	if target == nil {
		panic("tween: To requires a non-nil target")
	}
	t := &tweenImpl{
		target:   target,
		to:       value,
		start:    m.now,
		duration: 0.5,
		ease:     Power1Out,
	}
	for _, option := range options {
		option(t)
	}
	m.tweens = append(m.tweens, t)
	return t
}

func (m *managerImpl) Update(elapsed float64) {
	m.now = elapsed
	// onComplete callbacks may start new tweens; those land in m.tweens and run next Update
	running := m.tweens
	m.tweens = nil
	live := make([]*tweenImpl, 0, len(running))
	for _, t := range running {
		t.advance(elapsed)
		if !t.done {
			live = append(live, t)
		}
	}
	m.tweens = append(live, m.tweens...)
}

func (m *managerImpl) Active() int {
	return len(m.tweens)
}

func (m *managerImpl) KillAll() {
	for _, t := range m.tweens {
		t.done = true
	}
	m.tweens = nil
}
