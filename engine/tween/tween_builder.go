package tween

// TweenBuilderOption is a functional option for configuring a Tween.
type TweenBuilderOption func(t *tweenImpl)

// WithDuration sets the tween duration in seconds. Defaults to 0.5.
//
// Parameters:
//   - seconds: the duration
//
// Returns:
//   - TweenBuilderOption: option function to apply
func WithDuration(seconds float64) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.duration = seconds
	}
}

// WithEase sets the easing function. Defaults to Power1Out. A nil ease is ignored.
//
// Parameters:
//   - ease: the ease function
//
// Returns:
//   - TweenBuilderOption: option function to apply
func WithEase(ease Ease) TweenBuilderOption {
	return func(t *tweenImpl) {
		if ease != nil {
			t.ease = ease
		}
	}
}

// WithDelay postpones the start by seconds.
//
// Parameters:
//   - seconds: the delay
//
// Returns:
//   - TweenBuilderOption: option function to apply
func WithDelay(seconds float64) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.delay = max(seconds, 0)
	}
}

// WithOnComplete registers a callback run once when the tween reaches its end value.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - TweenBuilderOption: option function to apply
func WithOnComplete(fn func()) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.onComplete = fn
	}
}
