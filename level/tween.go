package level

import (
	"time"

	"github.com/lixenwraith/honly-helper/vmath"
)

// Tween drives a value from 0 to 1 over a fixed duration
// It satisfies host.Task and completes after the final apply
type Tween struct {
	duration time.Duration
	elapsed  time.Duration
	ease     vmath.Easer
	apply    func(t float64)
	done     bool
}

// NewTween creates a tween; a non-positive duration completes on first update
func NewTween(d time.Duration, ease vmath.Easer, apply func(t float64)) *Tween {
	if ease == nil {
		ease = vmath.Linear
	}
	return &Tween{duration: d, ease: ease, apply: apply}
}

func (t *Tween) Done() bool { return t.done }

// Update advances the tween by dt
func (t *Tween) Update(dt time.Duration) {
	if t.done {
		return
	}
	t.elapsed += dt
	progress := 1.0
	if t.duration > 0 {
		progress = vmath.Clamp01(float64(t.elapsed) / float64(t.duration))
	}
	if t.apply != nil {
		t.apply(t.ease(progress))
	}
	if progress >= 1 {
		t.done = true
	}
}

// Cancel stops the tween where it is and marks it complete
func (t *Tween) Cancel() { t.done = true }

// tweenSet updates owned tweens and drops finished ones
type tweenSet []*Tween

func (s *tweenSet) add(t *Tween) *Tween {
	*s = append(*s, t)
	return t
}

func (s *tweenSet) update(dt time.Duration) {
	live := (*s)[:0]
	for _, t := range *s {
		t.Update(dt)
		if !t.Done() {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(*s); i++ {
		(*s)[i] = nil
	}
	*s = live
}

func (s *tweenSet) cancel() {
	for _, t := range *s {
		t.Cancel()
	}
	*s = (*s)[:0]
}
