package timeline

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// MaxStops bounds how many stops a continuous control will enumerate.
const MaxStops = 1_000_000

// ErrTooManyStops is returned when a continuous range holds more than
// MaxStops stops at the configured step.
var ErrTooManyStops = errors.New("too many control stops to enumerate")

// Control mirrors a single numeric slider bound to a Domain. In continuous
// mode positions are time values snapped to Step; in discrete mode positions
// are indexes into the observed timeline.
type Control struct {
	domain Domain
	step   float64
}

// NewControl binds a control to d. step is only used in continuous mode and
// must be positive there.
func NewControl(d Domain, step float64) (*Control, error) {
	if d.Mode == Continuous && (!isFinite(step) || step <= 0) {
		return nil, fmt.Errorf("step must be a positive number, got %v", step)
	}
	if d.Mode == Discrete && len(d.Timeline.Times) == 0 {
		return nil, ErrEmptyDomain
	}
	return &Control{domain: d, step: step}, nil
}

// Domain returns the domain the control is bound to.
func (c *Control) Domain() Domain { return c.domain }

// Min is the smallest control position.
func (c *Control) Min() float64 {
	if c.domain.Mode == Discrete {
		return 0
	}
	return c.domain.Range.Min
}

// Max is the largest control position.
func (c *Control) Max() float64 {
	if c.domain.Mode == Discrete {
		return float64(len(c.domain.Timeline.Times) - 1)
	}
	return c.domain.Range.Max
}

// Step is the distance between adjacent control positions.
func (c *Control) Step() float64 {
	if c.domain.Mode == Discrete {
		return 1
	}
	return c.step
}

// Initial is the position the control starts at: the earliest time.
func (c *Control) Initial() float64 { return c.Min() }

// TimeAt converts a control position into the time it selects. Out of range
// positions are clamped. Continuous positions snap to Min + k*Step without
// passing Max, the way a range input does.
func (c *Control) TimeAt(pos float64) float64 {
	if c.domain.Mode == Discrete {
		return c.domain.Timeline.Times[c.index(pos)]
	}

	lo, hi := c.domain.Range.Min, c.domain.Range.Max
	if math.IsNaN(pos) || pos < lo {
		return lo
	}
	if pos > hi {
		pos = hi
	}
	t := lo + math.Round((pos-lo)/c.step)*c.step
	if t > hi || math.IsInf(t, 0) {
		t = lo + math.Floor((hi-lo)/c.step)*c.step
	}
	if math.IsInf(t, 0) || t > hi {
		// hi-lo overflows float64.
		return hi
	}
	return t
}

func (c *Control) index(pos float64) int {
	last := len(c.domain.Timeline.Times) - 1
	if math.IsNaN(pos) || pos <= 0 {
		return 0
	}
	if pos >= float64(last) {
		return last
	}
	return int(math.Round(pos))
}

// StopCount reports how many stops the control has.
func (c *Control) StopCount() (int, error) {
	if c.domain.Mode == Discrete {
		return len(c.domain.Timeline.Times), nil
	}
	// Counted in float: a wide finite range overflows int.
	n := math.Floor((c.domain.Range.Max-c.domain.Range.Min)/c.step) + 1
	if math.IsNaN(n) || n > MaxStops {
		return 0, fmt.Errorf("%w: range %g..%g at step %g",
			ErrTooManyStops, c.domain.Range.Min, c.domain.Range.Max, c.step)
	}
	return int(n), nil
}

// Stops lists every time the control can land on, in order.
func (c *Control) Stops() ([]float64, error) {
	n, err := c.StopCount()
	if err != nil {
		return nil, err
	}
	if c.domain.Mode == Discrete {
		out := make([]float64, n)
		copy(out, c.domain.Timeline.Times)
		return out, nil
	}

	out := make([]float64, 0, n)
	for k := 0; k < n; k++ {
		out = append(out, c.domain.Range.Min+float64(k)*c.step)
	}
	return out, nil
}

// Label renders the text shown next to the control. It always shows the
// time value, never the discrete index.
func Label(t float64) string {
	return "Year: " + strconv.FormatFloat(t, 'f', -1, 64)
}
