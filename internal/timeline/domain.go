// Package timeline builds the domain of the time control from loaded
// records and maps control positions back to time values.
package timeline

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrEmptyDomain is returned when no record carries a finite time. The
// control must stay disabled in that case.
var ErrEmptyDomain = errors.New("no finite times in dataset")

// Mode selects how the control moves through time.
type Mode string

const (
	// Continuous exposes [min, max] with a fixed step.
	Continuous Mode = "continuous"
	// Discrete exposes only the distinct times observed in the data.
	Discrete Mode = "discrete"
)

// ParseMode validates a configured mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Continuous:
		return Continuous, nil
	case Discrete:
		return Discrete, nil
	default:
		return "", fmt.Errorf("unknown timeline mode %q (use continuous or discrete)", s)
	}
}

// Domain is the set of time values the control can select. Exactly one of
// Range and Timeline is meaningful, depending on Mode.
type Domain struct {
	Mode     Mode
	Range    ContinuousRange
	Timeline DiscreteTimeline
}

// ContinuousRange spans the smallest and largest observed times.
type ContinuousRange struct {
	Min float64
	Max float64
}

// DiscreteTimeline lists every distinct observed time in ascending order.
type DiscreteTimeline struct {
	Times []float64
}

// Build scans every dataset for finite times and returns the domain for mode.
func Build(mode Mode, datasets ...[]float64) (Domain, error) {
	var times []float64
	for _, ds := range datasets {
		for _, t := range ds {
			if isFinite(t) {
				times = append(times, t)
			}
		}
	}
	if len(times) == 0 {
		return Domain{}, ErrEmptyDomain
	}

	switch mode {
	case Continuous:
		lo, hi := times[0], times[0]
		for _, t := range times[1:] {
			lo = math.Min(lo, t)
			hi = math.Max(hi, t)
		}
		return Domain{Mode: Continuous, Range: ContinuousRange{Min: lo, Max: hi}}, nil
	case Discrete:
		return Domain{Mode: Discrete, Timeline: DiscreteTimeline{Times: distinct(times)}}, nil
	default:
		return Domain{}, fmt.Errorf("unknown timeline mode %q", mode)
	}
}

// distinct sorts times ascending and removes duplicates in place. Negative
// zero collapses into zero since they compare equal.
func distinct(times []float64) []float64 {
	sort.Float64s(times)
	out := times[:1]
	for _, t := range times[1:] {
		if t != out[len(out)-1] {
			out = append(out, t)
		}
	}
	return out
}

// Bounds returns the first and last selectable time.
func (d Domain) Bounds() (float64, float64) {
	if d.Mode == Discrete {
		ts := d.Timeline.Times
		if len(ts) == 0 {
			return 0, 0
		}
		return ts[0], ts[len(ts)-1]
	}
	return d.Range.Min, d.Range.Max
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
