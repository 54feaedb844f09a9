// Package filter selects the records visible at a query time.
package filter

import (
	"fmt"
	"math"
	"strings"

	"github.com/runnerr0/timemap/internal/timeline"
)

// Timed is anything carrying a single time value.
type Timed interface {
	When() float64
}

// Policy decides whether a record time is visible at a query time.
type Policy interface {
	Matches(recordTime, queryTime float64) bool
	String() string
}

// Exact matches records whose time equals the query time bit for bit.
type Exact struct{}

func (Exact) Matches(recordTime, queryTime float64) bool {
	return isFinite(recordTime) && recordTime == queryTime
}

func (Exact) String() string { return "exact" }

// Windowed matches records within Width of the query time, both ends
// inclusive.
type Windowed struct {
	Width float64
}

func (w Windowed) Matches(recordTime, queryTime float64) bool {
	if !isFinite(recordTime) {
		return false
	}
	return queryTime-w.Width <= recordTime && recordTime <= queryTime+w.Width
}

func (w Windowed) String() string { return fmt.Sprintf("windowed(%g)", w.Width) }

// Select returns the records visible at t under p, in input order. The
// input slice is never modified and nothing is cached between calls.
func Select[T Timed](records []T, t float64, p Policy) []T {
	out := make([]T, 0)
	for _, r := range records {
		if p.Matches(r.When(), t) {
			out = append(out, r)
		}
	}
	return out
}

// Policy names accepted by ParsePolicy.
const (
	MatchAuto     = "auto"
	MatchExact    = "exact"
	MatchWindowed = "windowed"
)

// ParsePolicy builds a Policy from its configured name. "auto" resolves to
// Exact for discrete timelines and Windowed otherwise.
func ParsePolicy(name string, width float64, mode timeline.Mode) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case MatchAuto, "":
		if mode == timeline.Discrete {
			return Exact{}, nil
		}
		return newWindowed(width)
	case MatchExact:
		return Exact{}, nil
	case MatchWindowed:
		return newWindowed(width)
	default:
		return nil, fmt.Errorf("unknown match policy %q (use auto, exact or windowed)", name)
	}
}

func newWindowed(width float64) (Policy, error) {
	if !isFinite(width) || width < 0 {
		return nil, fmt.Errorf("window width must be a non-negative number, got %v", width)
	}
	return Windowed{Width: width}, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
