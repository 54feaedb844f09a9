package viewer

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/timemap/internal/classify"
	"github.com/runnerr0/timemap/internal/config"
	"github.com/runnerr0/timemap/internal/dataset"
	"github.com/runnerr0/timemap/internal/filter"
	"github.com/runnerr0/timemap/internal/render"
	"github.com/runnerr0/timemap/internal/timeline"
)

func optionsFor(t *testing.T, mode string, eventWidth float64) Options {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Timeline.Mode = mode
	cfg.Filter.Events.Width = eventWidth
	opts, err := OptionsFromConfig(cfg)
	require.NoError(t, err)
	return opts
}

func titles(es []dataset.Event) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Title
	}
	return out
}

func TestSession_DiscreteSingleEvent(t *testing.T) {
	data := dataset.Dataset{
		Events: []dataset.Event{{Time: 1000, Lat: 10, Lon: 10, Title: "A", Type: "human migration"}},
	}
	layers := render.NewLayers()
	s, err := New(data, layers, optionsFor(t, "discrete", 1000))
	require.NoError(t, err)
	require.True(t, s.Enabled())

	assert.Equal(t, []float64{1000}, s.Control().Domain().Timeline.Times)
	assert.Equal(t, filter.Exact{}, s.Options().EventPolicy)

	f, ok := s.Move(0)
	require.True(t, ok)
	assert.Equal(t, 1000.0, f.Time)
	assert.Equal(t, "Year: 1000", f.Label)
	assert.Equal(t, []string{"A"}, titles(f.Events))

	fs := layers.Features()
	require.Len(t, fs, 1)
	assert.Equal(t, classify.Human.Color, fs[0].Style.FillColor)

	// Positions beyond the timeline clamp to an observed time.
	f, _ = s.Move(5)
	assert.Equal(t, 1000.0, f.Time)
	assert.Len(t, f.Events, 1)
}

func TestSession_ContinuousWindow(t *testing.T) {
	data := dataset.Dataset{
		Events: []dataset.Event{
			{Time: 500, Lat: 0, Lon: 0, Title: "early"},
			{Time: 1500, Lat: 0, Lon: 0, Title: "late"},
		},
	}
	layers := render.NewLayers()
	opts := optionsFor(t, "continuous", 1000)
	s, err := New(data, layers, opts)
	require.NoError(t, err)

	lo, hi := s.Control().Domain().Bounds()
	assert.Equal(t, 500.0, lo)
	assert.Equal(t, 1500.0, hi)

	f, _ := s.Move(1000)
	assert.Equal(t, []string{"early", "late"}, titles(f.Events))
	assert.Equal(t, 2, layers.Len())

	// 0 clamps to the domain minimum (500), which still sees both records.
	f, _ = s.Move(0)
	assert.Equal(t, 500.0, f.Time)

	// Filtering directly at 0 reproduces the narrower window.
	assert.Equal(t, []string{"early"}, titles(filter.Select(data.Events, 0, opts.EventPolicy)))
}

func TestSession_LayersFollowEveryMove(t *testing.T) {
	data := dataset.Dataset{
		Events: []dataset.Event{
			{Time: 0, Lat: 0, Lon: 0, Title: "a"},
			{Time: 100, Lat: 0, Lon: 0, Title: "b"},
			{Time: 200, Lat: 0, Lon: 0, Title: "c"},
		},
		Routes: []dataset.Route{
			{Time: 100, Title: "r", Path: []dataset.LatLon{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}}},
		},
	}
	layers := render.NewLayers()
	s, err := New(data, layers, optionsFor(t, "discrete", 0))
	require.NoError(t, err)

	f, _ := s.Move(1)
	assert.Equal(t, render.Result{Events: 1, Routes: 1}, f.Result)
	assert.Equal(t, 2, layers.Len())

	f, _ = s.Move(2)
	assert.Equal(t, render.Result{Events: 1}, f.Result)
	assert.Equal(t, 1, layers.Len())

	// Same position twice: same final visible set.
	s.Move(2)
	assert.Equal(t, 1, layers.Len())
}

func TestSession_EmptyDomainDisablesControl(t *testing.T) {
	data := dataset.Dataset{
		Events: []dataset.Event{{Time: math.NaN(), Title: "untimed"}},
	}
	s, err := New(data, render.NewLayers(), optionsFor(t, "continuous", 1000))
	require.NoError(t, err)

	assert.False(t, s.Enabled())
	assert.Nil(t, s.Control())

	_, ok := s.Start()
	assert.False(t, ok)
	_, ok = s.Move(10)
	assert.False(t, ok)
	_, ok = s.Current()
	assert.False(t, ok)

	err = s.Replay(func(Frame) error { return nil })
	assert.ErrorIs(t, err, timeline.ErrEmptyDomain)
}

func TestSession_StartUsesEarliestTime(t *testing.T) {
	data := dataset.Dataset{
		Events: []dataset.Event{{Time: 300, Lat: 0, Lon: 0}, {Time: -100, Lat: 0, Lon: 0}},
	}
	s, err := New(data, render.NewLayers(), optionsFor(t, "continuous", 10))
	require.NoError(t, err)

	f, ok := s.Start()
	require.True(t, ok)
	assert.Equal(t, -100.0, f.Time)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, f.Time, cur.Time)
}

func TestSession_Replay(t *testing.T) {
	data := dataset.Dataset{
		Events: []dataset.Event{{Time: 1, Lat: 0, Lon: 0}, {Time: 3, Lat: 0, Lon: 0}},
		Routes: []dataset.Route{{Time: 2, Path: []dataset.LatLon{{Lat: 0, Lon: 0}}}},
	}
	s, err := New(data, render.NewLayers(), optionsFor(t, "discrete", 0))
	require.NoError(t, err)

	var seen []float64
	err = s.Replay(func(f Frame) error {
		seen = append(seen, f.Time)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, seen)

	stop := errors.New("stop")
	count := 0
	err = s.Replay(func(Frame) error {
		count++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, count)
}

func TestSession_ReplayRefusesUnboundedRange(t *testing.T) {
	data := dataset.Dataset{Events: []dataset.Event{
		{Time: 0, Lat: 0, Lon: 0},
		{Time: 1e300, Lat: 0, Lon: 0},
	}}
	s, err := New(data, render.NewLayers(), optionsFor(t, "continuous", 1000))
	require.NoError(t, err)

	called := false
	err = s.Replay(func(Frame) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, timeline.ErrTooManyStops)
	assert.False(t, called)

	f, ok := s.Move(math.Inf(1))
	require.True(t, ok)
	assert.False(t, math.IsInf(f.Time, 0))
	assert.LessOrEqual(t, f.Time, 1e300)
}

func TestSession_ConcurrentMovesAreSerialised(t *testing.T) {
	var events []dataset.Event
	for i := 0; i < 50; i++ {
		events = append(events, dataset.Event{Time: float64(i), Lat: 0, Lon: 0})
	}
	layers := render.NewLayers()
	s, err := New(dataset.Dataset{Events: events}, layers, optionsFor(t, "discrete", 0))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(pos int) {
			defer wg.Done()
			s.Move(float64(pos))
		}(i)
	}
	wg.Wait()

	// Whatever move ran last, exactly one event layer remains.
	s.With(func() {
		assert.Equal(t, 1, layers.Len())
	})
}

func TestNew_RequiresPoliciesAndClasses(t *testing.T) {
	_, err := New(dataset.Dataset{}, render.NewLayers(), Options{Mode: timeline.Continuous, Step: 1})
	assert.Error(t, err)

	_, err = New(dataset.Dataset{}, render.NewLayers(), Options{
		Mode:        timeline.Continuous,
		Step:        1,
		EventPolicy: filter.Exact{},
		RoutePolicy: filter.Exact{},
	})
	assert.Error(t, err)
}
