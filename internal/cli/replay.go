package cli

import (
	"fmt"

	"github.com/runnerr0/timemap/internal/render"
	"github.com/runnerr0/timemap/internal/viewer"
)

// replayStopJSON is one entry of the replay command's JSON output.
type replayStopJSON struct {
	Position float64       `json:"position"`
	Time     float64       `json:"time"`
	Label    string        `json:"label"`
	Result   render.Result `json:"result"`
}

// Execute implements the go-flags Commander interface for ReplayCommand.
func (c *ReplayCommand) Execute(args []string) error {
	env, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer env.Close()

	return c.executeWith(env)
}

// executeWith runs replay against a prepared session (for testing).
func (c *ReplayCommand) executeWith(env *sessionEnv) error {
	if !env.session.Enabled() {
		return fmt.Errorf("time control is disabled: no record has a usable time")
	}

	stops := []replayStopJSON{}
	err := env.session.Replay(func(f viewer.Frame) error {
		if c.NonEmpty && f.Result.Events == 0 && f.Result.Routes == 0 {
			return nil
		}
		stops = append(stops, replayStopJSON{
			Position: f.Position,
			Time:     f.Time,
			Label:    f.Label,
			Result:   f.Result,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(stops)
	}

	for _, s := range stops {
		fmt.Printf("%-16s %12s %12s\n", s.Label, plural(s.Result.Events, "event"), plural(s.Result.Routes, "route"))
	}
	fmt.Printf("\n%s replayed\n", plural(len(stops), "stop"))
	return nil
}
