package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/runnerr0/timemap/internal/render"
	"github.com/runnerr0/timemap/internal/viewer"
)

// showJSON is the JSON output structure for the show command.
type showJSON struct {
	Time   float64                  `json:"time"`
	Label  string                   `json:"label"`
	Result render.Result            `json:"result"`
	Layers render.FeatureCollection `json:"layers"`
}

// Execute implements the go-flags Commander interface for ShowCommand.
func (c *ShowCommand) Execute(args []string) error {
	pos, err := c.position()
	if err != nil {
		return err
	}

	env, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer env.Close()

	return c.executeWith(env, pos)
}

// position parses --at. NaN stands for "not given".
func (c *ShowCommand) position() (float64, error) {
	if strings.TrimSpace(c.At) == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(c.At), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid --at value %q", c.At)
	}
	return v, nil
}

// executeWith runs show against a prepared session (for testing).
func (c *ShowCommand) executeWith(env *sessionEnv, pos float64) error {
	if !env.session.Enabled() {
		return fmt.Errorf("time control is disabled: no record has a usable time")
	}
	if math.IsNaN(pos) {
		pos = env.session.Control().Initial()
	}

	var out showJSON
	var frame viewer.Frame
	env.session.MoveWith(pos, func(f viewer.Frame) {
		frame = f
		out = showJSON{Time: f.Time, Label: f.Label, Result: f.Result, Layers: env.layers.GeoJSON()}
	})

	if c.globals != nil && c.globals.JSON {
		return printJSON(out)
	}
	c.printHuman(env, frame)
	return nil
}

func (c *ShowCommand) printHuman(env *sessionEnv, f viewer.Frame) {
	fmt.Printf("%s  (%s, %s)\n", f.Label, plural(f.Result.Events, "event"), plural(f.Result.Routes, "route"))
	if f.Result.Skipped > 0 {
		fmt.Printf("Skipped:       %s without geometry\n", plural(f.Result.Skipped, "record"))
	}
	if len(f.Events) == 0 && len(f.Routes) == 0 {
		fmt.Println("Nothing visible at this time.")
		return
	}

	classes := env.session.Options().Classes
	for _, e := range f.Events {
		if !e.HasGeometry() {
			continue
		}
		fmt.Printf("  event #%-4d %-32s %-10s %7.2f, %7.2f\n",
			e.Index, truncate(e.Title, 32), classes.Classify(e.Type).Name, e.Lat, e.Lon)
	}
	for _, r := range f.Routes {
		if !r.HasGeometry() {
			continue
		}
		fmt.Printf("  route #%-4d %-32s %s\n", r.Index, truncate(r.Title, 32), plural(len(r.Path), "point"))
	}
}

// truncate shortens s to n runes, ending with "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
