package cli

import (
	"fmt"

	"github.com/runnerr0/timemap/internal/dataset"
	"github.com/runnerr0/timemap/internal/render"
	"github.com/runnerr0/timemap/internal/timeline"
)

// domainJSON is the JSON output structure for the domain command.
type domainJSON struct {
	Version      string          `json:"version"`
	Enabled      bool            `json:"enabled"`
	Mode         string          `json:"mode"`
	Min          float64         `json:"min"`
	Max          float64         `json:"max"`
	Step         float64         `json:"step,omitempty"`
	Stops        int             `json:"stops"`
	TooManyStops bool            `json:"too_many_stops,omitempty"`
	Times        []float64       `json:"times,omitempty"`
	EventPolicy  string          `json:"event_policy"`
	RoutePolicy  string          `json:"route_policy"`
	Records      dataset.Summary `json:"records"`
}

// Execute implements the go-flags Commander interface for DomainCommand.
func (c *DomainCommand) Execute(args []string) error {
	env, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer env.Close()

	return c.executeWith(env)
}

// executeWith runs domain against a prepared session (for testing).
func (c *DomainCommand) executeWith(env *sessionEnv) error {
	out := domainJSON{
		Version:     c.version,
		Enabled:     env.session.Enabled(),
		Mode:        string(env.session.Options().Mode),
		EventPolicy: env.session.Options().EventPolicy.String(),
		RoutePolicy: env.session.Options().RoutePolicy.String(),
		Records:     env.data.Summarize(),
	}
	if ctl := env.session.Control(); ctl != nil {
		d := ctl.Domain()
		out.Min, out.Max = d.Bounds()
		n, err := ctl.StopCount()
		if err != nil {
			out.TooManyStops = true
		}
		out.Stops = n
		if d.Mode == timeline.Discrete {
			out.Times, _ = ctl.Stops()
		} else {
			out.Step = ctl.Step()
		}
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(out)
	}
	c.printHuman(out)
	return nil
}

func (c *DomainCommand) printHuman(out domainJSON) {
	fmt.Println("Timemap Domain")
	fmt.Println("==============")
	fmt.Printf("Version:       %s\n", out.Version)
	fmt.Printf("Mode:          %s\n", out.Mode)

	if out.Enabled {
		fmt.Printf("Range:         %s .. %s\n", render.FormatTime(out.Min), render.FormatTime(out.Max))
		if out.Step > 0 {
			fmt.Printf("Step:          %s\n", render.FormatTime(out.Step))
		}
		if out.TooManyStops {
			fmt.Printf("Stops:         more than %s\n", formatNumber(timeline.MaxStops))
		} else {
			fmt.Printf("Stops:         %s\n", formatNumber(out.Stops))
		}
	} else {
		fmt.Println("Control:       disabled (no record has a usable time)")
	}

	fmt.Println()
	r := out.Records
	fmt.Printf("Events:        %s (%s untimed, %s unplaced)\n",
		formatNumber(r.Events), formatNumber(r.UntimedEvents), formatNumber(r.UnplacedEvents))
	fmt.Printf("Routes:        %s (%s untimed, %s without path)\n",
		formatNumber(r.Routes), formatNumber(r.UntimedRoutes), formatNumber(r.EmptyRoutes))

	fmt.Println()
	fmt.Printf("Event match:   %s\n", out.EventPolicy)
	fmt.Printf("Route match:   %s\n", out.RoutePolicy)
}
