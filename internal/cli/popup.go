package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/runnerr0/timemap/internal/classify"
	"github.com/runnerr0/timemap/internal/render"
)

const (
	kindEvent = "event"
	kindRoute = "route"
)

// popupJSON is the JSON output structure for the popup command.
type popupJSON struct {
	Kind  string                `json:"kind"`
	Index int                   `json:"index"`
	Title string                `json:"title"`
	Time  *float64              `json:"time,omitempty"`
	Class *classify.VisualClass `json:"class,omitempty"`
	Popup string                `json:"popup"`
}

// Execute implements the go-flags Commander interface for PopupCommand.
func (c *PopupCommand) Execute(args []string) error {
	if c.Index < 0 {
		return fmt.Errorf("--index is required for popup command")
	}
	kind := strings.ToLower(c.Kind)
	if kind != kindEvent && kind != kindRoute {
		return fmt.Errorf("--kind must be event or route, got %q", c.Kind)
	}

	env, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer env.Close()

	return c.executeWith(env)
}

// executeWith runs popup against a prepared session (for testing).
func (c *PopupCommand) executeWith(env *sessionEnv) error {
	out, err := c.lookup(env)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(out)
	}
	fmt.Println(out.Popup)
	return nil
}

func (c *PopupCommand) lookup(env *sessionEnv) (popupJSON, error) {
	switch strings.ToLower(c.Kind) {
	case kindRoute:
		for _, r := range env.data.Routes {
			if r.Index == c.Index {
				return popupJSON{
					Kind:  kindRoute,
					Index: r.Index,
					Title: r.Title,
					Time:  finite(r.Time),
					Popup: render.RoutePopup(r),
				}, nil
			}
		}
		return popupJSON{}, fmt.Errorf("route not found: %d", c.Index)
	default:
		for _, e := range env.data.Events {
			if e.Index == c.Index {
				class := env.session.Options().Classes.Classify(e.Type)
				return popupJSON{
					Kind:  kindEvent,
					Index: e.Index,
					Title: e.Title,
					Time:  finite(e.Time),
					Class: &class,
					Popup: render.EventPopup(e),
				}, nil
			}
		}
		return popupJSON{}, fmt.Errorf("event not found: %d", c.Index)
	}
}

// finite returns nil for NaN and infinities, which JSON cannot carry.
func finite(t float64) *float64 {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return nil
	}
	return &t
}
