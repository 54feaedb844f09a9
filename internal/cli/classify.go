package cli

import (
	"fmt"
	"sort"

	"github.com/runnerr0/timemap/internal/classify"
)

// classifyJSON is one entry of the classify command's JSON output.
type classifyJSON struct {
	Category string `json:"category"`
	Class    string `json:"class"`
	Color    string `json:"color"`
	Events   int    `json:"events,omitempty"`
}

// Execute implements the go-flags Commander interface for ClassifyCommand.
// With arguments only the config is needed; without, every category in
// the loaded events is listed.
func (c *ClassifyCommand) Execute(args []string) error {
	if len(args) > 0 {
		cfg, err := loadConfig(c.globals)
		if err != nil {
			return err
		}
		resolver, err := cfg.Resolver()
		if err != nil {
			return fmt.Errorf("class rules: %w", err)
		}
		return c.print(classifyArgs(resolver, args))
	}

	env, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer env.Close()

	return c.executeWith(env)
}

// executeWith classifies every distinct event category (for testing).
func (c *ClassifyCommand) executeWith(env *sessionEnv) error {
	counts := make(map[string]int)
	for _, e := range env.data.Events {
		counts[e.Type]++
	}
	categories := make([]string, 0, len(counts))
	for cat := range counts {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	resolver := env.session.Options().Classes
	out := make([]classifyJSON, len(categories))
	for i, cat := range categories {
		vc := resolver.Classify(cat)
		out[i] = classifyJSON{Category: cat, Class: vc.Name, Color: vc.Color, Events: counts[cat]}
	}
	return c.print(out)
}

func classifyArgs(resolver *classify.Resolver, categories []string) []classifyJSON {
	out := make([]classifyJSON, len(categories))
	for i, cat := range categories {
		vc := resolver.Classify(cat)
		out[i] = classifyJSON{Category: cat, Class: vc.Name, Color: vc.Color}
	}
	return out
}

func (c *ClassifyCommand) print(out []classifyJSON) error {
	if c.globals != nil && c.globals.JSON {
		return printJSON(out)
	}
	if len(out) == 0 {
		fmt.Println("No categories.")
		return nil
	}
	for _, r := range out {
		cat := r.Category
		if cat == "" {
			cat = "(none)"
		}
		line := fmt.Sprintf("%-32s %-10s %s", truncate(cat, 32), r.Class, r.Color)
		if r.Events > 0 {
			line += fmt.Sprintf("  %s", plural(r.Events, "event"))
		}
		fmt.Println(line)
	}
	return nil
}
