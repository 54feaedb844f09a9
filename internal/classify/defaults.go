package classify

var (
	Human    = VisualClass{Name: "human", Color: "#e74c3c"}
	Animal   = VisualClass{Name: "animal", Color: "#27ae60"}
	Plant    = VisualClass{Name: "plant", Color: "#2980b9"}
	Pathogen = VisualClass{Name: "pathogen", Color: "#8e44ad"}
	Other    = VisualClass{Name: "other", Color: "#f39c12"}
)

// DefaultRules returns the built-in table. Human patterns come first, then
// animal, plant and pathogen.
func DefaultRules() []Rule {
	return []Rule{
		// Human
		{Match: MatchContains, Pattern: "人", Class: Human},
		{Match: MatchContains, Pattern: "human", Class: Human},
		{Match: MatchContains, Pattern: "people", Class: Human},

		// Animal
		{Match: MatchContains, Pattern: "动", Class: Animal},
		{Match: MatchContains, Pattern: "animal", Class: Animal},

		// Plant
		{Match: MatchContains, Pattern: "植", Class: Plant},
		{Match: MatchContains, Pattern: "plant", Class: Plant},
		{Match: MatchContains, Pattern: "crop", Class: Plant},

		// Pathogen
		{Match: MatchContains, Pattern: "病", Class: Pathogen},
		{Match: MatchContains, Pattern: "pathogen", Class: Pathogen},
		{Match: MatchContains, Pattern: "disease", Class: Pathogen},
		{Match: MatchRegex, Pattern: `(?i)\b(virus|plague|bacteri\w*)\b`, Class: Pathogen},
	}
}
