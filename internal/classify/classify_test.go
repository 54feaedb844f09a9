package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(DefaultRules(), Other)
	require.NoError(t, err)
	return r
}

func TestClassify_DefaultTable(t *testing.T) {
	r := defaultResolver(t)

	cases := map[string]VisualClass{
		"human migration":  Human,
		"人类迁徙":             Human,
		"Animal domestication": Animal,
		"动物驯化":             Animal,
		"植物传播":             Plant,
		"crop spread":      Plant,
		"疾病":               Pathogen,
		"Plague outbreak":  Pathogen,
		"bacterial spread": Pathogen,
		"trade":            Other,
	}
	for category, want := range cases {
		assert.Equal(t, want, r.Classify(category), category)
	}
}

func TestClassify_EmptyCategoryIsDefault(t *testing.T) {
	r := defaultResolver(t)
	assert.Equal(t, Other, r.Classify(""))
	assert.Equal(t, Other, r.Classify("   "))
}

func TestClassify_FirstRuleWins(t *testing.T) {
	r := defaultResolver(t)
	// Matches both a human and an animal pattern.
	assert.Equal(t, Human, r.Classify("human and animal contact"))
	assert.Equal(t, Human, r.Classify("人畜共患病"))
}

func TestClassify_OrderIsPreservedAsConfigured(t *testing.T) {
	a := VisualClass{Name: "a", Color: "#aaa"}
	b := VisualClass{Name: "b", Color: "#bbb"}

	ab, err := NewResolver([]Rule{
		{Match: MatchContains, Pattern: "sea", Class: a},
		{Match: MatchRegex, Pattern: `sea\s+route`, Class: b},
	}, Other)
	require.NoError(t, err)
	assert.Equal(t, a, ab.Classify("sea route"))

	ba, err := NewResolver([]Rule{
		{Match: MatchRegex, Pattern: `sea\s+route`, Class: b},
		{Match: MatchContains, Pattern: "sea", Class: a},
	}, Other)
	require.NoError(t, err)
	assert.Equal(t, b, ba.Classify("sea route"))
}

func TestNewResolver_InvalidRules(t *testing.T) {
	_, err := NewResolver([]Rule{{Match: MatchRegex, Pattern: "(", Class: Human}}, Other)
	assert.Error(t, err)

	_, err = NewResolver([]Rule{{Match: "glob", Pattern: "*", Class: Human}}, Other)
	assert.Error(t, err)

	_, err = NewResolver([]Rule{{Match: MatchContains, Pattern: "", Class: Human}}, Other)
	assert.Error(t, err)
}

func TestClasses_LegendOrder(t *testing.T) {
	r := defaultResolver(t)
	assert.Equal(t, []VisualClass{Human, Animal, Plant, Pathogen, Other}, r.Classes())
}
