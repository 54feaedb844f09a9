package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/timemap/internal/classify"
)

func TestPopup_EventIsEscaped(t *testing.T) {
	env := newTestEnv(t, "discrete", sampleData())
	cmd := &PopupCommand{Kind: "event", Index: 1, globals: &GlobalFlags{}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWith(env))
	})

	assert.True(t, strings.HasPrefix(output, "<b>Wheat &lt;reaches&gt; Europe</b><br><i>crop spread</i><br>Time: 1200<br>"))
	assert.Contains(t, output, `<a href="https://example.com/wheat" target="_blank" rel="noopener noreferrer">`)
	assert.NotContains(t, output, "<reaches>")
}

func TestPopup_Route(t *testing.T) {
	env := newTestEnv(t, "discrete", sampleData())
	cmd := &PopupCommand{Kind: "route", Index: 0, globals: &GlobalFlags{}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWith(env))
	})

	assert.Equal(t, "<b>Silk Road</b><br>Time: 1000<br>", strings.TrimSpace(output))
}

func TestPopup_JSONOutput(t *testing.T) {
	env := newTestEnv(t, "discrete", sampleData())
	cmd := &PopupCommand{Kind: "event", Index: 2, globals: &GlobalFlags{JSON: true}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWith(env))
	})

	var result popupJSON
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, "event", result.Kind)
	assert.Equal(t, 2, result.Index)
	assert.Equal(t, "Plague", result.Title)
	require.NotNil(t, result.Time)
	assert.Equal(t, 1200.0, *result.Time)
	require.NotNil(t, result.Class)
	assert.Equal(t, classify.Pathogen, *result.Class)
}

func TestPopup_UntimedEventOmitsTime(t *testing.T) {
	env := newTestEnv(t, "discrete", sampleData())
	cmd := &PopupCommand{Kind: "event", Index: 3, globals: &GlobalFlags{JSON: true}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWith(env))
	})

	var result popupJSON
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Nil(t, result.Time)
	assert.Equal(t, "Undated", result.Title)
	assert.NotContains(t, result.Popup, "NaN")
	assert.NotContains(t, result.Popup, "Time:")
}

func TestPopup_NotFound(t *testing.T) {
	env := newTestEnv(t, "discrete", sampleData())

	err := (&PopupCommand{Kind: "event", Index: 42, globals: &GlobalFlags{}}).executeWith(env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event not found: 42")

	err = (&PopupCommand{Kind: "route", Index: 9, globals: &GlobalFlags{}}).executeWith(env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "route not found: 9")
}
