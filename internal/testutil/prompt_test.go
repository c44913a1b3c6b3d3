package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedPrompter_PlaysBackAnswers(t *testing.T) {
	p := NewScriptedPrompter("4", "10")

	a, err := p.Prompt("d6 result (1-6)")
	require.NoError(t, err)
	assert.Equal(t, "4", a)

	a, err = p.Prompt("d10 result (1-10)")
	require.NoError(t, err)
	assert.Equal(t, "10", a)

	assert.Equal(t, []string{"d6 result (1-6)", "d10 result (1-10)"}, p.Asked())
	assert.Equal(t, 0, p.Remaining())
}

func TestScriptedPrompter_ExhaustedAnswersError(t *testing.T) {
	p := NewScriptedPrompter()

	_, err := p.Prompt("anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exhausted")

	// The label is still recorded even when no answer was available
	assert.Equal(t, []string{"anything"}, p.Asked())
}

func TestScriptedPrompter_AskedReturnsCopy(t *testing.T) {
	p := NewScriptedPrompter("1", "2")

	_, err := p.Prompt("first")
	require.NoError(t, err)

	asked := p.Asked()
	asked[0] = "mutated"

	assert.Equal(t, []string{"first"}, p.Asked())
}
