package testutil

import (
	"fmt"
	"sync"

	"github.com/skeinworks/skein/internal/dice"
)

// ScriptedPrompter is a dice.Prompter that plays back canned answers and
// records every label it was asked, in order. Tests use the recorded
// labels to assert which prompts the code under test actually issued.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type ScriptedPrompter struct {
	mu      sync.Mutex
	answers []string
	next    int
	asked   []string
}

// NewScriptedPrompter creates a prompter that returns the given answers.
func NewScriptedPrompter(answers ...string) *ScriptedPrompter {
	return &ScriptedPrompter{answers: answers}
}

// Prompt records the label and returns the next scripted answer.
// Returns an error when the answers run out, which manual dice handling
// treats as a cancelled prompt.
func (p *ScriptedPrompter) Prompt(label string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.asked = append(p.asked, label)
	if p.next >= len(p.answers) {
		return "", fmt.Errorf("prompt script exhausted after %d answers (label %q)", p.next, label)
	}
	a := p.answers[p.next]
	p.next++
	return a, nil
}

// Asked returns a copy of every label prompted so far.
func (p *ScriptedPrompter) Asked() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.asked))
	copy(out, p.asked)
	return out
}

// Remaining returns how many scripted answers are left unconsumed.
func (p *ScriptedPrompter) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.answers) - p.next
}

var _ dice.Prompter = (*ScriptedPrompter)(nil)
