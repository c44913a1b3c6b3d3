// Package game runs the interactive play loop.
//
// A State owns one character's live campaign: the character and their
// vows, the current session log, the dice provider, and the merged
// content library. The Run loop reads lines, treats plain text as
// journal prose, and routes slash-commands through a Registry of
// handlers. Mechanical commands append typed entries to the session,
// mirror them into the durable journal when one is attached, and
// autosave the campaign document afterwards.
//
// The loop is strictly single-threaded: one goroutine owns the State
// for the lifetime of Run, and the only blocking points are prompts
// (stat choice, manual dice, confirmations) answered through the
// injected Prompter.
package game
