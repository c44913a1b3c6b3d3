// Package content loads and merges the rule-content tables: oracles,
// moves and assets.
//
// Two sources live under one content root:
//
//   - Override source: terse hand-authored CUE files at the root
//     (*.cue). Small, curated, written by hand.
//   - Generated source: comprehensive dataforged JSON under dataforged/,
//     auto-derived from the public rules dataset.
//
// The generated source loads first; override entries replace generated
// entries on key collision; entries unique to either source survive.
// The merged Library is built once, never mutated afterwards, and safe
// for concurrent reads. It is passed explicitly to whoever needs
// lookups; there is no package-level cache.
//
// Loading reads through an fs.FS so callers decide where content comes
// from (a directory on disk, the embedded starter set, a test fixture).
package content
