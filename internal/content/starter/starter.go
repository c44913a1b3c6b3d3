// Package starter embeds a small playable content set so skein works out
// of the box, before the player points SKEIN_CONTENT_DIR at a full
// dataforged export or their own overrides.
package starter

import "embed"

//go:embed *.cue
var FS embed.FS
