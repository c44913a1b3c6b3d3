package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/skeinworks/skein/internal/command"
)

// HandlerFunc executes one slash-command against the live state.
type HandlerFunc func(ctx context.Context, s *State, args []string, flags map[string]struct{}) error

// autosaveAfter lists the commands that mutate campaign state and
// therefore trigger an autosave once they complete without error.
var autosaveAfter = map[string]struct{}{
	"move":       {},
	"oracle":     {},
	"roll":       {},
	"vow":        {},
	"progress":   {},
	"fulfill":    {},
	"forsake":    {},
	"health":     {},
	"spirit":     {},
	"supply":     {},
	"momentum":   {},
	"burn":       {},
	"debility":   {},
	"asset":      {},
	"settings":   {},
	"newsession": {},
}

// Registry maps command names to handlers, preserving registration order
// for help output.
type Registry struct {
	order    []string
	handlers map[string]HandlerFunc
	help     map[string]string
}

// NewRegistry returns a registry with every built-in command installed.
func NewRegistry() *Registry {
	r := &Registry{
		handlers: make(map[string]HandlerFunc),
		help:     make(map[string]string),
	}

	r.Register("move", "resolve a move (e.g. /move strike, alias /m)", handleMove)
	r.Register("oracle", "consult oracle tables (e.g. /oracle action theme, alias /o)", handleOracle)
	r.Register("roll", "raw dice roll (e.g. /roll d6, /roll 2d10)", handleRoll)
	r.Register("char", "show the character sheet (alias /c)", handleChar)
	r.Register("health", "adjust health (/health +1 or -1)", trackHandler("health"))
	r.Register("spirit", "adjust spirit (/spirit +1 or -1)", trackHandler("spirit"))
	r.Register("supply", "adjust supply (/supply +1 or -1)", trackHandler("supply"))
	r.Register("momentum", "adjust momentum (/momentum +2 or -1)", handleMomentum)
	r.Register("burn", "burn momentum to improve the last action roll", handleBurn)
	r.Register("debility", "toggle a debility (e.g. /debility wounded)", handleDebility)
	r.Register("asset", "browse assets or work an equipped one", handleAsset)
	r.Register("vow", "swear a vow (/vow dangerous Find the beacon, alias /v)", handleVow)
	r.Register("progress", "mark progress on a vow (alias /p)", handleProgress)
	r.Register("fulfill", "roll to fulfill a vow (alias /f)", handleFulfill)
	r.Register("forsake", "forsake a vow, paying its spirit cost", handleForsake)
	r.Register("note", "add a scene note (/note the airlock is jammed)", handleNote)
	r.Register("log", "show this session's log so far", handleLog)
	r.Register("help", "show help (/help, /help moves, /help oracles, alias /h)", handleHelp)
	r.Register("settings", "show or change settings (/settings dice mixed)", handleSettings)
	r.Register("newsession", "close this session and begin the next", handleNewSession)
	r.Register("end", "end the session: save, export, quit", handleEnd)
	r.Register("quit", "quit without saving", handleQuit)

	return r
}

// Register installs a handler under a name with a one-line help string.
func (r *Registry) Register(name, help string, fn HandlerFunc) {
	if _, exists := r.handlers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.handlers[name] = fn
	r.help[name] = help
}

// Names returns the registered command names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Help returns the help line for a command, or "".
func (r *Registry) Help(name string) string {
	return r.help[name]
}

// Dispatch routes a parsed command to its handler. Unknown names go
// through fuzzy matching first: a unique prefix runs that command, an
// ambiguous one prints suggestions, anything else prints an error.
// The command never fails the loop; handler errors are shown to the
// player and swallowed here.
func (r *Registry) Dispatch(ctx context.Context, s *State, cmd *command.Parsed) {
	name := cmd.Name
	handler, ok := r.handlers[name]
	if !ok {
		if match, found := command.FuzzyMatch(name, r.order); found {
			name = match
			handler = r.handlers[name]
		} else {
			r.reportUnknown(s, cmd.Name)
			return
		}
	}

	if err := handler(ctx, s, cmd.Args, cmd.Flags); err != nil {
		s.problem(err.Error())
		s.logger().Warn("command failed", "command", name, "error", err)
		return
	}

	if _, saves := autosaveAfter[name]; saves {
		s.autosave()
	}
}

// reportUnknown prints prefix suggestions when any exist, otherwise a
// plain unknown-command error.
func (r *Registry) reportUnknown(s *State, name string) {
	var close []string
	for _, known := range r.order {
		if strings.HasPrefix(known, name) {
			close = append(close, "/"+known)
		}
	}
	if len(close) > 0 {
		s.warn(fmt.Sprintf("Unknown command '/%s'. Did you mean: %s?", name, strings.Join(close, ", ")))
		return
	}
	s.problem(fmt.Sprintf("Unknown command '/%s'. Type /help for commands.", name))
}
