// Package command turns a raw input line into a structured, validated
// action: a resolved command name, quote-aware positional arguments and
// a flag set. It also resolves abbreviated command names, first through
// a static alias table, then through unique-prefix fuzzy matching.
//
// The dispatch registry that maps names to handlers lives with the game
// loop; this package only parses and matches.
package command

import (
	"strings"
	"unicode"
)

// Marker is the character that introduces a command line.
const Marker = "/"

// flagMarker introduces a flag token anywhere after the command name.
const flagMarker = "--"

// aliases maps single-letter shorthands to canonical command names.
var aliases = map[string]string{
	"m": "move",
	"o": "oracle",
	"c": "char",
	"v": "vow",
	"p": "progress",
	"f": "fulfill",
	"h": "help",
}

// Parsed is one tokenized command line. Constructed fresh per input
// line and discarded after dispatch.
type Parsed struct {
	// Name is the command name, lower-cased and alias-resolved.
	Name string
	// Args are positional arguments in input order. Quoted runs stay
	// one argument with their delimiters stripped.
	Args []string
	// Flags are lower-cased flag names with the marker stripped.
	Flags map[string]struct{}
	// Raw is the original line, for logging.
	Raw string
}

// HasFlag reports whether the named flag was present, in any case.
func (p *Parsed) HasFlag(name string) bool {
	_, ok := p.Flags[strings.ToLower(name)]
	return ok
}

// Parse tokenizes one line. Returns nil when the line is not a command:
// no leading marker, or a marker with nothing after it.
//
// Flags may appear interleaved with positional arguments without
// disturbing positional order.
func Parse(line string) *Parsed {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, Marker) {
		return nil
	}
	body := strings.TrimSpace(strings.TrimPrefix(trimmed, Marker))
	if body == "" {
		return nil
	}

	tokens := splitTokens(body)
	if len(tokens) == 0 {
		return nil
	}

	name := strings.ToLower(tokens[0])
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}

	p := &Parsed{Name: name, Flags: make(map[string]struct{}), Raw: line}
	for _, tok := range tokens[1:] {
		if strings.HasPrefix(tok, flagMarker) && len(tok) > len(flagMarker) {
			p.Flags[strings.ToLower(strings.TrimPrefix(tok, flagMarker))] = struct{}{}
			continue
		}
		p.Args = append(p.Args, tok)
	}
	return p
}

// splitTokens splits on whitespace outside quotes. Single- or
// double-quoted runs become one token with the delimiters stripped and
// internal spaces preserved. An unclosed quote falls back to a plain
// whitespace split rather than failing.
func splitTokens(s string) []string {
	var tokens []string
	var cur strings.Builder
	var quote rune
	inToken := false

	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inToken = true
		case unicode.IsSpace(r):
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}

	if quote != 0 {
		return strings.Fields(s)
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

// FuzzyMatch resolves query against a set of known command names,
// case-insensitively. An exact match wins; otherwise the query must be
// a prefix of exactly one known name. Ambiguous and absent prefixes
// both report no match; ambiguity is never silently resolved.
func FuzzyMatch(query string, known []string) (string, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return "", false
	}

	var prefixed []string
	for _, name := range known {
		lower := strings.ToLower(name)
		if lower == query {
			return name, true
		}
		if strings.HasPrefix(lower, query) {
			prefixed = append(prefixed, name)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], true
	}
	return "", false
}

// Aliases returns a copy of the shorthand table, for help output.
func Aliases() map[string]string {
	out := make(map[string]string, len(aliases))
	for k, v := range aliases {
		out[k] = v
	}
	return out
}
