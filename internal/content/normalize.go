package content

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize folds a key or free-text query into the comparison form
// used by fuzzy matching: NFC-normalized, lower-cased, with runs of
// spaces, underscores and hyphens collapsed to single underscores.
// "Pay the Price", "pay_the_price" and "PAY-THE-PRICE" all normalize
// identically.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = strings.ToLower(strings.TrimSpace(s))
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-' || r == '\t'
	})
	return strings.Join(fields, "_")
}

// Slug converts a display name or id segment into a stable table key.
// Same folding as Normalize; the two stay aligned so a slug always
// matches its own name under fuzzy lookup.
func Slug(s string) string {
	return Normalize(s)
}

// MatchOracles returns every oracle whose normalized key or name
// contains the normalized query, sorted by display name. An empty query
// matches nothing. Never errors; no match is an empty slice.
func MatchOracles(query string, table map[string]*Oracle) []*Oracle {
	q := Normalize(query)
	if q == "" {
		return nil
	}
	var out []*Oracle
	for _, o := range table {
		if strings.Contains(Normalize(o.Key), q) || strings.Contains(Normalize(o.Name), q) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// MatchAssets mirrors MatchOracles for the asset table.
func MatchAssets(query string, table map[string]*Asset) []*Asset {
	q := Normalize(query)
	if q == "" {
		return nil
	}
	var out []*Asset
	for _, a := range table {
		if strings.Contains(Normalize(a.Key), q) || strings.Contains(Normalize(a.Name), q) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// MatchMoves mirrors MatchOracles for the move table.
func MatchMoves(query string, table map[string]*Move) []*Move {
	q := Normalize(query)
	if q == "" {
		return nil
	}
	var out []*Move
	for _, m := range table {
		if strings.Contains(Normalize(m.Key), q) || strings.Contains(Normalize(m.Name), q) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
