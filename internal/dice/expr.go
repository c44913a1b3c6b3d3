package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadExpr reports a dice expression outside the NdM grammar or
// naming a die the rules do not use.
var ErrBadExpr = errors.New("dice: bad expression")

// maxExprCount bounds how many dice one expression may roll.
const maxExprCount = 10

// ParseExpr parses a dice expression of the form "d6", "d10", "d100"
// or "NdM" ("2d10"). Only the three rule dice are accepted; the count
// defaults to 1 and may not exceed 10.
func ParseExpr(expr string) (count int, kind Kind, err error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	head, sides, found := strings.Cut(s, "d")
	if !found {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadExpr, expr)
	}

	count = 1
	if head != "" {
		count, err = strconv.Atoi(head)
		if err != nil || count < 1 || count > maxExprCount {
			return 0, 0, fmt.Errorf("%w: %q", ErrBadExpr, expr)
		}
	}

	switch sides {
	case "6":
		kind = D6
	case "10":
		kind = D10
	case "100":
		kind = D100
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrBadExpr, expr)
	}
	return count, kind, nil
}
