package game

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/skeinworks/skein/internal/content"
	"github.com/skeinworks/skein/internal/dice"
)

// oracleAnswer is one resolved table consultation.
type oracleAnswer struct {
	table *content.Oracle
	roll  int
	text  string
}

// handleOracle consults one or more oracle tables in a single command.
// Args are table queries; once a word fails to match after at least one
// table has resolved, it and everything after it become a trailing note
// (/oracle action theme why did he lie). The --table flag prints full
// tables instead of rolling.
func handleOracle(ctx context.Context, s *State, args []string, flags map[string]struct{}) error {
	if len(args) == 0 {
		s.listOracles()
		return nil
	}

	if _, ok := flags["table"]; ok {
		for _, query := range args {
			matches := s.Library.MatchOracles(query)
			if len(matches) == 0 {
				s.warn(fmt.Sprintf("Oracle table not found: '%s'", query))
				continue
			}
			s.printOracleTable(matches[0])
		}
		return nil
	}

	var (
		answers     []oracleAnswer
		noteParts   []string
		noteStarted bool
	)

	for _, query := range args {
		if noteStarted {
			noteParts = append(noteParts, query)
			continue
		}

		matches := s.Library.MatchOracles(query)
		if len(matches) == 0 {
			if len(answers) > 0 {
				// First unmatched word after a result starts the note
				noteStarted = true
				noteParts = append(noteParts, query)
			} else {
				s.warn(fmt.Sprintf("Oracle table not found: '%s'", query))
			}
			continue
		}
		if len(matches) > 1 {
			names := make([]string, len(matches))
			for i, m := range matches {
				names[i] = m.Name
			}
			s.warn(fmt.Sprintf("Multiple matches for '%s': %s", query, strings.Join(names, ", ")))
		}
		table := matches[0]

		roll, err := dice.OracleRoll(s.Dice)
		if err != nil {
			return cancelled(s, "Oracle roll cancelled.", err)
		}
		text, ok := table.Lookup(roll)
		if !ok {
			s.warn(fmt.Sprintf("No %s result for %d.", table.Name, roll))
			continue
		}
		answers = append(answers, oracleAnswer{table: table, roll: roll, text: text})
	}

	note := strings.Join(noteParts, " ")
	if note != "" {
		s.info("~ " + note)
		s.addNote(ctx, note)
	}

	for _, a := range answers {
		s.info(fmt.Sprintf("%s [%d]: %s", a.table.Name, a.roll, a.text))
		s.addOracle(ctx, fmt.Sprintf("Oracle [%s] roll %d -> %s", a.table.Name, a.roll, a.text))
	}
	return nil
}

// listOracles prints every loaded table grouped by category.
func (s *State) listOracles() {
	byCategory := map[string][]*content.Oracle{}
	for _, key := range s.Library.OracleKeys() {
		o, _ := s.Library.Oracle(key)
		cat := o.Category
		if cat == "" {
			cat = "Other"
		}
		byCategory[cat] = append(byCategory[cat], o)
	}

	cats := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	s.rule("Oracle Tables")
	for _, cat := range cats {
		names := make([]string, len(byCategory[cat]))
		for i, o := range byCategory[cat] {
			names[i] = o.Key
		}
		sort.Strings(names)
		s.info(fmt.Sprintf("%s: %s", cat, strings.Join(names, "  ")))
	}
	s.info("Usage: /oracle [table] [table...] [note], /oracle [table] --table")
}

// printOracleTable renders every row of one table.
func (s *State) printOracleTable(o *content.Oracle) {
	s.rule(o.Name)
	for _, row := range o.Rows {
		s.info(fmt.Sprintf("%3d-%-3d %s", row.Floor, row.Ceiling, row.Text))
	}
}
