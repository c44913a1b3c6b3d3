package content

import (
	"fmt"
	"io/fs"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileError is a content authoring error with source position when
// CUE can supply one.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := cueerrors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}

// loadOverrides compiles every *.cue file at the content root into one
// unified value and extracts the oracle, move and asset overrides.
//
// Top-level fields:
//
//	oracle: <key>: {name?, category?, table: [{low, high, text}, ...]}
//	move:   <key>: {name?, category?, trigger?, text?, stats?,
//	                progress_move?, strong_hit?, weak_hit?, miss?,
//	                momentum_on_strong?, momentum_on_weak?}
//	asset:  <key>: {name?, category?, description?, abilities?,
//	                track?: <name>: {min, max}, inputs?, shared?}
//
// Rows failing the sanity floor (low > high, empty text) are skipped
// and reported as warnings, not errors; vet surfaces them to authors.
func loadOverrides(fsys fs.FS) (*tables, []string, error) {
	names, err := fs.Glob(fsys, "*.cue")
	if err != nil {
		return nil, nil, fmt.Errorf("content: scan overrides: %w", err)
	}
	t := newTables()
	if len(names) == 0 {
		return t, nil, nil
	}
	// Unify in name order so collisions resolve the same way every load.
	sort.Strings(names)

	ctx := cuecontext.New()
	var merged cue.Value
	for i, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, nil, fmt.Errorf("content: read %s: %w", name, err)
		}
		v := ctx.CompileBytes(data, cue.Filename(name))
		if err := v.Err(); err != nil {
			return nil, nil, formatCUEError(err)
		}
		if i == 0 {
			merged = v
		} else {
			merged = merged.Unify(v)
		}
	}
	if err := merged.Validate(); err != nil {
		return nil, nil, formatCUEError(err)
	}

	var warnings []string

	if ov := merged.LookupPath(cue.ParsePath("oracle")); ov.Exists() {
		iter, err := ov.Fields()
		if err != nil {
			return nil, nil, formatCUEError(err)
		}
		for iter.Next() {
			oracle, warns, err := compileOracle(iter.Label(), iter.Value())
			if err != nil {
				return nil, nil, err
			}
			warnings = append(warnings, warns...)
			t.oracles[oracle.Key] = oracle
		}
	}

	if mv := merged.LookupPath(cue.ParsePath("move")); mv.Exists() {
		iter, err := mv.Fields()
		if err != nil {
			return nil, nil, formatCUEError(err)
		}
		for iter.Next() {
			move, err := compileMove(iter.Label(), iter.Value())
			if err != nil {
				return nil, nil, err
			}
			t.moves[move.Key] = move
		}
	}

	if av := merged.LookupPath(cue.ParsePath("asset")); av.Exists() {
		iter, err := av.Fields()
		if err != nil {
			return nil, nil, formatCUEError(err)
		}
		for iter.Next() {
			asset, err := compileAsset(iter.Label(), iter.Value())
			if err != nil {
				return nil, nil, err
			}
			t.assets[asset.Key] = asset
		}
	}

	return t, warnings, nil
}

// compileOracle parses one oracle override. The table field is
// required; name defaults to the key.
func compileOracle(label string, v cue.Value) (*Oracle, []string, error) {
	oracle := &Oracle{Key: Slug(label), Name: label}

	if nameVal := v.LookupPath(cue.ParsePath("name")); nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return nil, nil, formatCUEError(err)
		}
		oracle.Name = name
	}
	if catVal := v.LookupPath(cue.ParsePath("category")); catVal.Exists() {
		category, err := catVal.String()
		if err != nil {
			return nil, nil, formatCUEError(err)
		}
		oracle.Category = category
	}

	tableVal := v.LookupPath(cue.ParsePath("table"))
	if !tableVal.Exists() {
		return nil, nil, &CompileError{
			Field:   "oracle." + label,
			Message: "table is required",
			Pos:     v.Pos(),
		}
	}
	rowIter, err := tableVal.List()
	if err != nil {
		return nil, nil, formatCUEError(err)
	}

	var warnings []string
	for rowIter.Next() {
		row, err := compileRow(rowIter.Value())
		if err != nil {
			return nil, nil, err
		}
		if row.Floor > row.Ceiling || row.Text == "" {
			warnings = append(warnings, fmt.Sprintf(
				"oracle %s: skipped row (%d, %d, %q)",
				oracle.Key, row.Floor, row.Ceiling, row.Text))
			continue
		}
		oracle.Rows = append(oracle.Rows, row)
	}
	return oracle, warnings, nil
}

func compileRow(v cue.Value) (Row, error) {
	low, err := v.LookupPath(cue.ParsePath("low")).Int64()
	if err != nil {
		return Row{}, formatCUEError(err)
	}
	high, err := v.LookupPath(cue.ParsePath("high")).Int64()
	if err != nil {
		return Row{}, formatCUEError(err)
	}
	text, err := v.LookupPath(cue.ParsePath("text")).String()
	if err != nil {
		return Row{}, formatCUEError(err)
	}
	return Row{Floor: int(low), Ceiling: int(high), Text: text}, nil
}

// compileMove parses one move override. Every field is optional; the
// name defaults to the key.
func compileMove(label string, v cue.Value) (*Move, error) {
	move := &Move{Key: Slug(label), Name: label}

	strField := func(path string, dst *string) error {
		fv := v.LookupPath(cue.ParsePath(path))
		if !fv.Exists() {
			return nil
		}
		s, err := fv.String()
		if err != nil {
			return formatCUEError(err)
		}
		*dst = s
		return nil
	}
	for path, dst := range map[string]*string{
		"name":       &move.Name,
		"category":   &move.Category,
		"trigger":    &move.Trigger,
		"text":       &move.Text,
		"strong_hit": &move.Outcomes.StrongHit,
		"weak_hit":   &move.Outcomes.WeakHit,
		"miss":       &move.Outcomes.Miss,
	} {
		if err := strField(path, dst); err != nil {
			return nil, err
		}
	}

	if sv := v.LookupPath(cue.ParsePath("stats")); sv.Exists() {
		iter, err := sv.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			stat, err := iter.Value().String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			move.Stats = append(move.Stats, stat)
		}
	}

	if pv := v.LookupPath(cue.ParsePath("progress_move")); pv.Exists() {
		progress, err := pv.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		move.ProgressMove = progress
	}

	for path, dst := range map[string]*int{
		"momentum_on_strong": &move.MomentumOnStrong,
		"momentum_on_weak":   &move.MomentumOnWeak,
	} {
		mv := v.LookupPath(cue.ParsePath(path))
		if !mv.Exists() {
			continue
		}
		n, err := mv.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		*dst = int(n)
	}

	return move, nil
}

// compileAsset parses one asset override.
func compileAsset(label string, v cue.Value) (*Asset, error) {
	asset := &Asset{Key: Slug(label), Name: label, Tracks: make(map[string]TrackBounds)}

	strField := func(path string, dst *string) error {
		fv := v.LookupPath(cue.ParsePath(path))
		if !fv.Exists() {
			return nil
		}
		s, err := fv.String()
		if err != nil {
			return formatCUEError(err)
		}
		*dst = s
		return nil
	}
	for path, dst := range map[string]*string{
		"name":        &asset.Name,
		"category":    &asset.Category,
		"description": &asset.Description,
	} {
		if err := strField(path, dst); err != nil {
			return nil, err
		}
	}

	if av := v.LookupPath(cue.ParsePath("abilities")); av.Exists() {
		iter, err := av.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			ability, err := compileAbility(iter.Value())
			if err != nil {
				return nil, err
			}
			asset.Abilities = append(asset.Abilities, ability)
		}
	}

	if tv := v.LookupPath(cue.ParsePath("track")); tv.Exists() {
		iter, err := tv.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			bounds, err := compileBounds(iter.Value())
			if err != nil {
				return nil, err
			}
			asset.Tracks[iter.Label()] = bounds
		}
	}

	if iv := v.LookupPath(cue.ParsePath("inputs")); iv.Exists() {
		iter, err := iv.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			input, err := iter.Value().String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			asset.Inputs = append(asset.Inputs, input)
		}
	}

	if sv := v.LookupPath(cue.ParsePath("shared")); sv.Exists() {
		shared, err := sv.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		asset.Shared = shared
	}

	return asset, nil
}

func compileAbility(v cue.Value) (Ability, error) {
	text, err := v.LookupPath(cue.ParsePath("text")).String()
	if err != nil {
		return Ability{}, formatCUEError(err)
	}
	ability := Ability{Text: text}
	if ev := v.LookupPath(cue.ParsePath("enabled")); ev.Exists() {
		enabled, err := ev.Bool()
		if err != nil {
			return Ability{}, formatCUEError(err)
		}
		ability.Enabled = enabled
	}
	return ability, nil
}

func compileBounds(v cue.Value) (TrackBounds, error) {
	lo, err := v.LookupPath(cue.ParsePath("min")).Int64()
	if err != nil {
		return TrackBounds{}, formatCUEError(err)
	}
	hi, err := v.LookupPath(cue.ParsePath("max")).Int64()
	if err != nil {
		return TrackBounds{}, formatCUEError(err)
	}
	return TrackBounds{Min: int(lo), Max: int(hi)}, nil
}
