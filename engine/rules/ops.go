// Package rules turns the raw operator-name → value mappings of the loaded
// ruleset into closed token streams with a deterministic order, shared by
// evaluation and rendering.
package rules

import (
	"sort"
	"strconv"

	"github.com/nholt/zeelore/types"
)

// Requirement operator names, in fixed evaluation order.
const (
	OpDifficultyLevel    = "DifficultyLevel"
	OpDifficultyAdvanced = "DifficultyAdvanced"
	OpMinLevel           = "MinLevel"
	OpMinAdvanced        = "MinAdvanced"
	OpMaxLevel           = "MaxLevel"
	OpMaxAdvanced        = "MaxAdvanced"
)

// Effect operator names, in fixed declaration order. Guards are declared
// last and evaluated first (application walks the order in reverse).
const (
	OpLevel                = "Level"
	OpChangeByAdvanced     = "ChangeByAdvanced"
	OpSetToExactly         = "SetToExactly"
	OpSetToExactlyAdvanced = "SetToExactlyAdvanced"
	OpOnlyIfAtLeast        = "OnlyIfAtLeast"
	OpOnlyIfNoMoreThan     = "OnlyIfNoMoreThan"
)

// RequirementOps is the walk order for requirement tokenization.
var RequirementOps = []string{
	OpDifficultyLevel,
	OpDifficultyAdvanced,
	OpMinLevel,
	OpMinAdvanced,
	OpMaxLevel,
	OpMaxAdvanced,
}

// EffectOps is the walk order for effect tokenization.
var EffectOps = []string{
	OpLevel,
	OpChangeByAdvanced,
	OpSetToExactly,
	OpSetToExactlyAdvanced,
	OpOnlyIfAtLeast,
	OpOnlyIfNoMoreThan,
}

// opInt extracts a numeric operand. JSON decoding yields float64; the
// export occasionally carries numbers as strings.
func opInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	default:
		return 0, false
	}
}

// opText extracts a textual operand (an advanced marker expression).
func opText(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// unknownOps returns the operator names not in the known set, sorted so
// tokenization stays deterministic.
func unknownOps(ops map[string]any, known map[string]bool) []string {
	var names []string
	for name := range ops {
		if !known[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// invalidToken renders an unrecognized operator as-is.
func invalidToken(q *types.Quality, name string, v any) types.Token {
	text := ""
	if s, ok := v.(string); ok {
		text = s
	} else if n, ok := opInt(v); ok {
		text = strconv.Itoa(n)
	}
	return types.Token{Kind: types.TokenInvalid, Quality: q, Name: name, Text: text}
}
