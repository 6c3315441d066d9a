package rules

import (
	"log/slog"
	"math"

	"github.com/nholt/zeelore/types"
)

// ChallengeCap converts a raw difficulty into the quality level needed for
// a 100% success chance. The Luck quality inverts the math: its cap is a
// probability offset, not a level.
func ChallengeCap(difficulty int, q *types.Quality) int {
	if q.IsLuck {
		return 50 - difficulty*q.DifficultyScaler
	}
	if q.DifficultyScaler == 0 {
		return difficulty
	}
	return int(math.Ceil(float64(difficulty*100) / float64(q.DifficultyScaler)))
}

// TokenizeRequirement compiles a raw requirement operator set into tokens,
// walking operator names in the fixed requirement order (not insertion
// order). Min/Max pairs on the same value collapse into EQUAL; adjacent
// pairs (max = min+1) collapse into RANGE. Unknown names become INVALID
// tokens and are reported as data-integrity warnings.
func TokenizeRequirement(req types.Requirement, log *slog.Logger) []types.Token {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	q := req.Quality
	var tokens []types.Token

	known := map[string]bool{}
	for _, name := range RequirementOps {
		known[name] = true
	}

	minVal, hasMin := 0, false
	if v, ok := req.Ops[OpMinLevel]; ok {
		minVal, hasMin = opInt(v)
	}
	maxVal, hasMax := 0, false
	if v, ok := req.Ops[OpMaxLevel]; ok {
		maxVal, hasMax = opInt(v)
	}

	for _, name := range RequirementOps {
		v, ok := req.Ops[name]
		if !ok {
			continue
		}
		switch name {
		case OpDifficultyLevel:
			d, ok := opInt(v)
			if !ok {
				tokens = append(tokens, invalidToken(q, name, v))
				continue
			}
			kind := types.TokenChallenge
			if q.IsLuck {
				kind = types.TokenLuck
			}
			tokens = append(tokens, types.Token{
				Kind:    kind,
				Quality: q,
				Value:   ChallengeCap(d, q),
				Scaler:  q.DifficultyScaler,
			})

		case OpDifficultyAdvanced:
			text, _ := opText(v)
			tokens = append(tokens, types.Token{
				Kind:    types.TokenChallengeAdv,
				Quality: q,
				Text:    text,
				Scaler:  q.DifficultyScaler,
			})

		case OpMinLevel:
			if hasMax {
				switch {
				case maxVal == minVal:
					tokens = append(tokens, types.Token{Kind: types.TokenEqual, Quality: q, Value: minVal})
				case maxVal == minVal+1:
					tokens = append(tokens, types.Token{Kind: types.TokenRange, Quality: q, Value: minVal, High: maxVal})
				default:
					tokens = append(tokens, types.Token{Kind: types.TokenMin, Quality: q, Value: minVal})
				}
				continue
			}
			tokens = append(tokens, types.Token{Kind: types.TokenMin, Quality: q, Value: minVal})

		case OpMaxLevel:
			// Collapsed pairs were emitted by the MinLevel case.
			if hasMin && (maxVal == minVal || maxVal == minVal+1) {
				continue
			}
			tokens = append(tokens, types.Token{Kind: types.TokenMax, Quality: q, Value: maxVal})

		case OpMinAdvanced:
			text, _ := opText(v)
			tokens = append(tokens, types.Token{Kind: types.TokenMin, Quality: q, Text: text})

		case OpMaxAdvanced:
			text, _ := opText(v)
			tokens = append(tokens, types.Token{Kind: types.TokenMax, Quality: q, Text: text})
		}
	}

	for _, name := range unknownOps(req.Ops, known) {
		log.Warn("unknown requirement operator", "quality", q.Name, "operator", name)
		tokens = append(tokens, invalidToken(q, name, req.Ops[name]))
	}

	return tokens
}
