package rules

import (
	"log/slog"

	"github.com/nholt/zeelore/types"
)

// TokenizeEffect compiles a raw effect operator set into tokens, walking
// names in the fixed effect order. Guard pairs with equal values collapse
// into IFEQUAL, adjacent values into IFRANGE; otherwise each guard
// survives independently. An effect combining Level with SetToExactly is a
// data-integrity defect, reported but still tokenized.
func TokenizeEffect(eff types.Effect, log *slog.Logger) []types.Token {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	q := eff.Quality
	var tokens []types.Token

	known := map[string]bool{}
	for _, name := range EffectOps {
		known[name] = true
	}

	if _, hasLevel := eff.Ops[OpLevel]; hasLevel {
		if _, hasSet := eff.Ops[OpSetToExactly]; hasSet {
			log.Error("effect combines Level with SetToExactly", "quality", q.Name)
		}
	}

	atLeast, hasAtLeast := 0, false
	if v, ok := eff.Ops[OpOnlyIfAtLeast]; ok {
		atLeast, hasAtLeast = opInt(v)
	}
	noMore, hasNoMore := 0, false
	if v, ok := eff.Ops[OpOnlyIfNoMoreThan]; ok {
		noMore, hasNoMore = opInt(v)
	}

	for _, name := range EffectOps {
		v, ok := eff.Ops[name]
		if !ok {
			continue
		}
		switch name {
		case OpLevel:
			n, ok := opInt(v)
			if !ok {
				tokens = append(tokens, invalidToken(q, name, v))
				continue
			}
			tokens = append(tokens, types.Token{Kind: types.TokenAdd, Quality: q, Value: n})

		case OpSetToExactly:
			n, ok := opInt(v)
			if !ok {
				tokens = append(tokens, invalidToken(q, name, v))
				continue
			}
			tokens = append(tokens, types.Token{Kind: types.TokenSet, Quality: q, Value: n})

		case OpChangeByAdvanced:
			text, _ := opText(v)
			tokens = append(tokens, types.Token{Kind: types.TokenAddAdv, Quality: q, Text: text})

		case OpSetToExactlyAdvanced:
			text, _ := opText(v)
			tokens = append(tokens, types.Token{Kind: types.TokenSetAdv, Quality: q, Text: text})

		case OpOnlyIfAtLeast:
			if hasNoMore {
				switch {
				case noMore == atLeast:
					tokens = append(tokens, types.Token{Kind: types.TokenIfEqual, Quality: q, Value: atLeast})
				case noMore == atLeast+1:
					tokens = append(tokens, types.Token{Kind: types.TokenIfRange, Quality: q, Value: atLeast, High: noMore})
				default:
					tokens = append(tokens, types.Token{Kind: types.TokenIfAtLeast, Quality: q, Value: atLeast})
				}
				continue
			}
			tokens = append(tokens, types.Token{Kind: types.TokenIfAtLeast, Quality: q, Value: atLeast})

		case OpOnlyIfNoMoreThan:
			if hasAtLeast && (noMore == atLeast || noMore == atLeast+1) {
				continue
			}
			tokens = append(tokens, types.Token{Kind: types.TokenIfNoMoreThan, Quality: q, Value: noMore})
		}
	}

	for _, name := range unknownOps(eff.Ops, known) {
		log.Warn("unknown effect operator", "quality", q.Name, "operator", name)
		tokens = append(tokens, invalidToken(q, name, eff.Ops[name]))
	}

	return tokens
}
