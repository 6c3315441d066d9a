// Package effects applies compiled effect tokens to a save. Guards are
// checked before any mutation, so a gated effect either runs completely
// or leaves the save untouched.
package effects

import (
	"log/slog"

	"github.com/nholt/zeelore/engine/savestate"
	"github.com/nholt/zeelore/types"
)

// Apply runs one effect against the save. It returns false when a guard
// rejected the effect or when the token stream held nothing applicable.
// Guard checks read through Peek so a rejected effect never materializes
// a save entry for its quality.
func Apply(eff types.Effect, sv *savestate.Save, log *slog.Logger) bool {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	for _, tok := range eff.Tokens {
		if !guardHolds(tok, sv) {
			return false
		}
	}

	applied := false
	for _, tok := range eff.Tokens {
		switch tok.Kind {
		case types.TokenAdd:
			sv.Quality(tok.Quality.ID).IncreaseBy(tok.Value)
			applied = true

		case types.TokenSet:
			sv.Quality(tok.Quality.ID).SetValue(tok.Value)
			applied = true

		case types.TokenAddAdv, types.TokenSetAdv:
			// Formula-valued changes need an expression evaluator the
			// runtime does not have. Recognized, reported, skipped.
			log.Warn("advanced effect operator not supported",
				"quality", tok.Quality.Name, "text", tok.Text)

		case types.TokenInvalid:
			log.Warn("skipping invalid effect token",
				"quality", tok.Quality.Name, "operator", tok.Name)
		}
	}
	return applied
}

// guardHolds evaluates a single guard token against the save without
// materializing entries. Non-guard tokens always hold.
func guardHolds(tok types.Token, sv *savestate.Save) bool {
	switch tok.Kind {
	case types.TokenIfAtLeast, types.TokenIfNoMoreThan, types.TokenIfEqual, types.TokenIfRange:
	default:
		return true
	}
	v, _ := sv.Peek(tok.Quality.ID)
	switch tok.Kind {
	case types.TokenIfAtLeast:
		return v >= tok.Value
	case types.TokenIfNoMoreThan:
		return v <= tok.Value
	case types.TokenIfEqual:
		return v == tok.Value
	case types.TokenIfRange:
		return v >= tok.Value && v <= tok.High
	}
	return true
}
