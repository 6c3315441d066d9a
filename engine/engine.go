// Package engine resolves player actions against the quality catalog and
// a save: requirement checks gate the action, the outcome branch is
// selected, rare variants roll, and the branch effects run.
package engine

import (
	"log/slog"

	"github.com/nholt/zeelore/engine/effects"
	"github.com/nholt/zeelore/engine/registry"
	"github.com/nholt/zeelore/engine/savestate"
	"github.com/nholt/zeelore/types"
)

// Classification is the aggregate verdict of an action's requirements.
type Classification int

const (
	// ClassDefault means every evaluated requirement held and no
	// challenge tipped the action either way.
	ClassDefault Classification = iota
	// ClassSuccess means a challenge was won.
	ClassSuccess
	// ClassFailure means a challenge was lost; the action still runs,
	// through its default branch.
	ClassFailure
	// ClassLocked means a hard numeric requirement failed and the
	// action cannot run at all.
	ClassLocked
)

// String returns the verdict name for logs and rendering.
func (c Classification) String() string {
	switch c {
	case ClassDefault:
		return "DEFAULT"
	case ClassSuccess:
		return "SUCCESS"
	case ClassFailure:
		return "FAILURE"
	case ClassLocked:
		return "LOCKED"
	}
	return "UNKNOWN"
}

// Combine merges two requirement verdicts. Locked dominates everything,
// a lost challenge dominates a won one, and Default yields to anything.
func Combine(a, b Classification) Classification {
	if b > a {
		return b
	}
	return a
}

// ChanceSource supplies percentage draws in [0, 100) for rare-outcome
// selection. *RNG satisfies it; tests substitute a fixed source.
type ChanceSource interface {
	Chance() int
}

// Engine evaluates requirements and resolves actions.
type Engine struct {
	reg *registry.Registry
	src ChanceSource
	log *slog.Logger
}

// New creates an engine over the catalog using src for rare-outcome
// draws.
func New(reg *registry.Registry, src ChanceSource, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{reg: reg, src: src, log: log}
}

// Check evaluates a requirement list against the save and combines the
// per-requirement verdicts.
func (e *Engine) Check(reqs []types.Requirement, sv *savestate.Save) Classification {
	result := ClassDefault
	for _, req := range reqs {
		result = Combine(result, e.checkOne(req, sv))
	}
	return result
}

// checkOne evaluates one requirement's tokens against the current value
// of its quality. The display modifier never counts toward a gate. Only
// the hard numeric comparisons gate the action; challenge tokens carry
// odds for display but are not rolled here, so a challenged action
// resolves through its default branch.
func (e *Engine) checkOne(req types.Requirement, sv *savestate.Save) Classification {
	v, _ := sv.Peek(req.Quality.ID)
	for _, tok := range req.Tokens {
		switch tok.Kind {
		case types.TokenMin:
			if tok.Text != "" {
				continue // formula bound, not comparable
			}
			if v < tok.Value {
				return ClassLocked
			}
		case types.TokenMax:
			if tok.Text != "" {
				continue
			}
			if v > tok.Value {
				return ClassLocked
			}
		case types.TokenEqual:
			if v != tok.Value {
				return ClassLocked
			}
		case types.TokenRange:
			if v < tok.Value || v > tok.High {
				return ClassLocked
			}
		case types.TokenChallenge, types.TokenLuck, types.TokenChallengeAdv:
			e.log.Debug("challenge requirement not rolled",
				"quality", req.Quality.Name, "cap", tok.Value)
		case types.TokenInvalid:
			e.log.Warn("skipping invalid requirement token",
				"quality", req.Quality.Name, "operator", tok.Name)
		}
	}
	return ClassDefault
}

// Do resolves an action against the save, repeats times, and returns the
// outcome branch taken on each completed iteration. A Locked verdict
// stops the loop before that iteration touches the save, so the result
// may be shorter than repeats.
func (e *Engine) Do(act *types.Action, sv *savestate.Save, repeats int) []types.OutcomeKind {
	results := make([]types.OutcomeKind, 0, repeats)
	for i := 0; i < repeats; i++ {
		verdict := e.Check(act.Requirements, sv)
		if verdict == ClassLocked {
			e.log.Info("action locked", "action", act.Name, "iteration", i)
			return results
		}
		kind := types.OutcomeDefault
		if verdict == ClassSuccess {
			kind = types.OutcomeSuccess
		}
		kind = e.maybeRare(act, kind)

		out := act.Outcomes[kind]
		if out == nil {
			e.log.Warn("action has no branch for verdict",
				"action", act.Name, "verdict", verdict.String())
			continue
		}
		for _, eff := range out.Effects {
			effects.Apply(eff, sv, e.log)
		}
		results = append(results, kind)
	}
	return results
}

// maybeRare rolls the rare sibling of the chosen branch. A rare branch
// replaces its base when one exists and a single draw in [0, 100) lands
// under its chance percentage.
func (e *Engine) maybeRare(act *types.Action, kind types.OutcomeKind) types.OutcomeKind {
	rare := kind + 1
	sibling := act.Outcomes[rare]
	if sibling == nil || sibling.Chance <= 0 {
		return kind
	}
	if e.src.Chance() < sibling.Chance {
		return rare
	}
	return kind
}
