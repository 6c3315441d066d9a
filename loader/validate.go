package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nholt/zeelore/types"
)

// Report collects referential-integrity findings over a compiled
// ruleset. Errors mark data the engine will skip or misread at runtime;
// warnings mark oddities it tolerates. A report never blocks loading.
type Report struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether the ruleset passed with no errors.
func (r *Report) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Report) String() string {
	return fmt.Sprintf("%d error(s), %d warning(s):\n  %s",
		len(r.Errors), len(r.Warnings),
		strings.Join(append(append([]string{}, r.Errors...), r.Warnings...), "\n  "))
}

func (r *Report) errf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// validate checks the compiled defs for referential integrity and
// consistency. Events are walked in id order so findings are stable.
func validate(defs *Defs) *Report {
	rep := &Report{}

	ids := make([]int, 0, len(defs.Events))
	for id := range defs.Events {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		ev := defs.Events[id]
		where := fmt.Sprintf("event %d (%s)", ev.ID, ev.Name)

		if ev.LocationID != 0 {
			if _, ok := defs.Locations[ev.LocationID]; !ok {
				rep.warnf("%s limited to undefined area %d", where, ev.LocationID)
			}
		}
		validateRequirements(ev.Requirements, where, defs, rep)
		validateEffects(ev.Effects, where, defs, rep)

		for _, act := range ev.Actions {
			aw := fmt.Sprintf("%s action %d (%s)", where, act.ID, act.Name)
			validateRequirements(act.Requirements, aw, defs, rep)

			if act.Outcomes[types.OutcomeDefault] == nil {
				rep.errf("%s has no default outcome", aw)
			}
			for _, out := range act.Outcomes {
				if out == nil {
					continue
				}
				validateEffects(out.Effects, aw, defs, rep)
				if out.Chance < 0 || out.Chance > 100 {
					rep.warnf("%s outcome %q chance %d outside 0-100", aw, out.Name, out.Chance)
				}
				if out.Trigger != 0 {
					if _, ok := defs.Events[out.Trigger]; !ok {
						rep.warnf("%s outcome %q links to undefined event %d", aw, out.Name, out.Trigger)
					}
				}
				if out.MoveToArea != 0 {
					if _, ok := defs.Locations[out.MoveToArea]; !ok {
						rep.warnf("%s outcome %q moves to undefined area %d", aw, out.Name, out.MoveToArea)
					}
				}
			}
			if rare := act.Outcomes[types.OutcomeRareDefault]; rare != nil && act.Outcomes[types.OutcomeDefault] == nil {
				rep.warnf("%s has a rare default branch but no default", aw)
			}
			if rare := act.Outcomes[types.OutcomeRareSuccess]; rare != nil && act.Outcomes[types.OutcomeSuccess] == nil {
				rep.warnf("%s has a rare success branch but no success", aw)
			}
		}
	}
	return rep
}

func validateRequirements(reqs []types.Requirement, where string, defs *Defs, rep *Report) {
	for _, req := range reqs {
		if defs.Qualities.Get(req.Quality.ID) == nil {
			rep.warnf("%s requires undefined quality %d", where, req.Quality.ID)
		}
		for _, tok := range req.Tokens {
			if tok.Kind == types.TokenInvalid {
				rep.errf("%s uses unknown requirement operator %q on quality %s",
					where, tok.Name, req.Quality.Name)
			}
		}
	}
}

func validateEffects(effs []types.Effect, where string, defs *Defs, rep *Report) {
	for _, eff := range effs {
		if defs.Qualities.Get(eff.Quality.ID) == nil {
			rep.warnf("%s affects undefined quality %d", where, eff.Quality.ID)
		}
		_, hasLevel := eff.Ops["Level"]
		_, hasSet := eff.Ops["SetToExactly"]
		if hasLevel && hasSet {
			rep.errf("%s combines Level with SetToExactly on quality %s", where, eff.Quality.Name)
		}
		for _, tok := range eff.Tokens {
			if tok.Kind == types.TokenInvalid {
				rep.errf("%s uses unknown effect operator %q on quality %s",
					where, tok.Name, eff.Quality.Name)
			}
		}
	}
}
