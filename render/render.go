// Package render formats catalog entries, compiled rules and resolution
// results as plain text for the CLI.
package render

import (
	"fmt"
	"strings"

	"github.com/nholt/zeelore/engine/refs"
	"github.com/nholt/zeelore/types"
)

// outcomeLabels maps branch kinds to their display names.
var outcomeLabels = [types.OutcomeKinds]string{
	types.OutcomeDefault:     "Default",
	types.OutcomeRareDefault: "RareDefault",
	types.OutcomeSuccess:     "Success",
	types.OutcomeRareSuccess: "RareSuccess",
}

// OutcomeKindLabel returns the display name of an outcome branch.
func OutcomeKindLabel(kind types.OutcomeKind) string {
	if kind < 0 || int(kind) >= types.OutcomeKinds {
		return "Unknown"
	}
	return outcomeLabels[kind]
}

// TokenString formats one compiled token as a comparison or mutation
// clause.
func TokenString(tok types.Token) string {
	name := "?"
	if tok.Quality != nil {
		name = tok.Quality.Name
	}
	switch tok.Kind {
	case types.TokenMin:
		if tok.Text != "" {
			return fmt.Sprintf("%s ≥ %s", name, tok.Text)
		}
		return fmt.Sprintf("%s ≥ %d", name, tok.Value)
	case types.TokenMax:
		if tok.Text != "" {
			return fmt.Sprintf("%s ≤ %s", name, tok.Text)
		}
		return fmt.Sprintf("%s ≤ %d", name, tok.Value)
	case types.TokenEqual:
		return fmt.Sprintf("%s = %d", name, tok.Value)
	case types.TokenRange:
		return fmt.Sprintf("%s in %d..%d", name, tok.Value, tok.High)
	case types.TokenChallenge:
		return fmt.Sprintf("%s challenge (100%% at %d)", name, tok.Value)
	case types.TokenLuck:
		return fmt.Sprintf("%s: %d%% chance", name, tok.Value)
	case types.TokenChallengeAdv:
		return fmt.Sprintf("%s challenge vs %s", name, tok.Text)
	case types.TokenAdd:
		return fmt.Sprintf("%s %+d", name, tok.Value)
	case types.TokenSet:
		return fmt.Sprintf("%s := %d", name, tok.Value)
	case types.TokenAddAdv:
		return fmt.Sprintf("%s += %s", name, tok.Text)
	case types.TokenSetAdv:
		return fmt.Sprintf("%s := %s", name, tok.Text)
	case types.TokenIfAtLeast:
		return fmt.Sprintf("if %s ≥ %d", name, tok.Value)
	case types.TokenIfNoMoreThan:
		return fmt.Sprintf("if %s ≤ %d", name, tok.Value)
	case types.TokenIfEqual:
		return fmt.Sprintf("if %s = %d", name, tok.Value)
	case types.TokenIfRange:
		return fmt.Sprintf("if %s in %d..%d", name, tok.Value, tok.High)
	}
	return fmt.Sprintf("%s %s=%v (unrecognized)", name, tok.Name, tok.Text)
}

// Tokens joins a token list into one clause string.
func Tokens(tokens []types.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		parts = append(parts, TokenString(tok))
	}
	return strings.Join(parts, ", ")
}

// Renderer formats compound structures, resolving embedded text markers
// through res when one is supplied.
type Renderer struct {
	res  *refs.Resolver
	tmpl refs.Templates
}

// New creates a renderer. res may be nil, leaving marker text raw.
func New(res *refs.Resolver) *Renderer {
	return &Renderer{res: res, tmpl: refs.DefaultTemplates()}
}

func (r *Renderer) text(s string) string {
	if r.res == nil {
		return s
	}
	return r.res.Resolve(s, r.tmpl)
}

// Quality formats one catalog entry header line.
func (r *Renderer) Quality(q *types.Quality) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\t%s", q.ID, q.Name)
	if q.Cap > 0 {
		fmt.Fprintf(&b, " (cap %d)", q.Cap)
	}
	if q.UsePyramidNumbers {
		b.WriteString(" [pyramid]")
	}
	return b.String()
}

// Requirement formats one compiled requirement.
func (r *Renderer) Requirement(req types.Requirement) string {
	return Tokens(req.Tokens)
}

// Effect formats one compiled effect.
func (r *Renderer) Effect(eff types.Effect) string {
	return Tokens(eff.Tokens)
}

// Outcome formats one outcome branch as an indented block.
func (r *Renderer) Outcome(out *types.Outcome) []string {
	head := OutcomeKindLabel(out.Kind)
	if out.Chance > 0 {
		head = fmt.Sprintf("%s (%d%%)", head, out.Chance)
	}
	if out.Name != "" {
		head = fmt.Sprintf("%s: %s", head, r.text(out.Name))
	}
	lines := []string{head}
	for _, eff := range out.Effects {
		lines = append(lines, "  "+r.Effect(eff))
	}
	if out.Trigger != 0 {
		lines = append(lines, fmt.Sprintf("  → event %d", out.Trigger))
	}
	if out.MoveToArea != 0 {
		lines = append(lines, fmt.Sprintf("  → area %d", out.MoveToArea))
	}
	return lines
}

// Action formats one action with its requirements and branches.
func (r *Renderer) Action(act *types.Action) []string {
	lines := []string{fmt.Sprintf("%d\t%s", act.ID, r.text(act.Name))}
	for _, req := range act.Requirements {
		lines = append(lines, "  requires "+r.Requirement(req))
	}
	for _, out := range act.Outcomes {
		if out == nil {
			continue
		}
		for _, l := range r.Outcome(out) {
			lines = append(lines, "  "+l)
		}
	}
	return lines
}

// Event formats an event header with its actions.
func (r *Renderer) Event(ev *types.Event) []string {
	lines := []string{fmt.Sprintf("%d\t%s", ev.ID, r.text(ev.Name))}
	if ev.Description != "" {
		lines = append(lines, "  "+r.text(ev.Description))
	}
	for _, req := range ev.Requirements {
		lines = append(lines, "  requires "+r.Requirement(req))
	}
	for i := range ev.Actions {
		for _, l := range r.Action(&ev.Actions[i]) {
			lines = append(lines, "  "+l)
		}
	}
	return lines
}
