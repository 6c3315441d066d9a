package render

import (
	"strings"
	"testing"

	"github.com/nholt/zeelore/engine/refs"
	"github.com/nholt/zeelore/engine/registry"
	"github.com/nholt/zeelore/engine/rules"
	"github.com/nholt/zeelore/types"
)

func iron() *types.Quality {
	return &types.Quality{ID: 42, Name: "Iron", Cap: 200}
}

func TestTokenString_Comparisons(t *testing.T) {
	q := iron()
	cases := []struct {
		tok  types.Token
		want string
	}{
		{types.Token{Kind: types.TokenMin, Quality: q, Value: 5}, "Iron ≥ 5"},
		{types.Token{Kind: types.TokenMax, Quality: q, Value: 9}, "Iron ≤ 9"},
		{types.Token{Kind: types.TokenEqual, Quality: q, Value: 3}, "Iron = 3"},
		{types.Token{Kind: types.TokenRange, Quality: q, Value: 3, High: 4}, "Iron in 3..4"},
		{types.Token{Kind: types.TokenAdd, Quality: q, Value: -2}, "Iron -2"},
		{types.Token{Kind: types.TokenAdd, Quality: q, Value: 2}, "Iron +2"},
		{types.Token{Kind: types.TokenSet, Quality: q, Value: 7}, "Iron := 7"},
		{types.Token{Kind: types.TokenIfAtLeast, Quality: q, Value: 1}, "if Iron ≥ 1"},
	}
	for _, c := range cases {
		if got := TokenString(c.tok); got != c.want {
			t.Errorf("expected %q, got %q", c.want, got)
		}
	}
}

func TestTokenString_Challenge(t *testing.T) {
	q := &types.Quality{ID: 43, Name: "Hearts", DifficultyScaler: 60}
	req := types.Requirement{Quality: q, Ops: map[string]any{"DifficultyLevel": 3.0}}
	req.Tokens = rules.TokenizeRequirement(req, nil)
	if got := TokenString(req.Tokens[0]); got != "Hearts challenge (100% at 5)" {
		t.Errorf("unexpected challenge rendering %q", got)
	}
}

func TestOutcomeKindLabel(t *testing.T) {
	if got := OutcomeKindLabel(types.OutcomeRareSuccess); got != "RareSuccess" {
		t.Errorf("expected RareSuccess, got %q", got)
	}
	if got := OutcomeKindLabel(types.OutcomeKind(99)); got != "Unknown" {
		t.Errorf("expected Unknown for out-of-range kind, got %q", got)
	}
}

func TestRenderer_QualityLine(t *testing.T) {
	r := New(nil)
	q := &types.Quality{ID: 500, Name: "Favours", UsePyramidNumbers: true}
	got := r.Quality(q)
	if !strings.Contains(got, "Favours") || !strings.Contains(got, "[pyramid]") {
		t.Errorf("unexpected line %q", got)
	}
}

func TestRenderer_ResolvesMarkers(t *testing.T) {
	reg := registry.New([]*types.Quality{iron()}, nil)
	r := New(refs.New(reg, nil, nil))

	ev := &types.Event{ID: 1, Name: "Trade", Description: "They want [q:42]."}
	lines := r.Event(ev)
	if len(lines) < 2 || !strings.Contains(lines[1], "[Iron]") {
		t.Errorf("marker should resolve in descriptions, got %v", lines)
	}
}

func TestRenderer_ActionBlock(t *testing.T) {
	reg := registry.New([]*types.Quality{iron()}, nil)
	req := types.Requirement{Quality: reg.Get(42), Ops: map[string]any{"MinLevel": 5.0}}
	req.Tokens = rules.TokenizeRequirement(req, nil)

	act := &types.Action{ID: 9, Name: "Push", Requirements: []types.Requirement{req}}
	act.Outcomes[types.OutcomeDefault] = &types.Outcome{
		Kind: types.OutcomeDefault,
		Name: "It moves",
	}
	act.Outcomes[types.OutcomeRareDefault] = &types.Outcome{
		Kind:   types.OutcomeRareDefault,
		Name:   "It shatters",
		Chance: 10,
	}

	out := strings.Join(New(nil).Action(act), "\n")
	for _, want := range []string{"Push", "requires Iron ≥ 5", "Default: It moves", "RareDefault (10%): It shatters"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}
