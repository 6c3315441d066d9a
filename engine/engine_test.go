package engine

import (
	"testing"

	"github.com/nholt/zeelore/engine/registry"
	"github.com/nholt/zeelore/engine/rules"
	"github.com/nholt/zeelore/engine/savestate"
	"github.com/nholt/zeelore/types"
)

// fixedChance always returns the same draw, pinning rare selection.
type fixedChance int

func (f fixedChance) Chance() int { return int(f) }

func testRegistry() *registry.Registry {
	return registry.New([]*types.Quality{
		{ID: 1, Name: "Iron", Cap: 200},
		{ID: 2, Name: "Supplies"},
		{ID: 3, Name: "Hearts", DifficultyScaler: 60},
	}, nil)
}

func requirement(reg *registry.Registry, id int, ops map[string]any) types.Requirement {
	req := types.Requirement{Quality: reg.Get(id), Ops: ops}
	req.Tokens = rules.TokenizeRequirement(req, nil)
	return req
}

func effect(reg *registry.Registry, id int, ops map[string]any) types.Effect {
	eff := types.Effect{Quality: reg.Get(id), Ops: ops}
	eff.Tokens = rules.TokenizeEffect(eff, nil)
	return eff
}

func gainSupplies(reg *registry.Registry, n float64) *types.Outcome {
	return &types.Outcome{
		Name:    "gain",
		Effects: []types.Effect{effect(reg, 2, map[string]any{"Level": n})},
	}
}

func TestCombine_Precedence(t *testing.T) {
	cases := []struct {
		a, b, want Classification
	}{
		{ClassDefault, ClassDefault, ClassDefault},
		{ClassDefault, ClassSuccess, ClassSuccess},
		{ClassSuccess, ClassFailure, ClassFailure},
		{ClassFailure, ClassLocked, ClassLocked},
		{ClassLocked, ClassSuccess, ClassLocked},
	}
	for _, c := range cases {
		if got := Combine(c.a, c.b); got != c.want {
			t.Errorf("Combine(%v, %v): expected %v, got %v", c.a, c.b, c.want, got)
		}
	}
}

func TestCheck_NumericGateLocks(t *testing.T) {
	reg := testRegistry()
	sv := savestate.New(reg, nil)
	e := New(reg, fixedChance(0), nil)

	reqs := []types.Requirement{requirement(reg, 1, map[string]any{"MinLevel": 5.0})}
	if got := e.Check(reqs, sv); got != ClassLocked {
		t.Errorf("expected LOCKED at level 0, got %v", got)
	}
	sv.Quality(1).SetValue(5)
	if got := e.Check(reqs, sv); got != ClassDefault {
		t.Errorf("expected DEFAULT at threshold, got %v", got)
	}
}

func TestCheck_ModifierDoesNotCountTowardGate(t *testing.T) {
	reg := testRegistry()
	sv := savestate.New(reg, nil)
	sq := sv.Quality(1)
	sq.SetValue(3)
	sq.SetModifier(2)

	e := New(reg, fixedChance(0), nil)
	reqs := []types.Requirement{requirement(reg, 1, map[string]any{"MinLevel": 5.0})}
	if got := e.Check(reqs, sv); got != ClassLocked {
		t.Errorf("value 3 is below the gate; the display modifier must not unlock it, got %v", got)
	}
}

func TestCheck_ChallengeRequirementsNotEvaluated(t *testing.T) {
	reg := testRegistry()
	sv := savestate.New(reg, nil) // Hearts at 0, far below any cap

	e := New(reg, fixedChance(0), nil)
	reqs := []types.Requirement{requirement(reg, 3, map[string]any{"DifficultyLevel": 6.0})}
	if got := e.Check(reqs, sv); got != ClassDefault {
		t.Errorf("challenge requirements carry odds only, got %v", got)
	}
}

func TestDo_LockedStopsLoopWithoutMutation(t *testing.T) {
	reg := testRegistry()
	sv := savestate.New(reg, nil)
	e := New(reg, fixedChance(0), nil)

	act := &types.Action{
		Name:         "barred door",
		Requirements: []types.Requirement{requirement(reg, 1, map[string]any{"MinLevel": 5.0})},
	}
	act.Outcomes[types.OutcomeDefault] = gainSupplies(reg, 1)

	results := e.Do(act, sv, 3)
	if len(results) != 0 {
		t.Fatalf("locked action must produce no outcomes, got %d", len(results))
	}
	if sv.Has(2) {
		t.Error("locked action must not touch the save")
	}
}

func TestDo_DefaultBranchAppliesEffects(t *testing.T) {
	reg := testRegistry()
	sv := savestate.New(reg, nil)
	e := New(reg, fixedChance(99), nil)

	act := &types.Action{Name: "forage"}
	act.Outcomes[types.OutcomeDefault] = gainSupplies(reg, 2)

	results := e.Do(act, sv, 3)
	if len(results) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(results))
	}
	for _, k := range results {
		if k != types.OutcomeDefault {
			t.Errorf("expected DEFAULT branch, got %v", k)
		}
	}
	if got := sv.Quality(2).Value(); got != 6 {
		t.Errorf("expected 6 supplies after 3 repeats, got %d", got)
	}
}

func TestDo_RareBranchSelection(t *testing.T) {
	reg := testRegistry()

	newAct := func() *types.Action {
		act := &types.Action{Name: "gamble"}
		act.Outcomes[types.OutcomeDefault] = gainSupplies(reg, 1)
		act.Outcomes[types.OutcomeRareDefault] = &types.Outcome{
			Name:    "windfall",
			Chance:  50,
			Effects: []types.Effect{effect(reg, 2, map[string]any{"Level": 10.0})},
		}
		return act
	}

	// Draw 0 always lands under a 50% chance.
	sv := savestate.New(reg, nil)
	results := New(reg, fixedChance(0), nil).Do(newAct(), sv, 1)
	if len(results) != 1 || results[0] != types.OutcomeRareDefault {
		t.Fatalf("draw 0 should pick the rare branch, got %v", results)
	}
	if got := sv.Quality(2).Value(); got != 10 {
		t.Errorf("rare effects should run, got %d", got)
	}

	// Draw 99 never lands under a 50% chance.
	sv = savestate.New(reg, nil)
	results = New(reg, fixedChance(99), nil).Do(newAct(), sv, 1)
	if len(results) != 1 || results[0] != types.OutcomeDefault {
		t.Fatalf("draw 99 should keep the base branch, got %v", results)
	}
	if got := sv.Quality(2).Value(); got != 1 {
		t.Errorf("base effects should run, got %d", got)
	}
}

func TestDo_RareIgnoredWithoutChance(t *testing.T) {
	reg := testRegistry()
	sv := savestate.New(reg, nil)

	act := &types.Action{Name: "steady"}
	act.Outcomes[types.OutcomeDefault] = gainSupplies(reg, 1)
	act.Outcomes[types.OutcomeRareDefault] = &types.Outcome{Name: "never", Chance: 0}

	results := New(reg, fixedChance(0), nil).Do(act, sv, 1)
	if results[0] != types.OutcomeDefault {
		t.Errorf("a zero-chance rare branch must not fire, got %v", results[0])
	}
}

func TestDo_LockMidLoopKeepsEarlierIterations(t *testing.T) {
	reg := testRegistry()
	sv := savestate.New(reg, nil)
	sv.Quality(2).SetValue(2)

	// Each iteration spends one supply; the gate needs at least one.
	act := &types.Action{
		Name:         "spend",
		Requirements: []types.Requirement{requirement(reg, 2, map[string]any{"MinLevel": 1.0})},
	}
	act.Outcomes[types.OutcomeDefault] = gainSupplies(reg, -1)

	results := New(reg, fixedChance(99), nil).Do(act, sv, 5)
	if len(results) != 2 {
		t.Fatalf("expected 2 completed iterations before the lock, got %d", len(results))
	}
	if got := sv.Quality(2).Value(); got != 0 {
		t.Errorf("expected supplies drained to 0, got %d", got)
	}
}
