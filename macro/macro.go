// Package macro runs Lua scripts against a loaded ruleset and save,
// for batch edits and scripted playthroughs. Scripts execute in a
// sandboxed VM with a small fixed API.
package macro

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/nholt/zeelore/engine"
	"github.com/nholt/zeelore/engine/refs"
	"github.com/nholt/zeelore/engine/savestate"
	"github.com/nholt/zeelore/loader"
	"github.com/nholt/zeelore/render"
	lua "github.com/yuin/gopher-lua"
)

// Dice supplies the rolls behind the roll() script global. *engine.RNG
// satisfies it, so a seeded session covers script dice too.
type Dice interface {
	Roll(sides int) int
}

// Runner binds a Lua VM to one defs/save/engine triple.
type Runner struct {
	defs *loader.Defs
	sv   *savestate.Save
	eng  *engine.Engine
	dice Dice
	out  io.Writer
	log  *slog.Logger
}

// New creates a runner. Script output written by echo goes to out.
func New(defs *loader.Defs, sv *savestate.Save, eng *engine.Engine, dice Dice, out io.Writer, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Runner{defs: defs, sv: sv, eng: eng, dice: dice, out: out, log: log}
}

// RunFile executes a script file.
func (r *Runner) RunFile(path string) error {
	L := r.newState()
	defer L.Close()
	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("executing %s: %w", path, err)
	}
	return nil
}

// RunString executes script source.
func (r *Runner) RunString(src string) error {
	L := r.newState()
	defer L.Close()
	if err := L.DoString(src); err != nil {
		return fmt.Errorf("executing script: %w", err)
	}
	return nil
}

func (r *Runner) newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)
	r.registerAPI(L)
	return L
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Remove math.randomseed so script randomness stays deterministic.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}

// registerAPI registers the script-facing globals.
func (r *Runner) registerAPI(L *lua.LState) {
	// get(id) -> current level of a quality.
	L.SetGlobal("get", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckInt(1)
		v, _ := r.sv.Peek(id)
		L.Push(lua.LNumber(v))
		return 1
	}))

	// set(id, value) -> resulting level after cap clamping.
	L.SetGlobal("set", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckInt(1)
		sq := r.sv.Quality(id)
		sq.SetValue(L.CheckInt(2))
		L.Push(lua.LNumber(sq.Value()))
		return 1
	}))

	// add(id, n) -> resulting level; pyramid qualities accumulate XP.
	L.SetGlobal("add", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckInt(1)
		sq := r.sv.Quality(id)
		sq.IncreaseBy(L.CheckInt(2))
		L.Push(lua.LNumber(sq.Value()))
		return 1
	}))

	// name(id) -> quality display name, or nil when unknown.
	L.SetGlobal("name", L.NewFunction(func(L *lua.LState) int {
		if q := r.defs.Qualities.Get(L.CheckInt(1)); q != nil {
			L.Push(lua.LString(q.Name))
			return 1
		}
		L.Push(lua.LNil)
		return 1
	}))

	// roll(sides) -> random integer in [1, sides], from the session RNG.
	L.SetGlobal("roll", L.NewFunction(func(L *lua.LState) int {
		sides := L.CheckInt(1)
		if sides < 1 {
			L.RaiseError("roll needs at least one side, got %d", sides)
			return 0
		}
		L.Push(lua.LNumber(r.dice.Roll(sides)))
		return 1
	}))

	// trade(give_id, give_n, get_id, get_n) -> false when the giving
	// side cannot cover the cost, true after the exchange.
	L.SetGlobal("trade", L.NewFunction(func(L *lua.LState) int {
		giveID, giveN := L.CheckInt(1), L.CheckInt(2)
		getID, getN := L.CheckInt(3), L.CheckInt(4)

		if have, _ := r.sv.Peek(giveID); have < giveN {
			L.Push(lua.LFalse)
			return 1
		}
		r.sv.Quality(giveID).IncreaseBy(-giveN)
		r.sv.Quality(getID).IncreaseBy(getN)
		L.Push(lua.LTrue)
		return 1
	}))

	// apply(event_id, action_index [, repeats]) -> table of branch
	// labels for the completed iterations.
	L.SetGlobal("apply", L.NewFunction(func(L *lua.LState) int {
		eventID := L.CheckInt(1)
		actionIdx := L.CheckInt(2)
		repeats := L.OptInt(3, 1)

		ev, ok := r.defs.Events[eventID]
		if !ok {
			L.RaiseError("unknown event %d", eventID)
			return 0
		}
		if actionIdx < 1 || actionIdx > len(ev.Actions) {
			L.RaiseError("event %d has no action %d", eventID, actionIdx)
			return 0
		}
		results := r.eng.Do(&ev.Actions[actionIdx-1], r.sv, repeats)

		tbl := L.NewTable()
		for _, kind := range results {
			tbl.Append(lua.LString(render.OutcomeKindLabel(kind)))
		}
		L.Push(tbl)
		return 1
	}))

	// echo(text) prints text with [q:...] markers resolved.
	L.SetGlobal("echo", L.NewFunction(func(L *lua.LState) int {
		res := refs.New(r.defs.Qualities, r.sv, r.log)
		fmt.Fprintln(r.out, res.Resolve(L.CheckString(1), refs.DefaultTemplates()))
		return 0
	}))
}
