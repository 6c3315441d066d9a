package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/nholt/zeelore/engine"
	"github.com/nholt/zeelore/engine/save"
	"github.com/nholt/zeelore/render"
)

func doCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <event-id> <action-index>",
		Short: "Perform an event action against the save and write it back",
		Args:  cobra.ExactArgs(2),
		RunE:  runDo,
	}
	cmd.Flags().Int("repeats", 1, "perform the action this many times")
	cmd.Flags().Int64("seed", 0, "RNG seed for rare outcomes (0 = time-based)")
	cmd.Flags().String("save", "", "save file (default from configuration)")
	cmd.Flags().Bool("dry-run", false, "resolve without writing the save back")
	return cmd
}

func runDo(cmd *cobra.Command, args []string) error {
	eventID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("event id must be numeric: %q", args[0])
	}
	actionIdx, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("action index must be numeric: %q", args[1])
	}

	a, err := loadApp(false)
	if err != nil {
		return err
	}
	ev, ok := a.defs.Events[eventID]
	if !ok {
		return fmt.Errorf("no event %d in the ruleset", eventID)
	}
	if actionIdx < 1 || actionIdx > len(ev.Actions) {
		return fmt.Errorf("event %d has %d action(s), index %d out of range",
			eventID, len(ev.Actions), actionIdx)
	}

	savePath, _ := cmd.Flags().GetString("save")
	sv, path, err := a.openSave(savePath)
	if err != nil {
		return err
	}

	seed, _ := cmd.Flags().GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	repeats, _ := cmd.Flags().GetInt("repeats")

	eng := engine.New(a.defs.Qualities, engine.NewRNG(seed), a.cfg.Logger())
	act := &ev.Actions[actionIdx-1]
	results := eng.Do(act, sv, repeats)

	if len(results) == 0 {
		cmd.Printf("%s: locked\n", act.Name)
	}
	for i, kind := range results {
		out := act.Outcomes[kind]
		cmd.Printf("%d. %s: %s\n", i+1, render.OutcomeKindLabel(kind), out.Name)
	}
	if len(results) < repeats && len(results) > 0 {
		cmd.Printf("locked after %d of %d repeat(s)\n", len(results), repeats)
	}

	if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
		return nil
	}
	return save.WriteFile(path, sv)
}
