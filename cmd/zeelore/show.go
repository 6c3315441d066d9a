package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nholt/zeelore/engine/refs"
	"github.com/nholt/zeelore/render"
)

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <event-id>",
		Short: "Show an event with its actions, requirements and outcomes",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	cmd.Flags().String("save", "", "save file for live quality values in descriptions")
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("event id must be numeric: %q", args[0])
	}
	a, err := loadApp(false)
	if err != nil {
		return err
	}
	ev, ok := a.defs.Events[id]
	if !ok {
		return fmt.Errorf("no event %d in the ruleset", id)
	}

	savePath, _ := cmd.Flags().GetString("save")
	sv, _, err := a.openSave(savePath)
	if err != nil {
		return err
	}

	r := render.New(refs.New(a.defs.Qualities, sv, a.cfg.Logger()))
	for _, line := range r.Event(ev) {
		cmd.Println(line)
	}
	return nil
}
