package main

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/spf13/cobra"
)

func eventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events [pattern]",
		Short: "List events, optionally filtered by name",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEvents,
	}
}

func runEvents(cmd *cobra.Command, args []string) error {
	a, err := loadApp(false)
	if err != nil {
		return err
	}
	var re *regexp.Regexp
	if len(args) == 1 {
		re, err = regexp.Compile("(?i)" + args[0])
		if err != nil {
			return err
		}
	}

	ids := make([]int, 0, len(a.defs.Events))
	for id := range a.defs.Events {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		ev := a.defs.Events[id]
		if re != nil && !re.MatchString(ev.Name) {
			continue
		}
		line := fmt.Sprintf("%d\t%s", ev.ID, ev.Name)
		if ev.LocationID != 0 {
			if loc, ok := a.defs.Locations[ev.LocationID]; ok {
				line += fmt.Sprintf("\t(%s)", loc.Name)
			}
		}
		cmd.Println(line)
	}
	return nil
}
