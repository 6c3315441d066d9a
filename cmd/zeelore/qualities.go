package main

import (
	"github.com/spf13/cobra"

	"github.com/nholt/zeelore/render"
)

func qualitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "qualities [pattern]",
		Short: "List catalog qualities, optionally filtered by name",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runQualities,
	}
}

func runQualities(cmd *cobra.Command, args []string) error {
	a, err := loadApp(false)
	if err != nil {
		return err
	}
	pattern := ""
	if len(args) == 1 {
		pattern = args[0]
	}
	found, err := a.defs.Qualities.Find(pattern)
	if err != nil {
		return err
	}
	r := render.New(nil)
	for _, q := range found {
		cmd.Println(r.Quality(q))
	}
	return nil
}
