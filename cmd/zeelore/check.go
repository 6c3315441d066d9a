package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nholt/zeelore/config"
	"github.com/nholt/zeelore/loader"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run referential-integrity checks against the ruleset",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	_, rep, err := loader.Load(cfg.DataDir, loader.Options{
		Integrity: true,
		Log:       cfg.Logger(),
	})
	if err != nil {
		return err
	}

	if rep.Ok() && len(rep.Warnings) == 0 {
		cmd.Println("No issues found.")
		return nil
	}
	if len(rep.Errors) > 0 {
		cmd.Printf("Errors (%d):\n", len(rep.Errors))
		for _, e := range rep.Errors {
			cmd.Printf("  - %s\n", e)
		}
	}
	if len(rep.Warnings) > 0 {
		if len(rep.Errors) > 0 {
			cmd.Println()
		}
		cmd.Printf("Warnings (%d):\n", len(rep.Warnings))
		for _, w := range rep.Warnings {
			cmd.Printf("  - %s\n", w)
		}
	}
	if len(rep.Errors) > 0 {
		return fmt.Errorf("integrity check found errors")
	}
	return nil
}
