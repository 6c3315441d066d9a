package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/nholt/zeelore/engine"
	"github.com/nholt/zeelore/engine/save"
	"github.com/nholt/zeelore/macro"
)

func macroCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "macro <script.lua>",
		Short: "Run a Lua script against the ruleset and save",
		Args:  cobra.ExactArgs(1),
		RunE:  runMacro,
	}
	cmd.Flags().Int64("seed", 0, "RNG seed for rare outcomes (0 = time-based)")
	cmd.Flags().String("save", "", "save file (default from configuration)")
	cmd.Flags().Bool("dry-run", false, "run without writing the save back")
	return cmd
}

func runMacro(cmd *cobra.Command, args []string) error {
	a, err := loadApp(false)
	if err != nil {
		return err
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
	rng := engine.NewRNG(seed)
	eng := engine.New(a.defs.Qualities, rng, a.cfg.Logger())

	r := macro.New(a.defs, sv, eng, rng, cmd.OutOrStdout(), a.cfg.Logger())
	if err := r.RunFile(args[0]); err != nil {
		return err
	}

	if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
		return nil
	}
	return save.WriteFile(path, sv)
}
