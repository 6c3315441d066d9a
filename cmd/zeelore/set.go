package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nholt/zeelore/engine/save"
)

func setCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <quality-id> <value>",
		Short: "Set a quality's level in the save",
		Args:  cobra.ExactArgs(2),
		RunE:  runSet,
	}
	cmd.Flags().Bool("add", false, "treat value as a signed change instead of an absolute level")
	cmd.Flags().String("save", "", "save file (default from configuration)")
	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("quality id must be numeric: %q", args[0])
	}
	value, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("value must be numeric: %q", args[1])
	}

	a, err := loadApp(false)
	if err != nil {
		return err
	}
	savePath, _ := cmd.Flags().GetString("save")
	sv, path, err := a.openSave(savePath)
	if err != nil {
		return err
	}

	sq := sv.Quality(id)
	if add, _ := cmd.Flags().GetBool("add"); add {
		sq.IncreaseBy(value)
	} else {
		sq.SetValue(value)
	}

	name := sq.Quality().Name
	if name == "" {
		name = fmt.Sprintf("quality %d", id)
	}
	cmd.Printf("%s = %d", name, sq.Value())
	if sq.Quality().UsePyramidNumbers {
		cmd.Printf(" (xp %d)", sq.XP())
	}
	cmd.Println()

	return save.WriteFile(path, sv)
}
