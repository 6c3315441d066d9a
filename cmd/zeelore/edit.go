package main

import (
	"github.com/spf13/cobra"

	"github.com/nholt/zeelore/tui"
)

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive save editor",
		Args:  cobra.NoArgs,
		RunE:  runEdit,
	}
	cmd.Flags().String("save", "", "save file (default from configuration)")
	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	a, err := loadApp(false)
	if err != nil {
		return err
	}
	savePath, _ := cmd.Flags().GetString("save")
	sv, path, err := a.openSave(savePath)
	if err != nil {
		return err
	}
	return tui.Run(sv, path)
}
