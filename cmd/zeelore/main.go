package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nholt/zeelore/config"
	"github.com/nholt/zeelore/engine/save"
	"github.com/nholt/zeelore/engine/savestate"
	"github.com/nholt/zeelore/loader"
)

func main() {
	root := &cobra.Command{
		Use:   "zeelore",
		Short: "Rule interpreter and save editor for the game's JSON export",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(qualitiesCmd())
	root.AddCommand(eventsCmd())
	root.AddCommand(showCmd())
	root.AddCommand(doCmd())
	root.AddCommand(setCmd())
	root.AddCommand(editCmd())
	root.AddCommand(macroCmd())
	root.AddCommand(checkCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles the configuration and loaded ruleset commands share.
type app struct {
	cfg  config.Config
	defs *loader.Defs
}

// loadApp reads the configuration and the export directory. Integrity
// checking runs when asked for or when strict mode is configured.
func loadApp(integrity bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := cfg.Logger()
	defs, _, err := loader.Load(cfg.DataDir, loader.Options{
		Integrity: integrity || cfg.Strict,
		Log:       log,
	})
	if err != nil {
		return nil, fmt.Errorf("loading ruleset from %s: %w", cfg.DataDir, err)
	}
	return &app{cfg: cfg, defs: defs}, nil
}

// openSave loads the save file at path (the configured default when
// empty). A missing file yields a fresh save rather than an error.
func (a *app) openSave(path string) (*savestate.Save, string, error) {
	if path == "" {
		path = a.cfg.SavePath
	}
	sv := savestate.New(a.defs.Qualities, a.cfg.Logger())
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return sv, path, nil
	}
	if err := save.LoadFile(path, sv); err != nil {
		return nil, "", err
	}
	return sv, path, nil
}
