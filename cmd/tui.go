package cmd

import (
	"sift/internal/tools"
	"sift/internal/tui"
)

func runTUI(root string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	// Console logging would draw over the alternate screen.
	svc := &tools.Service{History: e.svc.History}

	return tui.Run(tui.Config{
		Root:      root,
		GrepLimit: e.cfg.Limits.Grep,
		GlobLimit: e.cfg.Limits.Glob,
		ReadLimit: e.cfg.Limits.Read,
		Service:   svc,
	})
}
