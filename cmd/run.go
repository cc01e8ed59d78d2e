package cmd

import (
	"github.com/spf13/cobra"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/app"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/screens/home"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/session"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/timerpool"
)

// timerBuffer is how many expired timer callbacks may queue for the
// event loop.
const timerBuffer = 16

// runApp opens the store, builds the session service and launches the TUI,
// optionally straight into a session.
func runApp(cmd *cobra.Command, start *session.Options) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.store.Close()

	clock := timerpool.NewLoopClock(timerBuffer)
	svc, err := e.newService(cmd, clock)
	if err != nil {
		return err
	}

	p := svc.Profile()
	return app.Run(cmd.Context(), app.Options{
		Service: svc,
		Events:  e.store.EventRepo(),
		Clock:   clock,
		Home: home.Options{
			Hard:       p.HardMode,
			TimedLimit: e.cfg.TimedLimit,
		},
		Start: start,
	})
}
