package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/rescueroute/internal/config"
	"github.com/elektrokombinacija/rescueroute/internal/sim"
)

var simulatorCmd = &cobra.Command{
	Use:   "simulator",
	Short: "Run the simulation engine",
	Long: `Run the tick-driven simulation engine.

Serves the ground-truth world state:
  GET  /simulation/state
  POST /simulation/reset

Examples:
  rescueroute simulator
  rescueroute simulator --config rescueroute.yaml`,
	RunE: runSimulator,
}

func init() {
	rootCmd.AddCommand(simulatorCmd)
}

func runSimulator(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	engineCfg := sim.DefaultConfig()
	engineCfg.GridSize = cfg.GridSize
	engineCfg.Seed = cfg.Seed
	engine := sim.NewEngine(engineCfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go engine.Run(ctx, sim.TickInterval)

	return serve(ctx, &http.Server{
		Addr:    cfg.SimulatorAddr,
		Handler: sim.Handler(engine, cfg.SimulatorOrigins),
	})
}

// serve runs an HTTP server until ctx is cancelled, then shuts down
// gracefully.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
