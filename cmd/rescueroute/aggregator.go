package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/rescueroute/internal/agg"
	"github.com/elektrokombinacija/rescueroute/internal/ai"
	"github.com/elektrokombinacija/rescueroute/internal/config"
)

var aggregatorCmd = &cobra.Command{
	Use:   "aggregator",
	Short: "Run the state aggregator",
	Long: `Run the aggregator: polls the simulation engine, translates snapshots
into the external schema and serves them to downstream clients.

  GET  /api/v1/state      latest snapshot
  GET  /api/v1/stream     server-sent events
  GET  /api/v1/ws         websocket mirror
  POST /api/v1/ai/decide  advisory decision

Examples:
  rescueroute aggregator
  SIMULATOR_BASE_URL=http://sim:8001 rescueroute aggregator`,
	RunE: runAggregator,
}

func init() {
	rootCmd.AddCommand(aggregatorCmd)
}

func runAggregator(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store := agg.NewStore()
	interval := time.Duration(cfg.PollIntervalSeconds * float64(time.Second))
	poller := agg.NewPoller(store, cfg.SimulatorBaseURL, interval, cfg.GridSize)

	advisor := ai.NewGemini(cfg.GeminiAPIKey)
	decisions := &ai.DecisionLog{Path: cfg.DecisionLogPath}
	server := agg.NewServer(store, advisor, decisions)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go poller.Run(ctx)

	return serve(ctx, &http.Server{
		Addr:    cfg.AggregatorAddr,
		Handler: server.Handler(cfg.FrontendOrigins),
	})
}
