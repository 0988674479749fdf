// Command rescueroute runs the RescueRoute services: the simulation engine
// and the state aggregator.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "rescueroute",
	Short: "Autonomous rescue fleet simulator and state aggregator",
	Long: `RescueRoute simulates a fleet of rescue robots on a bounded grid and
publishes the evolving state to downstream observers.

Two services cooperate:
  simulator   owns the ground-truth world and advances it once per tick
  aggregator  polls the simulator and fans snapshots out over HTTP, SSE
              and WebSocket`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
