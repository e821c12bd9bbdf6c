package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/taoledger/ledger-node/module/metrics"
)

func init() {
	rootCmd.AddCommand(serveMetricsCmd)
}

var serveMetricsCmd = &cobra.Command{
	Use:   "serve-metrics",
	Short: "open the ledger and serve its metrics until interrupted",
	Run: func(cmd *cobra.Command, args []string) {
		if !cfg.Metrics.Enabled {
			log.Fatal().Msg("metrics are disabled in the config")
		}

		n, err := initNode(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("could not open ledger")
		}
		defer n.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		server := metrics.NewServer(log.Logger, cfg.Metrics.Address, n.registry, cfg.Metrics.ShutdownTimeout)
		err = server.Run(ctx)
		if err != nil {
			log.Error().Err(err).Msg("metrics server failed")
		}
	},
}
