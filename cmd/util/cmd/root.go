package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/taoledger/ledger-node/config"
)

var (
	flagConfig   string
	flagDatadir  string
	flagBackend  string
	flagLogLevel string
	flagWorkers  int
	flagMetrics  string

	cfg *config.LedgerConfig
)

var rootCmd = &cobra.Command{
	Use:   "util",
	Short: "inspect and operate on a ledger database",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

var RootCmd = rootCmd

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "path to a config file overriding the defaults")
	flags.StringVar(&flagDatadir, "data-dir", "", "directory of the ledger database")
	flags.StringVar(&flagBackend, "backend", "", "storage backend (badger or pebble)")
	flags.StringVar(&flagLogLevel, "log-level", "", "log level")
	flags.IntVar(&flagWorkers, "workers", 0, "number of admission workers")
	flags.StringVar(&flagMetrics, "metrics", "", "address of the metrics endpoint")
}

func initConfig(cmd *cobra.Command) error {
	c, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	cfg = c

	zerolog.SetGlobalLevel(cfg.LogLevel)
	log.Logger = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	return nil
}
