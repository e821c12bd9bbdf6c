package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/taoledger/ledger-node/model/ledger"
	"github.com/taoledger/ledger-node/operation"
)

const (
	modeBuild  = "build"
	modeVerify = "verify"
	modeCommit = "commit"
)

var (
	flagTxFile string
	flagOutput string
	flagMode   string
)

func init() {
	rootCmd.AddCommand(executeCmd)

	executeCmd.Flags().StringVarP(&flagTxFile, "file", "f", "", "json file holding an array of transactions")
	executeCmd.Flags().StringVarP(&flagOutput, "out", "o", "", "where build mode writes the built transactions (defaults to --file)")
	executeCmd.Flags().StringVarP(&flagMode, "mode", "m", modeVerify, "build, verify or commit")
	_ = executeCmd.MarkFlagRequired("file")
}

var executeCmd = &cobra.Command{
	Use:   "execute",
	Short: "build, verify or commit transactions from a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		txs, err := readTransactions(flagTxFile)
		if err != nil {
			return err
		}

		n, err := initNode(cfg)
		if err != nil {
			return fmt.Errorf("could not open ledger: %w", err)
		}
		defer n.Close()

		switch flagMode {
		case modeBuild:
			return build(n, txs)
		case modeVerify:
			return verify(n, txs)
		case modeCommit:
			return commit(n, txs)
		default:
			return fmt.Errorf("unknown mode %q", flagMode)
		}
	},
}

// build fills in the register stream of each transaction against the
// current ledger state.
func build(n *node, txs []*ledger.Transaction) error {
	for i, tx := range txs {
		ctx := operation.NewContext(tx)
		err := n.executor.Execute(ctx, operation.BuildFlags)
		if err != nil {
			return fmt.Errorf("could not build transaction %d: %w", i, err)
		}
		ctx.Flush()
		log.Info().Int("index", i).Str("tx_hash", tx.Hash().Short()).Msg("transaction built")
	}

	out := flagOutput
	if out == "" {
		out = flagTxFile
	}
	return writeTransactions(out, txs)
}

func verify(n *node, txs []*ledger.Transaction) error {
	errs := n.engine.AdmitBatch(txs)
	rejected := 0
	for i, err := range errs {
		if err != nil {
			rejected++
			log.Warn().Err(err).Int("index", i).Msg("transaction rejected")
			continue
		}
		log.Info().Int("index", i).Str("tx_hash", txs[i].Hash().Short()).Msg("transaction valid")
	}
	if rejected > 0 {
		return fmt.Errorf("%d of %d transactions rejected", rejected, len(txs))
	}
	return nil
}

func commit(n *node, txs []*ledger.Transaction) error {
	err := n.engine.Connect(txs)
	stats := n.engine.Stats()
	log.Info().
		Uint64("connected", stats.Connected).
		Uint64("rejected", stats.Rejected).
		Msg("transactions committed")
	return err
}
