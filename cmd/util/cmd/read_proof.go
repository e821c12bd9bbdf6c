package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/taoledger/ledger-node/model/ledger"
	"github.com/taoledger/ledger-node/storage"
)

var (
	flagSubject string
	flagTxHash  string
)

func init() {
	rootCmd.AddCommand(readProofCmd)

	readProofCmd.Flags().StringVarP(&flagSubject, "subject", "s", "", "hex address the proof is keyed on")
	readProofCmd.Flags().StringVarP(&flagTxHash, "tx", "t", "", "hex hash of the claimed transaction")
	_ = readProofCmd.MarkFlagRequired("subject")
	_ = readProofCmd.MarkFlagRequired("tx")
}

var readProofCmd = &cobra.Command{
	Use:   "read-proof",
	Short: "check whether a proof has been spent",
	Run: func(cmd *cobra.Command, args []string) {
		subject, err := ledger.HexToAddress(flagSubject)
		if err != nil {
			log.Fatal().Err(err).Msg("malformed subject address")
		}
		hash, err := ledger.HexToTxHash(flagTxHash)
		if err != nil {
			log.Fatal().Err(err).Msg("malformed transaction hash")
		}

		n, err := initNode(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("could not open ledger")
		}
		defer n.Close()

		key := storage.NewProofKey(subject, hash)
		spent, err := n.ledger.HasProof(key, false)
		if err != nil {
			log.Fatal().Err(err).Msg("could not check proof")
		}
		log.Info().Str("proof", key.String()).Bool("spent", spent).Msg("proof checked")
	},
}
