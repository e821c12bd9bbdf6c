package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/taoledger/ledger-node/model/ledger"
)

var flagAddress string

func init() {
	rootCmd.AddCommand(readRegisterCmd)

	readRegisterCmd.Flags().StringVarP(&flagAddress, "address", "a", "", "hex address of the register")
	_ = readRegisterCmd.MarkFlagRequired("address")
}

var readRegisterCmd = &cobra.Command{
	Use:   "read-register",
	Short: "print the state of a register",
	Run: func(cmd *cobra.Command, args []string) {
		address, err := ledger.HexToAddress(flagAddress)
		if err != nil {
			log.Fatal().Err(err).Msg("malformed register address")
		}

		n, err := initNode(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("could not open ledger")
		}
		defer n.Close()

		state, err := n.ledger.ReadState(address)
		if err != nil {
			log.Fatal().Err(err).Msg("could not read register")
		}

		log.Info().Msgf("register %s:", address)
		PrettyPrint(newRegisterView(state))
	},
}
