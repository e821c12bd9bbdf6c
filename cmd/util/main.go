package main

import (
	"github.com/taoledger/ledger-node/cmd/util/cmd"
)

func main() {
	cmd.Execute()
}
