package operation

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Entitlement is the share of a token distribution owed to a holder:
// floor(balance * total / maxSupply). The product is computed in 256 bits so
// it cannot overflow.
func Entitlement(balance, total, maxSupply uint64) (uint64, error) {
	if maxSupply == 0 {
		return 0, fmt.Errorf("token max supply is zero")
	}

	share := new(uint256.Int).Mul(uint256.NewInt(balance), uint256.NewInt(total))
	share.Div(share, uint256.NewInt(maxSupply))
	if !share.IsUint64() {
		return 0, fmt.Errorf("entitlement %s exceeds 64 bits", share.Hex())
	}
	return share.Uint64(), nil
}
