// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/tokencore/token"
)

type Collaborators struct {
	Burning              token.Address `json:"burning"`
	Staking              token.Address `json:"staking"`
	LockableDistribution token.Address `json:"lockableDistribution"`
}

// Summary is the ledger wide state.
type Summary struct {
	Name          string                `json:"name"`
	Symbol        string                `json:"symbol"`
	Decimals      uint8                 `json:"decimals"`
	TotalSupply   *math.HexOrDecimal256 `json:"totalSupply"`
	Paused        bool                  `json:"paused"`
	Owner         token.Address         `json:"owner"`
	Collaborators Collaborators         `json:"collaborators"`
	Now           uint64                `json:"now"`
}

type Lock struct {
	Amount *math.HexOrDecimal256 `json:"amount"`
	Until  uint64                `json:"until"`
	Active bool                  `json:"active"`
}

type Account struct {
	Address          token.Address         `json:"address"`
	Balance          *math.HexOrDecimal256 `json:"balance"`
	AvailableBalance *math.HexOrDecimal256 `json:"availableBalance"`
	Lock             Lock                  `json:"lock"`
}

type Allowance struct {
	Owner     token.Address         `json:"owner"`
	Spender   token.Address         `json:"spender"`
	Allowance *math.HexOrDecimal256 `json:"allowance"`
}
