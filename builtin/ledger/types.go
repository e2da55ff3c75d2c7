// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

// Metadata describes the token.
type Metadata struct {
	Name     string
	Symbol   string
	Decimals uint8
}

// Lock keeps Amount of an account's balance from being spent until Until.
// A zero Until means no lock.
type Lock struct {
	Amount *big.Int
	Until  uint64
}

// Active reports whether the lock still applies at now.
func (l *Lock) Active(now uint64) bool {
	return l.Until != 0 && now < l.Until && l.Amount != nil && l.Amount.Sign() > 0
}

// Role names a collaborator slot of the ledger.
type Role string

const (
	RoleBurning              Role = "burning"
	RoleStaking              Role = "staking"
	RoleLockableDistribution Role = "lockableDistribution"
)

// Burner is the collaborator invoked by TriggerBurn.
type Burner interface {
	Burn(env *xenv.Environment) (*big.Int, error)
}

// BurnerResolver looks up the burner engine bound at addr.
type BurnerResolver func(addr token.Address) (Burner, bool)
