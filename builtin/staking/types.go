// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

// Option is an entry of the staking menu.
type Option struct {
	Duration        uint64
	RateBasisPoints uint64
}

// Stake is a deposit of ActualAmount locked until UnlockedTimestamp.
// Duration and rate are copied from the option at creation.
// ActualAmount is zeroed on withdrawal, the stake itself is kept.
type Stake struct {
	UnlockedTimestamp uint64
	ActualAmount      *big.Int
	StakedFor         token.Address
	RateBasisPoints   uint64
}

// IsWithdrawn reports whether the stake was already unstaked.
func (s *Stake) IsWithdrawn() bool {
	return s.ActualAmount == nil || s.ActualAmount.Sign() == 0
}

// PersonalStake is a stake with its index in the owner's sequence.
type PersonalStake struct {
	Index uint64
	*Stake
}

// Token is the part of the ledger the staking engine calls into.
type Token interface {
	Transfer(env *xenv.Environment, to token.Address, amount *big.Int) error
	TransferFrom(env *xenv.Environment, from, to token.Address, amount *big.Int) error
	Mint(env *xenv.Environment, to token.Address, amount *big.Int) error
}
