// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math"
	"math/big"
)

// Constants of the ledger.
const (
	BasisPoints uint64 = 10000 // denominator of every rate expressed in basis points

	DistributionLockPeriod      uint64 = 90 * 24 * 60 * 60 // (unit: second) lock applied by distribution engines
	DistributionLockBasisPoints uint64 = 8000              // share of a lockable distribution that gets locked
)

var bigBasisPoints = new(big.Int).SetUint64(BasisPoints)

// ApplyBasisPoints returns floor(amount * bp / 10000).
func ApplyBasisPoints(amount *big.Int, bp uint64) *big.Int {
	x := new(big.Int).SetUint64(bp)
	x.Mul(x, amount)
	return x.Div(x, bigBasisPoints)
}

// Deadline returns now + duration, capped at the largest representable time.
func Deadline(now, duration uint64) uint64 {
	if duration > math.MaxUint64-now {
		return math.MaxUint64
	}
	return now + duration
}
