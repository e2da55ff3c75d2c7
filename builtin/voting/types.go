// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package voting

import (
	"math/big"

	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

// Issue is a poll. OptionIDs reference options by their global id.
type Issue struct {
	Description  string
	EndTimestamp uint64
	OptionIDs    []uint64
}

// Closed reports whether voting on the issue has ended at now.
func (i *Issue) Closed(now uint64) bool {
	return now > i.EndTimestamp
}

// Option is a choice of an issue.
type Option struct {
	ID          uint64
	Description string
	TotalVotes  *big.Int
}

// Token is the part of the ledger the voting engine calls into.
type Token interface {
	Transfer(env *xenv.Environment, to token.Address, amount *big.Int) error
	TransferFrom(env *xenv.Environment, from, to token.Address, amount *big.Int) error
}
