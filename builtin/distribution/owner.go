// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package distribution

import (
	"math/big"

	"github.com/vechain/tokencore/builtin/reverts"
	"github.com/vechain/tokencore/builtin/slots"
	"github.com/vechain/tokencore/log"
	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

var logger = log.WithContext("pkg", "distribution")

// Token is the part of the ledger the distribution engines call into.
type Token interface {
	BalanceOf(addr token.Address) (*big.Int, error)
	Transfer(env *xenv.Environment, to token.Address, amount *big.Int) error
	TransferFrom(env *xenv.Environment, from, to token.Address, amount *big.Int) error
	Lock(env *xenv.Environment, account token.Address, amount *big.Int, until uint64) error
}

// ownable is the owner slot shared by both engines.
type ownable struct {
	addr  token.Address
	owner *slots.Address
}

func (o *ownable) Owner() (token.Address, error) {
	return o.owner.Get()
}

// Initialize makes the caller the owner.
func (o *ownable) Initialize(env *xenv.Environment) error {
	owner := env.Caller()
	if owner.IsZero() {
		return reverts.New(reverts.ZeroAddress, "owner is the zero address")
	}
	o.owner.Set(&owner)
	return nil
}

func (o *ownable) requireOwner(env *xenv.Environment) error {
	owner, err := o.owner.Get()
	if err != nil {
		return err
	}
	if env.Caller() != owner {
		return reverts.Newf(reverts.Unauthorized, "caller %v is not the owner", env.Caller())
	}
	return nil
}

func (o *ownable) TransferOwnership(env *xenv.Environment, newOwner token.Address) error {
	if err := o.requireOwner(env); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return reverts.New(reverts.ZeroAddress, "new owner is the zero address")
	}
	o.owner.Set(&newOwner)
	env.Emit(o.addr, "OwnershipTransferred", map[string]any{
		"previous": env.Caller(),
		"new":      newOwner,
	})
	return nil
}

func checkLengths(n, m int) error {
	if n == 0 || n != m {
		return reverts.Newf(reverts.LengthMismatch, "%d recipients, %d amounts", n, m)
	}
	return nil
}
