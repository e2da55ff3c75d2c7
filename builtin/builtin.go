// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/tokencore/builtin/burning"
	"github.com/vechain/tokencore/builtin/distribution"
	"github.com/vechain/tokencore/builtin/ledger"
	"github.com/vechain/tokencore/builtin/staking"
	"github.com/vechain/tokencore/builtin/voting"
	"github.com/vechain/tokencore/state"
	"github.com/vechain/tokencore/token"
)

// Builtin engines binding.
var (
	Ledger                   = &ledgerContract{newContract("Ledger")}
	Staking                  = &stakingContract{newContract("Staking")}
	Voting                   = &votingContract{newContract("Voting")}
	Burning                  = &burningContract{newContract("Burning")}
	LockableDistribution     = &lockableContract{newContract("LockableDistribution")}
	WithdrawableDistribution = &withdrawableContract{newContract("WithdrawableDistribution")}
)

// Contract is a builtin engine identity.
type Contract struct {
	Name    string
	Address token.Address
}

func newContract(name string) *Contract {
	return &Contract{name, token.BytesToAddress([]byte(name))}
}

type (
	ledgerContract       struct{ *Contract }
	stakingContract      struct{ *Contract }
	votingContract       struct{ *Contract }
	burningContract      struct{ *Contract }
	lockableContract     struct{ *Contract }
	withdrawableContract struct{ *Contract }
)

func (c *ledgerContract) WithState(st *state.State) *ledger.Ledger {
	return ledger.New(c.Address, st, func(addr token.Address) (ledger.Burner, bool) {
		if addr == Burning.Address {
			return Burning.WithState(st), true
		}
		return nil, false
	})
}

func (c *stakingContract) WithState(st *state.State) *staking.Staking {
	return staking.New(c.Address, st, Ledger.WithState(st))
}

func (c *votingContract) WithState(st *state.State) *voting.Voting {
	return voting.New(c.Address, st, Ledger.WithState(st))
}

func (c *burningContract) WithState(st *state.State) *burning.Burning {
	return burning.New(c.Address, st, Ledger.WithState(st))
}

func (c *lockableContract) WithState(st *state.State) *distribution.Lockable {
	return distribution.NewLockable(c.Address, st, Ledger.WithState(st))
}

func (c *withdrawableContract) WithState(st *state.State) *distribution.Withdrawable {
	return distribution.NewWithdrawable(c.Address, st, Ledger.WithState(st))
}

// Contracts lists every builtin engine.
func Contracts() []*Contract {
	return []*Contract{
		Ledger.Contract,
		Staking.Contract,
		Voting.Contract,
		Burning.Contract,
		LockableDistribution.Contract,
		WithdrawableDistribution.Contract,
	}
}

// ContractByName returns the engine address bound to name.
func ContractByName(name string) (token.Address, bool) {
	for _, c := range Contracts() {
		if c.Name == name {
			return c.Address, true
		}
	}
	return token.Address{}, false
}

// ContractName returns the name of the engine at addr.
func ContractName(addr token.Address) (string, bool) {
	for _, c := range Contracts() {
		if c.Address == addr {
			return c.Name, true
		}
	}
	return "", false
}
