// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package distribution

import (
	"math/big"

	"github.com/vechain/tokencore/builtin/slots"
	"github.com/vechain/tokencore/state"
	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

// Lockable transfers tokens from the owner and locks most of what each recipient received.
type Lockable struct {
	ownable
	token Token
}

// NewLockable create a new instance.
func NewLockable(addr token.Address, state *state.State, tok Token) *Lockable {
	sctx := slots.NewContext(addr, state)
	return &Lockable{
		ownable: ownable{addr: addr, owner: slots.NewAddress(sctx, slots.Name("owner"))},
		token:   tok,
	}
}

func (d *Lockable) Address() token.Address { return d.addr }

// DistributeAndLock moves value from the caller to to, then overwrites the lock of to with
// 80% of value for DistributionLockPeriod. A previous lock of to is discarded.
func (d *Lockable) DistributeAndLock(env *xenv.Environment, to token.Address, value *big.Int) error {
	if err := d.requireOwner(env); err != nil {
		return err
	}
	return d.distribute(env, to, value)
}

// DistributeAndLockBatch distributes values[i] to tos[i].
func (d *Lockable) DistributeAndLockBatch(env *xenv.Environment, tos []token.Address, values []*big.Int) error {
	if err := d.requireOwner(env); err != nil {
		return err
	}
	if err := checkLengths(len(tos), len(values)); err != nil {
		return err
	}
	for i, to := range tos {
		if err := d.distribute(env, to, values[i]); err != nil {
			return err
		}
	}
	return nil
}

func (d *Lockable) distribute(env *xenv.Environment, to token.Address, value *big.Int) error {
	logger.Debug("distributing", "from", env.Caller(), "to", to, "value", value)

	self := env.As(d.addr)
	if err := d.token.TransferFrom(self, env.Caller(), to, value); err != nil {
		logger.Info("distribution failed", "to", to, "error", err)
		return err
	}
	locked := token.ApplyBasisPoints(value, token.DistributionLockBasisPoints)
	until := token.Deadline(env.Now(), token.DistributionLockPeriod)
	if err := d.token.Lock(self, to, locked, until); err != nil {
		logger.Info("distribution lock failed", "to", to, "error", err)
		return err
	}

	env.Emit(d.addr, "Distributed", map[string]any{
		"from":   env.Caller(),
		"to":     to,
		"value":  new(big.Int).Set(value),
		"locked": locked,
		"until":  until,
	})
	return nil
}
