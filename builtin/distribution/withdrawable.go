// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package distribution

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/tokencore/builtin/reverts"
	"github.com/vechain/tokencore/builtin/slots"
	"github.com/vechain/tokencore/state"
	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

// LimitKind tells the two withdrawal limits apart.
type LimitKind string

const (
	Unlocked LimitKind = "unlocked"
	Locked   LimitKind = "locked"
)

// Withdrawable holds a funded balance from which accounts withdraw owner granted limits.
type Withdrawable struct {
	ownable
	token Token

	limits map[LimitKind]*slots.Mapping[token.Address, *big.Int]
}

// NewWithdrawable create a new instance.
func NewWithdrawable(addr token.Address, state *state.State, tok Token) *Withdrawable {
	sctx := slots.NewContext(addr, state)
	return &Withdrawable{
		ownable: ownable{addr: addr, owner: slots.NewAddress(sctx, slots.Name("owner"))},
		token:   tok,
		limits: map[LimitKind]*slots.Mapping[token.Address, *big.Int]{
			Unlocked: slots.NewMapping[token.Address, *big.Int](sctx, slots.Name("unlocked-limits")),
			Locked:   slots.NewMapping[token.Address, *big.Int](sctx, slots.Name("locked-limits")),
		},
	}
}

func (d *Withdrawable) Address() token.Address { return d.addr }

func (d *Withdrawable) UnlockedLimit(addr token.Address) (*big.Int, error) {
	return d.limits[Unlocked].Get(addr)
}

func (d *Withdrawable) LockedLimit(addr token.Address) (*big.Int, error) {
	return d.limits[Locked].Get(addr)
}

func (d *Withdrawable) increase(env *xenv.Environment, kind LimitKind, account token.Address, amount *big.Int) error {
	if account.IsZero() {
		return reverts.New(reverts.ZeroAddress, "limit for the zero address")
	}
	if amount.Sign() < 0 {
		return reverts.Newf(reverts.InvalidAmount, "limit increase %v is negative", amount)
	}
	limits := d.limits[kind]
	limit, err := limits.Get(account)
	if err != nil {
		return errors.Wrap(err, "failed to get limit")
	}
	if err := limits.Set(account, limit.Add(limit, amount)); err != nil {
		return errors.Wrap(err, "failed to set limit")
	}
	env.Emit(d.addr, "LimitIncreased", map[string]any{
		"kind":    string(kind),
		"account": account,
		"amount":  new(big.Int).Set(amount),
	})
	return nil
}

func (d *Withdrawable) increaseBatch(env *xenv.Environment, kind LimitKind, accounts []token.Address, amounts []*big.Int) error {
	if err := d.requireOwner(env); err != nil {
		return err
	}
	if err := checkLengths(len(accounts), len(amounts)); err != nil {
		return err
	}
	for i, account := range accounts {
		if err := d.increase(env, kind, account, amounts[i]); err != nil {
			return err
		}
	}
	logger.Info("limits increased", "kind", kind, "count", len(accounts))
	return nil
}

// IncreaseUnlockedLimit adds amount to what account may withdraw freely.
func (d *Withdrawable) IncreaseUnlockedLimit(env *xenv.Environment, account token.Address, amount *big.Int) error {
	return d.increaseBatch(env, Unlocked, []token.Address{account}, []*big.Int{amount})
}

// IncreaseLockedLimit adds amount to what account may withdraw under a lock.
func (d *Withdrawable) IncreaseLockedLimit(env *xenv.Environment, account token.Address, amount *big.Int) error {
	return d.increaseBatch(env, Locked, []token.Address{account}, []*big.Int{amount})
}

func (d *Withdrawable) IncreaseUnlockedLimits(env *xenv.Environment, accounts []token.Address, amounts []*big.Int) error {
	return d.increaseBatch(env, Unlocked, accounts, amounts)
}

func (d *Withdrawable) IncreaseLockedLimits(env *xenv.Environment, accounts []token.Address, amounts []*big.Int) error {
	return d.increaseBatch(env, Locked, accounts, amounts)
}

// WithdrawUnlocked transfers the caller's whole unlocked limit and zeroes it.
func (d *Withdrawable) WithdrawUnlocked(env *xenv.Environment) (*big.Int, error) {
	return d.withdraw(env, Unlocked)
}

// WithdrawLocked transfers the caller's whole locked limit, zeroes it and locks the
// withdrawn amount for DistributionLockPeriod.
func (d *Withdrawable) WithdrawLocked(env *xenv.Environment) (*big.Int, error) {
	return d.withdraw(env, Locked)
}

func (d *Withdrawable) withdraw(env *xenv.Environment, kind LimitKind) (*big.Int, error) {
	caller := env.Caller()
	logger.Debug("withdrawing", "kind", kind, "account", caller)

	limits := d.limits[kind]
	limit, err := limits.Get(caller)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get limit")
	}
	if limit.Sign() == 0 {
		return nil, reverts.Newf(reverts.NotEligible, "no %s limit for %v", kind, caller)
	}
	balance, err := d.token.BalanceOf(d.addr)
	if err != nil {
		return nil, err
	}
	if balance.Cmp(limit) < 0 {
		return nil, reverts.Newf(reverts.InsufficientContractBalance, "holding %v, limit %v", balance, limit)
	}

	limits.Delete(caller)
	self := env.As(d.addr)
	if err := d.token.Transfer(self, caller, limit); err != nil {
		logger.Info("withdraw failed", "kind", kind, "account", caller, "error", err)
		return nil, err
	}
	if kind == Locked {
		if err := d.token.Lock(self, caller, limit, token.Deadline(env.Now(), token.DistributionLockPeriod)); err != nil {
			logger.Info("withdraw lock failed", "account", caller, "error", err)
			return nil, err
		}
	}

	env.Emit(d.addr, "Withdrawn", map[string]any{
		"kind":    string(kind),
		"account": caller,
		"amount":  new(big.Int).Set(limit),
	})
	logger.Info("withdrawn", "kind", kind, "account", caller, "amount", limit)
	return limit, nil
}
