// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/tokencore/token"
)

func (l *Ledger) getBalance(addr token.Address) (*big.Int, error) {
	balance, err := l.balances.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}
	return balance, nil
}

func (l *Ledger) setBalance(addr token.Address, balance *big.Int) error {
	return errors.Wrap(l.balances.Set(addr, balance), "failed to set balance")
}

func (l *Ledger) getAllowance(key token.Bytes32) (*big.Int, error) {
	allowance, err := l.allowances.Get(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get allowance")
	}
	return allowance, nil
}

func (l *Ledger) setAllowance(key token.Bytes32, allowance *big.Int) error {
	return errors.Wrap(l.allowances.Set(key, allowance), "failed to set allowance")
}

func (l *Ledger) getLock(addr token.Address) (*Lock, error) {
	lock, err := l.locks.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get lock")
	}
	return lock, nil
}

func (l *Ledger) setLock(addr token.Address, lock *Lock) error {
	return errors.Wrap(l.locks.Set(addr, lock), "failed to set lock")
}

func (l *Ledger) addSupply(amount *big.Int) error {
	return errors.Wrap(l.totalSupply.Add(amount), "failed to increase total supply")
}

func (l *Ledger) subSupply(amount *big.Int) error {
	return errors.Wrap(l.totalSupply.Sub(amount), "failed to decrease total supply")
}
