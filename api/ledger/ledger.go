// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"

	"github.com/vechain/tokencore/api/utils"
	"github.com/vechain/tokencore/builtin"
	"github.com/vechain/tokencore/builtin/ledger"
	"github.com/vechain/tokencore/runtime"
	"github.com/vechain/tokencore/state"
	"github.com/vechain/tokencore/token"
)

type Ledger struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Ledger {
	return &Ledger{rt}
}

func hexAmount(v *big.Int) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(v)
}

func (l *Ledger) handleGetSummary(w http.ResponseWriter, _ *http.Request) error {
	var summary Summary
	err := l.rt.View(func(st *state.State, now uint64) error {
		lg := builtin.Ledger.WithState(st)
		meta, err := lg.Metadata()
		if err != nil {
			return err
		}
		supply, err := lg.TotalSupply()
		if err != nil {
			return err
		}
		paused, err := lg.Paused()
		if err != nil {
			return err
		}
		owner, err := lg.Owner()
		if err != nil {
			return err
		}
		roles := []struct {
			role ledger.Role
			dst  *token.Address
		}{
			{ledger.RoleBurning, &summary.Collaborators.Burning},
			{ledger.RoleStaking, &summary.Collaborators.Staking},
			{ledger.RoleLockableDistribution, &summary.Collaborators.LockableDistribution},
		}
		for _, r := range roles {
			if *r.dst, err = lg.Collaborator(r.role); err != nil {
				return err
			}
		}
		summary.Name = meta.Name
		summary.Symbol = meta.Symbol
		summary.Decimals = meta.Decimals
		summary.TotalSupply = hexAmount(supply)
		summary.Paused = paused
		summary.Owner = owner
		summary.Now = now
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &summary)
}

func (l *Ledger) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.PathAddress(req, "address")
	if err != nil {
		return err
	}
	acc := Account{Address: addr}
	err = l.rt.View(func(st *state.State, now uint64) error {
		lg := builtin.Ledger.WithState(st)
		balance, err := lg.BalanceOf(addr)
		if err != nil {
			return err
		}
		available, err := lg.AvailableBalance(addr, now)
		if err != nil {
			return err
		}
		lock, err := lg.LockOf(addr)
		if err != nil {
			return err
		}
		acc.Balance = hexAmount(balance)
		acc.AvailableBalance = hexAmount(available)
		acc.Lock = Lock{Amount: hexAmount(lock.Amount), Until: lock.Until, Active: lock.Active(now)}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &acc)
}

func (l *Ledger) handleGetAllowance(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.PathAddress(req, "owner")
	if err != nil {
		return err
	}
	spender, err := utils.PathAddress(req, "spender")
	if err != nil {
		return err
	}
	var allowance *big.Int
	err = l.rt.View(func(st *state.State, _ uint64) error {
		var err error
		allowance, err = builtin.Ledger.WithState(st).Allowance(owner, spender)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Allowance{Owner: owner, Spender: spender, Allowance: hexAmount(allowance)})
}

func (l *Ledger) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /ledger").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetSummary))
	sub.Path("/accounts/{address}").
		Methods(http.MethodGet).
		Name("GET /ledger/accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetAccount))
	sub.Path("/allowances/{owner}/{spender}").
		Methods(http.MethodGet).
		Name("GET /ledger/allowances/{owner}/{spender}").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetAllowance))
}
