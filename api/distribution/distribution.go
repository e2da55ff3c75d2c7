// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package distribution

import (
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

// Summary describes both distribution engines.
type Summary struct {
	LockableOwner       token.Address         `json:"lockableOwner"`
	WithdrawableOwner   token.Address         `json:"withdrawableOwner"`
	WithdrawableBalance *math.HexOrDecimal256 `json:"withdrawableBalance"`
	LockCollaborator    token.Address         `json:"lockCollaborator"`
}

// Limits are the withdrawal entitlements of an account.
type Limits struct {
	Address       token.Address         `json:"address"`
	UnlockedLimit *math.HexOrDecimal256 `json:"unlockedLimit"`
	LockedLimit   *math.HexOrDecimal256 `json:"lockedLimit"`
}

type Distribution struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Distribution {
	return &Distribution{rt}
}

func (d *Distribution) handleGetSummary(w http.ResponseWriter, _ *http.Request) error {
	var summary Summary
	err := d.rt.View(func(st *state.State, _ uint64) error {
		var err error
		if summary.LockableOwner, err = builtin.LockableDistribution.WithState(st).Owner(); err != nil {
			return err
		}
		if summary.WithdrawableOwner, err = builtin.WithdrawableDistribution.WithState(st).Owner(); err != nil {
			return err
		}
		lg := builtin.Ledger.WithState(st)
		balance, err := lg.BalanceOf(builtin.WithdrawableDistribution.Address)
		if err != nil {
			return err
		}
		summary.WithdrawableBalance = (*math.HexOrDecimal256)(balance)
		summary.LockCollaborator, err = lg.Collaborator(ledger.RoleLockableDistribution)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &summary)
}

func (d *Distribution) handleGetLimits(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.PathAddress(req, "address")
	if err != nil {
		return err
	}
	limits := Limits{Address: addr}
	err = d.rt.View(func(st *state.State, _ uint64) error {
		wd := builtin.WithdrawableDistribution.WithState(st)
		unlocked, err := wd.UnlockedLimit(addr)
		if err != nil {
			return err
		}
		locked, err := wd.LockedLimit(addr)
		if err != nil {
			return err
		}
		limits.UnlockedLimit = (*math.HexOrDecimal256)(unlocked)
		limits.LockedLimit = (*math.HexOrDecimal256)(locked)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &limits)
}

func (d *Distribution) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /distribution").
		HandlerFunc(utils.WrapHandlerFunc(d.handleGetSummary))
	sub.Path("/accounts/{address}").
		Methods(http.MethodGet).
		Name("GET /distribution/accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(d.handleGetLimits))
}
