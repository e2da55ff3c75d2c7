// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package burning

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"

	"github.com/vechain/tokencore/api/utils"
	"github.com/vechain/tokencore/builtin"
	"github.com/vechain/tokencore/runtime"
	"github.com/vechain/tokencore/state"
	"github.com/vechain/tokencore/token"
)

// Status is the burning engine state along with the balance it burns from.
type Status struct {
	Token            token.Address         `json:"token"`
	BurnLimit        *math.HexOrDecimal256 `json:"burnLimit"`
	SingleBurnAmount *math.HexOrDecimal256 `json:"singleBurnAmount"`
	Burned           *math.HexOrDecimal256 `json:"burned"`
	Balance          *math.HexOrDecimal256 `json:"balance"`
}

type Burning struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Burning {
	return &Burning{rt}
}

func (b *Burning) handleGetStatus(w http.ResponseWriter, _ *http.Request) error {
	var status Status
	err := b.rt.View(func(st *state.State, _ uint64) error {
		engine := builtin.Burning.WithState(st)
		tokenAddr, err := engine.Token()
		if err != nil {
			return err
		}
		limit, err := engine.BurnLimit()
		if err != nil {
			return err
		}
		single, err := engine.SingleBurnAmount()
		if err != nil {
			return err
		}
		burned, err := engine.Burned()
		if err != nil {
			return err
		}
		balance, err := builtin.Ledger.WithState(st).BalanceOf(builtin.Burning.Address)
		if err != nil {
			return err
		}
		status = Status{
			Token:            tokenAddr,
			BurnLimit:        (*math.HexOrDecimal256)(limit),
			SingleBurnAmount: (*math.HexOrDecimal256)(single),
			Burned:           (*math.HexOrDecimal256)(burned),
			Balance:          (*math.HexOrDecimal256)(balance),
		}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &status)
}

func (b *Burning) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /burning").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetStatus))
}
