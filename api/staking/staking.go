// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/tokencore/api/utils"
	"github.com/vechain/tokencore/builtin"
	"github.com/vechain/tokencore/builtin/staking"
	"github.com/vechain/tokencore/runtime"
	"github.com/vechain/tokencore/state"
	"github.com/vechain/tokencore/token"
)

const defaultPageSize = 20

// Summary is the engine wide staking state.
type Summary struct {
	Owner       token.Address            `json:"owner"`
	TotalStaked *math.HexOrDecimal256    `json:"totalStaked"`
	Options     []*builtin.StakingOption `json:"options"`
}

// Account is the staking position of an address.
type Account struct {
	Address        token.Address         `json:"address"`
	TotalStakedFor *math.HexOrDecimal256 `json:"totalStakedFor"`
	StakeCount     uint64                `json:"stakeCount"`
}

type Staking struct {
	rt       *runtime.Runtime
	maxCount uint64
}

func New(rt *runtime.Runtime, maxCount uint64) *Staking {
	return &Staking{rt, maxCount}
}

func convertOptions(options []*staking.Option) []*builtin.StakingOption {
	out := make([]*builtin.StakingOption, 0, len(options))
	for _, o := range options {
		out = append(out, &builtin.StakingOption{Duration: o.Duration, RateBasisPoints: o.RateBasisPoints})
	}
	return out
}

func (s *Staking) handleGetSummary(w http.ResponseWriter, _ *http.Request) error {
	var summary Summary
	err := s.rt.View(func(st *state.State, _ uint64) error {
		stk := builtin.Staking.WithState(st)
		owner, err := stk.Owner()
		if err != nil {
			return err
		}
		total, err := stk.TotalStaked()
		if err != nil {
			return err
		}
		options, err := stk.Options()
		if err != nil {
			return err
		}
		summary = Summary{owner, (*math.HexOrDecimal256)(total), convertOptions(options)}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &summary)
}

func (s *Staking) handleGetOptions(w http.ResponseWriter, _ *http.Request) error {
	var options []*staking.Option
	err := s.rt.View(func(st *state.State, _ uint64) error {
		var err error
		options, err = builtin.Staking.WithState(st).Options()
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertOptions(options))
}

func (s *Staking) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.PathAddress(req, "address")
	if err != nil {
		return err
	}
	acc := Account{Address: addr}
	err = s.rt.View(func(st *state.State, _ uint64) error {
		stk := builtin.Staking.WithState(st)
		total, err := stk.TotalStakedFor(addr)
		if err != nil {
			return err
		}
		if acc.StakeCount, err = stk.PersonalStakeCount(addr); err != nil {
			return err
		}
		acc.TotalStakedFor = (*math.HexOrDecimal256)(total)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &acc)
}

func (s *Staking) handleGetStakes(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.PathAddress(req, "address")
	if err != nil {
		return err
	}
	count, err := utils.QueryUint64(req, "count", defaultPageSize)
	if err != nil {
		return err
	}
	if count > s.maxCount {
		return utils.BadRequest(errors.Errorf("count: exceeds the maximum of %d", s.maxCount))
	}
	offset, err := utils.QueryUint64(req, "offset", 0)
	if err != nil {
		return err
	}

	var stakes []*staking.PersonalStake
	err = s.rt.View(func(st *state.State, _ uint64) error {
		var err error
		stakes, err = builtin.Staking.WithState(st).PersonalStakes(addr, count, offset)
		return err
	})
	if err != nil {
		return err
	}
	out := make([]*builtin.PersonalStake, 0, len(stakes))
	for _, ps := range stakes {
		out = append(out, &builtin.PersonalStake{
			Index:             ps.Index,
			UnlockedTimestamp: ps.UnlockedTimestamp,
			ActualAmount:      (*math.HexOrDecimal256)(new(big.Int).Set(ps.ActualAmount)),
			StakedFor:         ps.StakedFor,
			RateBasisPoints:   ps.RateBasisPoints,
		})
	}
	return utils.WriteJSON(w, out)
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /staking").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetSummary))
	sub.Path("/options").
		Methods(http.MethodGet).
		Name("GET /staking/options").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetOptions))
	sub.Path("/accounts/{address}").
		Methods(http.MethodGet).
		Name("GET /staking/accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetAccount))
	sub.Path("/accounts/{address}/stakes").
		Methods(http.MethodGet).
		Name("GET /staking/accounts/{address}/stakes").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStakes))
}
