// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package burning

import (
	"math/big"

	"github.com/vechain/tokencore/builtin/reverts"
	"github.com/vechain/tokencore/builtin/slots"
	"github.com/vechain/tokencore/log"
	"github.com/vechain/tokencore/state"
	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

var logger = log.WithContext("pkg", "burning")

var (
	slotToken      = slots.Name("token")
	slotBurnLimit  = slots.Name("burn-limit")
	slotSingleBurn = slots.Name("single-burn-amount")
	slotBurned     = slots.Name("burned")
)

// Token is the part of the ledger the burning engine calls into.
type Token interface {
	BalanceOf(addr token.Address) (*big.Int, error)
	Burn(env *xenv.Environment, amount *big.Int) error
}

// Burning destroys its own pre-funded balance in metered steps, up to a cumulative limit.
type Burning struct {
	addr  token.Address
	token Token

	tokenAddr  *slots.Address
	burnLimit  *slots.Uint256
	singleBurn *slots.Uint256
	burned     *slots.Uint256
}

// New create a new instance.
func New(addr token.Address, state *state.State, tok Token) *Burning {
	sctx := slots.NewContext(addr, state)
	return &Burning{
		addr:       addr,
		token:      tok,
		tokenAddr:  slots.NewAddress(sctx, slotToken),
		burnLimit:  slots.NewUint256(sctx, slotBurnLimit),
		singleBurn: slots.NewUint256(sctx, slotSingleBurn),
		burned:     slots.NewUint256(sctx, slotBurned),
	}
}

func (b *Burning) Address() token.Address { return b.addr }

func (b *Burning) Token() (token.Address, error)       { return b.tokenAddr.Get() }
func (b *Burning) BurnLimit() (*big.Int, error)        { return b.burnLimit.Get() }
func (b *Burning) SingleBurnAmount() (*big.Int, error) { return b.singleBurn.Get() }
func (b *Burning) Burned() (*big.Int, error)           { return b.burned.Get() }

// Initialize binds the engine to the ledger at tokenAddr with its limits.
func (b *Burning) Initialize(tokenAddr token.Address, burnLimit, singleBurnAmount *big.Int) error {
	if tokenAddr.IsZero() {
		return reverts.New(reverts.ZeroAddress, "token is the zero address")
	}
	b.tokenAddr.Set(&tokenAddr)
	b.burnLimit.Set(burnLimit)
	b.singleBurn.Set(singleBurnAmount)
	return nil
}

// Burn destroys min(single burn amount, remaining limit, own balance). Only the ledger may call it.
func (b *Burning) Burn(env *xenv.Environment) (*big.Int, error) {
	tokenAddr, err := b.tokenAddr.Get()
	if err != nil {
		return nil, err
	}
	if tokenAddr.IsZero() || env.Caller() != tokenAddr {
		return nil, reverts.Newf(reverts.Unauthorized, "caller %v is not the token", env.Caller())
	}

	amount, err := b.singleBurn.Get()
	if err != nil {
		return nil, err
	}
	limit, err := b.burnLimit.Get()
	if err != nil {
		return nil, err
	}
	burned, err := b.burned.Get()
	if err != nil {
		return nil, err
	}
	if remaining := new(big.Int).Sub(limit, burned); remaining.Cmp(amount) < 0 {
		amount = remaining
	}
	balance, err := b.token.BalanceOf(b.addr)
	if err != nil {
		return nil, err
	}
	if balance.Cmp(amount) < 0 {
		amount = balance
	}
	if amount.Sign() <= 0 {
		return nil, reverts.Newf(reverts.LimitReached, "burned %v of %v", burned, limit)
	}

	if err := b.token.Burn(env.As(b.addr), amount); err != nil {
		logger.Info("burn failed", "amount", amount, "error", err)
		return nil, err
	}
	burned.Add(burned, amount)
	b.burned.Set(burned)

	env.Emit(b.addr, "Burned", map[string]any{
		"amount": new(big.Int).Set(amount),
		"burned": new(big.Int).Set(burned),
	})
	logger.Info("burned", "amount", amount, "burned", burned, "limit", limit)
	return amount, nil
}
