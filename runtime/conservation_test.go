// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime_test

import (
	"math/big"
	"strconv"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokencore/builtin"
	"github.com/vechain/tokencore/builtin/reverts"
	"github.com/vechain/tokencore/state"
	"github.com/vechain/tokencore/token"
)

type randomOp struct {
	Kind    uint8
	Caller  uint8
	Target  uint8
	Amount  uint16
	Advance uint32
}

// every address that can ever hold tokens in this test
func holders() []token.Address {
	addrs := []token.Address{owner, alice, bob}
	for _, c := range builtin.Contracts() {
		addrs = append(addrs, c.Address)
	}
	return addrs
}

func (h *testHost) supplyAndSum(t *testing.T) (*big.Int, *big.Int) {
	var supply, sum *big.Int
	require.NoError(t, h.rt.View(func(st *state.State, _ uint64) error {
		l := builtin.Ledger.WithState(st)
		var err error
		if supply, err = l.TotalSupply(); err != nil {
			return err
		}
		sum = new(big.Int)
		for _, addr := range holders() {
			bal, err := l.BalanceOf(addr)
			if err != nil {
				return err
			}
			sum.Add(sum, bal)
		}
		return nil
	}))
	return supply, sum
}

func TestConservation(t *testing.T) {
	h := newTestHost(t)
	users := []token.Address{owner, alice, bob}

	h.call(t, owner, builtin.Voting.Address, "createIssue", map[string]any{
		"description": "colour",
		"duration":    1000,
		"options":     []string{"red", "blue"},
	})

	f := fuzz.NewWithSeed(42).NilChance(0)
	for i := 0; i < 300; i++ {
		var op randomOp
		f.Fuzz(&op)

		caller := users[int(op.Caller)%len(users)]
		target := users[int(op.Target)%len(users)]
		signed := int(op.Amount%600) - 100
		amount := strconv.Itoa(signed)
		h.clock += uint64(op.Advance % 100000)

		switch op.Kind % 8 {
		case 0:
			out := h.call(t, caller, builtin.Ledger.Address, "transfer", map[string]any{"to": target, "amount": amount})
			if signed < 0 {
				require.NotNil(t, out.Revert, "step %d", i)
				assert.Equal(t, reverts.InvalidAmount, out.Revert.Kind)
			}
		case 1:
			h.call(t, caller, builtin.Ledger.Address, "approve", map[string]any{"spender": target, "amount": amount})
		case 2:
			h.call(t, target, builtin.Ledger.Address, "transferFrom", map[string]any{"from": caller, "to": target, "amount": amount})
		case 3:
			h.call(t, caller, builtin.Ledger.Address, "approve", map[string]any{"spender": builtin.Staking.Address, "amount": amount})
			h.call(t, caller, builtin.Staking.Address, "stake", map[string]any{"optionIndex": 0, "amount": amount})
		case 4:
			h.call(t, caller, builtin.Staking.Address, "unstake", map[string]any{"index": op.Target % 4})
		case 5:
			out := h.call(t, caller, builtin.Ledger.Address, "burn", map[string]any{"amount": amount})
			if signed < 0 {
				require.NotNil(t, out.Revert, "step %d", i)
				assert.Equal(t, reverts.InvalidAmount, out.Revert.Kind)
			}
		case 6:
			h.call(t, owner, builtin.Ledger.Address, "triggerBurn", nil)
		case 7:
			h.call(t, caller, builtin.Ledger.Address, "approve", map[string]any{"spender": builtin.Voting.Address, "amount": amount})
			h.call(t, caller, builtin.Voting.Address, "vote", map[string]any{"amount": amount, "issue": 0, "option": op.Target % 2})
			h.call(t, caller, builtin.Voting.Address, "withdrawVotedTokens", map[string]any{"issue": 0})
		}

		supply, sum := h.supplyAndSum(t)
		assert.Equal(t, supply.String(), sum.String(), "step %d kind %d", i, op.Kind%8)
	}
}
