// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokencore/builtin"
	"github.com/vechain/tokencore/builtin/ledger"
	"github.com/vechain/tokencore/genesis"
	"github.com/vechain/tokencore/lvldb"
	"github.com/vechain/tokencore/runtime"
	"github.com/vechain/tokencore/state"
)

const customGenesis = `
name: testnet
launchTime: 1700000000
owner: "0x00000000000000000000000000000000000000aa"
token:
  name: Test Token
  symbol: TST
  decimals: 18
  supply: 1000000
staking:
  options:
    - duration: 31536000
      rateBasisPoints: 200
burning:
  limit: 100
  singleBurnAmount: 60
  allocation: 100
distribution:
  lockRole: withdrawable
  withdrawableFunding: 5000
allocations:
  - address: "0x00000000000000000000000000000000000000bb"
    amount: 1000
`

func newRuntime(t *testing.T) *runtime.Runtime {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return runtime.New(db, func() uint64 { return 0 }, nil)
}

func loadCustom(t *testing.T, content string) *genesis.CustomGenesis {
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	gen, err := genesis.LoadCustomGenesis(path)
	require.NoError(t, err)
	return gen
}

func TestCustomNet(t *testing.T) {
	gen := loadCustom(t, customGenesis)
	assert.Equal(t, uint64(1700000000), gen.LaunchTime)
	assert.Equal(t, big.NewInt(1000000), (*big.Int)(gen.Token.Supply))

	g, err := genesis.NewCustomNet(gen)
	require.NoError(t, err)
	assert.Equal(t, "testnet", g.Name())

	rt := newRuntime(t)
	require.NoError(t, g.Build(rt))

	now, err := rt.Now()
	require.NoError(t, err)
	assert.Equal(t, uint64(1700000000), now)

	err = rt.View(func(st *state.State, _ uint64) error {
		l := builtin.Ledger.WithState(st)

		supply, err := l.TotalSupply()
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(1000100), supply)

		bal, err := l.BalanceOf(gen.Owner)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(1000000-5000-1000), bal)

		bal, err = l.BalanceOf(builtin.Burning.Address)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(100), bal)

		bal, err = l.BalanceOf(builtin.WithdrawableDistribution.Address)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(5000), bal)

		minter, err := l.Collaborator(ledger.RoleStaking)
		require.NoError(t, err)
		assert.Equal(t, builtin.Staking.Address, minter)

		locker, err := l.Collaborator(ledger.RoleLockableDistribution)
		require.NoError(t, err)
		assert.Equal(t, builtin.WithdrawableDistribution.Address, locker)

		options, err := builtin.Staking.WithState(st).Options()
		require.NoError(t, err)
		require.Len(t, options, 1)
		assert.Equal(t, uint64(200), options[0].RateBasisPoints)

		owner, err := builtin.Voting.WithState(st).Owner()
		require.NoError(t, err)
		assert.Equal(t, gen.Owner, owner)
		return nil
	})
	require.NoError(t, err)

	// the initial state is written once
	assert.ErrorIs(t, g.Build(rt), runtime.ErrBootstrapped)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(gen *genesis.CustomGenesis)
	}{
		{"no owner", func(gen *genesis.CustomGenesis) { gen.Owner = [20]byte{} }},
		{"no symbol", func(gen *genesis.CustomGenesis) { gen.Token.Symbol = "" }},
		{"no supply", func(gen *genesis.CustomGenesis) { gen.Token.Supply = nil }},
		{"overspent", func(gen *genesis.CustomGenesis) { gen.Allocations[0].Amount = gen.Token.Supply }},
		{"empty options", func(gen *genesis.CustomGenesis) { gen.Staking.Options = nil }},
		{"zero single burn", func(gen *genesis.CustomGenesis) { gen.Burning.SingleBurnAmount = nil }},
		{"bad lock role", func(gen *genesis.CustomGenesis) { gen.Distribution.LockRole = "everyone" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := loadCustom(t, customGenesis)
			require.NoError(t, gen.Validate())
			tt.mutate(gen)
			assert.Error(t, gen.Validate())
			_, err := genesis.NewCustomNet(gen)
			assert.Error(t, err)
		})
	}
}

func TestDevnet(t *testing.T) {
	g := genesis.NewDevnet()
	accs := genesis.DevAccounts()
	assert.Equal(t, accs[0].Address, g.Owner())

	rt := newRuntime(t)
	require.NoError(t, g.Build(rt))

	err := rt.View(func(st *state.State, _ uint64) error {
		bal, err := builtin.Ledger.WithState(st).BalanceOf(accs[1].Address)
		require.NoError(t, err)
		assert.Equal(t, "1000000000000000000000000", bal.String())
		return nil
	})
	require.NoError(t, err)
}
