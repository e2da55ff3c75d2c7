// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package burning

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokencore/builtin/ledger"
	"github.com/vechain/tokencore/builtin/reverts"
	"github.com/vechain/tokencore/lvldb"
	"github.com/vechain/tokencore/state"
	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

var (
	ledgerAddr  = token.BytesToAddress([]byte("Ledger"))
	burningAddr = token.BytesToAddress([]byte("Burning"))
	owner       = token.BytesToAddress([]byte("owner"))
)

type testEnv struct {
	st      *state.State
	ledger  *ledger.Ledger
	burning *Burning
}

func (te *testEnv) env(caller token.Address) *xenv.Environment {
	return xenv.New(te.st, caller, 1)
}

func newTestEnv(t *testing.T, limit, single, allocation int64) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.NewStater(db).NewState()

	te := &testEnv{st: st}
	te.ledger = ledger.New(ledgerAddr, st, func(addr token.Address) (ledger.Burner, bool) {
		if addr == burningAddr {
			return te.burning, true
		}
		return nil, false
	})
	te.burning = New(burningAddr, st, te.ledger)

	require.NoError(t, te.ledger.Initialize(te.env(owner), &ledger.Metadata{Symbol: "TKN"}, big.NewInt(1000)))
	require.NoError(t, te.burning.Initialize(ledgerAddr, big.NewInt(limit), big.NewInt(single)))
	require.NoError(t, te.ledger.SetBurningContract(te.env(owner), burningAddr, big.NewInt(allocation)))
	return te
}

func TestBurnSchedule(t *testing.T) {
	te := newTestEnv(t, 100, 60, 100)

	amount, err := te.ledger.TriggerBurn(te.env(owner))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(60), amount)

	supply, err := te.ledger.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1040), supply)

	amount, err = te.ledger.TriggerBurn(te.env(owner))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(40), amount)

	_, err = te.ledger.TriggerBurn(te.env(owner))
	assert.True(t, reverts.Is(err, reverts.LimitReached))

	burned, err := te.burning.Burned()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), burned)

	supply, err = te.ledger.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), supply)
}

func TestBurnCappedByBalance(t *testing.T) {
	te := newTestEnv(t, 100, 60, 30)

	amount, err := te.ledger.TriggerBurn(te.env(owner))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(30), amount)

	_, err = te.ledger.TriggerBurn(te.env(owner))
	assert.True(t, reverts.Is(err, reverts.LimitReached))

	burned, err := te.burning.Burned()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(30), burned)
}

func TestBurnOnlyFromLedger(t *testing.T) {
	te := newTestEnv(t, 100, 60, 100)

	_, err := te.burning.Burn(te.env(owner))
	assert.True(t, reverts.Is(err, reverts.Unauthorized))

	amount, err := te.burning.Burn(te.env(ledgerAddr))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(60), amount)
}

func TestReaders(t *testing.T) {
	te := newTestEnv(t, 100, 60, 100)

	tok, err := te.burning.Token()
	require.NoError(t, err)
	assert.Equal(t, ledgerAddr, tok)

	limit, err := te.burning.BurnLimit()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), limit)

	single, err := te.burning.SingleBurnAmount()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(60), single)
}
