// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking_test

import (
	"encoding/json"
	"math/big"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokencore/api/apitest"
	"github.com/vechain/tokencore/api/staking"
	"github.com/vechain/tokencore/builtin"
)

func initStakingServer(t *testing.T) (*apitest.Host, func(path string) ([]byte, int)) {
	h := apitest.NewHost(t)
	ts := apitest.Serve(t, func(router *mux.Router) {
		staking.New(h.Runtime, 50).Mount(router, "/staking")
	})

	h.Call(t, apitest.Alice, builtin.Ledger.Address, "approve", map[string]any{
		"spender": builtin.Staking.Address,
		"amount":  apitest.Amount(300),
	})
	h.Call(t, apitest.Alice, builtin.Staking.Address, "stake", map[string]any{
		"optionIndex": 0,
		"amount":      apitest.Amount(100),
	})
	h.Call(t, apitest.Alice, builtin.Staking.Address, "stake", map[string]any{
		"optionIndex": 0,
		"amount":      apitest.Amount(200),
	})
	return h, func(path string) ([]byte, int) { return apitest.Get(t, ts, path) }
}

func TestSummary(t *testing.T) {
	_, get := initStakingServer(t)

	body, status := get("/staking")
	require.Equal(t, http.StatusOK, status, string(body))
	var summary staking.Summary
	require.NoError(t, json.Unmarshal(body, &summary))
	assert.Equal(t, apitest.Owner, summary.Owner)
	assert.Equal(t, big.NewInt(300), (*big.Int)(summary.TotalStaked))
	assert.Equal(t, []*builtin.StakingOption{{Duration: 100, RateBasisPoints: 1000}}, summary.Options)

	body, status = get("/staking/options")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[{"duration":100,"rateBasisPoints":1000}]`, string(body))
}

func TestAccount(t *testing.T) {
	_, get := initStakingServer(t)

	body, status := get("/staking/accounts/" + apitest.Alice.String())
	require.Equal(t, http.StatusOK, status, string(body))
	var acc staking.Account
	require.NoError(t, json.Unmarshal(body, &acc))
	assert.Equal(t, apitest.Alice, acc.Address)
	assert.Equal(t, big.NewInt(300), (*big.Int)(acc.TotalStakedFor))
	assert.Equal(t, uint64(2), acc.StakeCount)

	body, _ = get("/staking/accounts/" + apitest.Bob.String())
	acc = staking.Account{}
	require.NoError(t, json.Unmarshal(body, &acc))
	assert.Equal(t, 0, (*big.Int)(acc.TotalStakedFor).Sign())
	assert.Zero(t, acc.StakeCount)
}

func TestStakes(t *testing.T) {
	h, get := initStakingServer(t)

	stakesOf := func(query string) []*builtin.PersonalStake {
		body, status := get("/staking/accounts/" + apitest.Alice.String() + "/stakes" + query)
		require.Equal(t, http.StatusOK, status, string(body))
		var stakes []*builtin.PersonalStake
		require.NoError(t, json.Unmarshal(body, &stakes))
		return stakes
	}

	stakes := stakesOf("")
	require.Len(t, stakes, 2)
	assert.Equal(t, uint64(1), stakes[0].Index)
	assert.Equal(t, big.NewInt(200), (*big.Int)(stakes[0].ActualAmount))
	assert.Equal(t, uint64(0), stakes[1].Index)
	assert.Equal(t, uint64(apitest.LaunchTime+100), stakes[1].UnlockedTimestamp)
	assert.Equal(t, apitest.Alice, stakes[1].StakedFor)
	assert.Equal(t, uint64(1000), stakes[1].RateBasisPoints)

	stakes = stakesOf("?count=1&offset=1")
	require.Len(t, stakes, 1)
	assert.Equal(t, uint64(0), stakes[0].Index)

	h.Clock += 100
	h.Call(t, apitest.Alice, builtin.Staking.Address, "unstake", map[string]any{"index": 0})
	stakes = stakesOf("?offset=1")
	require.Len(t, stakes, 1)
	assert.Equal(t, 0, (*big.Int)(stakes[0].ActualAmount).Sign())

	assert.Empty(t, stakesOf("?offset=5"))
}

func TestStakesBadQuery(t *testing.T) {
	_, get := initStakingServer(t)

	for _, query := range []string{"?count=51", "?count=x", "?offset=-1"} {
		_, status := get("/staking/accounts/" + apitest.Alice.String() + "/stakes" + query)
		assert.Equal(t, http.StatusBadRequest, status, query)
	}
}
