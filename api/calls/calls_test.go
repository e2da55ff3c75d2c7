// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package calls_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokencore/api/apitest"
	"github.com/vechain/tokencore/api/calls"
	"github.com/vechain/tokencore/api/utils"
	"github.com/vechain/tokencore/builtin"
)

type output struct {
	Seq    uint64            `json:"seq"`
	Time   uint64            `json:"time"`
	Data   []json.RawMessage `json:"data"`
	Events []struct {
		Name string `json:"name"`
	} `json:"events"`
	Revert *struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"revert"`
}

func initCallsServer(t *testing.T) *httptest.Server {
	h := apitest.NewHost(t)
	return apitest.Serve(t, func(router *mux.Router) {
		calls.New(h.Runtime).Mount(router, "/calls")
	})
}

func post(t *testing.T, ts *httptest.Server, body any) (*output, int, string) {
	data, status := apitest.Post(t, ts, "/calls", body)
	if status != http.StatusOK {
		return nil, status, string(data)
	}
	var out output
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return &out, status, string(data)
}

func TestCall(t *testing.T) {
	ts := initCallsServer(t)

	out, status, body := post(t, ts, utils.M{
		"caller":   apitest.Alice,
		"contract": "Ledger",
		"method":   "transfer",
		"args":     utils.M{"to": apitest.Bob, "amount": "10"},
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.Nil(t, out.Revert)
	assert.Equal(t, uint64(1), out.Seq)
	assert.Equal(t, uint64(apitest.LaunchTime), out.Time)
	require.Len(t, out.Events, 1)
	assert.Equal(t, "Transfer", out.Events[0].Name)

	out, status, body = post(t, ts, utils.M{
		"caller": apitest.Bob,
		"to":     builtin.Ledger.Address,
		"method": "balanceOf",
		"args":   utils.M{"address": apitest.Bob},
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.Zero(t, out.Seq)
	require.Len(t, out.Data, 1)
	assert.JSONEq(t, `"0xa"`, string(out.Data[0]))
	assert.Empty(t, out.Events)
}

func TestCallReverted(t *testing.T) {
	ts := initCallsServer(t)

	out, status, body := post(t, ts, utils.M{
		"caller":   apitest.Alice,
		"contract": "Ledger",
		"method":   "transfer",
		"args":     utils.M{"to": apitest.Bob, "amount": "5000"},
	})
	require.Equal(t, http.StatusOK, status, body)
	require.NotNil(t, out.Revert)
	assert.Equal(t, "InsufficientBalance", out.Revert.Kind)
	assert.NotEmpty(t, out.Revert.Message)
	assert.Zero(t, out.Seq)
	assert.Empty(t, out.Events)

	out, _, _ = post(t, ts, utils.M{
		"caller":   apitest.Alice,
		"contract": "Ledger",
		"method":   "pause",
	})
	require.NotNil(t, out.Revert)
	assert.Equal(t, "Unauthorized", out.Revert.Kind)
}

func TestCallErrors(t *testing.T) {
	ts := initCallsServer(t)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"unknown method", utils.M{"caller": apitest.Alice, "contract": "Ledger", "method": "steal"}, http.StatusNotFound},
		{"unknown contract", utils.M{"caller": apitest.Alice, "contract": "Bank", "method": "transfer"}, http.StatusNotFound},
		{"no target", utils.M{"caller": apitest.Alice, "method": "transfer"}, http.StatusBadRequest},
		{"no method", utils.M{"caller": apitest.Alice, "contract": "Ledger"}, http.StatusBadRequest},
		{"unknown field", utils.M{"caller": apitest.Alice, "contract": "Ledger", "method": "name", "gas": 1}, http.StatusBadRequest},
		{"bad args", utils.M{"caller": apitest.Alice, "contract": "Ledger", "method": "transfer", "args": utils.M{"to": 5}}, http.StatusBadRequest},
		{"bad caller", utils.M{"caller": "alice", "contract": "Ledger", "method": "name"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, status, body := post(t, ts, tt.body)
			assert.Equal(t, tt.status, status, body)
		})
	}
}

func TestMethods(t *testing.T) {
	ts := initCallsServer(t)

	body, status := apitest.Get(t, ts, "/calls/methods")
	require.Equal(t, http.StatusOK, status)
	var methods []*calls.Method
	require.NoError(t, json.Unmarshal(body, &methods))

	found := make(map[string]*calls.Method)
	for _, m := range methods {
		found[m.Contract+"."+m.Name] = m
	}
	require.Contains(t, found, "Ledger.transfer")
	assert.False(t, found["Ledger.transfer"].Const)
	assert.Equal(t, builtin.Ledger.Address, found["Ledger.transfer"].Address)
	require.Contains(t, found, "Staking.stakingOptions")
	assert.True(t, found["Staking.stakingOptions"].Const)
	assert.Contains(t, found, "WithdrawableDistribution.withdrawLocked")
	assert.Contains(t, found, "Burning.burn")
}
