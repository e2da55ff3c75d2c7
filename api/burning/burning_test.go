// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package burning_test

import (
	"encoding/json"
	"math/big"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokencore/api/apitest"
	"github.com/vechain/tokencore/api/burning"
	"github.com/vechain/tokencore/builtin"
)

func TestStatus(t *testing.T) {
	h := apitest.NewHost(t)
	ts := apitest.Serve(t, func(router *mux.Router) {
		burning.New(h.Runtime).Mount(router, "/burning")
	})

	status := func() *burning.Status {
		body, code := apitest.Get(t, ts, "/burning")
		require.Equal(t, http.StatusOK, code, string(body))
		var s burning.Status
		require.NoError(t, json.Unmarshal(body, &s))
		return &s
	}

	s := status()
	assert.Equal(t, builtin.Ledger.Address, s.Token)
	assert.Equal(t, big.NewInt(100), (*big.Int)(s.BurnLimit))
	assert.Equal(t, big.NewInt(60), (*big.Int)(s.SingleBurnAmount))
	assert.Equal(t, 0, (*big.Int)(s.Burned).Sign())
	assert.Equal(t, big.NewInt(100), (*big.Int)(s.Balance))

	h.Call(t, apitest.Owner, builtin.Ledger.Address, "triggerBurn", nil)
	s = status()
	assert.Equal(t, big.NewInt(60), (*big.Int)(s.Burned))
	assert.Equal(t, big.NewInt(40), (*big.Int)(s.Balance))

	h.Call(t, apitest.Owner, builtin.Ledger.Address, "triggerBurn", nil)
	s = status()
	assert.Equal(t, big.NewInt(100), (*big.Int)(s.Burned))
	assert.Equal(t, 0, (*big.Int)(s.Balance).Sign())
}
