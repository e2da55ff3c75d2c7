// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package apitest runs a bootstrapped runtime behind an httptest server.
package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokencore/genesis"
	"github.com/vechain/tokencore/logdb"
	"github.com/vechain/tokencore/lvldb"
	"github.com/vechain/tokencore/runtime"
	"github.com/vechain/tokencore/token"
)

const LaunchTime = 1700000000

var (
	Owner = token.BytesToAddress([]byte{0xaa})
	Alice = token.BytesToAddress([]byte{0xbb})
	Bob   = token.BytesToAddress([]byte{0xcc})
)

// Host owns the stores of a test deployment.
//
// Genesis: supply 10000 to Owner, one staking option (100s, 10%),
// burning limit 100 with single burn 60 and allocation 100,
// 1000 funding the withdrawable distribution, 1000 allocated to Alice.
type Host struct {
	Runtime *runtime.Runtime
	LogDB   *logdb.LogDB
	Clock   uint64
}

func Amount(n int64) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(big.NewInt(n))
}

func NewHost(t *testing.T) *Host {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	logDB, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { logDB.Close() })

	h := &Host{LogDB: logDB, Clock: LaunchTime}
	h.Runtime = runtime.New(db, func() uint64 { return h.Clock }, logDB)

	g, err := genesis.NewCustomNet(&genesis.CustomGenesis{
		Name:       "apitest",
		LaunchTime: LaunchTime,
		Owner:      Owner,
		Token:      genesis.TokenParams{Name: "Test", Symbol: "TST", Decimals: 2, Supply: Amount(10000)},
		Staking: &genesis.Staking{Options: []genesis.StakingOption{
			{Duration: 100, RateBasisPoints: 1000},
		}},
		Burning: &genesis.Burning{
			Limit:            Amount(100),
			SingleBurnAmount: Amount(60),
			Allocation:       Amount(100),
		},
		Distribution: genesis.Distribution{
			LockRole:            genesis.LockRoleLockable,
			WithdrawableFunding: Amount(1000),
		},
		Allocations: []genesis.Allocation{
			{Address: Alice, Amount: Amount(1000)},
		},
	})
	require.NoError(t, err)
	require.NoError(t, g.Build(h.Runtime))
	return h
}

// Call executes a clause and requires it to be committed or answered without revert.
func (h *Host) Call(t *testing.T, caller, to token.Address, method string, args any) *runtime.Output {
	raw, err := json.Marshal(args)
	require.NoError(t, err)
	out, err := h.Runtime.Execute(caller, &runtime.Clause{To: to, Method: method, Args: raw})
	require.NoError(t, err)
	require.Nil(t, out.Revert, "%s reverted", method)
	return out
}

// Serve mounts routes on a fresh router and serves it until the test ends.
func Serve(t *testing.T, mount func(router *mux.Router)) *httptest.Server {
	router := mux.NewRouter()
	mount(router)
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func Get(t *testing.T, ts *httptest.Server, path string) ([]byte, int) {
	res, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	return readBody(t, res)
}

func Post(t *testing.T, ts *httptest.Server, path string, obj any) ([]byte, int) {
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	res, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return readBody(t, res)
}

func readBody(t *testing.T, res *http.Response) ([]byte, int) {
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}
