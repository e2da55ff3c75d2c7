// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/tokencore/builtin"
	"github.com/vechain/tokencore/genesis"
	"github.com/vechain/tokencore/runtime"
	"github.com/vechain/tokencore/token"
)

const testGenesis = `
name: clitest
launchTime: 1700000000
owner: "0x00000000000000000000000000000000000000aa"
token:
  name: Test Token
  symbol: TST
  decimals: 18
  supply: 1000
allocations:
  - address: "0x00000000000000000000000000000000000000bb"
    amount: 100
`

func newContext(t *testing.T, values map[string]string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String(genesisFlag.Name, "devnet", "")
	set.String(dataDirFlag.Name, t.TempDir(), "")
	set.Bool(inMemoryFlag.Name, false, "")
	set.Int(cacheFlag.Name, 16, "")
	set.Int(verbosityFlag.Name, 3, "")
	set.Bool(jsonLogsFlag.Name, false, "")
	set.String(callerFlag.Name, "", "")
	set.String(contractFlag.Name, "", "")
	set.String(methodFlag.Name, "", "")
	set.String(argsFlag.Name, "{}", "")
	for k, v := range values {
		require.NoError(t, set.Set(k, v))
	}
	return cli.NewContext(nil, set, nil)
}

func writeGenesis(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testGenesis), 0o600))
	return path
}

func TestSelectGenesis(t *testing.T) {
	gene, err := selectGenesis(newContext(t, nil))
	require.NoError(t, err)
	assert.Equal(t, "devnet", gene.Name())
	assert.Equal(t, genesis.DevAccounts()[0].Address, gene.Owner())

	gene, err = selectGenesis(newContext(t, map[string]string{genesisFlag.Name: writeGenesis(t)}))
	require.NoError(t, err)
	assert.Equal(t, "clitest", gene.Name())
	assert.Equal(t, uint64(1700000000), gene.LaunchTime())

	_, err = selectGenesis(newContext(t, map[string]string{genesisFlag.Name: "/no/such/genesis.yaml"}))
	assert.Error(t, err)
}

func TestParseCall(t *testing.T) {
	gene := genesis.NewDevnet()
	alice := token.BytesToAddress([]byte{0xbb})

	caller, clause, err := parseCall(newContext(t, map[string]string{
		contractFlag.Name: "Ledger",
		methodFlag.Name:   "balanceOf",
		argsFlag.Name:     `{"address":"` + alice.String() + `"}`,
	}), gene)
	require.NoError(t, err)
	assert.Equal(t, gene.Owner(), caller)
	assert.Equal(t, builtin.Ledger.Address, clause.To)
	assert.Equal(t, "balanceOf", clause.Method)

	caller, clause, err = parseCall(newContext(t, map[string]string{
		callerFlag.Name:   alice.String(),
		contractFlag.Name: builtin.Staking.Address.String(),
		methodFlag.Name:   "stakingOptions",
	}), gene)
	require.NoError(t, err)
	assert.Equal(t, alice, caller)
	assert.Equal(t, builtin.Staking.Address, clause.To)

	tests := []map[string]string{
		{contractFlag.Name: "Bank", methodFlag.Name: "transfer"},
		{contractFlag.Name: "Ledger"},
		{contractFlag.Name: "Ledger", methodFlag.Name: "transfer", argsFlag.Name: "{"},
		{callerFlag.Name: "alice", contractFlag.Name: "Ledger", methodFlag.Name: "name"},
	}
	for _, values := range tests {
		_, _, err := parseCall(newContext(t, values), gene)
		assert.Error(t, err, values)
	}
}

func TestBootstrapOnce(t *testing.T) {
	ctx := newContext(t, map[string]string{genesisFlag.Name: writeGenesis(t)})
	gene, err := selectGenesis(ctx)
	require.NoError(t, err)

	s, err := openStores(ctx, gene)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ctx.String(dataDirFlag.Name), "clitest"), s.dir)
	require.NoError(t, bootstrap(runtime.New(s.mainDB, runtime.SystemClock, s.logDB), gene))
	s.Close()

	s, err = openStores(ctx, gene)
	require.NoError(t, err)
	defer s.Close()
	rt := runtime.New(s.mainDB, runtime.SystemClock, s.logDB)
	require.NoError(t, bootstrap(rt, gene))

	out, err := rt.Execute(gene.Owner(), &runtime.Clause{
		To:     builtin.Ledger.Address,
		Method: "totalSupply",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `["0x3e8"]`, mustJSON(t, out.Data))
}

func TestOpenStoresInMemory(t *testing.T) {
	ctx := newContext(t, map[string]string{inMemoryFlag.Name: "true"})
	s, err := openStores(ctx, genesis.NewDevnet())
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, "Memory", s.dir)
}

func mustJSON(t *testing.T, v any) string {
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestWithTimeoutSkipsWebsocket(t *testing.T) {
	var direct bool
	rec := httptest.NewRecorder()
	handler := withTimeout(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		direct = w == http.ResponseWriter(rec)
	}), time.Second)

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ledger", nil))
	assert.False(t, direct)

	req := httptest.NewRequest(http.MethodGet, "/subscriptions/event", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	handler.ServeHTTP(rec, req)
	assert.True(t, direct)
}
