// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package voting_test

import (
	"encoding/json"
	"math/big"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokencore/api/apitest"
	"github.com/vechain/tokencore/api/voting"
	"github.com/vechain/tokencore/builtin"
)

func initVotingServer(t *testing.T) (*apitest.Host, func(path string) ([]byte, int)) {
	h := apitest.NewHost(t)
	ts := apitest.Serve(t, func(router *mux.Router) {
		voting.New(h.Runtime, 20).Mount(router, "/voting")
	})

	h.Call(t, apitest.Owner, builtin.Voting.Address, "createIssue", map[string]any{
		"description": "upgrade",
		"duration":    50,
		"options":     []string{"yes", "no"},
	})
	h.Call(t, apitest.Owner, builtin.Voting.Address, "createIssue", map[string]any{
		"description": "color",
		"duration":    10,
		"options":     []string{"red", "green", "blue"},
	})
	h.Call(t, apitest.Alice, builtin.Ledger.Address, "approve", map[string]any{
		"spender": builtin.Voting.Address,
		"amount":  apitest.Amount(100),
	})
	h.Call(t, apitest.Alice, builtin.Voting.Address, "vote", map[string]any{
		"amount": apitest.Amount(40),
		"issue":  0,
		"option": 1,
	})
	return h, func(path string) ([]byte, int) { return apitest.Get(t, ts, path) }
}

func TestIssues(t *testing.T) {
	_, get := initVotingServer(t)

	body, status := get("/voting/issues")
	require.Equal(t, http.StatusOK, status, string(body))
	var issues []*voting.Issue
	require.NoError(t, json.Unmarshal(body, &issues))
	require.Len(t, issues, 2)
	assert.Equal(t, uint64(1), issues[0].Index)
	assert.Equal(t, "color", issues[0].Description)
	assert.Equal(t, 3, issues[0].OptionCount)
	assert.Len(t, issues[0].Options, 3)
	assert.Equal(t, uint64(0), issues[1].Index)

	body, _ = get("/voting/issues?count=1&offset=1")
	issues = nil
	require.NoError(t, json.Unmarshal(body, &issues))
	require.Len(t, issues, 1)
	assert.Equal(t, "upgrade", issues[0].Description)

	_, status = get("/voting/issues?count=21")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestIssue(t *testing.T) {
	h, get := initVotingServer(t)

	body, status := get("/voting/issues/0")
	require.Equal(t, http.StatusOK, status, string(body))
	var issue voting.Issue
	require.NoError(t, json.Unmarshal(body, &issue))
	assert.Equal(t, "upgrade", issue.Description)
	assert.Equal(t, uint64(apitest.LaunchTime+50), issue.EndTimestamp)
	assert.False(t, issue.Closed)
	require.Len(t, issue.Options, 2)
	assert.Equal(t, "yes", issue.Options[0].Description)
	assert.Equal(t, 0, (*big.Int)(issue.Options[0].TotalVotes).Sign())
	assert.Equal(t, "no", issue.Options[1].Description)
	assert.Equal(t, big.NewInt(40), (*big.Int)(issue.Options[1].TotalVotes))

	h.Clock += 51
	body, _ = get("/voting/issues/0")
	issue = voting.Issue{}
	require.NoError(t, json.Unmarshal(body, &issue))
	assert.True(t, issue.Closed)

	_, status = get("/voting/issues/2")
	assert.Equal(t, http.StatusNotFound, status)
	_, status = get("/voting/issues/first")
	assert.Equal(t, http.StatusBadRequest, status)
}
