// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokencore/api"
	"github.com/vechain/tokencore/api/apitest"
	"github.com/vechain/tokencore/api/subscriptions"
	"github.com/vechain/tokencore/builtin"
	"github.com/vechain/tokencore/metrics"
	"github.com/vechain/tokencore/xenv"
)

func newHandler(t *testing.T, opts api.Options) (*apitest.Host, http.Handler) {
	h := apitest.NewHost(t)
	if opts.LogsLimit == 0 {
		opts.LogsLimit = 100
	}
	if opts.PageLimit == 0 {
		opts.PageLimit = 100
	}
	return h, api.New(h.Runtime, h.LogDB, opts)
}

func serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	h, handler := newHandler(t, api.Options{})
	h.Call(t, apitest.Owner, builtin.Voting.Address, "createIssue", map[string]any{
		"description": "q",
		"duration":    10,
		"options":     []string{"a", "b"},
	})

	for _, path := range []string{
		"/health",
		"/ledger",
		"/ledger/accounts/" + apitest.Alice.String(),
		"/ledger/allowances/" + apitest.Alice.String() + "/" + apitest.Bob.String(),
		"/staking",
		"/staking/options",
		"/staking/accounts/" + apitest.Alice.String() + "/stakes",
		"/voting/issues",
		"/voting/issues/0",
		"/burning",
		"/distribution",
		"/distribution/accounts/" + apitest.Alice.String(),
		"/calls/methods",
		"/events?limit=5",
	} {
		rec := serve(handler, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := serve(handler, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	h, handler := newHandler(t, api.Options{})
	h.Call(t, apitest.Alice, builtin.Ledger.Address, "transfer", map[string]any{"to": apitest.Bob, "amount": apitest.Amount(1)})
	h.Clock += 5

	rec := serve(handler, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var health struct {
		Healthy      bool   `json:"healthy"`
		Now          uint64 `json:"now"`
		LastEventSeq uint64 `json:"lastEventSeq"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.True(t, health.Healthy)
	assert.Equal(t, uint64(apitest.LaunchTime+5), health.Now)
	assert.Equal(t, uint64(1), health.LastEventSeq)
}

func TestCORS(t *testing.T) {
	_, handler := newHandler(t, api.Options{AllowedOrigins: "https://wallet.example, HTTPS://Other.Example"})

	req := httptest.NewRequest(http.MethodGet, "/ledger", nil)
	req.Header.Set("Origin", "https://other.example")
	rec := serve(handler, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://other.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ledger", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = serve(handler, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCompression(t *testing.T) {
	_, handler := newHandler(t, api.Options{})

	req := httptest.NewRequest(http.MethodGet, "/calls/methods", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := serve(handler, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}

func TestMetrics(t *testing.T) {
	metrics.Enable()
	_, handler := newHandler(t, api.Options{EnableMetrics: true})

	serve(handler, httptest.NewRequest(http.MethodGet, "/ledger", nil))
	serve(handler, httptest.NewRequest(http.MethodGet, "/ledger/accounts/nope", nil))

	rec := httptest.NewRecorder()
	metrics.HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `tokencore_api_request_count{code="200",method="GET",name="GET /ledger"} 1`), body)
	assert.True(t, strings.Contains(body, `tokencore_api_request_count{code="400",method="GET",name="GET /ledger/accounts/{address}"} 1`), body)
}

func TestSubscriptionsThroughMiddleware(t *testing.T) {
	metrics.Enable()
	hub := subscriptions.NewHub(10)
	_, handler := newHandler(t, api.Options{EnableMetrics: true, Subscriptions: hub})
	ts := httptest.NewServer(handler)
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/subscriptions/event", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	metrics.HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "tokencore_api_active_subscriptions 1")

	require.NoError(t, hub.Write(1, apitest.LaunchTime, apitest.Alice, []*xenv.Event{
		{Address: builtin.Ledger.Address, Name: "Transfer", Args: map[string]any{}},
	}))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg subscriptions.EventMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "Transfer", msg.Name)
}
