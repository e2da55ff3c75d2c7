// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/tokencore/api/burning"
	"github.com/vechain/tokencore/api/calls"
	"github.com/vechain/tokencore/api/distribution"
	"github.com/vechain/tokencore/api/events"
	"github.com/vechain/tokencore/api/ledger"
	"github.com/vechain/tokencore/api/middleware"
	"github.com/vechain/tokencore/api/staking"
	"github.com/vechain/tokencore/api/subscriptions"
	"github.com/vechain/tokencore/api/utils"
	"github.com/vechain/tokencore/api/voting"
	"github.com/vechain/tokencore/log"
	"github.com/vechain/tokencore/logdb"
	"github.com/vechain/tokencore/runtime"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	EnableMetrics        bool
	LogsLimit            uint64
	PageLimit            uint64
	Subscriptions        *subscriptions.Hub
}

// New return api router
func New(rt *runtime.Runtime, logDB *logdb.LogDB, opts Options) http.Handler {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	router.Path("/health").
		Methods(http.MethodGet).
		Name("GET /health").
		HandlerFunc(utils.WrapHandlerFunc(func(w http.ResponseWriter, req *http.Request) error {
			now, err := rt.Now()
			if err != nil {
				return err
			}
			resp := utils.M{"healthy": true, "now": now}
			if logDB != nil {
				seq, err := logDB.LastSeq(req.Context())
				if err != nil {
					return err
				}
				resp["lastEventSeq"] = seq
			}
			return utils.WriteJSON(w, resp)
		}))

	ledger.New(rt).
		Mount(router, "/ledger")
	staking.New(rt, opts.PageLimit).
		Mount(router, "/staking")
	voting.New(rt, opts.PageLimit).
		Mount(router, "/voting")
	burning.New(rt).
		Mount(router, "/burning")
	distribution.New(rt).
		Mount(router, "/distribution")
	calls.New(rt).
		Mount(router, "/calls")
	if logDB != nil {
		events.New(logDB, opts.LogsLimit).
			Mount(router, "/events")
	}
	if opts.Subscriptions != nil {
		subscriptions.New(opts.Subscriptions, origins).
			Mount(router, "/subscriptions")
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	enabled := opts.EnableReqLogger
	if enabled == nil {
		enabled = &atomic.Bool{}
	}
	return middleware.RequestLoggerMiddleware(logger, enabled, opts.SlowQueriesThreshold)(handler)
}
