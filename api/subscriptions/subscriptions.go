// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/vechain/tokencore/api/utils"
	"github.com/vechain/tokencore/builtin"
	"github.com/vechain/tokencore/log"
	"github.com/vechain/tokencore/token"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 7) / 10
)

type Subscriptions struct {
	hub      *Hub
	upgrader *websocket.Upgrader
}

// New serves subscriptions fed by hub. Cross-origin upgrades are accepted from
// allowedOrigins only, "*" allowing any.
func New(hub *Hub, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		hub: hub,
		upgrader: &websocket.Upgrader{
			CheckOrigin: checkOrigin(allowedOrigins),
		},
	}
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}

func queryAddress(req *http.Request, name string) (*token.Address, error) {
	s := req.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	addr, err := token.ParseAddress(s)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

func parseFilter(req *http.Request) (*EventFilter, error) {
	var (
		filter EventFilter
		err    error
	)
	if filter.Address, err = queryAddress(req, "address"); err != nil {
		return nil, err
	}
	if contract := req.URL.Query().Get("contract"); contract != "" {
		if filter.Address != nil {
			return nil, utils.BadRequest(errors.New("address and contract are exclusive"))
		}
		addr, ok := builtin.ContractByName(contract)
		if !ok {
			return nil, utils.BadRequest(errors.Errorf("contract: unknown %q", contract))
		}
		filter.Address = &addr
	}
	if filter.Caller, err = queryAddress(req, "caller"); err != nil {
		return nil, err
	}
	filter.Name = req.URL.Query().Get("name")
	return &filter, nil
}

func (s *Subscriptions) handleSubscribeEvents(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseFilter(req)
	if err != nil {
		return err
	}
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// the upgrader has already replied
		logger.Debug("upgrade failed", "err", err)
		return nil
	}
	defer conn.Close()

	sub, err := s.hub.subscribe(filter)
	if err != nil {
		closeConn(conn, websocket.CloseGoingAway, err.Error())
		return nil
	}
	defer s.hub.unsubscribe(sub)

	pipe(conn, sub)
	return nil
}

// pipe writes messages of sub to conn until either side ends.
func pipe(conn *websocket.Conn, sub *subscriber) {
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-sub.ch:
			if !ok {
				closeConn(conn, websocket.CloseGoingAway, "subscription ended")
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				logger.Debug("write failed", "err", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}

func closeConn(conn *websocket.Conn, code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/event").
		Methods(http.MethodGet).
		Name("WS /subscriptions/event").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeEvents))
}
