// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"math"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/tokencore/api/utils"
	"github.com/vechain/tokencore/builtin"
	"github.com/vechain/tokencore/logdb"
	"github.com/vechain/tokencore/token"
)

type Events struct {
	db    *logdb.LogDB
	limit uint64
}

func New(db *logdb.LogDB, logsLimit uint64) *Events {
	return &Events{
		db,
		logsLimit,
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

func (e *Events) parseFilter(req *http.Request) (*logdb.EventFilter, error) {
	query := req.URL.Query()

	var (
		criteria logdb.EventCriteria
		err      error
	)
	if criteria.Address, err = queryAddress(req, "address"); err != nil {
		return nil, err
	}
	if contract := query.Get("contract"); contract != "" {
		if criteria.Address != nil {
			return nil, utils.BadRequest(errors.New("address and contract are exclusive"))
		}
		addr, ok := builtin.ContractByName(contract)
		if !ok {
			return nil, utils.BadRequest(errors.Errorf("contract: unknown %q", contract))
		}
		criteria.Address = &addr
	}
	if criteria.Caller, err = queryAddress(req, "caller"); err != nil {
		return nil, err
	}
	criteria.Name = query.Get("name")

	filter := &logdb.EventFilter{Order: logdb.ASC}
	if criteria != (logdb.EventCriteria{}) {
		filter.CriteriaSet = []*logdb.EventCriteria{&criteria}
	}

	switch order := logdb.Order(query.Get("order")); order {
	case "", logdb.ASC:
	case logdb.DESC:
		filter.Order = logdb.DESC
	default:
		return nil, utils.BadRequest(errors.Errorf("order: unsupported %q", order))
	}

	if query.Has("from") || query.Has("to") {
		unit := logdb.RangeType(query.Get("unit"))
		switch unit {
		case "":
			unit = logdb.Seq
		case logdb.Seq, logdb.Time:
		default:
			return nil, utils.BadRequest(errors.Errorf("unit: unsupported %q", unit))
		}
		from, err := utils.QueryUint64(req, "from", 0)
		if err != nil {
			return nil, err
		}
		to, err := utils.QueryUint64(req, "to", math.MaxInt64)
		if err != nil {
			return nil, err
		}
		to = min(to, math.MaxInt64)
		if to < from {
			return nil, utils.BadRequest(errors.New("to: less than from"))
		}
		filter.Range = &logdb.Range{Unit: unit, From: from, To: to}
	}

	offset, err := utils.QueryUint64(req, "offset", 0)
	if err != nil {
		return nil, err
	}
	limit, err := utils.QueryUint64(req, "limit", e.limit)
	if err != nil {
		return nil, err
	}
	if limit > e.limit {
		return nil, utils.BadRequest(errors.Errorf("limit: exceeds the maximum of %d", e.limit))
	}
	filter.Options = &logdb.Options{Offset: min(offset, math.MaxInt64), Limit: limit}
	return filter, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	filter, err := e.parseFilter(req)
	if err != nil {
		return err
	}
	events, err := e.db.FilterEvents(req.Context(), filter)
	if err != nil {
		return err
	}
	out := make([]*FilteredEvent, len(events))
	for i, ev := range events {
		out[i] = convertEvent(ev)
	}
	return utils.WriteJSON(w, out)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /events").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
