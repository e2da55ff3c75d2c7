// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"encoding/json"

	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

// Event represents xenv.Event that can be stored in db.
type Event struct {
	Seq     uint64
	Index   uint32
	Time    uint64
	Caller  token.Address // who made the call
	Address token.Address // always an engine address
	Name    string
	Args    json.RawMessage
}

func newEvent(seq, time uint64, index uint32, caller token.Address, ev *xenv.Event) (*Event, error) {
	args, err := json.Marshal(ev.Args)
	if err != nil {
		return nil, err
	}
	return &Event{
		Seq:     seq,
		Index:   index,
		Time:    time,
		Caller:  caller,
		Address: ev.Address,
		Name:    ev.Name,
		Args:    args,
	}, nil
}

type RangeType string

const (
	Seq  RangeType = "seq"
	Time RangeType = "time"
)

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

type Range struct {
	Unit RangeType
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

type EventCriteria struct {
	Address *token.Address
	Name    string
	Caller  *token.Address
}

// EventFilter filter
type EventFilter struct {
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}
