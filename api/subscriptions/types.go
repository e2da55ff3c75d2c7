// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"encoding/json"

	"github.com/vechain/tokencore/builtin"
	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

// EventMessage is pushed to subscribers for every matching committed event.
type EventMessage struct {
	Seq      uint64          `json:"seq"`
	Index    uint32          `json:"index"`
	Time     uint64          `json:"time"`
	Caller   token.Address   `json:"caller"`
	Address  token.Address   `json:"address"`
	Contract string          `json:"contract,omitempty"`
	Name     string          `json:"name"`
	Args     json.RawMessage `json:"args"`
}

// EventFilter selects events. Nil or empty fields match anything.
type EventFilter struct {
	Address *token.Address
	Caller  *token.Address
	Name    string
}

func (f *EventFilter) Match(caller token.Address, ev *xenv.Event) bool {
	if f.Address != nil && *f.Address != ev.Address {
		return false
	}
	if f.Caller != nil && *f.Caller != caller {
		return false
	}
	if f.Name != "" && f.Name != ev.Name {
		return false
	}
	return true
}

func convertEvent(seq, time uint64, index uint32, caller token.Address, ev *xenv.Event) (*EventMessage, error) {
	args, err := json.Marshal(ev.Args)
	if err != nil {
		return nil, err
	}
	name, _ := builtin.ContractName(ev.Address)
	return &EventMessage{
		Seq:      seq,
		Index:    index,
		Time:     time,
		Caller:   caller,
		Address:  ev.Address,
		Contract: name,
		Name:     ev.Name,
		Args:     args,
	}, nil
}
