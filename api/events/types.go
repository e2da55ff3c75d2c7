// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"encoding/json"

	"github.com/vechain/tokencore/builtin"
	"github.com/vechain/tokencore/logdb"
	"github.com/vechain/tokencore/token"
)

// FilteredEvent is an event as returned by GET /events.
type FilteredEvent struct {
	Seq      uint64          `json:"seq"`
	Index    uint32          `json:"index"`
	Time     uint64          `json:"time"`
	Caller   token.Address   `json:"caller"`
	Address  token.Address   `json:"address"`
	Contract string          `json:"contract,omitempty"`
	Name     string          `json:"name"`
	Args     json.RawMessage `json:"args"`
}

func convertEvent(e *logdb.Event) *FilteredEvent {
	name, _ := builtin.ContractName(e.Address)
	return &FilteredEvent{
		Seq:      e.Seq,
		Index:    e.Index,
		Time:     e.Time,
		Caller:   e.Caller,
		Address:  e.Address,
		Contract: name,
		Name:     e.Name,
		Args:     e.Args,
	}
}
