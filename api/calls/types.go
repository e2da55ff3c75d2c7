// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package calls

import (
	"encoding/json"

	"github.com/vechain/tokencore/token"
)

// Call is the request body of POST /calls. The target is To or, when To is absent,
// the engine named Contract.
type Call struct {
	Caller   token.Address   `json:"caller"`
	To       *token.Address  `json:"to,omitempty"`
	Contract string          `json:"contract,omitempty"`
	Method   string          `json:"method"`
	Args     json.RawMessage `json:"args,omitempty"`
}

// Method describes a callable engine method.
type Method struct {
	Contract string        `json:"contract"`
	Address  token.Address `json:"address"`
	Name     string        `json:"name"`
	Const    bool          `json:"const"`
}
