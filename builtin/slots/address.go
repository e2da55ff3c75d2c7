// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"github.com/vechain/tokencore/token"
)

// Address stores an address at a fixed position. Unset reads as the zero address.
type Address struct {
	context *Context
	pos     token.Bytes32
}

func NewAddress(context *Context, pos token.Bytes32) *Address {
	return &Address{context: context, pos: pos}
}

func (a *Address) Get() (token.Address, error) {
	raw, err := a.context.state.GetRawStorage(a.context.address, a.pos)
	if err != nil {
		return token.Address{}, err
	}
	return token.BytesToAddress(raw), nil
}

// Set stores addr, nil clears the slot.
func (a *Address) Set(addr *token.Address) {
	var raw []byte
	if addr != nil && !addr.IsZero() {
		raw = addr.Bytes()
	}
	a.context.state.SetRawStorage(a.context.address, a.pos, raw)
}
