// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"encoding/binary"

	"github.com/vechain/tokencore/state"
	"github.com/vechain/tokencore/token"
)

// Context binds storage wrappers to the storage of one engine.
type Context struct {
	address token.Address
	state   *state.State
}

func NewContext(address token.Address, state *state.State) *Context {
	return &Context{address: address, state: state}
}

func (c *Context) Address() token.Address { return c.address }
func (c *Context) State() *state.State    { return c.state }

// Key is the key type of a Mapping.
type Key interface {
	Bytes() []byte
}

// Index is a numeric Mapping key.
type Index uint64

func (i Index) Bytes() []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(i))
	return b[:]
}

// Name derives a slot position from a name.
func Name(name string) token.Bytes32 {
	return token.BytesToBytes32([]byte(name))
}
