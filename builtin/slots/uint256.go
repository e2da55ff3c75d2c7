// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/tokencore/token"
)

// Uint256 stores an unsigned integer as minimal big-endian bytes at a fixed position.
type Uint256 struct {
	context *Context
	pos     token.Bytes32
}

func NewUint256(context *Context, pos token.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (*big.Int, error) {
	raw, err := u.context.state.GetRawStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(raw), nil
}

func (u *Uint256) Set(value *big.Int) {
	u.context.state.SetRawStorage(u.context.address, u.pos, value.Bytes())
}

func (u *Uint256) Add(value *big.Int) error {
	v, err := u.Get()
	if err != nil {
		return err
	}
	u.Set(v.Add(v, value))
	return nil
}

// Sub fails when the result would be negative.
func (u *Uint256) Sub(value *big.Int) error {
	v, err := u.Get()
	if err != nil {
		return err
	}
	if v.Cmp(value) < 0 {
		return errors.Errorf("uint256 underflow: %v - %v", v, value)
	}
	u.Set(v.Sub(v, value))
	return nil
}
