// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"math/big"

	"github.com/vechain/tokencore/token"
)

// Sequence is an append-only indexed store. Elements are never removed, so an index
// stays valid for the lifetime of the sequence.
type Sequence[V any] struct {
	length *Uint256
	items  *Mapping[Index, V]
}

func NewSequence[V any](context *Context, pos token.Bytes32) *Sequence[V] {
	return &Sequence[V]{
		length: NewUint256(context, pos),
		items:  NewMapping[Index, V](context, pos),
	}
}

func (s *Sequence[V]) Len() (uint64, error) {
	n, err := s.length.Get()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// Append stores value at the next index and returns that index.
func (s *Sequence[V]) Append(value V) (uint64, error) {
	n, err := s.Len()
	if err != nil {
		return 0, err
	}
	if err := s.items.Set(Index(n), value); err != nil {
		return 0, err
	}
	s.length.Set(new(big.Int).SetUint64(n + 1))
	return n, nil
}

// Get returns the element at i. The caller checks i against Len.
func (s *Sequence[V]) Get(i uint64) (V, error) {
	return s.items.Get(Index(i))
}

// Set replaces the element at i. The caller checks i against Len.
func (s *Sequence[V]) Set(i uint64, value V) error {
	return s.items.Set(Index(i), value)
}
