// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/vechain/tokencore/stackedmap"
	"github.com/vechain/tokencore/token"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr token.Address
	key  token.Bytes32
}

// State manages the storage of engines within a single call.
type State struct {
	stater *Stater
	sm     *stackedmap.StackedMap[storageKey, []byte] // keeps revisions of storage
}

func newState(stater *Stater) *State {
	state := &State{stater: stater}
	state.sm = stackedmap.New(func(key storageKey) ([]byte, bool, error) {
		v, err := stater.load(key)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	})
	return state
}

// GetRawStorage returns raw storage value for given address and key.
func (s *State) GetRawStorage(addr token.Address, key token.Bytes32) ([]byte, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data, nil
}

// SetRawStorage set raw storage value. An empty value clears the slot.
func (s *State) SetRawStorage(addr token.Address, key token.Bytes32, raw []byte) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(addr token.Address, key token.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
func (s *State) DecodeStorage(addr token.Address, key token.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
	if s.sm.Depth() == 0 {
		s.sm.Push()
	}
}

// Stage collapses all changes made on this state into a stage ready to be committed.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey][]byte)
	for _, entry := range s.sm.Journal() {
		changes[entry.Key] = entry.Value
	}
	return &Stage{stater: s.stater, changes: changes}
}
