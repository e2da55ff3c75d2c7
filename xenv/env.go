// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"github.com/vechain/tokencore/state"
	"github.com/vechain/tokencore/token"
)

// Event is a notification emitted by an engine during a call.
type Event struct {
	Address token.Address  `json:"address"`
	Name    string         `json:"name"`
	Args    map[string]any `json:"args"`
}

// Checkpoint marks a point a call can be rolled back to.
type Checkpoint struct {
	revision int
	events   int
}

// Environment an env to execute engine operations.
type Environment struct {
	state  *state.State
	caller token.Address
	time   uint64
	events *[]*Event
}

// New create a new env.
func New(state *state.State, caller token.Address, time uint64) *Environment {
	return &Environment{
		state:  state,
		caller: caller,
		time:   time,
		events: new([]*Event),
	}
}

func (env *Environment) State() *state.State   { return env.state }
func (env *Environment) Caller() token.Address { return env.caller }
func (env *Environment) Now() uint64           { return env.time }

// As returns an env sharing state, time and events, with caller replaced.
// Engines use it to call other engines on their own behalf.
func (env *Environment) As(caller token.Address) *Environment {
	return &Environment{
		state:  env.state,
		caller: caller,
		time:   env.time,
		events: env.events,
	}
}

// Emit records an event.
func (env *Environment) Emit(addr token.Address, name string, args map[string]any) {
	*env.events = append(*env.events, &Event{Address: addr, Name: name, Args: args})
}

// Events returns events emitted so far.
func (env *Environment) Events() []*Event {
	return *env.events
}

// Checkpoint snapshots state and emitted events.
func (env *Environment) Checkpoint() Checkpoint {
	return Checkpoint{
		revision: env.state.NewCheckpoint(),
		events:   len(*env.events),
	}
}

// RevertTo discards every change made after cp.
func (env *Environment) RevertTo(cp Checkpoint) {
	env.state.RevertTo(cp.revision)
	*env.events = (*env.events)[:cp.events]
}
