// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/vechain/tokencore/runtime"
	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

// Builder helper to build the initial state.
type Builder struct {
	owner      token.Address
	timestamp  uint64
	stateProcs []func(env *xenv.Environment) error
}

// Owner set the account that deploys every engine.
func (b *Builder) Owner(owner token.Address) *Builder {
	b.owner = owner
	return b
}

// Timestamp set the launch time.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// State add a state process, run with the owner as caller.
func (b *Builder) State(proc func(env *xenv.Environment) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Build runs all state processes in one bootstrap call of rt.
func (b *Builder) Build(rt *runtime.Runtime) error {
	return rt.Bootstrap(b.owner, b.timestamp, func(env *xenv.Environment) error {
		for _, proc := range b.stateProcs {
			if err := proc(env); err != nil {
				return err
			}
		}
		return nil
	})
}
