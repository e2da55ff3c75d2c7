// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"encoding/json"
	"math/big"

	"github.com/vechain/tokencore/xenv"
)

func burningMethods() []*NativeMethod {
	amountReader := func(name string, get func(env *xenv.Environment) (*big.Int, error)) *NativeMethod {
		return Burning.impl(name, true, func(env *xenv.Environment, _ json.RawMessage) ([]any, error) {
			v, err := get(env)
			if err != nil {
				return nil, err
			}
			return []any{hexAmount(v)}, nil
		})
	}
	return []*NativeMethod{
		amountReader("burnLimit", func(env *xenv.Environment) (*big.Int, error) {
			return Burning.WithState(env.State()).BurnLimit()
		}),
		amountReader("singleBurnAmount", func(env *xenv.Environment) (*big.Int, error) {
			return Burning.WithState(env.State()).SingleBurnAmount()
		}),
		amountReader("burned", func(env *xenv.Environment) (*big.Int, error) {
			return Burning.WithState(env.State()).Burned()
		}),
		Burning.impl("token", true, func(env *xenv.Environment, _ json.RawMessage) ([]any, error) {
			addr, err := Burning.WithState(env.State()).Token()
			if err != nil {
				return nil, err
			}
			return []any{addr}, nil
		}),
		Burning.impl("burn", false, func(env *xenv.Environment, _ json.RawMessage) ([]any, error) {
			burned, err := Burning.WithState(env.State()).Burn(env)
			if err != nil {
				return nil, err
			}
			return []any{hexAmount(burned)}, nil
		}),
	}
}
