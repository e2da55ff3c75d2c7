// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/tokencore/builtin/distribution"
	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

type limitArgs struct {
	Account  token.Address           `json:"account"`
	Amount   *math.HexOrDecimal256   `json:"amount"`
	Accounts []token.Address         `json:"accounts"`
	Amounts  []*math.HexOrDecimal256 `json:"amounts"`
}

func distributionMethods() []*NativeMethod {
	limitReader := func(name string, get func(w *distribution.Withdrawable, addr token.Address) (*big.Int, error)) *NativeMethod {
		return WithdrawableDistribution.impl(name, true, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args addressArg
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			v, err := get(WithdrawableDistribution.WithState(env.State()), args.Address)
			if err != nil {
				return nil, err
			}
			return []any{hexAmount(v)}, nil
		})
	}
	withdraw := func(name string, fn func(w *distribution.Withdrawable, env *xenv.Environment) (*big.Int, error)) *NativeMethod {
		return WithdrawableDistribution.impl(name, false, func(env *xenv.Environment, _ json.RawMessage) ([]any, error) {
			v, err := fn(WithdrawableDistribution.WithState(env.State()), env)
			if err != nil {
				return nil, err
			}
			return []any{hexAmount(v)}, nil
		})
	}

	return []*NativeMethod{
		LockableDistribution.impl("owner", true, func(env *xenv.Environment, _ json.RawMessage) ([]any, error) {
			owner, err := LockableDistribution.WithState(env.State()).Owner()
			if err != nil {
				return nil, err
			}
			return []any{owner}, nil
		}),
		LockableDistribution.impl("distributeAndLock", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args struct {
				To    token.Address         `json:"to"`
				Value *math.HexOrDecimal256 `json:"value"`
			}
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, LockableDistribution.WithState(env.State()).DistributeAndLock(env, args.To, amount(args.Value))
		}),
		LockableDistribution.impl("distributeAndLockBatch", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args struct {
				Tos    []token.Address         `json:"tos"`
				Values []*math.HexOrDecimal256 `json:"values"`
			}
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, LockableDistribution.WithState(env.State()).DistributeAndLockBatch(env, args.Tos, amounts(args.Values))
		}),
		LockableDistribution.impl("transferOwnership", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args ownershipArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, LockableDistribution.WithState(env.State()).TransferOwnership(env, args.NewOwner)
		}),

		WithdrawableDistribution.impl("owner", true, func(env *xenv.Environment, _ json.RawMessage) ([]any, error) {
			owner, err := WithdrawableDistribution.WithState(env.State()).Owner()
			if err != nil {
				return nil, err
			}
			return []any{owner}, nil
		}),
		limitReader("unlockedLimit", (*distribution.Withdrawable).UnlockedLimit),
		limitReader("lockedLimit", (*distribution.Withdrawable).LockedLimit),
		WithdrawableDistribution.impl("increaseUnlockedLimit", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args limitArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, WithdrawableDistribution.WithState(env.State()).IncreaseUnlockedLimit(env, args.Account, amount(args.Amount))
		}),
		WithdrawableDistribution.impl("increaseLockedLimit", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args limitArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, WithdrawableDistribution.WithState(env.State()).IncreaseLockedLimit(env, args.Account, amount(args.Amount))
		}),
		WithdrawableDistribution.impl("increaseUnlockedLimits", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args limitArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, WithdrawableDistribution.WithState(env.State()).IncreaseUnlockedLimits(env, args.Accounts, amounts(args.Amounts))
		}),
		WithdrawableDistribution.impl("increaseLockedLimits", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args limitArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, WithdrawableDistribution.WithState(env.State()).IncreaseLockedLimits(env, args.Accounts, amounts(args.Amounts))
		}),
		withdraw("withdrawUnlocked", (*distribution.Withdrawable).WithdrawUnlocked),
		withdraw("withdrawLocked", (*distribution.Withdrawable).WithdrawLocked),
		WithdrawableDistribution.impl("transferOwnership", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args ownershipArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, WithdrawableDistribution.WithState(env.State()).TransferOwnership(env, args.NewOwner)
		}),
	}
}
