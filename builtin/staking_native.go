// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

// StakingOption is the JSON view of a staking menu entry.
type StakingOption struct {
	Duration        uint64 `json:"duration"`
	RateBasisPoints uint64 `json:"rateBasisPoints"`
}

// PersonalStake is the JSON view of a stake.
type PersonalStake struct {
	Index             uint64                `json:"index"`
	UnlockedTimestamp uint64                `json:"unlockedTimestamp"`
	ActualAmount      *math.HexOrDecimal256 `json:"actualAmount"`
	StakedFor         token.Address         `json:"stakedFor"`
	RateBasisPoints   uint64                `json:"rateBasisPoints"`
}

type stakeArgs struct {
	OptionIndex uint64                `json:"optionIndex"`
	Beneficiary token.Address         `json:"beneficiary"`
	Amount      *math.HexOrDecimal256 `json:"amount"`
	Memo        string                `json:"memo"`
}

func stakingMethods() []*NativeMethod {
	return []*NativeMethod{
		Staking.impl("owner", true, func(env *xenv.Environment, _ json.RawMessage) ([]any, error) {
			owner, err := Staking.WithState(env.State()).Owner()
			if err != nil {
				return nil, err
			}
			return []any{owner}, nil
		}),
		Staking.impl("stakingOptions", true, func(env *xenv.Environment, _ json.RawMessage) ([]any, error) {
			options, err := Staking.WithState(env.State()).Options()
			if err != nil {
				return nil, err
			}
			out := make([]*StakingOption, 0, len(options))
			for _, o := range options {
				out = append(out, &StakingOption{o.Duration, o.RateBasisPoints})
			}
			return []any{out}, nil
		}),
		Staking.impl("totalStakedFor", true, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args addressArg
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			total, err := Staking.WithState(env.State()).TotalStakedFor(args.Address)
			if err != nil {
				return nil, err
			}
			return []any{hexAmount(total)}, nil
		}),
		Staking.impl("totalStaked", true, func(env *xenv.Environment, _ json.RawMessage) ([]any, error) {
			total, err := Staking.WithState(env.State()).TotalStaked()
			if err != nil {
				return nil, err
			}
			return []any{hexAmount(total)}, nil
		}),
		Staking.impl("personalStakeCount", true, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args addressArg
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			count, err := Staking.WithState(env.State()).PersonalStakeCount(args.Address)
			if err != nil {
				return nil, err
			}
			return []any{count}, nil
		}),
		Staking.impl("personalStakes", true, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args pageArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			stakes, err := Staking.WithState(env.State()).PersonalStakes(args.Address, args.Count, args.Offset)
			if err != nil {
				return nil, err
			}
			out := make([]*PersonalStake, 0, len(stakes))
			for _, s := range stakes {
				out = append(out, &PersonalStake{
					Index:             s.Index,
					UnlockedTimestamp: s.UnlockedTimestamp,
					ActualAmount:      hexAmount(s.ActualAmount),
					StakedFor:         s.StakedFor,
					RateBasisPoints:   s.RateBasisPoints,
				})
			}
			return []any{out}, nil
		}),
		Staking.impl("setStakingOptions", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args struct {
				Durations []uint64 `json:"durations"`
				Rates     []uint64 `json:"rates"`
			}
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, Staking.WithState(env.State()).SetOptions(env, args.Durations, args.Rates)
		}),
		Staking.impl("stake", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args stakeArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			index, err := Staking.WithState(env.State()).Stake(env, args.OptionIndex, amount(args.Amount), args.Memo)
			if err != nil {
				return nil, err
			}
			return []any{index}, nil
		}),
		Staking.impl("stakeFor", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args stakeArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			index, err := Staking.WithState(env.State()).StakeFor(env, args.OptionIndex, args.Beneficiary, amount(args.Amount), args.Memo)
			if err != nil {
				return nil, err
			}
			return []any{index}, nil
		}),
		Staking.impl("unstake", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args struct {
				Index uint64 `json:"index"`
				Memo  string `json:"memo"`
			}
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			principal, reward, err := Staking.WithState(env.State()).Unstake(env, args.Index, args.Memo)
			if err != nil {
				return nil, err
			}
			return []any{hexAmount(principal), hexAmount(reward)}, nil
		}),
		Staking.impl("transferOwnership", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args ownershipArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, Staking.WithState(env.State()).TransferOwnership(env, args.NewOwner)
		}),
	}
}
