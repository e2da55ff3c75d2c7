// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/vechain/tokencore/builtin/ledger"
	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

// ErrInvalidArgs is returned when call arguments cannot be decoded.
var ErrInvalidArgs = errors.New("invalid arguments")

// NativeMethod is an operation of a builtin engine callable by name.
type NativeMethod struct {
	Contract *Contract
	Name     string
	Const    bool // does not change state
	run      func(env *xenv.Environment, args json.RawMessage) ([]any, error)
}

// Run executes the method. A nil or empty args is decoded as an empty object.
func (m *NativeMethod) Run(env *xenv.Environment, args json.RawMessage) ([]any, error) {
	return m.run(env, args)
}

type methodKey struct {
	token.Address
	name string
}

var nativeMethods = make(map[methodKey]*NativeMethod)

// FindNativeMethod looks up a method of the engine at addr.
func FindNativeMethod(addr token.Address, name string) (*NativeMethod, bool) {
	m, ok := nativeMethods[methodKey{addr, name}]
	return m, ok
}

// NativeMethods lists the methods of the engine at addr.
func NativeMethods(addr token.Address) []*NativeMethod {
	var methods []*NativeMethod
	for key, m := range nativeMethods {
		if key.Address == addr {
			methods = append(methods, m)
		}
	}
	return methods
}

func (c *Contract) impl(name string, isConst bool, run func(env *xenv.Environment, args json.RawMessage) ([]any, error)) *NativeMethod {
	return &NativeMethod{Contract: c, Name: name, Const: isConst, run: run}
}

func parseArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrap(ErrInvalidArgs, err.Error())
	}
	return nil
}

// amount converts an optional decoded amount into a non-nil big integer.
func amount(v *math.HexOrDecimal256) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set((*big.Int)(v))
}

func amounts(vs []*math.HexOrDecimal256) []*big.Int {
	out := make([]*big.Int, 0, len(vs))
	for _, v := range vs {
		out = append(out, amount(v))
	}
	return out
}

func hexAmount(v *big.Int) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(new(big.Int).Set(v))
}

type (
	addressArg struct {
		Address token.Address `json:"address"`
	}
	transferArgs struct {
		From   token.Address         `json:"from"`
		To     token.Address         `json:"to"`
		Amount *math.HexOrDecimal256 `json:"amount"`
	}
	batchArgs struct {
		Tos     []token.Address         `json:"tos"`
		Amounts []*math.HexOrDecimal256 `json:"amounts"`
	}
	spenderArgs struct {
		Spender token.Address         `json:"spender"`
		Amount  *math.HexOrDecimal256 `json:"amount"`
	}
	pageArgs struct {
		Address token.Address `json:"address"`
		Count   uint64        `json:"count"`
		Offset  uint64        `json:"offset"`
	}
	ownershipArgs struct {
		NewOwner token.Address `json:"newOwner"`
	}
)

// Lock is the JSON view of a ledger lock.
type Lock struct {
	Amount *math.HexOrDecimal256 `json:"amount"`
	Until  uint64                `json:"until"`
}

func init() {
	defines := []*NativeMethod{}
	defines = append(defines, ledgerMethods()...)
	defines = append(defines, stakingMethods()...)
	defines = append(defines, votingMethods()...)
	defines = append(defines, burningMethods()...)
	defines = append(defines, distributionMethods()...)
	for _, m := range defines {
		key := methodKey{m.Contract.Address, m.Name}
		if _, dup := nativeMethods[key]; dup {
			panic("duplicated native method " + m.Contract.Name + "." + m.Name)
		}
		nativeMethods[key] = m
	}
}

func ledgerMethods() []*NativeMethod {
	return []*NativeMethod{
		Ledger.impl("name", true, func(env *xenv.Environment, _ json.RawMessage) ([]any, error) {
			meta, err := Ledger.WithState(env.State()).Metadata()
			if err != nil {
				return nil, err
			}
			return []any{meta.Name}, nil
		}),
		Ledger.impl("symbol", true, func(env *xenv.Environment, _ json.RawMessage) ([]any, error) {
			meta, err := Ledger.WithState(env.State()).Metadata()
			if err != nil {
				return nil, err
			}
			return []any{meta.Symbol}, nil
		}),
		Ledger.impl("decimals", true, func(env *xenv.Environment, _ json.RawMessage) ([]any, error) {
			meta, err := Ledger.WithState(env.State()).Metadata()
			if err != nil {
				return nil, err
			}
			return []any{meta.Decimals}, nil
		}),
		Ledger.impl("totalSupply", true, func(env *xenv.Environment, _ json.RawMessage) ([]any, error) {
			supply, err := Ledger.WithState(env.State()).TotalSupply()
			if err != nil {
				return nil, err
			}
			return []any{hexAmount(supply)}, nil
		}),
		Ledger.impl("balanceOf", true, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args addressArg
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			balance, err := Ledger.WithState(env.State()).BalanceOf(args.Address)
			if err != nil {
				return nil, err
			}
			return []any{hexAmount(balance)}, nil
		}),
		Ledger.impl("availableBalance", true, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args addressArg
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			balance, err := Ledger.WithState(env.State()).AvailableBalance(args.Address, env.Now())
			if err != nil {
				return nil, err
			}
			return []any{hexAmount(balance)}, nil
		}),
		Ledger.impl("allowance", true, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args struct {
				Owner   token.Address `json:"owner"`
				Spender token.Address `json:"spender"`
			}
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			allowance, err := Ledger.WithState(env.State()).Allowance(args.Owner, args.Spender)
			if err != nil {
				return nil, err
			}
			return []any{hexAmount(allowance)}, nil
		}),
		Ledger.impl("lockOf", true, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args addressArg
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			lock, err := Ledger.WithState(env.State()).LockOf(args.Address)
			if err != nil {
				return nil, err
			}
			return []any{&Lock{Amount: hexAmount(lock.Amount), Until: lock.Until}}, nil
		}),
		Ledger.impl("paused", true, func(env *xenv.Environment, _ json.RawMessage) ([]any, error) {
			paused, err := Ledger.WithState(env.State()).Paused()
			if err != nil {
				return nil, err
			}
			return []any{paused}, nil
		}),
		Ledger.impl("owner", true, func(env *xenv.Environment, _ json.RawMessage) ([]any, error) {
			owner, err := Ledger.WithState(env.State()).Owner()
			if err != nil {
				return nil, err
			}
			return []any{owner}, nil
		}),
		Ledger.impl("collaborator", true, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args struct {
				Role ledger.Role `json:"role"`
			}
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			addr, err := Ledger.WithState(env.State()).Collaborator(args.Role)
			if err != nil {
				return nil, errors.Wrap(ErrInvalidArgs, err.Error())
			}
			return []any{addr}, nil
		}),
		Ledger.impl("transfer", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args transferArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, Ledger.WithState(env.State()).Transfer(env, args.To, amount(args.Amount))
		}),
		Ledger.impl("transferBatch", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args batchArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, Ledger.WithState(env.State()).TransferBatch(env, args.Tos, amounts(args.Amounts))
		}),
		Ledger.impl("transferFrom", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args transferArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, Ledger.WithState(env.State()).TransferFrom(env, args.From, args.To, amount(args.Amount))
		}),
		Ledger.impl("approve", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args spenderArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, Ledger.WithState(env.State()).Approve(env, args.Spender, amount(args.Amount))
		}),
		Ledger.impl("increaseAllowance", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args spenderArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, Ledger.WithState(env.State()).IncreaseAllowance(env, args.Spender, amount(args.Amount))
		}),
		Ledger.impl("decreaseAllowance", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args spenderArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, Ledger.WithState(env.State()).DecreaseAllowance(env, args.Spender, amount(args.Amount))
		}),
		Ledger.impl("mint", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args transferArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, Ledger.WithState(env.State()).Mint(env, args.To, amount(args.Amount))
		}),
		Ledger.impl("burn", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args transferArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, Ledger.WithState(env.State()).Burn(env, amount(args.Amount))
		}),
		Ledger.impl("burnFrom", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args transferArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, Ledger.WithState(env.State()).BurnFrom(env, args.From, amount(args.Amount))
		}),
		Ledger.impl("lock", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args struct {
				Account token.Address         `json:"account"`
				Amount  *math.HexOrDecimal256 `json:"amount"`
				Until   uint64                `json:"until"`
			}
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, Ledger.WithState(env.State()).Lock(env, args.Account, amount(args.Amount), args.Until)
		}),
		Ledger.impl("pause", false, func(env *xenv.Environment, _ json.RawMessage) ([]any, error) {
			return nil, Ledger.WithState(env.State()).Pause(env)
		}),
		Ledger.impl("unpause", false, func(env *xenv.Environment, _ json.RawMessage) ([]any, error) {
			return nil, Ledger.WithState(env.State()).Unpause(env)
		}),
		Ledger.impl("setBurningContract", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args struct {
				Address    token.Address         `json:"address"`
				Allocation *math.HexOrDecimal256 `json:"allocation"`
			}
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, Ledger.WithState(env.State()).SetBurningContract(env, args.Address, amount(args.Allocation))
		}),
		Ledger.impl("setStakingContract", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args addressArg
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, Ledger.WithState(env.State()).SetStakingContract(env, args.Address)
		}),
		Ledger.impl("setLockableDistributionContract", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args addressArg
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, Ledger.WithState(env.State()).SetLockableDistributionContract(env, args.Address)
		}),
		Ledger.impl("transferOwnership", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args ownershipArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, Ledger.WithState(env.State()).TransferOwnership(env, args.NewOwner)
		}),
		Ledger.impl("triggerBurn", false, func(env *xenv.Environment, _ json.RawMessage) ([]any, error) {
			burned, err := Ledger.WithState(env.State()).TriggerBurn(env)
			if err != nil {
				return nil, err
			}
			return []any{hexAmount(burned)}, nil
		}),
	}
}
