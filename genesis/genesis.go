// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/tokencore/builtin"
	"github.com/vechain/tokencore/builtin/ledger"
	"github.com/vechain/tokencore/runtime"
	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

// Genesis to build the initial state.
type Genesis struct {
	builder *Builder
	name    string
	owner   token.Address
}

// Build writes the initial state through rt.
func (g *Genesis) Build(rt *runtime.Runtime) error {
	return g.builder.Build(rt)
}

// Name returns network name.
func (g *Genesis) Name() string { return g.name }

// Owner returns the deployer of every engine.
func (g *Genesis) Owner() token.Address { return g.owner }

// LaunchTime returns the time of the initial state.
func (g *Genesis) LaunchTime() uint64 { return g.builder.timestamp }

// Which distribution engine the ledger lets apply locks.
const (
	LockRoleNone         = "none"
	LockRoleLockable     = "lockable"
	LockRoleWithdrawable = "withdrawable"
)

// CustomGenesis is user customized genesis.
type CustomGenesis struct {
	Name         string        `yaml:"name"`
	LaunchTime   uint64        `yaml:"launchTime"`
	Owner        token.Address `yaml:"owner"`
	Token        TokenParams   `yaml:"token"`
	Staking      *Staking      `yaml:"staking"`
	Burning      *Burning      `yaml:"burning"`
	Distribution Distribution  `yaml:"distribution"`
	Allocations  []Allocation  `yaml:"allocations"`
}

type TokenParams struct {
	Name     string                `yaml:"name"`
	Symbol   string                `yaml:"symbol"`
	Decimals uint8                 `yaml:"decimals"`
	Supply   *math.HexOrDecimal256 `yaml:"supply"`
}

type StakingOption struct {
	Duration        uint64 `yaml:"duration"`
	RateBasisPoints uint64 `yaml:"rateBasisPoints"`
}

// Staking registers the staking engine as the ledger's minter.
type Staking struct {
	Options []StakingOption `yaml:"options"`
}

// Burning registers the burning engine and funds it with Allocation.
type Burning struct {
	Limit            *math.HexOrDecimal256 `yaml:"limit"`
	SingleBurnAmount *math.HexOrDecimal256 `yaml:"singleBurnAmount"`
	Allocation       *math.HexOrDecimal256 `yaml:"allocation"`
}

type Distribution struct {
	LockRole            string                `yaml:"lockRole"`
	WithdrawableFunding *math.HexOrDecimal256 `yaml:"withdrawableFunding"`
}

// Allocation is a transfer from the owner executed at launch.
type Allocation struct {
	Address token.Address         `yaml:"address"`
	Amount  *math.HexOrDecimal256 `yaml:"amount"`
}

// LoadCustomGenesis reads a yaml genesis file.
func LoadCustomGenesis(path string) (*CustomGenesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	var gen CustomGenesis
	if err := yaml.Unmarshal(data, &gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis file")
	}
	return &gen, nil
}

func bigOf(v *math.HexOrDecimal256) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return (*big.Int)(v)
}

// Validate checks the parameters before any state is written.
func (gen *CustomGenesis) Validate() error {
	if gen.Owner.IsZero() {
		return errors.New("owner must be set")
	}
	if gen.Token.Name == "" || gen.Token.Symbol == "" {
		return errors.New("token name and symbol must be set")
	}
	supply := bigOf(gen.Token.Supply)
	if supply.Sign() <= 0 {
		return errors.New("token supply must be a positive integer")
	}

	spent := new(big.Int).Set(bigOf(gen.Distribution.WithdrawableFunding))
	for _, a := range gen.Allocations {
		if a.Address.IsZero() {
			return errors.New("allocation address must be set")
		}
		if bigOf(a.Amount).Sign() <= 0 {
			return errors.Errorf("%v: allocation must be a positive integer", a.Address)
		}
		spent.Add(spent, bigOf(a.Amount))
	}
	if spent.Cmp(supply) > 0 {
		return errors.New("allocations exceed token supply")
	}

	if gen.Staking != nil && len(gen.Staking.Options) == 0 {
		return errors.New("staking options must not be empty")
	}
	if gen.Burning != nil {
		if bigOf(gen.Burning.SingleBurnAmount).Sign() <= 0 {
			return errors.New("single burn amount must be a positive integer")
		}
		if bigOf(gen.Burning.Limit).Sign() <= 0 {
			return errors.New("burn limit must be a positive integer")
		}
	}
	switch gen.Distribution.LockRole {
	case "", LockRoleNone, LockRoleLockable, LockRoleWithdrawable:
	default:
		return errors.Errorf("unknown lock role %q", gen.Distribution.LockRole)
	}
	return nil
}

// NewCustomNet create genesis from user parameters.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if err := gen.Validate(); err != nil {
		return nil, err
	}

	builder := new(Builder).
		Owner(gen.Owner).
		Timestamp(gen.LaunchTime).
		State(func(env *xenv.Environment) error {
			st := env.State()
			meta := &ledger.Metadata{Name: gen.Token.Name, Symbol: gen.Token.Symbol, Decimals: gen.Token.Decimals}
			if err := builtin.Ledger.WithState(st).Initialize(env, meta, bigOf(gen.Token.Supply)); err != nil {
				return err
			}
			if err := builtin.Voting.WithState(st).Initialize(env); err != nil {
				return err
			}
			if err := builtin.LockableDistribution.WithState(st).Initialize(env); err != nil {
				return err
			}
			return builtin.WithdrawableDistribution.WithState(st).Initialize(env)
		}).
		State(func(env *xenv.Environment) error {
			st := env.State()
			stk := builtin.Staking.WithState(st)
			if err := stk.Initialize(env); err != nil {
				return err
			}
			if gen.Staking == nil {
				return nil
			}
			durations := make([]uint64, 0, len(gen.Staking.Options))
			rates := make([]uint64, 0, len(gen.Staking.Options))
			for _, o := range gen.Staking.Options {
				durations = append(durations, o.Duration)
				rates = append(rates, o.RateBasisPoints)
			}
			if err := stk.SetOptions(env, durations, rates); err != nil {
				return err
			}
			return builtin.Ledger.WithState(st).SetStakingContract(env, builtin.Staking.Address)
		}).
		State(func(env *xenv.Environment) error {
			if gen.Burning == nil {
				return nil
			}
			st := env.State()
			if err := builtin.Burning.WithState(st).Initialize(
				builtin.Ledger.Address,
				bigOf(gen.Burning.Limit),
				bigOf(gen.Burning.SingleBurnAmount),
			); err != nil {
				return err
			}
			return builtin.Ledger.WithState(st).SetBurningContract(env, builtin.Burning.Address, bigOf(gen.Burning.Allocation))
		}).
		State(func(env *xenv.Environment) error {
			l := builtin.Ledger.WithState(env.State())
			switch gen.Distribution.LockRole {
			case LockRoleLockable:
				if err := l.SetLockableDistributionContract(env, builtin.LockableDistribution.Address); err != nil {
					return err
				}
			case LockRoleWithdrawable:
				if err := l.SetLockableDistributionContract(env, builtin.WithdrawableDistribution.Address); err != nil {
					return err
				}
			}
			if funding := bigOf(gen.Distribution.WithdrawableFunding); funding.Sign() > 0 {
				if err := l.Transfer(env, builtin.WithdrawableDistribution.Address, funding); err != nil {
					return err
				}
			}
			for _, a := range gen.Allocations {
				if err := l.Transfer(env, a.Address, bigOf(a.Amount)); err != nil {
					return errors.Wrapf(err, "allocate to %v", a.Address)
				}
			}
			return nil
		})

	name := gen.Name
	if name == "" {
		name = "customnet"
	}
	return &Genesis{builder, name, gen.Owner}, nil
}
