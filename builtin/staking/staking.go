// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/tokencore/builtin/reverts"
	"github.com/vechain/tokencore/builtin/slots"
	"github.com/vechain/tokencore/log"
	"github.com/vechain/tokencore/state"
	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

var logger = log.WithContext("pkg", "staking")

var (
	slotOwner       = slots.Name("owner")
	slotOptions     = slots.Name("options")
	slotStakes      = slots.Name("stakes")
	slotTotalFor    = slots.Name("total-staked-for")
	slotTotalStaked = slots.Name("total-staked")
)

// Staking escrows tokens for a chosen duration and mints a reward on mature withdrawal.
type Staking struct {
	addr  token.Address
	sctx  *slots.Context
	token Token

	owner       *slots.Address
	options     *slots.Raw[[]*Option]
	totalFor    *slots.Mapping[token.Address, *big.Int]
	totalStaked *slots.Uint256
}

// New create a new instance.
func New(addr token.Address, state *state.State, tok Token) *Staking {
	sctx := slots.NewContext(addr, state)
	return &Staking{
		addr:        addr,
		sctx:        sctx,
		token:       tok,
		owner:       slots.NewAddress(sctx, slotOwner),
		options:     slots.NewRaw[[]*Option](sctx, slotOptions),
		totalFor:    slots.NewMapping[token.Address, *big.Int](sctx, slotTotalFor),
		totalStaked: slots.NewUint256(sctx, slotTotalStaked),
	}
}

func (s *Staking) Address() token.Address { return s.addr }

// stakesOf returns the stake sequence of addr.
func (s *Staking) stakesOf(addr token.Address) *slots.Sequence[*Stake] {
	return slots.NewSequence[*Stake](s.sctx, token.Blake2b(slotStakes.Bytes(), addr.Bytes()))
}

//
// Getters - no state change
//

func (s *Staking) Owner() (token.Address, error) {
	return s.owner.Get()
}

// Options returns the active staking menu.
func (s *Staking) Options() ([]*Option, error) {
	return s.options.Get()
}

func (s *Staking) TotalStakedFor(addr token.Address) (*big.Int, error) {
	return s.totalFor.Get(addr)
}

func (s *Staking) TotalStaked() (*big.Int, error) {
	return s.totalStaked.Get()
}

func (s *Staking) PersonalStakeCount(addr token.Address) (uint64, error) {
	return s.stakesOf(addr).Len()
}

// PersonalStakes returns up to count stakes of addr, newest first, skipping the offset newest.
func (s *Staking) PersonalStakes(addr token.Address, count, offset uint64) ([]*PersonalStake, error) {
	seq := s.stakesOf(addr)
	n, err := seq.Len()
	if err != nil {
		return nil, err
	}
	indexes := slots.ReversePage(n, count, offset)
	stakes := make([]*PersonalStake, 0, len(indexes))
	for _, i := range indexes {
		stake, err := seq.Get(i)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get stake")
		}
		if stake.ActualAmount == nil {
			stake.ActualAmount = new(big.Int)
		}
		stakes = append(stakes, &PersonalStake{Index: i, Stake: stake})
	}
	return stakes, nil
}

//
// Setters - state change
//

// Initialize makes the caller the owner.
func (s *Staking) Initialize(env *xenv.Environment) error {
	owner := env.Caller()
	if owner.IsZero() {
		return reverts.New(reverts.ZeroAddress, "owner is the zero address")
	}
	s.owner.Set(&owner)
	return nil
}

func (s *Staking) requireOwner(env *xenv.Environment) error {
	owner, err := s.owner.Get()
	if err != nil {
		return err
	}
	if env.Caller() != owner {
		return reverts.Newf(reverts.Unauthorized, "caller %v is not the owner", env.Caller())
	}
	return nil
}

func (s *Staking) TransferOwnership(env *xenv.Environment, newOwner token.Address) error {
	if err := s.requireOwner(env); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return reverts.New(reverts.ZeroAddress, "new owner is the zero address")
	}
	s.owner.Set(&newOwner)
	env.Emit(s.addr, "OwnershipTransferred", map[string]any{
		"previous": env.Caller(),
		"new":      newOwner,
	})
	return nil
}

// SetOptions replaces the whole staking menu. Existing stakes keep their captured terms.
func (s *Staking) SetOptions(env *xenv.Environment, durations, rates []uint64) error {
	if err := s.requireOwner(env); err != nil {
		return err
	}
	if len(durations) == 0 || len(durations) != len(rates) {
		return reverts.Newf(reverts.InvalidOptions, "%d durations, %d rates", len(durations), len(rates))
	}
	options := make([]*Option, 0, len(durations))
	for i, d := range durations {
		options = append(options, &Option{Duration: d, RateBasisPoints: rates[i]})
	}
	if err := s.options.Set(options); err != nil {
		return err
	}
	env.Emit(s.addr, "StakingOptionsSet", map[string]any{
		"durations": durations,
		"rates":     rates,
	})
	logger.Info("staking options set", "count", len(options))
	return nil
}

// Stake stakes amount for the caller.
func (s *Staking) Stake(env *xenv.Environment, optionIndex uint64, amount *big.Int, memo string) (uint64, error) {
	return s.StakeFor(env, optionIndex, env.Caller(), amount, memo)
}

// StakeFor pulls amount from the caller and appends a stake to the beneficiary's sequence.
// It returns the index of the new stake.
func (s *Staking) StakeFor(
	env *xenv.Environment,
	optionIndex uint64,
	beneficiary token.Address,
	amount *big.Int,
	memo string,
) (uint64, error) {
	logger.Debug("staking", "staker", env.Caller(), "for", beneficiary, "option", optionIndex, "amount", amount)

	options, err := s.options.Get()
	if err != nil {
		return 0, err
	}
	if len(options) == 0 {
		return 0, reverts.New(reverts.NoOptions, "no staking options")
	}
	if optionIndex >= uint64(len(options)) {
		return 0, reverts.Newf(reverts.InvalidOptionIndex, "option %d of %d", optionIndex, len(options))
	}
	if amount.Sign() <= 0 {
		return 0, reverts.New(reverts.InvalidAmount, "stake amount must be positive")
	}
	if beneficiary.IsZero() {
		return 0, reverts.New(reverts.ZeroAddress, "stake for the zero address")
	}

	if err := s.token.TransferFrom(env.As(s.addr), env.Caller(), s.addr, amount); err != nil {
		logger.Info("stake failed", "staker", env.Caller(), "error", err)
		return 0, err
	}

	option := options[optionIndex]
	index, err := s.stakesOf(beneficiary).Append(&Stake{
		UnlockedTimestamp: token.Deadline(env.Now(), option.Duration),
		ActualAmount:      new(big.Int).Set(amount),
		StakedFor:         beneficiary,
		RateBasisPoints:   option.RateBasisPoints,
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to append stake")
	}

	total, err := s.totalFor.Get(beneficiary)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get staked total")
	}
	total.Add(total, amount)
	if err := s.totalFor.Set(beneficiary, total); err != nil {
		return 0, errors.Wrap(err, "failed to set staked total")
	}
	if err := s.totalStaked.Add(amount); err != nil {
		return 0, err
	}

	env.Emit(s.addr, "Staked", map[string]any{
		"user":   beneficiary,
		"amount": new(big.Int).Set(amount),
		"total":  new(big.Int).Set(total),
		"memo":   memo,
	})
	logger.Info("staked", "for", beneficiary, "index", index, "amount", amount)
	return index, nil
}

// Unstake withdraws the caller's stake at index. The principal is always returned;
// the reward is minted only when the stake has matured.
func (s *Staking) Unstake(env *xenv.Environment, index uint64, memo string) (principal, reward *big.Int, err error) {
	caller := env.Caller()
	logger.Debug("unstaking", "staker", caller, "index", index)

	seq := s.stakesOf(caller)
	n, err := seq.Len()
	if err != nil {
		return nil, nil, err
	}
	if index >= n {
		return nil, nil, reverts.Newf(reverts.InvalidIndex, "stake %d of %d", index, n)
	}
	stake, err := seq.Get(index)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get stake")
	}
	if stake.IsWithdrawn() {
		return nil, nil, reverts.Newf(reverts.AlreadyWithdrawn, "stake %d already withdrawn", index)
	}

	principal = stake.ActualAmount
	stake.ActualAmount = new(big.Int)
	if err := seq.Set(index, stake); err != nil {
		return nil, nil, errors.Wrap(err, "failed to set stake")
	}

	total, err := s.totalFor.Get(caller)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get staked total")
	}
	total.Sub(total, principal)
	if err := s.totalFor.Set(caller, total); err != nil {
		return nil, nil, errors.Wrap(err, "failed to set staked total")
	}
	if err := s.totalStaked.Sub(principal); err != nil {
		return nil, nil, err
	}

	self := env.As(s.addr)
	if err := s.token.Transfer(self, caller, principal); err != nil {
		logger.Info("unstake failed", "staker", caller, "index", index, "error", err)
		return nil, nil, err
	}

	reward = new(big.Int)
	if env.Now() >= stake.UnlockedTimestamp {
		reward = token.ApplyBasisPoints(principal, stake.RateBasisPoints)
		if reward.Sign() > 0 {
			if err := s.token.Mint(self, caller, reward); err != nil {
				logger.Info("reward mint failed", "staker", caller, "index", index, "error", err)
				return nil, nil, err
			}
		}
	}

	env.Emit(s.addr, "Unstaked", map[string]any{
		"user":   caller,
		"amount": new(big.Int).Set(principal),
		"reward": new(big.Int).Set(reward),
		"total":  new(big.Int).Set(total),
		"memo":   memo,
	})
	logger.Info("unstaked", "staker", caller, "index", index, "amount", principal, "reward", reward)
	return principal, reward, nil
}
