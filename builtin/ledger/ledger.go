// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

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

var logger = log.WithContext("pkg", "ledger")

var (
	slotMetadata     = slots.Name("metadata")
	slotTotalSupply  = slots.Name("total-supply")
	slotBalances     = slots.Name("balances")
	slotAllowances   = slots.Name("allowances")
	slotLocks        = slots.Name("locks")
	slotPaused       = slots.Name("paused")
	slotOwner        = slots.Name("owner")
	slotBurning      = slots.Name("burning-contract")
	slotStaking      = slots.Name("staking-contract")
	slotLockableDist = slots.Name("lockable-distribution-contract")
)

// Ledger holds balances, allowances, supply, pause and lock state of the token.
type Ledger struct {
	addr    token.Address
	resolve BurnerResolver

	metadata    *slots.Raw[*Metadata]
	totalSupply *slots.Uint256
	balances    *slots.Mapping[token.Address, *big.Int]
	allowances  *slots.Mapping[token.Bytes32, *big.Int]
	locks       *slots.Mapping[token.Address, *Lock]
	paused      *slots.Raw[bool]
	owner       *slots.Address
	roles       map[Role]*slots.Address
}

// New create a new instance.
func New(addr token.Address, state *state.State, resolve BurnerResolver) *Ledger {
	sctx := slots.NewContext(addr, state)
	return &Ledger{
		addr:        addr,
		resolve:     resolve,
		metadata:    slots.NewRaw[*Metadata](sctx, slotMetadata),
		totalSupply: slots.NewUint256(sctx, slotTotalSupply),
		balances:    slots.NewMapping[token.Address, *big.Int](sctx, slotBalances),
		allowances:  slots.NewMapping[token.Bytes32, *big.Int](sctx, slotAllowances),
		locks:       slots.NewMapping[token.Address, *Lock](sctx, slotLocks),
		paused:      slots.NewRaw[bool](sctx, slotPaused),
		owner:       slots.NewAddress(sctx, slotOwner),
		roles: map[Role]*slots.Address{
			RoleBurning:              slots.NewAddress(sctx, slotBurning),
			RoleStaking:              slots.NewAddress(sctx, slotStaking),
			RoleLockableDistribution: slots.NewAddress(sctx, slotLockableDist),
		},
	}
}

func (l *Ledger) Address() token.Address { return l.addr }

func allowanceKey(owner, spender token.Address) token.Bytes32 {
	return token.Blake2b(owner.Bytes(), spender.Bytes())
}

//
// Getters - no state change
//

func (l *Ledger) Metadata() (*Metadata, error) {
	return l.metadata.Get()
}

func (l *Ledger) TotalSupply() (*big.Int, error) {
	return l.totalSupply.Get()
}

func (l *Ledger) BalanceOf(addr token.Address) (*big.Int, error) {
	return l.getBalance(addr)
}

func (l *Ledger) Allowance(owner, spender token.Address) (*big.Int, error) {
	return l.getAllowance(allowanceKey(owner, spender))
}

// LockOf returns the lock record of addr, which may already have expired.
func (l *Ledger) LockOf(addr token.Address) (*Lock, error) {
	lock, err := l.getLock(addr)
	if err != nil {
		return nil, err
	}
	if lock.Amount == nil {
		lock.Amount = new(big.Int)
	}
	return lock, nil
}

// AvailableBalance returns the part of the balance of addr not held by an active lock at now.
func (l *Ledger) AvailableBalance(addr token.Address, now uint64) (*big.Int, error) {
	balance, err := l.BalanceOf(addr)
	if err != nil {
		return nil, err
	}
	lock, err := l.LockOf(addr)
	if err != nil {
		return nil, err
	}
	if !lock.Active(now) {
		return balance, nil
	}
	available := new(big.Int).Sub(balance, lock.Amount)
	if available.Sign() < 0 {
		return new(big.Int), nil
	}
	return available, nil
}

func (l *Ledger) Paused() (bool, error) {
	return l.paused.Get()
}

func (l *Ledger) Owner() (token.Address, error) {
	return l.owner.Get()
}

// Collaborator returns the address registered for role, zero if none.
func (l *Ledger) Collaborator(role Role) (token.Address, error) {
	slot, ok := l.roles[role]
	if !ok {
		return token.Address{}, errors.Errorf("unknown role %q", role)
	}
	return slot.Get()
}

//
// Setters - state change
//

// Initialize sets metadata and credits the initial supply to the caller, who becomes the owner.
func (l *Ledger) Initialize(env *xenv.Environment, meta *Metadata, supply *big.Int) error {
	owner := env.Caller()
	if owner.IsZero() {
		return reverts.New(reverts.ZeroAddress, "owner is the zero address")
	}
	if err := l.metadata.Set(meta); err != nil {
		return err
	}
	l.owner.Set(&owner)
	return l.mint(env, owner, supply)
}

func (l *Ledger) requireOwner(env *xenv.Environment) error {
	owner, err := l.owner.Get()
	if err != nil {
		return err
	}
	if env.Caller() != owner {
		return reverts.Newf(reverts.Unauthorized, "caller %v is not the owner", env.Caller())
	}
	return nil
}

func (l *Ledger) requireCollaborator(env *xenv.Environment, role Role) error {
	addr, err := l.Collaborator(role)
	if err != nil {
		return err
	}
	if addr.IsZero() || env.Caller() != addr {
		return reverts.Newf(reverts.Unauthorized, "caller %v is not the %s contract", env.Caller(), role)
	}
	return nil
}

func checkAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return reverts.Newf(reverts.InvalidAmount, "amount %v is negative", amount)
	}
	return nil
}

// debit runs the checks shared by every balance reducing path, then takes amount from addr.
func (l *Ledger) debit(env *xenv.Environment, addr token.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	paused, err := l.paused.Get()
	if err != nil {
		return err
	}
	if paused {
		return reverts.New(reverts.Paused, "ledger is paused")
	}

	balance, err := l.getBalance(addr)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return reverts.Newf(reverts.InsufficientBalance, "balance %v is less than %v", balance, amount)
	}

	available, err := l.AvailableBalance(addr, env.Now())
	if err != nil {
		return err
	}
	if available.Cmp(amount) < 0 {
		return reverts.Newf(reverts.LockExceeded, "only %v of %v is unlocked", available, balance)
	}

	return l.setBalance(addr, balance.Sub(balance, amount))
}

func (l *Ledger) credit(addr token.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	balance, err := l.getBalance(addr)
	if err != nil {
		return err
	}
	return l.setBalance(addr, balance.Add(balance, amount))
}

func (l *Ledger) transfer(env *xenv.Environment, from, to token.Address, amount *big.Int) error {
	if to.IsZero() {
		return reverts.New(reverts.ZeroAddress, "transfer to the zero address")
	}
	if err := l.debit(env, from, amount); err != nil {
		return err
	}
	if err := l.credit(to, amount); err != nil {
		return err
	}
	env.Emit(l.addr, "Transfer", map[string]any{
		"from":  from,
		"to":    to,
		"value": new(big.Int).Set(amount),
	})
	return nil
}

func (l *Ledger) mint(env *xenv.Environment, to token.Address, amount *big.Int) error {
	if to.IsZero() {
		return reverts.New(reverts.ZeroAddress, "mint to the zero address")
	}
	if err := l.credit(to, amount); err != nil {
		return err
	}
	if err := l.addSupply(amount); err != nil {
		return err
	}
	env.Emit(l.addr, "Transfer", map[string]any{
		"from":  token.Address{},
		"to":    to,
		"value": new(big.Int).Set(amount),
	})
	return nil
}

func (l *Ledger) burn(env *xenv.Environment, from token.Address, amount *big.Int) error {
	if err := l.debit(env, from, amount); err != nil {
		return err
	}
	if err := l.subSupply(amount); err != nil {
		return err
	}
	env.Emit(l.addr, "Transfer", map[string]any{
		"from":  from,
		"to":    token.Address{},
		"value": new(big.Int).Set(amount),
	})
	return nil
}

func (l *Ledger) approve(env *xenv.Environment, owner, spender token.Address, amount *big.Int) error {
	if spender.IsZero() {
		return reverts.New(reverts.ZeroAddress, "approve to the zero address")
	}
	if err := checkAmount(amount); err != nil {
		return err
	}
	if err := l.setAllowance(allowanceKey(owner, spender), amount); err != nil {
		return err
	}
	env.Emit(l.addr, "Approval", map[string]any{
		"owner":   owner,
		"spender": spender,
		"value":   new(big.Int).Set(amount),
	})
	return nil
}

// spendAllowance decrements the allowance the owner granted to the caller.
func (l *Ledger) spendAllowance(env *xenv.Environment, owner token.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	key := allowanceKey(owner, env.Caller())
	allowance, err := l.getAllowance(key)
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return reverts.Newf(reverts.AllowanceExceeded, "allowance %v is less than %v", allowance, amount)
	}
	return l.setAllowance(key, allowance.Sub(allowance, amount))
}

// Transfer moves amount from the caller to to.
func (l *Ledger) Transfer(env *xenv.Environment, to token.Address, amount *big.Int) error {
	logger.Trace("transfer", "from", env.Caller(), "to", to, "amount", amount)
	return l.transfer(env, env.Caller(), to, amount)
}

// TransferBatch transfers amounts[i] to tos[i] in order. Any failure undoes the whole batch.
func (l *Ledger) TransferBatch(env *xenv.Environment, tos []token.Address, amounts []*big.Int) error {
	if len(tos) == 0 || len(tos) != len(amounts) {
		return reverts.Newf(reverts.LengthMismatch, "%d recipients, %d amounts", len(tos), len(amounts))
	}
	logger.Debug("transfer batch", "from", env.Caller(), "count", len(tos))

	cp := env.Checkpoint()
	for i, to := range tos {
		if err := l.transfer(env, env.Caller(), to, amounts[i]); err != nil {
			env.RevertTo(cp)
			logger.Info("transfer batch failed", "from", env.Caller(), "index", i, "error", err)
			return err
		}
	}
	return nil
}

// Approve sets the allowance of spender over the caller's tokens.
func (l *Ledger) Approve(env *xenv.Environment, spender token.Address, amount *big.Int) error {
	return l.approve(env, env.Caller(), spender, amount)
}

func (l *Ledger) IncreaseAllowance(env *xenv.Environment, spender token.Address, added *big.Int) error {
	if err := checkAmount(added); err != nil {
		return err
	}
	current, err := l.Allowance(env.Caller(), spender)
	if err != nil {
		return err
	}
	return l.approve(env, env.Caller(), spender, current.Add(current, added))
}

func (l *Ledger) DecreaseAllowance(env *xenv.Environment, spender token.Address, subtracted *big.Int) error {
	if err := checkAmount(subtracted); err != nil {
		return err
	}
	current, err := l.Allowance(env.Caller(), spender)
	if err != nil {
		return err
	}
	if current.Cmp(subtracted) < 0 {
		return reverts.Newf(reverts.AllowanceExceeded, "allowance %v is less than %v", current, subtracted)
	}
	return l.approve(env, env.Caller(), spender, current.Sub(current, subtracted))
}

// TransferFrom moves amount from from to to, spending the caller's allowance.
func (l *Ledger) TransferFrom(env *xenv.Environment, from, to token.Address, amount *big.Int) error {
	logger.Trace("transfer from", "spender", env.Caller(), "from", from, "to", to, "amount", amount)
	if err := l.spendAllowance(env, from, amount); err != nil {
		return err
	}
	return l.transfer(env, from, to, amount)
}

// Mint creates amount tokens for to. Only the staking contract may mint.
func (l *Ledger) Mint(env *xenv.Environment, to token.Address, amount *big.Int) error {
	logger.Debug("minting", "caller", env.Caller(), "to", to, "amount", amount)
	if err := l.requireCollaborator(env, RoleStaking); err != nil {
		logger.Info("mint failed", "caller", env.Caller(), "error", err)
		return err
	}
	return l.mint(env, to, amount)
}

// Burn destroys amount of the caller's tokens.
func (l *Ledger) Burn(env *xenv.Environment, amount *big.Int) error {
	logger.Debug("burning", "from", env.Caller(), "amount", amount)
	return l.burn(env, env.Caller(), amount)
}

// BurnFrom destroys amount of from's tokens, spending the caller's allowance.
func (l *Ledger) BurnFrom(env *xenv.Environment, from token.Address, amount *big.Int) error {
	logger.Debug("burning from", "spender", env.Caller(), "from", from, "amount", amount)
	if err := l.spendAllowance(env, from, amount); err != nil {
		return err
	}
	return l.burn(env, from, amount)
}

// Lock overwrites the lock of account. Only the lockable distribution contract may lock.
func (l *Ledger) Lock(env *xenv.Environment, account token.Address, amount *big.Int, until uint64) error {
	if err := l.requireCollaborator(env, RoleLockableDistribution); err != nil {
		logger.Info("lock failed", "caller", env.Caller(), "account", account, "error", err)
		return err
	}
	if err := checkAmount(amount); err != nil {
		return err
	}
	if err := l.setLock(account, &Lock{Amount: new(big.Int).Set(amount), Until: until}); err != nil {
		return err
	}
	env.Emit(l.addr, "Locked", map[string]any{
		"account": account,
		"amount":  new(big.Int).Set(amount),
		"until":   until,
	})
	logger.Debug("locked", "account", account, "amount", amount, "until", until)
	return nil
}

func (l *Ledger) Pause(env *xenv.Environment) error {
	if err := l.requireOwner(env); err != nil {
		return err
	}
	paused, err := l.paused.Get()
	if err != nil {
		return err
	}
	if paused {
		return reverts.New(reverts.Paused, "ledger is already paused")
	}
	if err := l.paused.Set(true); err != nil {
		return err
	}
	env.Emit(l.addr, "Paused", map[string]any{"account": env.Caller()})
	logger.Info("ledger paused", "by", env.Caller())
	return nil
}

func (l *Ledger) Unpause(env *xenv.Environment) error {
	if err := l.requireOwner(env); err != nil {
		return err
	}
	paused, err := l.paused.Get()
	if err != nil {
		return err
	}
	if !paused {
		return reverts.New(reverts.NotPaused, "ledger is not paused")
	}
	if err := l.paused.Set(false); err != nil {
		return err
	}
	env.Emit(l.addr, "Unpaused", map[string]any{"account": env.Caller()})
	logger.Info("ledger unpaused", "by", env.Caller())
	return nil
}

func (l *Ledger) setCollaborator(env *xenv.Environment, role Role, addr token.Address) error {
	if err := l.requireOwner(env); err != nil {
		return err
	}
	l.roles[role].Set(&addr)
	env.Emit(l.addr, "CollaboratorSet", map[string]any{
		"role":    string(role),
		"address": addr,
	})
	logger.Info("collaborator set", "role", role, "address", addr)
	return nil
}

// SetBurningContract registers the burning contract and mints allocation to it.
func (l *Ledger) SetBurningContract(env *xenv.Environment, addr token.Address, allocation *big.Int) error {
	if addr.IsZero() {
		return reverts.New(reverts.ZeroAddress, "burning contract is the zero address")
	}
	if err := l.setCollaborator(env, RoleBurning, addr); err != nil {
		return err
	}
	return l.mint(env, addr, allocation)
}

// SetStakingContract registers the contract allowed to mint. Zero unregisters.
func (l *Ledger) SetStakingContract(env *xenv.Environment, addr token.Address) error {
	return l.setCollaborator(env, RoleStaking, addr)
}

// SetLockableDistributionContract registers the contract allowed to lock. Zero unregisters.
func (l *Ledger) SetLockableDistributionContract(env *xenv.Environment, addr token.Address) error {
	return l.setCollaborator(env, RoleLockableDistribution, addr)
}

func (l *Ledger) TransferOwnership(env *xenv.Environment, newOwner token.Address) error {
	if err := l.requireOwner(env); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return reverts.New(reverts.ZeroAddress, "new owner is the zero address")
	}
	l.owner.Set(&newOwner)
	env.Emit(l.addr, "OwnershipTransferred", map[string]any{
		"previous": env.Caller(),
		"new":      newOwner,
	})
	return nil
}

// TriggerBurn asks the burning contract to run one burn, acting as the ledger itself.
func (l *Ledger) TriggerBurn(env *xenv.Environment) (*big.Int, error) {
	if err := l.requireOwner(env); err != nil {
		return nil, err
	}
	addr, err := l.Collaborator(RoleBurning)
	if err != nil {
		return nil, err
	}
	if addr.IsZero() {
		return nil, reverts.New(reverts.NotConfigured, "no burning contract")
	}
	var burner Burner
	if l.resolve != nil {
		burner, _ = l.resolve(addr)
	}
	if burner == nil {
		return nil, reverts.Newf(reverts.NotConfigured, "no burning engine at %v", addr)
	}
	return burner.Burn(env.As(l.addr))
}
