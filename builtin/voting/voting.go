// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package voting

import (
	"encoding/binary"
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/tokencore/builtin/reverts"
	"github.com/vechain/tokencore/builtin/slots"
	"github.com/vechain/tokencore/log"
	"github.com/vechain/tokencore/state"
	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

var logger = log.WithContext("pkg", "voting")

var (
	slotOwner        = slots.Name("owner")
	slotIssues       = slots.Name("issues")
	slotOptions      = slots.Name("options")
	slotNextOptionID = slots.Name("next-option-id")
	slotVotes        = slots.Name("votes")
)

// Voting escrows tokens as votes on owner created issues and refunds them once an issue closes.
type Voting struct {
	addr  token.Address
	token Token

	owner        *slots.Address
	issues       *slots.Sequence[*Issue]
	options      *slots.Mapping[slots.Index, *Option]
	nextOptionID *slots.Uint256
	votes        *slots.Mapping[token.Bytes32, *big.Int]
}

// New create a new instance.
func New(addr token.Address, state *state.State, tok Token) *Voting {
	sctx := slots.NewContext(addr, state)
	return &Voting{
		addr:         addr,
		token:        tok,
		owner:        slots.NewAddress(sctx, slotOwner),
		issues:       slots.NewSequence[*Issue](sctx, slotIssues),
		options:      slots.NewMapping[slots.Index, *Option](sctx, slotOptions),
		nextOptionID: slots.NewUint256(sctx, slotNextOptionID),
		votes:        slots.NewMapping[token.Bytes32, *big.Int](sctx, slotVotes),
	}
}

func (v *Voting) Address() token.Address { return v.addr }

func voteKey(optionID uint64, voter token.Address) token.Bytes32 {
	var id [8]byte
	binary.BigEndian.PutUint64(id[:], optionID)
	return token.Blake2b(id[:], voter.Bytes())
}

//
// Getters - no state change
//

func (v *Voting) Owner() (token.Address, error) {
	return v.owner.Get()
}

func (v *Voting) IssueCount() (uint64, error) {
	return v.issues.Len()
}

// RecentIssueIndexes returns up to count issue indexes, newest first, skipping the offset newest.
func (v *Voting) RecentIssueIndexes(count, offset uint64) ([]uint64, error) {
	n, err := v.issues.Len()
	if err != nil {
		return nil, err
	}
	return slots.ReversePage(n, count, offset), nil
}

func (v *Voting) issue(index uint64) (*Issue, error) {
	n, err := v.issues.Len()
	if err != nil {
		return nil, err
	}
	if index >= n {
		return nil, reverts.Newf(reverts.InvalidIssueIndex, "issue %d of %d", index, n)
	}
	return v.issues.Get(index)
}

// IssueDetails returns the issue at index.
func (v *Voting) IssueDetails(index uint64) (*Issue, error) {
	return v.issue(index)
}

// IssueOptions returns the options of the issue at index, in creation order.
func (v *Voting) IssueOptions(index uint64) ([]*Option, error) {
	issue, err := v.issue(index)
	if err != nil {
		return nil, err
	}
	options := make([]*Option, 0, len(issue.OptionIDs))
	for _, id := range issue.OptionIDs {
		opt, err := v.option(id)
		if err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, nil
}

func (v *Voting) option(id uint64) (*Option, error) {
	opt, err := v.options.Get(slots.Index(id))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get option")
	}
	if opt.TotalVotes == nil {
		opt.TotalVotes = new(big.Int)
	}
	return opt, nil
}

// VotesOf returns what voter has escrowed on an option of an issue.
func (v *Voting) VotesOf(issueIndex, optionIndex uint64, voter token.Address) (*big.Int, error) {
	issue, err := v.issue(issueIndex)
	if err != nil {
		return nil, err
	}
	if optionIndex >= uint64(len(issue.OptionIDs)) {
		return nil, reverts.Newf(reverts.InvalidOptionIndex, "option %d of %d", optionIndex, len(issue.OptionIDs))
	}
	return v.votes.Get(voteKey(issue.OptionIDs[optionIndex], voter))
}

// VotedTokens returns what voter has escrowed across all options of an issue.
func (v *Voting) VotedTokens(issueIndex uint64, voter token.Address) (*big.Int, error) {
	issue, err := v.issue(issueIndex)
	if err != nil {
		return nil, err
	}
	sum := new(big.Int)
	for _, id := range issue.OptionIDs {
		amount, err := v.votes.Get(voteKey(id, voter))
		if err != nil {
			return nil, errors.Wrap(err, "failed to get votes")
		}
		sum.Add(sum, amount)
	}
	return sum, nil
}

//
// Setters - state change
//

// Initialize makes the caller the owner.
func (v *Voting) Initialize(env *xenv.Environment) error {
	owner := env.Caller()
	if owner.IsZero() {
		return reverts.New(reverts.ZeroAddress, "owner is the zero address")
	}
	v.owner.Set(&owner)
	return nil
}

func (v *Voting) requireOwner(env *xenv.Environment) error {
	owner, err := v.owner.Get()
	if err != nil {
		return err
	}
	if env.Caller() != owner {
		return reverts.Newf(reverts.Unauthorized, "caller %v is not the owner", env.Caller())
	}
	return nil
}

func (v *Voting) TransferOwnership(env *xenv.Environment, newOwner token.Address) error {
	if err := v.requireOwner(env); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return reverts.New(reverts.ZeroAddress, "new owner is the zero address")
	}
	v.owner.Set(&newOwner)
	env.Emit(v.addr, "OwnershipTransferred", map[string]any{
		"previous": env.Caller(),
		"new":      newOwner,
	})
	return nil
}

// CreateIssue appends an issue closing duration seconds from now. Every option gets a new global id.
func (v *Voting) CreateIssue(env *xenv.Environment, description string, duration uint64, options []string) (uint64, error) {
	if err := v.requireOwner(env); err != nil {
		return 0, err
	}
	if len(options) == 0 {
		return 0, reverts.New(reverts.InvalidOptions, "issue without options")
	}

	next, err := v.nextOptionID.Get()
	if err != nil {
		return 0, err
	}
	id := next.Uint64()
	ids := make([]uint64, 0, len(options))
	for _, desc := range options {
		if err := v.options.Set(slots.Index(id), &Option{ID: id, Description: desc, TotalVotes: new(big.Int)}); err != nil {
			return 0, errors.Wrap(err, "failed to set option")
		}
		ids = append(ids, id)
		id++
	}
	v.nextOptionID.Set(new(big.Int).SetUint64(id))

	issue := &Issue{
		Description:  description,
		EndTimestamp: token.Deadline(env.Now(), duration),
		OptionIDs:    ids,
	}
	index, err := v.issues.Append(issue)
	if err != nil {
		return 0, errors.Wrap(err, "failed to append issue")
	}
	env.Emit(v.addr, "IssueCreated", map[string]any{
		"index":       index,
		"description": description,
		"end":         issue.EndTimestamp,
	})
	logger.Info("issue created", "index", index, "options", len(ids), "end", issue.EndTimestamp)
	return index, nil
}

// Vote escrows amount from the caller on an option of an open issue. Votes accumulate.
func (v *Voting) Vote(env *xenv.Environment, amount *big.Int, issueIndex, optionIndex uint64) error {
	voter := env.Caller()
	logger.Debug("voting", "voter", voter, "issue", issueIndex, "option", optionIndex, "amount", amount)

	issue, err := v.issue(issueIndex)
	if err != nil {
		return err
	}
	if issue.Closed(env.Now()) {
		return reverts.Newf(reverts.VotingClosed, "issue %d closed at %d", issueIndex, issue.EndTimestamp)
	}
	if optionIndex >= uint64(len(issue.OptionIDs)) {
		return reverts.Newf(reverts.InvalidOptionIndex, "option %d of %d", optionIndex, len(issue.OptionIDs))
	}
	if amount.Sign() <= 0 {
		return reverts.New(reverts.InvalidAmount, "vote amount must be positive")
	}

	if err := v.token.TransferFrom(env.As(v.addr), voter, v.addr, amount); err != nil {
		logger.Info("vote failed", "voter", voter, "issue", issueIndex, "error", err)
		return err
	}

	id := issue.OptionIDs[optionIndex]
	key := voteKey(id, voter)
	votes, err := v.votes.Get(key)
	if err != nil {
		return errors.Wrap(err, "failed to get votes")
	}
	if err := v.votes.Set(key, votes.Add(votes, amount)); err != nil {
		return errors.Wrap(err, "failed to set votes")
	}

	opt, err := v.option(id)
	if err != nil {
		return err
	}
	opt.TotalVotes.Add(opt.TotalVotes, amount)
	if err := v.options.Set(slots.Index(id), opt); err != nil {
		return errors.Wrap(err, "failed to set option")
	}

	env.Emit(v.addr, "Voted", map[string]any{
		"voter":    voter,
		"issue":    issueIndex,
		"optionId": id,
		"amount":   new(big.Int).Set(amount),
	})
	return nil
}

// WithdrawVotedTokens refunds everything the caller escrowed on a closed issue.
func (v *Voting) WithdrawVotedTokens(env *xenv.Environment, issueIndex uint64) (*big.Int, error) {
	voter := env.Caller()
	logger.Debug("withdrawing votes", "voter", voter, "issue", issueIndex)

	issue, err := v.issue(issueIndex)
	if err != nil {
		return nil, err
	}
	if !issue.Closed(env.Now()) {
		return nil, reverts.Newf(reverts.VotingStillOpen, "issue %d open until %d", issueIndex, issue.EndTimestamp)
	}

	sum := new(big.Int)
	for _, id := range issue.OptionIDs {
		key := voteKey(id, voter)
		amount, err := v.votes.Get(key)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get votes")
		}
		if amount.Sign() == 0 {
			continue
		}
		sum.Add(sum, amount)
		v.votes.Delete(key)
	}
	if sum.Sign() == 0 {
		return nil, reverts.Newf(reverts.NothingToWithdraw, "no votes of %v on issue %d", voter, issueIndex)
	}

	if err := v.token.Transfer(env.As(v.addr), voter, sum); err != nil {
		logger.Info("withdraw votes failed", "voter", voter, "issue", issueIndex, "error", err)
		return nil, err
	}
	env.Emit(v.addr, "VotedTokensWithdrawn", map[string]any{
		"voter":  voter,
		"issue":  issueIndex,
		"amount": new(big.Int).Set(sum),
	})
	logger.Info("votes withdrawn", "voter", voter, "issue", issueIndex, "amount", sum)
	return sum, nil
}
