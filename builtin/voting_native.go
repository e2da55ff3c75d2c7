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

// Issue is the JSON view of a voting issue.
type Issue struct {
	Index        uint64 `json:"index"`
	Description  string `json:"description"`
	EndTimestamp uint64 `json:"endTimestamp"`
	OptionCount  int    `json:"optionCount"`
}

// IssueOption is the JSON view of an issue option.
type IssueOption struct {
	ID          uint64                `json:"id"`
	Description string                `json:"description"`
	TotalVotes  *math.HexOrDecimal256 `json:"totalVotes"`
}

type issueArgs struct {
	Issue  uint64        `json:"issue"`
	Option uint64        `json:"option"`
	Voter  token.Address `json:"voter"`
}

func votingMethods() []*NativeMethod {
	return []*NativeMethod{
		Voting.impl("owner", true, func(env *xenv.Environment, _ json.RawMessage) ([]any, error) {
			owner, err := Voting.WithState(env.State()).Owner()
			if err != nil {
				return nil, err
			}
			return []any{owner}, nil
		}),
		Voting.impl("issueCount", true, func(env *xenv.Environment, _ json.RawMessage) ([]any, error) {
			n, err := Voting.WithState(env.State()).IssueCount()
			if err != nil {
				return nil, err
			}
			return []any{n}, nil
		}),
		Voting.impl("recentIssueIndexes", true, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args pageArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			indexes, err := Voting.WithState(env.State()).RecentIssueIndexes(args.Count, args.Offset)
			if err != nil {
				return nil, err
			}
			return []any{indexes}, nil
		}),
		Voting.impl("issueDetails", true, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args issueArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			issue, err := Voting.WithState(env.State()).IssueDetails(args.Issue)
			if err != nil {
				return nil, err
			}
			return []any{&Issue{
				Index:        args.Issue,
				Description:  issue.Description,
				EndTimestamp: issue.EndTimestamp,
				OptionCount:  len(issue.OptionIDs),
			}}, nil
		}),
		Voting.impl("issueOptions", true, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args issueArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			options, err := Voting.WithState(env.State()).IssueOptions(args.Issue)
			if err != nil {
				return nil, err
			}
			out := make([]*IssueOption, 0, len(options))
			for _, o := range options {
				out = append(out, &IssueOption{ID: o.ID, Description: o.Description, TotalVotes: hexAmount(o.TotalVotes)})
			}
			return []any{out}, nil
		}),
		Voting.impl("votesOf", true, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args issueArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			votes, err := Voting.WithState(env.State()).VotesOf(args.Issue, args.Option, args.Voter)
			if err != nil {
				return nil, err
			}
			return []any{hexAmount(votes)}, nil
		}),
		Voting.impl("votedTokens", true, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args issueArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			votes, err := Voting.WithState(env.State()).VotedTokens(args.Issue, args.Voter)
			if err != nil {
				return nil, err
			}
			return []any{hexAmount(votes)}, nil
		}),
		Voting.impl("createIssue", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args struct {
				Description string   `json:"description"`
				Duration    uint64   `json:"duration"`
				Options     []string `json:"options"`
			}
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			index, err := Voting.WithState(env.State()).CreateIssue(env, args.Description, args.Duration, args.Options)
			if err != nil {
				return nil, err
			}
			return []any{index}, nil
		}),
		Voting.impl("vote", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args struct {
				Amount *math.HexOrDecimal256 `json:"amount"`
				Issue  uint64                `json:"issue"`
				Option uint64                `json:"option"`
			}
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, Voting.WithState(env.State()).Vote(env, amount(args.Amount), args.Issue, args.Option)
		}),
		Voting.impl("withdrawVotedTokens", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args issueArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			withdrawn, err := Voting.WithState(env.State()).WithdrawVotedTokens(env, args.Issue)
			if err != nil {
				return nil, err
			}
			return []any{hexAmount(withdrawn)}, nil
		}),
		Voting.impl("transferOwnership", false, func(env *xenv.Environment, raw json.RawMessage) ([]any, error) {
			var args ownershipArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, Voting.WithState(env.State()).TransferOwnership(env, args.NewOwner)
		}),
	}
}
