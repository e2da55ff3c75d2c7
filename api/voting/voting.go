// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package voting

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/tokencore/api/utils"
	"github.com/vechain/tokencore/builtin"
	"github.com/vechain/tokencore/builtin/reverts"
	"github.com/vechain/tokencore/builtin/voting"
	"github.com/vechain/tokencore/runtime"
	"github.com/vechain/tokencore/state"
)

const defaultPageSize = 10

// Issue is an issue with its options and tallies.
type Issue struct {
	builtin.Issue
	Closed  bool                   `json:"closed"`
	Options []*builtin.IssueOption `json:"options"`
}

type Voting struct {
	rt       *runtime.Runtime
	maxCount uint64
}

func New(rt *runtime.Runtime, maxCount uint64) *Voting {
	return &Voting{rt, maxCount}
}

func loadIssue(v *voting.Voting, index, now uint64) (*Issue, error) {
	issue, err := v.IssueDetails(index)
	if err != nil {
		return nil, err
	}
	options, err := v.IssueOptions(index)
	if err != nil {
		return nil, err
	}
	out := &Issue{
		Issue: builtin.Issue{
			Index:        index,
			Description:  issue.Description,
			EndTimestamp: issue.EndTimestamp,
			OptionCount:  len(issue.OptionIDs),
		},
		Closed:  issue.Closed(now),
		Options: make([]*builtin.IssueOption, 0, len(options)),
	}
	for _, o := range options {
		votes := new(big.Int)
		if o.TotalVotes != nil {
			votes.Set(o.TotalVotes)
		}
		out.Options = append(out.Options, &builtin.IssueOption{
			ID:          o.ID,
			Description: o.Description,
			TotalVotes:  (*math.HexOrDecimal256)(votes),
		})
	}
	return out, nil
}

func (v *Voting) handleGetIssues(w http.ResponseWriter, req *http.Request) error {
	count, err := utils.QueryUint64(req, "count", defaultPageSize)
	if err != nil {
		return err
	}
	if count > v.maxCount {
		return utils.BadRequest(errors.Errorf("count: exceeds the maximum of %d", v.maxCount))
	}
	offset, err := utils.QueryUint64(req, "offset", 0)
	if err != nil {
		return err
	}

	var issues []*Issue
	err = v.rt.View(func(st *state.State, now uint64) error {
		vt := builtin.Voting.WithState(st)
		indexes, err := vt.RecentIssueIndexes(count, offset)
		if err != nil {
			return err
		}
		issues = make([]*Issue, 0, len(indexes))
		for _, i := range indexes {
			issue, err := loadIssue(vt, i, now)
			if err != nil {
				return err
			}
			issues = append(issues, issue)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, issues)
}

func (v *Voting) handleGetIssue(w http.ResponseWriter, req *http.Request) error {
	index, err := utils.PathUint64(req, "index")
	if err != nil {
		return err
	}
	var issue *Issue
	err = v.rt.View(func(st *state.State, now uint64) error {
		var err error
		issue, err = loadIssue(builtin.Voting.WithState(st), index, now)
		return err
	})
	if err != nil {
		if reverts.Is(err, reverts.InvalidIssueIndex) {
			return utils.NotFound(err)
		}
		return err
	}
	return utils.WriteJSON(w, issue)
}

func (v *Voting) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/issues").
		Methods(http.MethodGet).
		Name("GET /voting/issues").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetIssues))
	sub.Path("/issues/{index}").
		Methods(http.MethodGet).
		Name("GET /voting/issues/{index}").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetIssue))
}
