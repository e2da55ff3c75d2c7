// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package calls

import (
	"net/http"
	"sort"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/tokencore/api/utils"
	"github.com/vechain/tokencore/builtin"
	"github.com/vechain/tokencore/log"
	"github.com/vechain/tokencore/runtime"
	"github.com/vechain/tokencore/token"
)

var logger = log.WithContext("pkg", "calls")

type Calls struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Calls {
	return &Calls{rt}
}

func (c *Calls) resolve(call *Call) (token.Address, error) {
	if call.To != nil {
		return *call.To, nil
	}
	if call.Contract == "" {
		return token.Address{}, utils.BadRequest(errors.New("body: either to or contract is required"))
	}
	addr, ok := builtin.ContractByName(call.Contract)
	if !ok {
		return token.Address{}, utils.NotFound(errors.Errorf("contract %q", call.Contract))
	}
	return addr, nil
}

func (c *Calls) handleCall(w http.ResponseWriter, req *http.Request) error {
	var call Call
	if err := utils.ParseJSON(req.Body, &call); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if call.Method == "" {
		return utils.BadRequest(errors.New("body: method is required"))
	}
	to, err := c.resolve(&call)
	if err != nil {
		return err
	}

	output, err := c.rt.Execute(call.Caller, &runtime.Clause{To: to, Method: call.Method, Args: call.Args})
	if err != nil {
		switch {
		case errors.Is(err, runtime.ErrMethodNotFound):
			return utils.NotFound(err)
		case errors.Is(err, builtin.ErrInvalidArgs):
			return utils.BadRequest(err)
		}
		logger.Warn("call failed", "to", to, "method", call.Method, "err", err)
		return err
	}
	return utils.WriteJSON(w, output)
}

func (c *Calls) handleGetMethods(w http.ResponseWriter, _ *http.Request) error {
	methods := make([]*Method, 0)
	for _, contract := range builtin.Contracts() {
		natives := builtin.NativeMethods(contract.Address)
		sort.Slice(natives, func(i, j int) bool { return natives[i].Name < natives[j].Name })
		for _, m := range natives {
			methods = append(methods, &Method{
				Contract: contract.Name,
				Address:  contract.Address,
				Name:     m.Name,
				Const:    m.Const,
			})
		}
	}
	return utils.WriteJSON(w, methods)
}

func (c *Calls) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /calls").
		HandlerFunc(utils.WrapHandlerFunc(c.handleCall))
	sub.Path("/methods").
		Methods(http.MethodGet).
		Name("GET /calls/methods").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetMethods))
}
