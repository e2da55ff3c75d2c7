// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokencore/api/utils"
	"github.com/vechain/tokencore/token"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"bad request", utils.BadRequest(errors.New("bad")), http.StatusBadRequest},
		{"wrapped not found", errors.Wrap(utils.NotFound(errors.New("gone")), "lookup"), http.StatusNotFound},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := utils.WrapHandlerFunc(func(w http.ResponseWriter, _ *http.Request) error {
				if tt.err != nil {
					return tt.err
				}
				return utils.WriteJSON(w, utils.M{"ok": true})
			})
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestQueryUint64(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?count=5&offset=0x10&bad=x", nil)

	v, err := utils.QueryUint64(r, "count", 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v)

	v, err = utils.QueryUint64(r, "offset", 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(16), v)

	v, err = utils.QueryUint64(r, "missing", 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), v)

	_, err = utils.QueryUint64(r, "bad", 0)
	assert.Error(t, err)
}

func TestPathVars(t *testing.T) {
	addr := token.BytesToAddress([]byte("alice"))
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{
		"address": addr.String(),
		"index":   "7",
		"bad":     "0xzz",
	})

	got, err := utils.PathAddress(req, "address")
	require.NoError(t, err)
	assert.Equal(t, addr, got)

	n, err := utils.PathUint64(req, "index")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), n)

	_, err = utils.PathAddress(req, "bad")
	assert.Error(t, err)
	_, err = utils.PathUint64(req, "bad")
	assert.Error(t, err)
}
