// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRevert(t *testing.T) {
	err := Newf(InsufficientBalance, "balance %d < %d", 1, 2)

	assert.Equal(t, "InsufficientBalance: balance 1 < 2", err.Error())
	assert.Equal(t, InsufficientBalance, err.Kind())
	assert.Equal(t, "balance 1 < 2", err.Message())
	assert.True(t, Is(err, InsufficientBalance))
	assert.False(t, Is(err, Paused))
}

func TestKindOfWrapped(t *testing.T) {
	err := pkgerrors.WithMessage(New(Paused, "ledger paused"), "transfer")
	assert.Equal(t, Paused, KindOf(err))
	assert.True(t, IsRevertErr(err))
}

func TestIsRevertErr(t *testing.T) {
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr("not an error"))
	assert.False(t, IsRevertErr(errors.New("disk failure")))
	assert.True(t, IsRevertErr(New(Unauthorized, "owner only")))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "LimitReached", LimitReached.String())
	assert.Equal(t, "Kind(200)", Kind(200).String())

	text, err := ZeroAddress.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "ZeroAddress", string(text))
}
