// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokencore/lvldb"
	"github.com/vechain/tokencore/token"
)

func newTestStater(t *testing.T) *Stater {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStater(db)
}

func TestStateReadWrite(t *testing.T) {
	st := newTestStater(t).NewState()
	addr := token.BytesToAddress([]byte("engine"))
	key := token.BytesToBytes32([]byte("slot"))

	raw, err := st.GetRawStorage(addr, key)
	assert.NoError(t, err)
	assert.Empty(t, raw)

	st.SetRawStorage(addr, key, []byte{1, 2, 3})
	raw, err = st.GetRawStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, raw)

	// same slot of another engine is untouched
	raw, err = st.GetRawStorage(token.BytesToAddress([]byte("other")), key)
	assert.NoError(t, err)
	assert.Empty(t, raw)
}

func TestStateRevert(t *testing.T) {
	st := newTestStater(t).NewState()
	addr := token.BytesToAddress([]byte("engine"))
	k1 := token.BytesToBytes32([]byte("k1"))
	k2 := token.BytesToBytes32([]byte("k2"))

	st.SetRawStorage(addr, k1, []byte("v1"))
	cp := st.NewCheckpoint()
	st.SetRawStorage(addr, k1, []byte("v1'"))
	st.SetRawStorage(addr, k2, []byte("v2"))
	st.RevertTo(cp)

	raw, _ := st.GetRawStorage(addr, k1)
	assert.Equal(t, []byte("v1"), raw)
	raw, _ = st.GetRawStorage(addr, k2)
	assert.Empty(t, raw)

	// reverting to the very bottom keeps the state usable
	st.RevertTo(0)
	st.SetRawStorage(addr, k2, []byte("v2"))
	raw, _ = st.GetRawStorage(addr, k2)
	assert.Equal(t, []byte("v2"), raw)
}

func TestStageCommit(t *testing.T) {
	stater := newTestStater(t)
	addr := token.BytesToAddress([]byte("engine"))
	k1 := token.BytesToBytes32([]byte("k1"))
	k2 := token.BytesToBytes32([]byte("k2"))

	st := stater.NewState()
	st.SetRawStorage(addr, k1, []byte("a"))
	st.SetRawStorage(addr, k1, []byte("b"))
	st.SetRawStorage(addr, k2, []byte("c"))

	stage := st.Stage()
	assert.Equal(t, 2, stage.Len())
	require.NoError(t, stage.Commit())

	next := stater.NewState()
	raw, err := next.GetRawStorage(addr, k1)
	assert.NoError(t, err)
	assert.Equal(t, []byte("b"), raw)

	// clearing a slot deletes it
	next.SetRawStorage(addr, k2, nil)
	require.NoError(t, next.Stage().Commit())

	has, err := stater.db.Has(storageKey{addr, k2}.dbKey())
	assert.NoError(t, err)
	assert.False(t, has)
}

func TestDecodeStorageError(t *testing.T) {
	st := newTestStater(t).NewState()
	addr := token.BytesToAddress([]byte("engine"))
	key := token.BytesToBytes32([]byte("slot"))

	err := st.DecodeStorage(addr, key, func([]byte) error { return errors.New("bad data") })
	assert.EqualError(t, err, "state: bad data")

	err = st.EncodeStorage(addr, key, func() ([]byte, error) { return nil, errors.New("bad value") })
	var stateErr *Error
	assert.True(t, errors.As(err, &stateErr))
}
