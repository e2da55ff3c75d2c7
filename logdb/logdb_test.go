// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb_test

import (
	"context"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokencore/logdb"
	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

var (
	ledgerAddr  = token.BytesToAddress([]byte("ledger"))
	stakingAddr = token.BytesToAddress([]byte("staking"))
	alice       = token.BytesToAddress([]byte("alice"))
	bob         = token.BytesToAddress([]byte("bob"))
)

func newTestDB(t *testing.T) *logdb.LogDB {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for seq := uint64(1); seq <= 10; seq++ {
		caller := alice
		if seq%2 == 0 {
			caller = bob
		}
		events := []*xenv.Event{
			{Address: ledgerAddr, Name: "Transfer", Args: map[string]any{"from": caller, "to": bob, "value": big.NewInt(int64(seq))}},
		}
		if seq%5 == 0 {
			events = append(events, &xenv.Event{Address: stakingAddr, Name: "Staked", Args: map[string]any{"user": caller, "amount": big.NewInt(100)}})
		}
		require.NoError(t, db.Write(seq, 1000+seq, caller, events))
	}
	return db
}

func TestWriteAndFilterAll(t *testing.T) {
	db := newTestDB(t)

	events, err := db.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, events, 12)
	assert.Equal(t, uint64(1), events[0].Seq)
	assert.Equal(t, "Transfer", events[0].Name)
	assert.Equal(t, alice, events[0].Caller)

	var args struct {
		Value *big.Int `json:"value"`
	}
	require.NoError(t, json.Unmarshal(events[0].Args, &args))
	assert.Equal(t, big.NewInt(1), args.Value)

	last, err := db.LastSeq(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(10), last)
}

func TestWriteNothing(t *testing.T) {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Write(1, 1, alice, nil))
	last, err := db.LastSeq(context.Background())
	require.NoError(t, err)
	assert.Zero(t, last)
}

func TestFilterEvents(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter *logdb.EventFilter
		want   int
		first  uint64
	}{
		{"by address", &logdb.EventFilter{CriteriaSet: []*logdb.EventCriteria{{Address: &stakingAddr}}}, 2, 5},
		{"by name", &logdb.EventFilter{CriteriaSet: []*logdb.EventCriteria{{Name: "Transfer"}}}, 10, 1},
		{"by caller", &logdb.EventFilter{CriteriaSet: []*logdb.EventCriteria{{Caller: &bob, Name: "Transfer"}}}, 5, 2},
		{"either criteria", &logdb.EventFilter{CriteriaSet: []*logdb.EventCriteria{{Address: &stakingAddr}, {Caller: &alice}}}, 7, 1},
		{"seq range", &logdb.EventFilter{Range: &logdb.Range{Unit: logdb.Seq, From: 3, To: 5}}, 4, 3},
		{"time range", &logdb.EventFilter{Range: &logdb.Range{Unit: logdb.Time, From: 1009, To: 2000}}, 3, 9},
		{"desc with page", &logdb.EventFilter{Order: logdb.DESC, Options: &logdb.Options{Offset: 1, Limit: 3}}, 3, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := db.FilterEvents(ctx, tt.filter)
			require.NoError(t, err)
			require.Len(t, events, tt.want)
			assert.Equal(t, tt.first, events[0].Seq)
		})
	}
}
