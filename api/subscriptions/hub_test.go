// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokencore/builtin"
	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

var (
	alice = token.BytesToAddress([]byte("alice"))
	bob   = token.BytesToAddress([]byte("bob"))
)

func testEvents() []*xenv.Event {
	return []*xenv.Event{
		{Address: builtin.Ledger.Address, Name: "Approval", Args: map[string]any{"owner": alice, "spender": bob}},
		{Address: builtin.Ledger.Address, Name: "Transfer", Args: map[string]any{"from": alice, "to": bob}},
		{Address: builtin.Staking.Address, Name: "Staked", Args: map[string]any{"user": alice}},
	}
}

func drain(sub *subscriber) []*EventMessage {
	var out []*EventMessage
	for {
		select {
		case msg, ok := <-sub.ch:
			if !ok {
				return out
			}
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestEventFilter(t *testing.T) {
	staking := builtin.Staking.Address
	tests := []struct {
		name   string
		filter EventFilter
		want   []string
	}{
		{"all", EventFilter{}, []string{"Approval", "Transfer", "Staked"}},
		{"address", EventFilter{Address: &staking}, []string{"Staked"}},
		{"name", EventFilter{Name: "Transfer"}, []string{"Transfer"}},
		{"caller", EventFilter{Caller: &bob}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, ev := range testEvents() {
				if tt.filter.Match(alice, ev) {
					got = append(got, ev.Name)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHubWrite(t *testing.T) {
	hub := NewHub(10)
	all, err := hub.subscribe(&EventFilter{})
	require.NoError(t, err)
	transfers, err := hub.subscribe(&EventFilter{Name: "Transfer"})
	require.NoError(t, err)
	assert.Equal(t, 2, hub.Count())

	require.NoError(t, hub.Write(7, 1000, alice, testEvents()))

	msgs := drain(all)
	require.Len(t, msgs, 3)
	assert.Equal(t, uint64(7), msgs[0].Seq)
	assert.Equal(t, uint32(2), msgs[2].Index)
	assert.Equal(t, "Staking", msgs[2].Contract)

	msgs = drain(transfers)
	require.Len(t, msgs, 1)
	assert.Equal(t, uint32(1), msgs[0].Index)
	assert.Equal(t, alice, msgs[0].Caller)
	assert.JSONEq(t, `{"from":"`+alice.String()+`","to":"`+bob.String()+`"}`, string(msgs[0].Args))

	hub.unsubscribe(transfers)
	hub.unsubscribe(transfers)
	assert.Equal(t, 1, hub.Count())
}

func TestHubDropsSlowSubscriber(t *testing.T) {
	hub := NewHub(2)
	slow, err := hub.subscribe(&EventFilter{})
	require.NoError(t, err)

	require.NoError(t, hub.Write(1, 1000, alice, testEvents()))
	assert.Zero(t, hub.Count())

	// the buffered messages are still delivered before the channel ends
	msgs := drain(slow)
	assert.Len(t, msgs, 2)
	_, ok := <-slow.ch
	assert.False(t, ok)
}

func TestHubClose(t *testing.T) {
	hub := NewHub(10)
	sub, err := hub.subscribe(&EventFilter{})
	require.NoError(t, err)

	hub.Close()
	_, ok := <-sub.ch
	assert.False(t, ok)
	assert.Zero(t, hub.Count())

	_, err = hub.subscribe(&EventFilter{})
	assert.ErrorIs(t, err, errHubClosed)
	assert.NoError(t, hub.Write(2, 1000, alice, testEvents()))
}
