// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/vechain/tokencore/metrics"
	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

var (
	errHubClosed = errors.New("subscriptions closed")

	metricActiveSubscriptions = metrics.LazyLoadGauge("api_active_subscriptions")
)

type subscriber struct {
	filter *EventFilter
	ch     chan *EventMessage
}

// Hub receives the events of committed calls and fans them out to subscribers.
// A subscriber whose backlog is full is dropped, so Write never blocks the runtime.
type Hub struct {
	mu      sync.Mutex
	subs    map[*subscriber]struct{}
	backlog int
	closed  bool
}

func NewHub(backlog int) *Hub {
	if backlog < 1 {
		backlog = 1
	}
	return &Hub{
		subs:    make(map[*subscriber]struct{}),
		backlog: backlog,
	}
}

func (h *Hub) subscribe(filter *EventFilter) (*subscriber, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, errHubClosed
	}
	sub := &subscriber{filter: filter, ch: make(chan *EventMessage, h.backlog)}
	h.subs[sub] = struct{}{}
	metricActiveSubscriptions().Add(1)
	return sub, nil
}

func (h *Hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(sub)
}

// remove must be called with mu held.
func (h *Hub) remove(sub *subscriber) {
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.ch)
	metricActiveSubscriptions().Add(-1)
}

// Count returns the number of live subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Write implements runtime.EventSink.
func (h *Hub) Write(seq, time uint64, caller token.Address, events []*xenv.Event) error {
	msgs := make([]*EventMessage, 0, len(events))
	for i, ev := range events {
		msg, err := convertEvent(seq, time, uint32(i), caller, ev)
		if err != nil {
			return errors.Wrap(err, "encode event args")
		}
		msgs = append(msgs, msg)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
	deliver:
		for i, msg := range msgs {
			if !sub.filter.Match(caller, events[i]) {
				continue
			}
			select {
			case sub.ch <- msg:
			default:
				logger.Warn("dropping slow subscriber", "seq", seq, "backlog", h.backlog)
				h.remove(sub)
				break deliver
			}
		}
	}
	return nil
}

// Close ends every subscription and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for sub := range h.subs {
		h.remove(sub)
	}
}
