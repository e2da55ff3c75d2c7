// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/tokencore/builtin"
	"github.com/vechain/tokencore/builtin/reverts"
	"github.com/vechain/tokencore/builtin/slots"
	"github.com/vechain/tokencore/kv"
	"github.com/vechain/tokencore/log"
	"github.com/vechain/tokencore/state"
	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

var logger = log.WithContext("pkg", "runtime")

var (
	// ErrMethodNotFound is returned when a clause names no builtin method.
	ErrMethodNotFound = errors.New("method not found")
	// ErrBootstrapped is returned when the initial state is written twice.
	ErrBootstrapped = errors.New("already bootstrapped")
	// ErrNotBootstrapped is returned when executing against an empty store.
	ErrNotBootstrapped = errors.New("not bootstrapped")
)

// address where the runtime keeps its own bookkeeping.
var metaAddress = token.BytesToAddress([]byte("Runtime"))

type meta struct {
	Bootstrapped bool
	LastTime     uint64
	Seq          uint64
}

func metaSlot(st *state.State) *slots.Raw[*meta] {
	return slots.NewRaw[*meta](slots.NewContext(metaAddress, st), slots.Name("meta"))
}

// Clause is one call to a builtin engine.
type Clause struct {
	To     token.Address   `json:"to"`
	Method string          `json:"method"`
	Args   json.RawMessage `json:"args,omitempty"`
}

// Revert describes why a call was rolled back.
type Revert struct {
	Kind    reverts.Kind `json:"kind"`
	Message string       `json:"message"`
}

// Output is the result of a clause.
type Output struct {
	Seq    uint64        `json:"seq"` // zero if nothing was committed
	Time   uint64        `json:"time"`
	Data   []any         `json:"data"`
	Events []*xenv.Event `json:"events"`
	Revert *Revert       `json:"revert,omitempty"`
}

// EventSink receives the events of every committed call.
type EventSink interface {
	Write(seq, time uint64, caller token.Address, events []*xenv.Event) error
}

type sinks []EventSink

// MultiSink hands the events of every committed call to each non-nil sink in order.
func MultiSink(all ...EventSink) EventSink {
	var out sinks
	for _, s := range all {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (s sinks) Write(seq, time uint64, caller token.Address, events []*xenv.Event) error {
	var first error
	for _, sink := range s {
		if err := sink.Write(seq, time, caller, events); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Runtime executes calls one at a time, each either fully committed or fully rolled back.
type Runtime struct {
	mu     sync.Mutex
	stater *state.Stater
	clock  func() uint64
	sink   EventSink
}

// New create a Runtime object.
// clock returns unix seconds; sink may be nil.
func New(db kv.GetPutter, clock func() uint64, sink EventSink) *Runtime {
	return &Runtime{
		stater: state.NewStater(db),
		clock:  clock,
		sink:   sink,
	}
}

// SystemClock reads the wall clock in seconds.
func SystemClock() uint64 {
	return uint64(time.Now().Unix())
}

// Bootstrapped reports whether the initial state has been written.
func (rt *Runtime) Bootstrapped() (bool, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	m, err := metaSlot(rt.stater.NewState()).Get()
	if err != nil {
		return false, err
	}
	return m.Bootstrapped, nil
}

// Bootstrap runs fn against the empty store as caller at the given time and commits the result.
func (rt *Runtime) Bootstrap(caller token.Address, at uint64, fn func(env *xenv.Environment) error) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	st := rt.stater.NewState()
	slot := metaSlot(st)
	m, err := slot.Get()
	if err != nil {
		return err
	}
	if m.Bootstrapped {
		return ErrBootstrapped
	}

	env := xenv.New(st, caller, at)
	if err := fn(env); err != nil {
		return errors.Wrap(err, "bootstrap")
	}
	m.Bootstrapped = true
	m.LastTime = at
	if err := slot.Set(m); err != nil {
		return err
	}
	if err := st.Stage().Commit(); err != nil {
		return err
	}
	rt.forward(0, at, caller, env.Events())
	logger.Info("bootstrapped", "time", at, "events", len(env.Events()))
	return nil
}

// Now returns the time the next call would observe.
func (rt *Runtime) Now() (uint64, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	m, err := metaSlot(rt.stater.NewState()).Get()
	if err != nil {
		return 0, err
	}
	return rt.now(m), nil
}

func (rt *Runtime) now(m *meta) uint64 {
	if now := rt.clock(); now > m.LastTime {
		return now
	}
	return m.LastTime
}

// View gives read access to committed state. Changes made by fn are discarded.
func (rt *Runtime) View(fn func(st *state.State, now uint64) error) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	st := rt.stater.NewState()
	m, err := metaSlot(st).Get()
	if err != nil {
		return err
	}
	return fn(st, rt.now(m))
}

// Execute runs clause on behalf of caller.
// A business failure is reported in the output with nothing committed. Any other failure is
// returned as error, also with nothing committed.
func (rt *Runtime) Execute(caller token.Address, clause *Clause) (*Output, error) {
	method, ok := builtin.FindNativeMethod(clause.To, clause.Method)
	if !ok {
		return nil, errors.Wrapf(ErrMethodNotFound, "%v.%v", clause.To, clause.Method)
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	startTime := time.Now()
	st := rt.stater.NewState()
	slot := metaSlot(st)
	m, err := slot.Get()
	if err != nil {
		return nil, err
	}
	if !m.Bootstrapped {
		return nil, ErrNotBootstrapped
	}

	now := rt.now(m)
	env := xenv.New(st, caller, now)
	output := &Output{Time: now}

	data, err := method.Run(env, clause.Args)
	if err != nil {
		if !reverts.IsRevertErr(err) {
			metricsCall(method, "error", startTime)
			return nil, err
		}
		kind := reverts.KindOf(err)
		output.Revert = &Revert{Kind: kind}
		var re *reverts.ErrRevert
		if errors.As(err, &re) {
			output.Revert.Message = re.Message()
		}
		metricsCall(method, "reverted", startTime)
		logger.Debug("call reverted", "method", method.Name, "caller", caller, "kind", kind)
		return output, nil
	}
	output.Data = data
	if method.Const {
		metricsCall(method, "success", startTime)
		return output, nil
	}

	m.LastTime = now
	m.Seq++
	if err := slot.Set(m); err != nil {
		return nil, err
	}
	if err := st.Stage().Commit(); err != nil {
		metricsCall(method, "error", startTime)
		return nil, err
	}
	output.Seq = m.Seq
	output.Events = env.Events()
	rt.forward(m.Seq, now, caller, output.Events)

	metricsCall(method, "success", startTime)
	logger.Debug("call committed", "seq", m.Seq, "method", method.Name, "caller", caller, "events", len(output.Events))
	return output, nil
}

func (rt *Runtime) forward(seq, time uint64, caller token.Address, events []*xenv.Event) {
	if rt.sink == nil || len(events) == 0 {
		return
	}
	// state is committed at this point, a failed write only loses the notification
	if err := rt.sink.Write(seq, time, caller, events); err != nil {
		logger.Error("failed to write events", "seq", seq, "err", err)
	}
}
