// Package fsm provides a generic finite state machine engine: a fixed set of
// states, named commands, and explicitly declared transitions, each of which
// may be gated by a guard and may complete synchronously or asynchronously.
// State only ever changes through a transition registered for the current
// (state, command) pair, so illegal state combinations are structurally
// unrepresentable. It is built with types and utilities from the
// github.com/enetx/g library.
package fsm

import . "github.com/enetx/g"

type (
	// Command names an externally issuable trigger. Commands are scoped per
	// from-state: the same command may map to different transitions depending
	// on the current state, with at most one registration per (state, command)
	// pair.
	Command String

	// ChangeHandler observes a completed transition as (previous, new).
	ChangeHandler[S comparable] func(from, to S)
)

// tableEntry is a single (state, command) registration. The target state is
// recorded here rather than read back from the transition, so one transition
// instance may back several registrations.
type tableEntry[S comparable] struct {
	to S
	tr Transition[S]
}

// changeEntry is one registered change handler. Exact entries fire only when
// a completed transition's endpoints match theirs.
type changeEntry[S comparable] struct {
	from, to S
	exact    bool
	handler  ChangeHandler[S]
}

// StateMachine owns the fixed state set, the command-indexed transition
// table, the currently active state, the in-flight transition (if any) and
// all registered lifecycle handlers. All configuration and command issuance
// are expected on one logical thread of control; the machine performs no
// locking of its own. Wrap it in a SyncMachine to serialize access
// externally.
type StateMachine[S comparable] struct {
	order     Slice[S]
	states    Set[S]
	table     Map[S, Map[Command, *tableEntry[S]]]
	notifiers Map[S, *stateNotifier[S]]
	changes   Slice[changeEntry[S]]

	current   S
	started   bool
	inflight  *tableEntry[S]
	notifying bool

	log Logger
}

// New creates a machine over the given fixed, non-empty state set. The set
// never changes afterwards; duplicate states are collapsed. Returns
// *ErrInvalidConfiguration when no states are supplied.
func New[S comparable](states ...S) (*StateMachine[S], error) {
	if len(states) == 0 {
		return nil, &ErrInvalidConfiguration{Reason: "a machine requires at least one state"}
	}

	f := &StateMachine[S]{
		states:    NewSet[S](),
		table:     NewMap[S, Map[Command, *tableEntry[S]]](),
		notifiers: NewMap[S, *stateNotifier[S]](),
		log:       defaultLogger(),
	}

	for _, state := range states {
		if f.states.Contains(state) {
			continue
		}

		f.states.Insert(state)
		f.order.Push(state)
		f.notifiers[state] = newStateNotifier(state)
	}

	return f, nil
}

// mustHave enforces the fail-fast configuration contract: every state handed
// to a registration method must belong to the configured set.
func (f *StateMachine[S]) mustHave(state S) {
	if !f.states.Contains(state) {
		panic(&ErrUnknownState{State: state})
	}
}

// AddTransition registers a default transition for (from, command): its guard
// is always satisfied and it completes synchronously inside Begin. Any prior
// registration for the exact (from, command) pair is overwritten.
func (f *StateMachine[S]) AddTransition(from, to S, command Command) *StateMachine[S] {
	return f.AddCustomTransition(from, to, command, NewTransition(from, to))
}

// AddTransitionWhen registers a default transition gated by guard.
func (f *StateMachine[S]) AddTransitionWhen(from, to S, command Command, guard Guard) *StateMachine[S] {
	if guard == nil {
		panic(&ErrInvalidArgument{Name: "guard"})
	}

	return f.AddCustomTransition(from, to, command, NewGuardedTransition(from, to, guard))
}

// AddCustomTransition registers a caller-supplied transition for
// (from, command). The machine does not clone the instance; registering the
// same instance under several pairs shares it, which is only sensible when
// that is the caller's explicit intent. Configuration methods panic with
// *ErrUnknownState or *ErrInvalidArgument on invalid input, the same
// fail-fast contract as http.ServeMux.Handle.
func (f *StateMachine[S]) AddCustomTransition(from, to S, command Command, t Transition[S]) *StateMachine[S] {
	if command == "" {
		panic(&ErrInvalidArgument{Name: "command"})
	}

	if t == nil {
		panic(&ErrInvalidArgument{Name: "transition"})
	}

	f.mustHave(from)
	f.mustHave(to)

	row := f.table[from]
	if row == nil {
		row = NewMap[Command, *tableEntry[S]]()
		f.table[from] = row
	}

	row[command] = &tableEntry[S]{to: to, tr: t}

	return f
}

// OnEnter registers a handler invoked every time the machine enters state
// through a completed transition, regardless of which transition caused it.
// Handlers for the same state fire in registration order.
func (f *StateMachine[S]) OnEnter(state S, handler Handler) *StateMachine[S] {
	if handler == nil {
		panic(&ErrInvalidArgument{Name: "handler"})
	}

	f.mustHave(state)
	f.notifiers[state].addEnter(handler)

	return f
}

// OnExit registers a handler invoked every time the machine leaves state,
// before the departing transition's own work begins.
func (f *StateMachine[S]) OnExit(state S, handler Handler) *StateMachine[S] {
	if handler == nil {
		panic(&ErrInvalidArgument{Name: "handler"})
	}

	f.mustHave(state)
	f.notifiers[state].addExit(handler)

	return f
}

// OnChange registers a handler invoked on every completed transition.
func (f *StateMachine[S]) OnChange(handler ChangeHandler[S]) *StateMachine[S] {
	if handler == nil {
		panic(&ErrInvalidArgument{Name: "handler"})
	}

	f.changes.Push(changeEntry[S]{handler: handler})

	return f
}

// OnChangeBetween registers a handler invoked only when a completed
// transition's endpoints match (from, to) exactly. Handlers registered
// through OnChange and OnChangeBetween share one overall registration order.
func (f *StateMachine[S]) OnChangeBetween(from, to S, handler ChangeHandler[S]) *StateMachine[S] {
	if handler == nil {
		panic(&ErrInvalidArgument{Name: "handler"})
	}

	f.mustHave(from)
	f.mustHave(to)

	f.changes.Push(changeEntry[S]{from: from, to: to, exact: true, handler: handler})

	return f
}

// SetLogger replaces the diagnostic sink that receives dispatch misuse
// warnings.
func (f *StateMachine[S]) SetLogger(log Logger) *StateMachine[S] {
	if log == nil {
		panic(&ErrInvalidArgument{Name: "logger"})
	}

	f.log = log

	return f
}

// Begin makes the machine live in the given initial state. No enter, exit or
// change handler fires: this is initialization, not a transition. Returns
// *ErrUnknownState if initial is not part of the configured set.
func (f *StateMachine[S]) Begin(initial S) error {
	if !f.states.Contains(initial) {
		return &ErrUnknownState{State: initial}
	}

	f.current = initial
	f.started = true

	return nil
}

// IssueCommand dispatches a command against the current state. Drops are
// silent and deliberate: while a transition is in flight, before Begin, when
// no transition is registered for (current state, command), and when the
// matched guard fails. A command issued from inside a lifecycle handler is
// also dropped, and additionally reported through the diagnostic sink, since
// reentrant dispatch would corrupt the notification sequence.
func (f *StateMachine[S]) IssueCommand(command Command) {
	if f.inflight != nil || !f.started {
		return
	}

	entry := f.table[f.current][command]
	if entry == nil {
		return
	}

	if f.notifying {
		f.log.Warnf("fsm: command %q dropped: issued from inside a lifecycle handler", command)
		return
	}

	if !entry.tr.TestCondition() {
		return
	}

	// Exit fires before the transition's own work begins.
	f.notifying = true
	f.notifiers[f.current].exit()
	f.notifying = false

	f.inflight = entry
	entry.tr.base().arm(f.completeTransition)
	entry.tr.Begin()
}

// completeTransition is the single completion observer armed on every
// dispatched transition. It swaps the current state, clears the in-flight
// slot, then runs the protected notification phase: change handlers first,
// enter handlers second. The reentrancy guard stays engaged for the whole
// sequence.
func (f *StateMachine[S]) completeTransition() {
	entry := f.inflight
	if entry == nil {
		return
	}

	from := f.current
	f.current = entry.to
	f.inflight = nil

	f.notifying = true
	defer func() { f.notifying = false }()

	for change := range f.changes.Iter() {
		if !change.exact || (change.from == from && change.to == entry.to) {
			change.handler(from, entry.to)
		}
	}

	f.notifiers[entry.to].enter()
}

// Current returns the active state. It is meaningful only after Begin.
func (f *StateMachine[S]) Current() S { return f.current }

// Started reports whether Begin has been called.
func (f *StateMachine[S]) Started() bool { return f.started }

// IsTransitioning reports whether a dispatched transition has not yet
// signalled completion. While true, every command is dropped.
func (f *StateMachine[S]) IsTransitioning() bool { return f.inflight != nil }

// States returns the configured state set in construction order.
func (f *StateMachine[S]) States() Slice[S] { return f.order.Clone() }
