package fsm

import . "github.com/enetx/g"

// Handler observes entry to or exit from a single state.
type Handler func()

// stateNotifier fans out enter/exit notifications for one specific state, in
// registration order. The machine owns exactly one per configured state; it
// holds no transition logic.
type stateNotifier[S comparable] struct {
	state   S
	onEnter Slice[Handler]
	onExit  Slice[Handler]
}

func newStateNotifier[S comparable](state S) *stateNotifier[S] {
	return &stateNotifier[S]{state: state}
}

func (n *stateNotifier[S]) addEnter(h Handler) { n.onEnter.Push(h) }

func (n *stateNotifier[S]) addExit(h Handler) { n.onExit.Push(h) }

func (n *stateNotifier[S]) enter() {
	for h := range n.onEnter.Iter() {
		h()
	}
}

func (n *stateNotifier[S]) exit() {
	for h := range n.onExit.Iter() {
		h()
	}
}
