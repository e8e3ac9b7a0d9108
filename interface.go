package fsm

import . "github.com/enetx/g"

// Machine is the engine surface shared by StateMachine and SyncMachine.
type Machine[S comparable] interface {
	Begin(initial S) error
	IssueCommand(command Command)
	Current() S
	Started() bool
	IsTransitioning() bool
	States() Slice[S]
	ToDOT() String
}

var (
	_ Machine[string] = (*StateMachine[string])(nil)
	_ Machine[string] = (*SyncMachine[string])(nil)
)
