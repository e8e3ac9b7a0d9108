package fsm

// Enum is satisfied by state types that can enumerate every one of their
// defined values, the closed-enumeration equivalent of reflecting over an
// enum type:
//
//	type DoorState int
//
//	const (
//		DoorClosed DoorState = iota
//		DoorOpen
//	)
//
//	func (DoorState) Values() []DoorState { return []DoorState{DoorClosed, DoorOpen} }
type Enum[S comparable] interface {
	comparable
	Values() []S
}

// NewFromEnum builds a machine whose state set is every value of the
// enumeration type S, in declaration order. A type whose Values returns
// nothing is not a usable enumeration and yields *ErrInvalidConfiguration.
func NewFromEnum[S Enum[S]]() (*StateMachine[S], error) {
	var enum S
	return New(enum.Values()...)
}
