package fsm

// Guard gates whether a transition may begin. It is evaluated at dispatch
// time and may read arbitrary external state ("does the door have a key");
// nil means always satisfied.
type Guard func() bool

// Transition is one directed edge in the state graph. The built-in default
// variant completes immediately inside Begin; custom transitions embed
// *TransitionBase and override Begin to perform deferred work (an animation,
// a timer, an external event), calling Complete when that work finishes.
type Transition[S comparable] interface {
	// TestCondition reports whether the transition may begin at the moment of
	// the call.
	TestCondition() bool

	// Begin starts the transition's work. It must eventually cause exactly
	// one completion signal, either before it returns or at an arbitrary
	// later point.
	Begin()

	// base exposes the embedded TransitionBase, which carries the completion
	// wiring the machine arms on dispatch. Embedding *TransitionBase is what
	// satisfies this interface for custom transitions.
	base() *TransitionBase[S]
}

// TransitionBase is the default transition and the mandatory embed for custom
// ones. Its lifecycle per dispatch is NotStarted until Begin, Running until
// Complete, then Completed; the completion signal fires at most once.
type TransitionBase[S comparable] struct {
	from, to S
	guard    Guard
	done     func()
}

// NewTransition creates a default transition between from and to. Its guard
// is always satisfied and Begin completes synchronously.
func NewTransition[S comparable](from, to S) *TransitionBase[S] {
	return &TransitionBase[S]{from: from, to: to}
}

// NewGuardedTransition creates a default transition gated by guard.
func NewGuardedTransition[S comparable](from, to S, guard Guard) *TransitionBase[S] {
	return &TransitionBase[S]{from: from, to: to, guard: guard}
}

// From returns the transition's origin state.
func (t *TransitionBase[S]) From() S { return t.from }

// To returns the transition's target state.
func (t *TransitionBase[S]) To() S { return t.to }

// TestCondition reports true iff the guard is absent or passes.
func (t *TransitionBase[S]) TestCondition() bool { return t.guard == nil || t.guard() }

// Begin completes immediately. Custom transitions override this to start
// deferred work instead.
func (t *TransitionBase[S]) Begin() { t.Complete() }

// Complete signals that the transition's work has finished. The owning
// machine observes the signal exactly once per dispatch; further calls are
// no-ops until the transition is dispatched again.
func (t *TransitionBase[S]) Complete() {
	if t.done == nil {
		return
	}

	done := t.done
	t.done = nil
	done()
}

// arm installs the machine's completion observer for one dispatch.
func (t *TransitionBase[S]) arm(done func()) { t.done = done }

func (t *TransitionBase[S]) base() *TransitionBase[S] { return t }
