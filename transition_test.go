package fsm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fsm "github.com/dubit/unity-fsm"
)

// manualTransition defers completion until the test calls Complete, standing
// in for an animation or timer driven transition.
type manualTransition struct {
	*fsm.TransitionBase[string]
	begun int
}

func (m *manualTransition) Begin() { m.begun++ }

func TestCustomTransition_AsyncCompletion(t *testing.T) {
	tr := &manualTransition{TransitionBase: fsm.NewTransition(stateIdle, stateLoading)}

	entered := 0
	changed := 0

	m := newLoaderMachine(t).
		AddCustomTransition(stateIdle, stateLoading, "load", tr).
		OnEnter(stateLoading, func() { entered++ }).
		OnChange(func(_, _ string) { changed++ })

	require.NoError(t, m.Begin(stateIdle))

	m.IssueCommand("load")

	assert.Equal(t, 1, tr.begun)
	assert.True(t, m.IsTransitioning())
	assert.Equal(t, stateIdle, m.Current(), "state must not change before completion")
	assert.Zero(t, entered)
	assert.Zero(t, changed)

	tr.Complete()

	assert.False(t, m.IsTransitioning())
	assert.Equal(t, stateLoading, m.Current())
	assert.Equal(t, 1, entered)
	assert.Equal(t, 1, changed)
}

func TestCustomTransition_ExitPrecedesBegin(t *testing.T) {
	var order []string

	tr := &manualTransition{TransitionBase: fsm.NewTransition(stateIdle, stateLoading)}

	m := newLoaderMachine(t).
		AddCustomTransition(stateIdle, stateLoading, "load", tr).
		OnExit(stateIdle, func() {
			order = append(order, "exit")
			assert.Zero(t, tr.begun, "exit handlers run before the transition's work")
		})

	require.NoError(t, m.Begin(stateIdle))

	m.IssueCommand("load")
	order = append(order, "begun")
	tr.Complete()

	assert.Equal(t, []string{"exit", "begun"}, order)
}

func TestCustomTransition_CommandsDroppedWhileInFlight(t *testing.T) {
	tr := &manualTransition{TransitionBase: fsm.NewTransition(stateIdle, stateLoading)}

	m := newLoaderMachine(t).
		AddCustomTransition(stateIdle, stateLoading, "load", tr).
		AddTransition(stateIdle, stateInvalid, "fail")

	require.NoError(t, m.Begin(stateIdle))

	m.IssueCommand("load")
	m.IssueCommand("load")
	m.IssueCommand("fail")

	assert.Equal(t, 1, tr.begun)
	assert.True(t, m.IsTransitioning())

	tr.Complete()

	assert.Equal(t, stateLoading, m.Current())
}

func TestCustomTransition_CompletionObservedOnce(t *testing.T) {
	tr := &manualTransition{TransitionBase: fsm.NewTransition(stateLoading, stateValid)}

	changed := 0

	m := newLoaderMachine(t).
		AddCustomTransition(stateLoading, stateValid, "done", tr).
		AddTransition(stateValid, stateIdle, "reset").
		OnChange(func(_, _ string) { changed++ })

	require.NoError(t, m.Begin(stateLoading))

	m.IssueCommand("done")
	tr.Complete()
	tr.Complete()
	tr.Complete()

	assert.Equal(t, 1, changed)
	assert.Equal(t, stateValid, m.Current())

	// A stale Complete must not disturb a later dispatch either.
	m.IssueCommand("reset")
	tr.Complete()

	assert.Equal(t, stateIdle, m.Current())
	assert.Equal(t, 2, changed)
}

func TestCustomTransition_GuardedBase(t *testing.T) {
	allowed := false

	tr := &manualTransition{
		TransitionBase: fsm.NewGuardedTransition(stateIdle, stateLoading, func() bool { return allowed }),
	}

	m := newLoaderMachine(t).
		AddCustomTransition(stateIdle, stateLoading, "load", tr)

	require.NoError(t, m.Begin(stateIdle))

	m.IssueCommand("load")
	assert.Zero(t, tr.begun)
	assert.Equal(t, stateIdle, m.Current())

	allowed = true
	m.IssueCommand("load")
	assert.Equal(t, 1, tr.begun)

	tr.Complete()
	assert.Equal(t, stateLoading, m.Current())
}

func TestCustomTransition_StalledTransitionWedgesMachine(t *testing.T) {
	tr := &manualTransition{TransitionBase: fsm.NewTransition(stateIdle, stateLoading)}

	m := newLoaderMachine(t).
		AddCustomTransition(stateIdle, stateLoading, "load", tr).
		AddTransition(stateIdle, stateInvalid, "fail")

	require.NoError(t, m.Begin(stateIdle))

	m.IssueCommand("load")

	// Never completed: the machine stays wedged but remains queryable.
	for range 10 {
		m.IssueCommand("fail")
	}

	assert.True(t, m.IsTransitioning())
	assert.Equal(t, stateIdle, m.Current())
}

func TestCustomTransition_SharedAcrossRegistrations(t *testing.T) {
	tr := fsm.NewTransition(stateIdle, stateLoading)

	m := newLoaderMachine(t).
		AddCustomTransition(stateIdle, stateLoading, "load", tr).
		AddCustomTransition(stateInvalid, stateLoading, "retry", tr)

	require.NoError(t, m.Begin(stateInvalid))
	m.IssueCommand("retry")

	// The table, not the shared instance, decides the target.
	assert.Equal(t, stateLoading, m.Current())

	require.NoError(t, m.Begin(stateIdle))
	m.IssueCommand("load")

	assert.Equal(t, stateLoading, m.Current())
}

func TestDefaultTransition_Accessors(t *testing.T) {
	tr := fsm.NewTransition(stateIdle, stateLoading)

	assert.Equal(t, stateIdle, tr.From())
	assert.Equal(t, stateLoading, tr.To())
	assert.True(t, tr.TestCondition())

	guarded := fsm.NewGuardedTransition(stateIdle, stateLoading, func() bool { return false })
	assert.False(t, guarded.TestCondition())

	// Completing an undispatched transition is a no-op.
	tr.Complete()
}
