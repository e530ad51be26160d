// Package counter implements the counter as a duck: the namespace is
// declared once, handlers are registered per action name, and the action
// type constants, constructors, and reducer of the manual version all fall
// out of the builder.
package counter

import (
	"github.com/reduxkit/ducks-go/duck"
)

// ValueKey is the single key of the counter state.
const ValueKey = "value"

var (
	counterDuck = duck.MustBuildDuck("counter", duck.State{ValueKey: 0})

	// Increment builds an action raising the counter by the payload amount.
	Increment = duck.MustDefineActionFor(counterDuck, "INCREMENT", applyIncrement)

	// Decrement builds an action lowering the counter by the payload amount.
	Decrement = duck.MustDefineActionFor(counterDuck, "DECREMENT", applyDecrement)

	resetFactory = counterDuck.MustDefineAction("RESET", applyReset)

	// Reduce is the synthesized reducer for the counter duck.
	Reduce = counterDuck.Reducer()
)

// ChangePayload carries the amount for increment and decrement actions.
type ChangePayload struct {
	By int
}

// Reset builds an action restoring the initial state.
func Reset() duck.Action {
	return resetFactory(nil)
}

// InitialState returns the state the counter starts from and resets to.
func InitialState() duck.State {
	return counterDuck.InitialState()
}

// ActionTypes returns the namespaced action types of the counter duck.
func ActionTypes() []duck.ActionTypeString {
	return counterDuck.ActionTypes()
}

func applyIncrement(state duck.State, payload ChangePayload) duck.State {
	return duck.State{ValueKey: state[ValueKey].(int) + payload.By}
}

func applyDecrement(state duck.State, payload ChangePayload) duck.State {
	return duck.State{ValueKey: state[ValueKey].(int) - payload.By}
}

func applyReset(_ duck.State, _ duck.Payload) duck.State {
	return counterDuck.InitialState()
}
