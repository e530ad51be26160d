// Package manual implements the counter without the duck builder: action
// type constants, action constructors, and a switch-based reducer are all
// declared and kept in sync by hand.
//
// It exists as the baseline the duck-based example/counter package is
// measured against; both must produce identical transition sequences.
package manual

import (
	"github.com/reduxkit/ducks-go/duck"
)

// Action type constants, spelled out by hand. Every new action touches
// three places: a constant here, a constructor below, and a case in Reduce.
const (
	IncrementActionType = "counter/INCREMENT"
	DecrementActionType = "counter/DECREMENT"
	ResetActionType     = "counter/RESET"
)

// ValueKey is the single key of the counter state.
const ValueKey = "value"

var initialState = duck.State{ValueKey: 0}

// InitialState returns the state the counter starts from and resets to.
func InitialState() duck.State {
	return initialState
}

// ChangePayload carries the amount for increment and decrement actions.
type ChangePayload struct {
	By int
}

// Increment builds an action raising the counter by the given amount.
func Increment(by int) duck.Action {
	return duck.Action{Type: IncrementActionType, Payload: ChangePayload{By: by}}
}

// Decrement builds an action lowering the counter by the given amount.
func Decrement(by int) duck.Action {
	return duck.Action{Type: DecrementActionType, Payload: ChangePayload{By: by}}
}

// Reset builds an action restoring the initial state.
func Reset() duck.Action {
	return duck.Action{Type: ResetActionType}
}

// Reduce is the hand-written reducer for the counter.
// Unknown action types return the state unchanged, by identity.
func Reduce(state duck.State, action duck.Action) duck.State {
	if state == nil {
		state = initialState
	}

	switch action.Type {
	case IncrementActionType:
		payload := action.Payload.(ChangePayload)
		return duck.State{ValueKey: state[ValueKey].(int) + payload.By}

	case DecrementActionType:
		payload := action.Payload.(ChangePayload)
		return duck.State{ValueKey: state[ValueKey].(int) - payload.By}

	case ResetActionType:
		return initialState

	default:
		return state
	}
}
