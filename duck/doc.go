// Package duck provides a builder that turns a namespace, an initial state
// and a table of per-action handlers into namespaced action constructors and
// a single pure reducer function.
//
// It replaces the repetitive pattern of declaring action-type constants,
// action-constructor functions, and a dispatch switch by hand, kept in sync
// across several source locations per action.
//
// Key types:
//   - Duck: accumulates action handlers for one namespace
//   - Handler: the pure function computing the effect of one action type
//   - Action: an immutable {Type, Payload} message describing one transition
//   - Reducer: the synthesized (state, action) -> nextState function
//
// Common usage pattern:
//
//	counter, err := duck.BuildDuck("counter", duck.State{"value": 0})
//	if err != nil {
//		// handle error
//	}
//
//	increment, err := duck.DefineActionFor(counter, "INCREMENT",
//		func(state duck.State, payload IncrementPayload) duck.State {
//			return duck.State{"value": state["value"].(int) + payload.Delta}
//		})
//	if err != nil {
//		// handle error
//	}
//
//	reduce := counter.Reducer()
//	next := reduce(nil, increment(IncrementPayload{Delta: 10}))
//
// A handler returns either the state it was given (explicitly declining to
// change anything), the duck's exact initial state (the reset convention,
// replacing the state wholesale), or a partial state holding only the fields
// that changed, which the reducer shallow-merges over the previous state.
//
// The reducer preserves referential equality wherever nothing changed:
// unknown action types and declined transitions return the previous state
// unchanged, with no allocation.
//
// All registrations are expected to happen during single-threaded setup.
// Building the reducer seals the duck; later DefineAction calls fail with
// ErrDuckSealed.
package duck
