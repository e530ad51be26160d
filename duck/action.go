package duck

// State is the shape of one duck's state slice: a flat record of named
// fields. Maps carry reference semantics, which the reducer's
// referential-equality contract relies on; a State returned unchanged is the
// very same map, not a copy.
type State = map[string]any

// Payload is the data carried by an Action into its matching Handler.
type Payload = any

/***** Action *****/

// Action is an immutable message describing one requested state transition.
//
// Actions should only be constructed with the ActionFactory functions
// returned by Duck.DefineAction, which guarantee the namespaced Type format
// "<namespace>/<actionName>".
type Action struct {
	Type    ActionTypeString
	Payload Payload
}

/***** Function types *****/

// Handler computes the effect of one action type on the current state.
// It must be pure: no side effects, no mutation of the given state.
//
// A Handler returns one of:
//   - the given state (by identity): decline, nothing changed
//   - the duck's initial state (by identity): reset, replace wholesale
//   - a partial State holding only the changed fields, to be merged
type Handler = func(state State, payload Payload) State

// ActionFactory builds an Action carrying the given payload under the
// action type it was created for.
type ActionFactory = func(payload Payload) Action

// Reducer is the single pure state-transition function synthesized from all
// registered handlers. It is total over (nil | State, Action): a nil state
// falls back to the initial state, an unrecognized action type is the
// identity transition.
type Reducer = func(state State, action Action) State
