package duck

// DefineActionFor registers a handler with a concrete payload type and
// returns a typed factory, recovering compile-time payload safety over the
// string-keyed handler table.
//
// The wrapped handler asserts the payload to P. Actions built by the
// returned factory always satisfy the assertion; an action of the same type
// constructed by other means with a foreign payload is malformed input, and
// the resulting panic propagates to the reducer's caller like any other
// handler fault.
func DefineActionFor[P any](
	d *Duck,
	actionName ActionNameString,
	handler func(state State, payload P) State,
) (func(payload P) Action, error) {

	if handler == nil {
		return nil, ErrNilHandlerSupplied
	}

	factory, err := d.DefineAction(actionName, func(state State, payload Payload) State {
		return handler(state, payload.(P))
	})
	if err != nil {
		return nil, err
	}

	typedFactory := func(payload P) Action {
		return factory(payload)
	}

	return typedFactory, nil
}

// MustDefineActionFor is like DefineActionFor but panics on error, for use
// in package-level variable initialization.
func MustDefineActionFor[P any](
	d *Duck,
	actionName ActionNameString,
	handler func(state State, payload P) State,
) func(payload P) Action {

	typedFactory, err := DefineActionFor(d, actionName, handler)
	if err != nil {
		panic(err)
	}

	return typedFactory
}
