package duck

import (
	"errors"
	"slices"
)

const actionTypeSeparator = "/"

const (
	logMsgDuplicateRegistration = "duplicate action registration rejected"
	logMsgSealedRegistration    = "registration on sealed duck rejected"
	logAttrActionType           = "action_type"
	logAttrNamespace            = "namespace"
)

// Duck accumulates action handlers for one namespace and synthesizes the
// reducer for them. It is a builder: all DefineAction calls are expected to
// happen during single-threaded setup, before the reducer is handed to the
// host dispatch mechanism.
type Duck struct {
	namespace        NamespaceString
	initialState     State
	handlers         map[ActionTypeString]Handler
	sealed           bool
	logger           Logger
	metricsCollector MetricsCollector
}

// BuildDuck creates a Duck bound to the given namespace and initial state,
// with optional configuration.
//
// The initial state must be treated as immutable from this point on; it is
// returned verbatim for every reset and used as the fallback when the
// reducer is called with a nil state.
func BuildDuck(namespace NamespaceString, initialState State, options ...Option) (*Duck, error) {
	if namespace == "" {
		return nil, ErrEmptyNamespaceSupplied
	}

	d := &Duck{
		namespace:    namespace,
		initialState: initialState,
		handlers:     make(map[ActionTypeString]Handler),
	}

	for _, option := range options {
		if err := option(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// MustBuildDuck is like BuildDuck but panics on error, for use in
// package-level variable initialization.
func MustBuildDuck(namespace NamespaceString, initialState State, options ...Option) *Duck {
	d, err := BuildDuck(namespace, initialState, options...)
	if err != nil {
		panic(err)
	}

	return d
}

// DefineAction registers the handler under the derived action type
// "<namespace>/<actionName>" and returns the ActionFactory producing actions
// of that type.
//
// Registering the same action name twice on one duck is a programming error
// and fails fast with ErrDuplicateActionName instead of silently
// overwriting. Registrations after Reducer() was first called fail with
// ErrDuckSealed.
func (d *Duck) DefineAction(actionName ActionNameString, handler Handler) (ActionFactory, error) {
	if actionName == "" {
		return nil, ErrEmptyActionNameSupplied
	}

	if handler == nil {
		return nil, ErrNilHandlerSupplied
	}

	actionType := d.ActionType(actionName)

	if d.sealed {
		if d.logger != nil {
			d.logger.Warn(logMsgSealedRegistration, logAttrActionType, actionType)
		}

		return nil, ErrDuckSealed
	}

	if _, alreadyRegistered := d.handlers[actionType]; alreadyRegistered {
		if d.logger != nil {
			d.logger.Warn(logMsgDuplicateRegistration, logAttrActionType, actionType)
		}

		return nil, errors.Join(ErrDuplicateActionName, errors.New(actionType))
	}

	d.handlers[actionType] = handler

	factory := func(payload Payload) Action {
		return Action{Type: actionType, Payload: payload}
	}

	return factory, nil
}

// MustDefineAction is like DefineAction but panics on error, for use in
// package-level variable initialization.
func (d *Duck) MustDefineAction(actionName ActionNameString, handler Handler) ActionFactory {
	factory, err := d.DefineAction(actionName, handler)
	if err != nil {
		panic(err)
	}

	return factory
}

// ActionType derives the namespaced action type for the given action name.
// The "<namespace>/<actionName>" format is part of the external contract:
// development tooling groups actions by the "/"-delimited prefix.
func (d *Duck) ActionType(actionName ActionNameString) ActionTypeString {
	return d.namespace + actionTypeSeparator + actionName
}

// Namespace returns the namespace this duck was built with.
func (d *Duck) Namespace() NamespaceString {
	return d.namespace
}

// InitialState returns the exact initial state value this duck was built
// with. Handlers return it by identity to signal a reset.
func (d *Duck) InitialState() State {
	return d.initialState
}

// ActionTypes returns the sorted action types registered so far.
func (d *Duck) ActionTypes() []ActionTypeString {
	actionTypes := make([]ActionTypeString, 0, len(d.handlers))
	for actionType := range d.handlers {
		actionTypes = append(actionTypes, actionType)
	}

	slices.Sort(actionTypes)

	return actionTypes
}

// Sealed reports whether the registration table has been frozen by a
// Reducer() call.
func (d *Duck) Sealed() bool {
	return d.sealed
}
