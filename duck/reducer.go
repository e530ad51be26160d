package duck

import (
	"reflect"
	"time"
)

const (
	logMsgActionReduced     = "action reduced"
	logMsgUnknownActionType = "unknown action type ignored"
	logAttrOutcome          = "outcome"
	logAttrDurationMS       = "duration_ms"

	metricReduceDuration = "duck_reduce_duration_seconds"
	metricActionsTotal   = "duck_actions_total"

	outcomeMerged   = "merged"
	outcomeDeclined = "declined"
	outcomeReset    = "reset"
	labelNamespace  = "namespace"
	labelActionType = "action_type"
	labelOutcome    = "outcome"
)

// Reducer seals the duck's registration table and returns the pure
// state-transition function synthesized from all registered handlers.
//
// Calling Reducer multiple times yields functions sharing the same
// underlying table; since the table is sealed by the first call they all
// behave identically.
//
// The returned function never fails for a well-formed (state, action) pair:
// a nil state falls back to the initial state and an unrecognized action
// type is the identity transition, returning the previous state unchanged
// with no allocation. A panicking handler propagates to the caller
// synchronously; the reducer adds no recovery, since masking a handler
// fault would silently corrupt the state it produces.
func (d *Duck) Reducer() Reducer {
	d.sealed = true

	handlers := d.handlers
	initialState := d.initialState
	logger := d.logger
	metricsCollector := d.metricsCollector
	namespace := d.namespace
	observed := logger != nil || metricsCollector != nil

	return func(state State, action Action) State {
		if state == nil {
			state = initialState
		}

		handler, registered := handlers[action.Type]
		if !registered {
			if logger != nil {
				logger.Debug(logMsgUnknownActionType, logAttrActionType, action.Type, logAttrNamespace, namespace)
			}

			return state
		}

		var start time.Time
		if observed {
			start = time.Now()
		}

		result := handler(state, action.Payload)

		nextState, outcome := resolveTransition(state, initialState, result)

		if observed {
			duration := time.Since(start)
			reportTransition(logger, metricsCollector, namespace, action.Type, outcome, duration)
		}

		return nextState
	}
}

// resolveTransition applies the handler-result conventions: identity to the
// previous state means decline, identity to the initial state means reset
// (no merge, discarding fields the handler did not know about), anything
// else is a partial update merged shallowly over the previous state.
func resolveTransition(state State, initialState State, result State) (State, string) {
	if sameState(result, state) {
		return state, outcomeDeclined
	}

	if sameState(result, initialState) {
		return initialState, outcomeReset
	}

	return mergeState(state, result), outcomeMerged
}

// mergeState builds the next state: every field of the previous state, with
// every field present in the partial overwritten by the partial's value.
// The merge is one level deep only; nested values are replaced wholesale.
func mergeState(previous State, partial State) State {
	next := make(State, len(previous)+len(partial))

	for field, value := range previous {
		next[field] = value
	}

	for field, value := range partial {
		next[field] = value
	}

	return next
}

// sameState reports whether two states are the identical map, not merely
// equal in content. Map headers are compared by pointer; nil equals only nil.
func sameState(a State, b State) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func reportTransition(
	logger Logger,
	metricsCollector MetricsCollector,
	namespace NamespaceString,
	actionType ActionTypeString,
	outcome string,
	duration time.Duration,
) {

	if logger != nil {
		logger.Debug(
			logMsgActionReduced,
			logAttrActionType, actionType,
			logAttrOutcome, outcome,
			logAttrDurationMS, durationToMilliseconds(duration),
		)
	}

	if metricsCollector != nil {
		labels := map[string]string{
			labelNamespace:  namespace,
			labelActionType: actionType,
			labelOutcome:    outcome,
		}

		metricsCollector.IncrementCounter(metricActionsTotal, labels)
		metricsCollector.RecordDuration(metricReduceDuration, duration, labels)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
