package snapshotstore

import (
	"encoding/json"
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/reduxkit/ducks-go/duck"
)

// StateToJSON serializes a duck state for storage.
func StateToJSON(state duck.State) (json.RawMessage, error) {
	stateJSON, marshallingErr := jsoniter.ConfigFastest.Marshal(state)
	if marshallingErr != nil {
		return nil, errors.Join(ErrInvalidStateJSON, marshallingErr)
	}

	return stateJSON, nil
}

// StateFromJSON deserializes a stored snapshot back into a duck state.
//
// JSON numbers come back as float64, per standard JSON semantics; handlers
// of a duck whose state is restored from storage must not assume int fields
// survive a round trip.
func StateFromJSON(stateJSON json.RawMessage) (duck.State, error) {
	var state duck.State

	if unmarshallingErr := jsoniter.ConfigFastest.Unmarshal(stateJSON, &state); unmarshallingErr != nil {
		return nil, errors.Join(ErrInvalidStateJSON, unmarshallingErr)
	}

	return state, nil
}
