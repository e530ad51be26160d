// Package todos implements a todo-list duck over a nested state shape.
//
// The whole item collection lives under one state key, which makes the
// merge semantics visible: handlers replace the "items" value wholesale,
// since the reducer merges one level deep and never descends into nested
// values.
package todos

import (
	"github.com/google/uuid"

	"github.com/reduxkit/ducks-go/duck"
)

// State keys and per-item field names.
const (
	ItemsKey = "items"
	TitleKey = "title"
	DoneKey  = "done"
)

var (
	todosDuck = duck.MustBuildDuck("todos", duck.State{ItemsKey: map[string]any{}})

	// Add builds an action appending a new item.
	Add = duck.MustDefineActionFor(todosDuck, "ADD", applyAdd)

	// Toggle builds an action flipping the done flag of one item.
	Toggle = duck.MustDefineActionFor(todosDuck, "TOGGLE", applyToggle)

	clearFactory = todosDuck.MustDefineAction("CLEAR", applyClear)

	// Reduce is the synthesized reducer for the todos duck.
	Reduce = todosDuck.Reducer()
)

// AddPayload identifies and titles the item to append.
type AddPayload struct {
	ID    string
	Title string
}

// TogglePayload identifies the item to toggle.
type TogglePayload struct {
	ID string
}

// NewAddPayload assigns a fresh ID to the given title.
func NewAddPayload(title string) AddPayload {
	return AddPayload{ID: uuid.NewString(), Title: title}
}

// Clear builds an action restoring the empty initial state.
func Clear() duck.Action {
	return clearFactory(nil)
}

// InitialState returns the state the todo list starts from and resets to.
func InitialState() duck.State {
	return todosDuck.InitialState()
}

// ActionTypes returns the namespaced action types of the todos duck.
func ActionTypes() []duck.ActionTypeString {
	return todosDuck.ActionTypes()
}

func applyAdd(state duck.State, payload AddPayload) duck.State {
	items := copyItems(state)
	items[payload.ID] = map[string]any{TitleKey: payload.Title, DoneKey: false}

	return duck.State{ItemsKey: items}
}

func applyToggle(state duck.State, payload TogglePayload) duck.State {
	currentItems := state[ItemsKey].(map[string]any)

	item, exists := currentItems[payload.ID]
	if !exists {
		return state // nothing to toggle, decline the transition
	}

	fields := item.(map[string]any)

	items := copyItems(state)
	items[payload.ID] = map[string]any{
		TitleKey: fields[TitleKey],
		DoneKey:  !fields[DoneKey].(bool),
	}

	return duck.State{ItemsKey: items}
}

func applyClear(_ duck.State, _ duck.Payload) duck.State {
	return todosDuck.InitialState()
}

func copyItems(state duck.State) map[string]any {
	currentItems := state[ItemsKey].(map[string]any)

	items := make(map[string]any, len(currentItems)+1)
	for id, item := range currentItems {
		items[id] = item
	}

	return items
}
