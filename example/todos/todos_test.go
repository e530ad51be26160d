package todos_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reduxkit/ducks-go/example/todos"
)

func Test_Reduce_AddsAndTogglesItems(t *testing.T) {
	// arrange
	payload := todos.NewAddPayload("write tests")
	state := todos.InitialState()

	// act
	state = todos.Reduce(state, todos.Add(payload))

	// assert
	items := state[todos.ItemsKey].(map[string]any)
	require.Len(t, items, 1)

	fields := items[payload.ID].(map[string]any)
	assert.Equal(t, "write tests", fields[todos.TitleKey])
	assert.Equal(t, false, fields[todos.DoneKey])

	// act
	state = todos.Reduce(state, todos.Toggle(todos.TogglePayload{ID: payload.ID}))

	// assert
	items = state[todos.ItemsKey].(map[string]any)
	fields = items[payload.ID].(map[string]any)
	assert.Equal(t, true, fields[todos.DoneKey])
}

func Test_Reduce_AssignsUniqueItemIDs(t *testing.T) {
	// act
	first := todos.NewAddPayload("one")
	second := todos.NewAddPayload("two")

	// assert
	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func Test_Reduce_ReplacesTheItemCollectionWholesale(t *testing.T) {
	// arrange
	payload := todos.NewAddPayload("first")
	state := todos.Reduce(todos.InitialState(), todos.Add(payload))
	itemsBefore := state[todos.ItemsKey].(map[string]any)

	// act
	state = todos.Reduce(state, todos.Add(todos.NewAddPayload("second")))

	// assert, the previous collection value must be untouched
	itemsAfter := state[todos.ItemsKey].(map[string]any)
	assert.Len(t, itemsBefore, 1)
	assert.Len(t, itemsAfter, 2)
}

func Test_Reduce_DeclinesTogglingAMissingItem(t *testing.T) {
	// arrange
	state := todos.Reduce(todos.InitialState(), todos.Add(todos.NewAddPayload("keep me")))

	// act
	result := todos.Reduce(state, todos.Toggle(todos.TogglePayload{ID: "no-such-id"}))

	// assert
	assert.Equal(t, state[todos.ItemsKey], result[todos.ItemsKey])
}

func Test_Reduce_ClearRestoresTheInitialState(t *testing.T) {
	// arrange
	state := todos.Reduce(todos.InitialState(), todos.Add(todos.NewAddPayload("gone soon")))

	// act
	state = todos.Reduce(state, todos.Clear())

	// assert
	items := state[todos.ItemsKey].(map[string]any)
	assert.Empty(t, items)
}
