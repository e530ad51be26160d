package duck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reduxkit/ducks-go/duck"
	"github.com/reduxkit/ducks-go/testutil/helper"
)

type counterFixture struct {
	duck      *duck.Duck
	increment duck.ActionFactory
	decrement duck.ActionFactory
	reset     duck.ActionFactory
	noop      duck.ActionFactory
	reduce    duck.Reducer
}

// buildCounterFixture assembles the counter duck used throughout the reducer
// tests: INCREMENT and DECREMENT merge a partial {value}, RESET returns the
// initial state by identity, NOOP declines by returning the given state.
func buildCounterFixture(t *testing.T, initialState duck.State) counterFixture {
	t.Helper()

	d, err := duck.BuildDuck("counter", initialState)
	require.NoError(t, err)

	increment, err := d.DefineAction("INCREMENT", func(state duck.State, payload duck.Payload) duck.State {
		return duck.State{"value": state["value"].(int) + payload.(map[string]any)["delta"].(int)}
	})
	require.NoError(t, err)

	decrement, err := d.DefineAction("DECREMENT", func(state duck.State, payload duck.Payload) duck.State {
		return duck.State{"value": state["value"].(int) - payload.(map[string]any)["delta"].(int)}
	})
	require.NoError(t, err)

	reset, err := d.DefineAction("RESET", func(_ duck.State, _ duck.Payload) duck.State {
		return d.InitialState()
	})
	require.NoError(t, err)

	noop, err := d.DefineAction("NOOP", func(state duck.State, _ duck.Payload) duck.State {
		return state
	})
	require.NoError(t, err)

	return counterFixture{
		duck:      d,
		increment: increment,
		decrement: decrement,
		reset:     reset,
		noop:      noop,
		reduce:    d.Reducer(),
	}
}

func deltaPayload(delta int) map[string]any {
	return map[string]any{"delta": delta}
}

func Test_Reducer_AppliesSuccessiveTransitions(t *testing.T) {
	// arrange
	initialState := duck.State{"value": 0}
	fixture := buildCounterFixture(t, initialState)

	// act
	afterIncrement := fixture.reduce(initialState, fixture.increment(deltaPayload(10)))
	afterDecrement := fixture.reduce(afterIncrement, fixture.decrement(deltaPayload(3)))
	afterReset := fixture.reduce(afterDecrement, fixture.reset(nil))

	// assert
	assert.Equal(t, duck.State{"value": 10}, afterIncrement)
	assert.Equal(t, duck.State{"value": 7}, afterDecrement)
	assertSameState(t, initialState, afterReset, "reset must return the exact initial state reference")
}

func Test_Reducer_SubstitutesInitialState_WhenStateIsNil(t *testing.T) {
	// arrange
	fixture := buildCounterFixture(t, duck.State{"value": 0})

	// act
	result := fixture.reduce(nil, fixture.increment(deltaPayload(5)))

	// assert
	assert.Equal(t, duck.State{"value": 5}, result)
}

func Test_Reducer_ReturnsInitialStateReference_ForUnknownActionOnNilState(t *testing.T) {
	// arrange
	initialState := duck.State{"value": 0}
	fixture := buildCounterFixture(t, initialState)

	// act
	result := fixture.reduce(nil, duck.Action{Type: "unrelated/ACTION"})

	// assert
	assertSameState(t, initialState, result)
}

func Test_Reducer_IsIdentity_ForUnknownActionType(t *testing.T) {
	// arrange
	fixture := buildCounterFixture(t, duck.State{"value": 0})
	state := duck.State{"value": 7}

	// act
	result := fixture.reduce(state, duck.Action{Type: "unrelated/ACTION", Payload: "ignored"})

	// assert
	assertSameState(t, state, result, "unknown action type must return the same reference, not a copy")
}

func Test_Reducer_IsIdentity_WhenHandlerDeclines(t *testing.T) {
	// arrange
	fixture := buildCounterFixture(t, duck.State{"value": 0})
	state := duck.State{"value": 7}

	// act
	result := fixture.reduce(state, fixture.noop(nil))

	// assert
	assertSameState(t, state, result)
}

func Test_Reducer_Reset_DiscardsFieldsTheHandlerDoesNotKnowAbout(t *testing.T) {
	// arrange
	initialState := duck.State{"value": 0}
	fixture := buildCounterFixture(t, initialState)
	state := duck.State{"value": 7, "leftover": "must not survive a reset"}

	// act
	result := fixture.reduce(state, fixture.reset(nil))

	// assert
	assertSameState(t, initialState, result)
	assert.NotContains(t, result, "leftover")
}

func Test_Reducer_PartialUpdate_PreservesUntouchedFields(t *testing.T) {
	// arrange
	fixture := buildCounterFixture(t, duck.State{"value": 0})
	state := duck.State{"value": 7, "label": "unchanged", "nested": map[string]any{"keep": true}}

	// act
	result := fixture.reduce(state, fixture.increment(deltaPayload(1)))

	// assert
	assert.Equal(t, 8, result["value"])
	assert.Equal(t, "unchanged", result["label"])
	assert.Equal(t, map[string]any{"keep": true}, result["nested"])
	assertNotSameState(t, state, result, "a partial update must allocate a new state")
	assert.Equal(t, duck.State{"value": 7, "label": "unchanged", "nested": map[string]any{"keep": true}}, state,
		"the previous state must not be mutated")
}

func Test_Reducer_PartialUpdate_ReplacesNestedValuesWholesale(t *testing.T) {
	// arrange
	d := duck.MustBuildDuck("profile", duck.State{"settings": map[string]any{"theme": "light", "lang": "en"}})

	updateSettings := d.MustDefineAction("UPDATE_SETTINGS", func(_ duck.State, payload duck.Payload) duck.State {
		return duck.State{"settings": payload}
	})

	reduce := d.Reducer()
	state := duck.State{"settings": map[string]any{"theme": "light", "lang": "en"}, "name": "someone"}

	// act
	result := reduce(state, updateSettings(map[string]any{"theme": "dark"}))

	// assert - one level deep only: the nested map is replaced, not merged
	assert.Equal(t, map[string]any{"theme": "dark"}, result["settings"])
	assert.Equal(t, "someone", result["name"])
}

func Test_Reducer_Increment_IsNotIdempotent_ButResetIs(t *testing.T) {
	// arrange
	initialState := duck.State{"value": 0}
	fixture := buildCounterFixture(t, initialState)

	// act
	once := fixture.reduce(initialState, fixture.increment(deltaPayload(10)))
	twice := fixture.reduce(once, fixture.increment(deltaPayload(10)))

	resetOnce := fixture.reduce(twice, fixture.reset(nil))
	resetTwice := fixture.reduce(resetOnce, fixture.reset(nil))

	// assert
	assert.NotEqual(t, once, twice)
	assert.Equal(t, duck.State{"value": 20}, twice)
	assertSameState(t, resetOnce, resetTwice)
}

func Test_Reducer_NamespaceIsolation_DispatchingOneDuck_NeverTriggersTheOther(t *testing.T) {
	// arrange
	first := duck.MustBuildDuck("counter", duck.State{"value": 0})
	second := duck.MustBuildDuck("counter2", duck.State{"value": 0})

	incrementFirst := first.MustDefineAction("INCREMENT", func(state duck.State, _ duck.Payload) duck.State {
		return duck.State{"value": state["value"].(int) + 1}
	})
	incrementSecond := second.MustDefineAction("INCREMENT", func(state duck.State, _ duck.Payload) duck.State {
		return duck.State{"value": state["value"].(int) + 100}
	})

	reduceFirst := first.Reducer()
	reduceSecond := second.Reducer()
	state := duck.State{"value": 0}

	// act
	firstAfterForeignAction := reduceFirst(state, incrementSecond(nil))
	secondAfterOwnAction := reduceSecond(state, incrementSecond(nil))
	firstAfterOwnAction := reduceFirst(state, incrementFirst(nil))

	// assert
	assertSameState(t, state, firstAfterForeignAction)
	assert.Equal(t, duck.State{"value": 100}, secondAfterOwnAction)
	assert.Equal(t, duck.State{"value": 1}, firstAfterOwnAction)
}

func Test_Reducer_RepeatedCalls_ShareTheSameHandlerTable(t *testing.T) {
	// arrange
	fixture := buildCounterFixture(t, duck.State{"value": 0})
	otherReduce := fixture.duck.Reducer()

	state := duck.State{"value": 1}
	action := fixture.increment(deltaPayload(2))

	// act + assert
	assert.Equal(t, fixture.reduce(state, action), otherReduce(state, action))
}

func Test_Reducer_HandlerPanic_PropagatesToTheCaller(t *testing.T) {
	// arrange
	d := duck.MustBuildDuck("counter", duck.State{"value": 0})

	boom := d.MustDefineAction("BOOM", func(_ duck.State, _ duck.Payload) duck.State {
		panic("handler fault")
	})

	reduce := d.Reducer()

	// act + assert
	assert.PanicsWithValue(t, "handler fault", func() {
		_ = reduce(duck.State{"value": 0}, boom(nil))
	})
}

/***** test helpers *****/

func assertSameState(t testing.TB, expected duck.State, actual duck.State, msgAndArgs ...any) {
	t.Helper()
	helper.AssertSameState(t, expected, actual, msgAndArgs...)
}

func assertNotSameState(t testing.TB, unexpected duck.State, actual duck.State, msgAndArgs ...any) {
	t.Helper()
	helper.AssertNotSameState(t, unexpected, actual, msgAndArgs...)
}
