package helper

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reduxkit/ducks-go/duck"
)

// AssertSameState asserts that two states are the identical map, not merely
// equal in content. testify's assert.Same only works on pointer kinds, so
// map identity is checked via the map header pointers.
func AssertSameState(t testing.TB, expected duck.State, actual duck.State, msgAndArgs ...any) {
	t.Helper()

	if expected == nil || actual == nil {
		assert.True(t, expected == nil && actual == nil, msgAndArgs...)
		return
	}

	assert.Equal(
		t,
		reflect.ValueOf(expected).Pointer(),
		reflect.ValueOf(actual).Pointer(),
		msgAndArgs...,
	)
}

// AssertNotSameState asserts that two states are distinct maps, regardless
// of their content.
func AssertNotSameState(t testing.TB, unexpected duck.State, actual duck.State, msgAndArgs ...any) {
	t.Helper()

	if unexpected == nil || actual == nil {
		assert.False(t, unexpected == nil && actual == nil, msgAndArgs...)
		return
	}

	assert.NotEqual(
		t,
		reflect.ValueOf(unexpected).Pointer(),
		reflect.ValueOf(actual).Pointer(),
		msgAndArgs...,
	)
}
