package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeIsValid(t *testing.T) {
	for _, typ := range AllTypes() {
		assert.True(t, typ.IsValid(), string(typ))
	}
	assert.False(t, Type("bogus_type").IsValid())
	assert.False(t, Type("").IsValid())
}

func TestNewState(t *testing.T) {
	state := NewState()
	require.Len(t, state, len(AllTypes()))
	for _, typ := range AllTypes() {
		value, present := state[typ]
		assert.True(t, present, string(typ))
		assert.Nil(t, value)
	}
}

func TestStateApply(t *testing.T) {
	state := NewState()

	state.Apply(Assertion{Type: TypeEmailNotifications, Enabled: true})
	require.NotNil(t, state[TypeEmailNotifications])
	assert.True(t, *state[TypeEmailNotifications])

	// Last writer wins even when the value flips.
	state.Apply(Assertion{Type: TypeEmailNotifications, Enabled: false})
	require.NotNil(t, state[TypeEmailNotifications])
	assert.False(t, *state[TypeEmailNotifications])

	assert.Nil(t, state[TypeSMSNotifications])
}
