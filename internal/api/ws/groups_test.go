package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupNames(t *testing.T) {
	assert.Equal(t, "board_42", BoardGroup(42))
	assert.Equal(t, "user_7_latest_messages", UserInboxGroup(7))

	// Names are pure functions of the id, so any process computes the
	// same group for the same entity.
	assert.Equal(t, BoardGroup(42), BoardGroup(42))
	assert.NotEqual(t, BoardGroup(42), BoardGroup(43))
}
