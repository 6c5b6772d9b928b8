package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChat_DedupesAndSorts(t *testing.T) {
	c, err := NewChat([]int64{5, 2, 5, 9})

	require.NoError(t, err)
	assert.Equal(t, []int64{2, 5, 9}, c.UserIDs)
	assert.True(t, c.HasMember(9))
	assert.False(t, c.HasMember(1))
}

func TestNewChat_NeedsTwoUsers(t *testing.T) {
	_, err := NewChat([]int64{3, 3})
	assert.ErrorIs(t, err, ErrInvalidChat)

	_, err = NewChat([]int64{3, -1})
	assert.ErrorIs(t, err, ErrInvalidChat)
}

func TestNewMessage(t *testing.T) {
	_, err := NewMessage(1, 2, " ")
	assert.ErrorIs(t, err, ErrInvalidMessage)

	m, err := NewMessage(1, 2, "hola")
	require.NoError(t, err)
	v, ok := m.FieldValue("chatId")
	assert.True(t, ok)
	assert.Equal(t, int64(1), v)
}
