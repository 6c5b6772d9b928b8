package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPost_Valid(t *testing.T) {
	// Act
	p, err := NewPost(1, "  Hola  ", "contenido")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Hola", p.Title)
	assert.Zero(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestNewPost_Invalid(t *testing.T) {
	_, err := NewPost(0, "t", "c")
	assert.ErrorIs(t, err, ErrInvalidPost)

	_, err = NewPost(1, " ", "c")
	assert.ErrorIs(t, err, ErrInvalidPost)

	_, err = NewPost(1, "t", "")
	assert.ErrorIs(t, err, ErrInvalidPost)
}

func TestPost_Update(t *testing.T) {
	// Arrange
	p := &Post{ID: 1, Title: "a", Content: "b", UpdatedAt: time.Now().UTC().Add(-time.Hour)}
	before := p.UpdatedAt
	title := "nuevo"

	// Act
	err := p.Update(&title, nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "nuevo", p.Title)
	assert.Equal(t, "b", p.Content)
	assert.True(t, p.UpdatedAt.After(before))
}

func TestPost_UpdateRejectsEmptyTitle(t *testing.T) {
	p := &Post{Title: "a"}
	empty := ""

	assert.ErrorIs(t, p.Update(&empty, nil), ErrInvalidPost)
	assert.Equal(t, "a", p.Title)
}

func TestPost_FieldValueCoversFieldTable(t *testing.T) {
	p := &Post{ID: 3, AuthorID: 9}

	for name := range PostFields.Columns() {
		_, ok := p.FieldValue(name)
		assert.True(t, ok, name)
	}
	_, ok := p.FieldValue("password")
	assert.False(t, ok)
}
