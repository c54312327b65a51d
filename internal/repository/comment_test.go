package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CreateAndListByPost(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ann := seedUser(t, db, "Ann", "ann@x.com")
	bob := seedUser(t, db, "Bob", "bob@x.com")
	post := seedPost(t, db, ann.ID, "Hello")
	other := seedPost(t, db, ann.ID, "Other")

	seedComment(t, db, ann.ID, post.ID, "first")
	seedComment(t, db, bob.ID, post.ID, "second")
	seedComment(t, db, bob.ID, other.ID, "elsewhere")

	comments, err := NewCommentRepository(db).ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "second", comments[1].Text)
	assert.Equal(t, "Ann", comments[0].Author.Name)
	assert.Equal(t, "Bob", comments[1].Author.Name)
}

func TestCommentRepository_ListByPost_EmptyPost(t *testing.T) {
	db := newTestDB(t)
	ann := seedUser(t, db, "Ann", "ann@x.com")
	post := seedPost(t, db, ann.ID, "Quiet")

	comments, err := NewCommentRepository(db).ListByPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := NewCommentRepository(db).GetByID(context.Background(), 123)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}
