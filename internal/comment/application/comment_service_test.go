package application

import (
	"context"
	"testing"

	commentDomain "github.com/davicafu/hexasocial/internal/comment/domain"
	"github.com/davicafu/hexasocial/shared/platform/query"
	"github.com/davicafu/hexasocial/tests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService() (*CommentService, *mocks.InMemoryCommentRepo) {
	repo := mocks.NewInMemoryCommentRepo()
	posts := mocks.PostSet{1: true, 2: true}
	return NewCommentService(repo, posts, query.DefaultOptions, zap.NewNop()), repo
}

func TestCreateComment_Success(t *testing.T) {
	// Arrange
	service, repo := newService()

	// Act
	c, err := service.CreateComment(context.Background(), 1, 9, "genial")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
	require.Len(t, repo.Outbox, 1)
	assert.Equal(t, commentDomain.CommentCreated, repo.Outbox[0].EventType)
	assert.Equal(t, "1", repo.Outbox[0].AggregateID)
}

func TestCreateComment_PostMissing(t *testing.T) {
	service, repo := newService()

	_, err := service.CreateComment(context.Background(), 77, 9, "genial")

	assert.ErrorIs(t, err, commentDomain.ErrPostNotFound)
	assert.Empty(t, repo.Outbox)
}

func TestGetComment_WrongPostIsNotFound(t *testing.T) {
	service, _ := newService()
	c, _ := service.CreateComment(context.Background(), 1, 9, "genial")

	_, err := service.GetComment(context.Background(), 2, c.ID)

	assert.ErrorIs(t, err, commentDomain.ErrCommentNotFound)
}

func TestUpdateAndDeleteComment(t *testing.T) {
	// Arrange
	service, repo := newService()
	c, _ := service.CreateComment(context.Background(), 1, 9, "genial")

	// Act
	updated, err := service.UpdateComment(context.Background(), 1, c.ID, "mejor")
	require.NoError(t, err)
	err = service.DeleteComment(context.Background(), 1, c.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "mejor", updated.Comment)
	require.Len(t, repo.Outbox, 3)
	assert.Equal(t, commentDomain.CommentUpdated, repo.Outbox[1].EventType)
	assert.Equal(t, commentDomain.CommentDeleted, repo.Outbox[2].EventType)

	_, err = service.GetComment(context.Background(), 1, c.ID)
	assert.ErrorIs(t, err, commentDomain.ErrCommentNotFound)
}

func TestListComments_ScopedToPost(t *testing.T) {
	// Arrange
	service, _ := newService()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := service.CreateComment(ctx, 1, 9, "en post 1")
		require.NoError(t, err)
	}
	_, err := service.CreateComment(ctx, 2, 9, "en post 2")
	require.NoError(t, err)

	// Act
	page, err := service.ListComments(ctx, 1, map[string]string{"order__id": "DESC", "take": "2"}, "/posts/1/comments")

	// Assert
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, int64(3), page.Data[0].ID)
	assert.Equal(t, int64(2), page.Data[1].ID)
	require.NotNil(t, page.Next)
	assert.Equal(t, "/posts/1/comments?order__id=DESC&take=2&where__id__less_than=2", *page.Next)

	page, err = service.ListComments(ctx, 1, map[string]string{"order__id": "DESC", "take": "2", "where__id__less_than": "2"}, "/posts/1/comments")
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, int64(1), page.Data[0].ID)
	assert.Nil(t, page.Next)

	total, err := service.ListComments(ctx, 2, map[string]string{"page": "1"}, "/posts/2/comments")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total.Count)
}

func TestListComments_Errors(t *testing.T) {
	service, _ := newService()

	_, err := service.ListComments(context.Background(), 1, map[string]string{"where__postId__nope": "1"}, "/x")
	assert.True(t, query.IsInputError(err))

	_, err = service.ListComments(context.Background(), 99, map[string]string{}, "/x")
	assert.ErrorIs(t, err, commentDomain.ErrPostNotFound)
}
