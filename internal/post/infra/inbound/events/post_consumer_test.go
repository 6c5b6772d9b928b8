package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	postDomain "github.com/davicafu/hexasocial/internal/post/domain"
	sharedEvents "github.com/davicafu/hexasocial/shared/events"
)

type mockPostService struct {
	mock.Mock
}

func (m *mockPostService) ApplyCommentDelta(ctx context.Context, postID, delta int64) error {
	return m.Called(ctx, postID, delta).Error(0)
}

func (m *mockPostService) RecordActivity(ctx context.Context, activities ...postDomain.Activity) error {
	return m.Called(ctx, activities).Error(0)
}

func message(t *testing.T, eventType string, data interface{}) []byte {
	t.Helper()
	raw, _ := json.Marshal(data)
	payload, _ := json.Marshal(sharedEvents.IntegrationEvent{
		Type:      eventType,
		Timestamp: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Data:      raw,
	})
	return payload
}

func TestHandleMessage_CommentCreated(t *testing.T) {
	// Arrange
	svc := new(mockPostService)
	svc.On("ApplyCommentDelta", mock.Anything, int64(3), int64(1)).Return(nil)
	svc.On("RecordActivity", mock.Anything, mock.MatchedBy(func(a []postDomain.Activity) bool {
		return len(a) == 1 && a[0].EventType == sharedEvents.TypeCommentCreated && a[0].PostID == 3 && a[0].ActorID == 8
	})).Return(nil)
	consumer := NewPostConsumer(svc, zap.NewNop())

	// Act
	consumer.HandleMessage(context.Background(), "10",
		message(t, sharedEvents.TypeCommentCreated, sharedEvents.CommentCreated{ID: 10, PostID: 3, AuthorID: 8}))

	// Assert
	svc.AssertExpectations(t)
}

func TestHandleMessage_CommentCreatedSkipsActivityWhenCountFails(t *testing.T) {
	svc := new(mockPostService)
	svc.On("ApplyCommentDelta", mock.Anything, int64(3), int64(1)).Return(postDomain.ErrPostNotFound)
	consumer := NewPostConsumer(svc, zap.NewNop())

	consumer.HandleMessage(context.Background(), "10",
		message(t, sharedEvents.TypeCommentCreated, sharedEvents.CommentCreated{ID: 10, PostID: 3}))

	svc.AssertExpectations(t)
	svc.AssertNotCalled(t, "RecordActivity", mock.Anything, mock.Anything)
}

func TestHandleMessage_CommentDeleted(t *testing.T) {
	svc := new(mockPostService)
	svc.On("ApplyCommentDelta", mock.Anything, int64(4), int64(-1)).Return(nil)
	consumer := NewPostConsumer(svc, zap.NewNop())

	consumer.HandleMessage(context.Background(), "",
		message(t, sharedEvents.TypeCommentDeleted, sharedEvents.CommentDeleted{ID: 1, PostID: 4}))

	svc.AssertExpectations(t)
}

func TestHandleMessage_PostCreatedRecordsActivity(t *testing.T) {
	svc := new(mockPostService)
	svc.On("RecordActivity", mock.Anything, mock.MatchedBy(func(a []postDomain.Activity) bool {
		return a[0].PostID == 5 && a[0].ActorID == 2 && a[0].EventTime.Equal(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	})).Return(errors.New("clickhouse down"))
	consumer := NewPostConsumer(svc, zap.NewNop())

	consumer.HandleMessage(context.Background(), "5",
		message(t, sharedEvents.TypePostCreated, sharedEvents.PostCreated{ID: 5, AuthorID: 2}))

	svc.AssertExpectations(t)
}

func TestHandleMessage_IgnoresUnknownAndInvalid(t *testing.T) {
	svc := new(mockPostService)
	consumer := NewPostConsumer(svc, zap.NewNop())

	consumer.HandleMessage(context.Background(), "", message(t, sharedEvents.TypeMessageSent, map[string]int{"id": 1}))
	consumer.HandleMessage(context.Background(), "", []byte("not json"))
	consumer.HandleMessage(context.Background(), "", message(t, sharedEvents.TypeCommentDeleted, "oops"))

	svc.AssertNotCalled(t, "ApplyCommentDelta", mock.Anything, mock.Anything, mock.Anything)
	svc.AssertNotCalled(t, "RecordActivity", mock.Anything, mock.Anything)
}
