package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/hexasocial/shared/events"
)

const (
	CommentCreated = sharedEvents.TypeCommentCreated
	CommentUpdated = sharedEvents.TypeCommentUpdated
	CommentDeleted = sharedEvents.TypeCommentDeleted
)

const CommentAggregate = "comment"

func NewEventRegistry(topic string) map[string]sharedEvents.EventMetadata {
	return map[string]sharedEvents.EventMetadata{
		CommentCreated: {Type: reflect.TypeOf(sharedEvents.CommentCreated{}), Topic: topic},
		CommentUpdated: {Type: reflect.TypeOf(sharedEvents.CommentUpdated{}), Topic: topic},
		CommentDeleted: {Type: reflect.TypeOf(sharedEvents.CommentDeleted{}), Topic: topic},
	}
}
