package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/hexasocial/shared/events"
)

const (
	PostCreated = sharedEvents.TypePostCreated
	PostUpdated = sharedEvents.TypePostUpdated
	PostDeleted = sharedEvents.TypePostDeleted
)

const PostAggregate = "post"

func NewEventRegistry(topic string) map[string]sharedEvents.EventMetadata {
	return map[string]sharedEvents.EventMetadata{
		PostCreated: {Type: reflect.TypeOf(sharedEvents.PostCreated{}), Topic: topic},
		PostUpdated: {Type: reflect.TypeOf(sharedEvents.PostUpdated{}), Topic: topic},
		PostDeleted: {Type: reflect.TypeOf(sharedEvents.PostDeleted{}), Topic: topic},
	}
}
