package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/hexasocial/shared/events"
)

// Las constantes de los tipos de evento se definen aquí, como valores string.
const (
	UserCreated     = sharedEvents.TypeUserCreated
	FollowRequested = sharedEvents.TypeFollowRequested
	FollowConfirmed = sharedEvents.TypeFollowConfirmed
	FollowDeleted   = sharedEvents.TypeFollowDeleted
)

const (
	UserAggregate   = "user"
	FollowAggregate = "follow"
)

func NewEventRegistry(topic string) map[string]sharedEvents.EventMetadata {
	return map[string]sharedEvents.EventMetadata{
		UserCreated:     {Type: reflect.TypeOf(sharedEvents.UserCreated{}), Topic: topic},
		FollowRequested: {Type: reflect.TypeOf(sharedEvents.FollowRequested{}), Topic: topic},
		FollowConfirmed: {Type: reflect.TypeOf(sharedEvents.FollowConfirmed{}), Topic: topic},
		FollowDeleted:   {Type: reflect.TypeOf(sharedEvents.FollowDeleted{}), Topic: topic},
	}
}
