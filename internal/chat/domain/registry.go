package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/hexasocial/shared/events"
)

const (
	ChatCreated = sharedEvents.TypeChatCreated
	MessageSent = sharedEvents.TypeMessageSent
)

const ChatAggregate = "chat"

func NewEventRegistry(topic string) map[string]sharedEvents.EventMetadata {
	return map[string]sharedEvents.EventMetadata{
		ChatCreated: {Type: reflect.TypeOf(sharedEvents.ChatCreated{}), Topic: topic},
		MessageSent: {Type: reflect.TypeOf(sharedEvents.MessageSent{}), Topic: topic},
	}
}
