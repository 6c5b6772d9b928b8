package events

import (
	"encoding/json"
	"reflect"
	"time"
)

// Base de todos los eventos de integración
type IntegrationEvent struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Key       string          `json:"key"`  // id del agregado, usado como clave de partición
	Data      json.RawMessage `json:"data"` // contenido específico del evento
}

// PartitionKey implementa bus.Keyer.
func (e IntegrationEvent) PartitionKey() string {
	return e.Key
}

// EventMetadata asocia un tipo de evento con su payload y su topic.
type EventMetadata struct {
	Type  reflect.Type
	Topic string
}
