package messaging

import (
	"encoding/json"
	"fmt"
)

// Envelope is the wire frame exchanged with clients. Server-pushed events
// carry Event+Data; replies to client requests carry Ack+Data. A missing Ack
// on an inbound frame means the client wants no acknowledgment.
type Envelope struct {
	Event string          `json:"event,omitempty"`
	Ack   *uint64         `json:"ack,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// EncodeEvent marshals a server-pushed event frame.
func EncodeEvent(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s payload: %w", event, err)
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}

// EncodeAck marshals a reply frame for the given acknowledgment id.
func EncodeAck(ack uint64, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling ack payload: %w", err)
	}
	return json.Marshal(Envelope{Ack: &ack, Data: data})
}
