package gateway

import (
	"encoding/json"
	"log"
)

// Wire event names. Inbound events are accepted from clients, outbound
// events are pushed by the gateway.
const (
	// inbound
	EventMessage = "message"
	EventFile    = "file"

	// outbound
	EventMessageUser = "message_user"
	EventFileUser    = "file_user"
	EventUserOnline  = "user_online"
	EventError       = "error"
)

// Envelope is the frame exchanged over the websocket: an event name and
// its JSON payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// File is an inbound file upload. Data is base64 on the wire.
type File struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

// MessagePayload is the inbound "message" event. SenderID is overwritten
// with the session's authenticated user before dispatch.
type MessagePayload struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Message    string `json:"message"`
}

// FilePayload is the inbound "file" event.
type FilePayload struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	File       File   `json:"file"`
}

// MessageDelivered is the outbound "message_user" event.
type MessageDelivered struct {
	Message    string `json:"message"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
}

// FileDelivered is the outbound "file_user" event.
type FileDelivered struct {
	FileName   string `json:"fileName"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
}

// ErrorPayload is the outbound "error" event, sent only to the
// connection whose operation failed.
type ErrorPayload struct {
	Message string `json:"message"`
}

// NewEnvelope wraps a payload into a frame. The payload types above
// cannot fail to marshal; an error here is logged and yields an empty
// data field rather than dropping the event name.
func NewEnvelope(event string, payload interface{}) Envelope {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ERROR: Failed to encode %s payload: %v", event, err)
	}
	return Envelope{Event: event, Data: data}
}
