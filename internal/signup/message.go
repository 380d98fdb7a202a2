// Package signup drives the WhatsApp embedded signup popup through FB.login
// and reconciles its callback with the session messages posted by the popup.
package signup

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// MessageType is the discriminator carried by embedded signup session messages.
const MessageType = "WA_EMBEDDED_SIGNUP"

// Event is the sub-event of a session message.
type Event string

const (
	EventFinish Event = "FINISH"
	EventCancel Event = "CANCEL"
	EventError  Event = "ERROR"
)

// Message is a decoded embedded signup session message.
type Message struct {
	Event   Event
	Version string

	PhoneNumberID     string
	BusinessAccountID string
	CurrentStep       string
	ErrorMessage      string
}

// ParseMessage decodes a JSON message payload. It reports false for invalid
// JSON and for payloads that are not embedded signup messages.
func ParseMessage(raw string) (Message, bool) {
	if !gjson.Valid(raw) {
		return Message{}, false
	}
	doc := gjson.Parse(raw)
	if !doc.IsObject() || doc.Get("type").String() != MessageType {
		return Message{}, false
	}
	data := doc.Get("data")
	return Message{
		Event:             Event(doc.Get("event").String()),
		Version:           doc.Get("version").String(),
		PhoneNumberID:     data.Get("phone_number_id").String(),
		BusinessAccountID: data.Get("waba_id").String(),
		CurrentStep:       data.Get("current_step").String(),
		ErrorMessage:      data.Get("error_message").String(),
	}, true
}

// DecodeMessage accepts a message event payload as delivered by the channel:
// a JSON string, raw bytes, or an already structured value.
func DecodeMessage(payload any) (Message, bool) {
	switch v := payload.(type) {
	case nil:
		return Message{}, false
	case string:
		return ParseMessage(v)
	case []byte:
		return ParseMessage(string(v))
	case json.RawMessage:
		return ParseMessage(string(v))
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return Message{}, false
		}
		return ParseMessage(string(data))
	}
}
