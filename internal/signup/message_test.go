package signup

import (
	"encoding/json"
	"testing"
)

func TestParseMessage(t *testing.T) {
	cases := []struct {
		name string
		in   string
		ok   bool
		want Message
	}{
		{
			name: "finish",
			in:   `{"type":"WA_EMBEDDED_SIGNUP","event":"FINISH","data":{"phone_number_id":"P1","waba_id":"W1"},"version":3}`,
			ok:   true,
			want: Message{Event: EventFinish, Version: "3", PhoneNumberID: "P1", BusinessAccountID: "W1"},
		},
		{
			name: "cancel with step",
			in:   `{"type":"WA_EMBEDDED_SIGNUP","event":"CANCEL","data":{"current_step":"PHONE_NUMBER_SETUP"},"version":"3"}`,
			ok:   true,
			want: Message{Event: EventCancel, Version: "3", CurrentStep: "PHONE_NUMBER_SETUP"},
		},
		{
			name: "error",
			in:   `{"type":"WA_EMBEDDED_SIGNUP","event":"ERROR","data":{"error_message":"boom","current_step":"WABA"}}`,
			ok:   true,
			want: Message{Event: EventError, CurrentStep: "WABA", ErrorMessage: "boom"},
		},
		{name: "other type", in: `{"type":"SOMETHING_ELSE","event":"FINISH"}`},
		{name: "no type", in: `{"event":"FINISH"}`},
		{name: "not json", in: `FB_SDK_READY`},
		{name: "truncated", in: `{"type":"WA_EMBEDDED_SIGNUP"`},
		{name: "array", in: `["WA_EMBEDDED_SIGNUP"]`},
		{name: "empty", in: ``},
	}
	for _, tc := range cases {
		got, ok := ParseMessage(tc.in)
		if ok != tc.ok {
			t.Fatalf("%s: expected ok=%v got %v", tc.name, tc.ok, ok)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %+v got %+v", tc.name, tc.want, got)
		}
	}
}

func TestDecodeMessageAcceptsStructuredPayloads(t *testing.T) {
	structured := map[string]any{
		"type":  MessageType,
		"event": "FINISH",
		"data":  map[string]any{"waba_id": "W9", "phone_number_id": "P9"},
	}
	raw, err := json.Marshal(structured)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	inputs := map[string]any{
		"map":         structured,
		"bytes":       raw,
		"raw message": json.RawMessage(raw),
		"string":      string(raw),
	}
	for name, in := range inputs {
		msg, ok := DecodeMessage(in)
		if !ok {
			t.Fatalf("%s: expected message to decode", name)
		}
		if msg.BusinessAccountID != "W9" || msg.PhoneNumberID != "P9" {
			t.Fatalf("%s: unexpected message %+v", name, msg)
		}
	}
}

func TestDecodeMessageIgnoresUnusablePayloads(t *testing.T) {
	inputs := []any{nil, 42, true, func() {}, map[string]any{"type": "other"}}
	for _, in := range inputs {
		if msg, ok := DecodeMessage(in); ok {
			t.Fatalf("expected %T to be ignored, got %+v", in, msg)
		}
	}
}
