package api

import (
	"bytes"
	"encoding/json"
)

// Envelope is the response shape of the upstream API. The payload arrives
// under one of note, notes, userNotes or data depending on the endpoint; some
// endpoints send the payload bare.
type Envelope struct {
	// Status is a boolean or a string depending on the endpoint.
	Status    json.RawMessage   `json:"status,omitempty"`
	Message   string            `json:"message,omitempty"`
	Error     string            `json:"error,omitempty"`
	Errors    []json.RawMessage `json:"errors,omitempty"`
	Data      json.RawMessage   `json:"data,omitempty"`
	Note      json.RawMessage   `json:"note,omitempty"`
	Notes     json.RawMessage   `json:"notes,omitempty"`
	UserNotes json.RawMessage   `json:"userNotes,omitempty"`
}

// DisplayMessage is message, else error, else the first entry of errors.
func (e Envelope) DisplayMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Error != "" {
		return e.Error
	}
	for _, raw := range e.Errors {
		var s string
		if json.Unmarshal(raw, &s) == nil && s != "" {
			return s
		}
		var fe struct {
			Message string `json:"message"`
			Msg     string `json:"msg"`
		}
		if json.Unmarshal(raw, &fe) == nil {
			if fe.Message != "" {
				return fe.Message
			}
			if fe.Msg != "" {
				return fe.Msg
			}
		}
	}
	return ""
}

// Payload returns the first present of note, notes, userNotes and data, else
// body itself.
func Payload(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return trimmed
	}
	for _, p := range []json.RawMessage{env.Note, env.Notes, env.UserNotes, env.Data} {
		if present(p) {
			return p
		}
	}
	return trimmed
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}
