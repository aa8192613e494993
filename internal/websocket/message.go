package websocket

import "encoding/json"

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewErrorMessage encodes an error message for a client. Falls back to a
// minimal static payload if encoding fails.
func NewErrorMessage(msg string) []byte {
	b, err := json.Marshal(Message{Action: "error", Payload: msg})
	if err != nil {
		return []byte(`{"action":"error"}`)
	}
	return b
}
