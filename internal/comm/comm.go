package comm

import "encoding/json"

// Subjects the services talk over.
const (
	SubjectView = "view.service" // viewsvc -> huntsvc progress requests
)

// Message is the envelope for every NATS payload.
type Message struct {
	Type string          `json:"type"` // e.g. "progress"
	Data json.RawMessage `json:"data"`
}

// Message types.
const (
	TypeProgress = "progress"
)

// ProgressRequest asks for a team's progression view on behalf of a caller.
type ProgressRequest struct {
	TeamID string `json:"team_id"`
	UserID string `json:"user_id"`
}

// Reply carries the response back over NATS. Code mirrors the HTTP status
// the gateway should answer with; Data is the JSON body on success.
type Reply struct {
	Code  int             `json:"code"`
	Error string          `json:"error,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}
