// Package agent implements the vault's background daemon: it holds
// the derived master key and a loaded secrets store in memory and
// serves read-only requests over a Unix-domain socket for a bounded
// session, per spec.md §4.4.
package agent

import "encoding/json"

// Action discriminates a Request's intent.
type Action string

const (
	ActionPing       Action = "ping"
	ActionList       Action = "list"
	ActionGetSecrets Action = "get_secrets"
	ActionGetSecret  Action = "get_secret"
	ActionShutdown   Action = "shutdown"
)

// Request is the single-line JSON object a client sends to the agent.
type Request struct {
	Action Action `json:"action"`
	Name   string `json:"name,omitempty"`
}

// Response is the single-line JSON object the agent replies with.
// Status is "ok" or "error"; exactly one of Data/Message is set.
type Response struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// PingData is the ok-response payload for ActionPing.
type PingData struct {
	UptimeSecs       float64 `json:"uptime_secs"`
	TTLRemainingSecs float64 `json:"ttl_remaining_secs"`
}

// GetSecretData is the ok-response payload for ActionGetSecret.
type GetSecretData struct {
	Value string `json:"value"`
}

// ShutdownData is the ok-response payload for ActionShutdown.
type ShutdownData struct {
	Message string `json:"message"`
}

func okResponse(data any) (Response, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Response{}, err
	}
	return Response{Status: "ok", Data: raw}, nil
}

func errResponse(message string) Response {
	return Response{Status: "error", Message: message}
}
