package ws

import (
	"encoding/json"
	"fmt"
)

// Kind identifies the message type of an envelope.
type Kind string

// Inbound envelope kinds. ERROR is outbound-only.
const (
	KindOpen       Kind = "OPEN"
	KindUpload     Kind = "UPLOAD"
	KindPassChange Kind = "PASSCHANGE"
	KindDelete     Kind = "DELETE"
	KindCheck      Kind = "CHECK"
	KindError      Kind = "ERROR"
)

// Envelope is the unit exchanged over the connection in both directions:
// a kind tag plus a kind-specific payload.
type Envelope struct {
	Type Kind            `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Inbound payloads, one per kind.

type openData struct {
	UserName  string `json:"userName"`
	DateToken string `json:"dateToken"`
}

type uploadData struct {
	UserName  string `json:"userName"`
	DateToken string `json:"dateToken"`
	Item      string `json:"item"`
	Category  string `json:"category"`
	Dollar    string `json:"dollar"`
}

type passChangeData struct {
	UserName    string `json:"userName"`
	NewPassword string `json:"newPassword"`
}

type deleteData struct {
	ItemIdentifier string `json:"itemIdentifier"`
}

type checkData struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// Outbound payloads.

// ItemView is the wire representation of one line item.
type ItemView struct {
	Item     string `json:"item"`
	Category string `json:"category"`
	Dollar   string `json:"dollar"`
	Key      string `json:"key"`
}

type openReply struct {
	Items []ItemView `json:"items"`
}

type uploadEvent struct {
	UserName string `json:"userName"`
	Item     string `json:"item"`
	Category string `json:"category"`
	Dollar   string `json:"dollar"`
	Key      string `json:"key"`
	RoomKey  string `json:"roomKey"`
}

type passChangeReply struct {
	Change bool `json:"change"`
}

type checkReply struct {
	Login bool `json:"login"`
}

type errorReply struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes carried in ERROR envelopes.
const (
	codeMalformedEnvelope  = "malformed_envelope"
	codeUnknownKind        = "unknown_kind"
	codeAccountNotFound    = "account_not_found"
	codeItemNotFound       = "item_not_found"
	codePersistenceFailure = "persistence_failure"
)

// encode marshals an outbound envelope to a wire frame.
func encode(kind Kind, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", kind, err)
	}
	frame, err := json.Marshal(Envelope{Type: kind, Data: data})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s envelope: %w", kind, err)
	}
	return frame, nil
}
