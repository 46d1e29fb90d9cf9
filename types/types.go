package types

import (
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrAuth indicates the platform rejected our access context. The current
	// relay instance cannot continue; a fresh AuthContext is required.
	ErrAuth = errors.New("access context rejected by platform")

	// ErrStream indicates the subscription stream itself died. Recoverable
	// via re-subscribe with a fresh AuthContext.
	ErrStream = errors.New("subscription stream terminated")

	// ErrDecode indicates a single event could not be decoded. Non-fatal;
	// the event is skipped.
	ErrDecode = errors.New("unable to decode event")

	// ErrPublish indicates a single publish attempt failed. Terminal for
	// that attempt only; no automatic retry.
	ErrPublish = errors.New("publish attempt failed")
)

// ChangeType values as they appear in a CDC ChangeEventHeader
const (
	ChangeTypeCreate   = "CREATE"
	ChangeTypeUpdate   = "UPDATE"
	ChangeTypeDelete   = "DELETE"
	ChangeTypeUndelete = "UNDELETE"
)

// AuthContext is the authenticated session handed to us by the OAuth
// collaborator. Immutable once obtained; never exposed to clients.
type AuthContext struct {
	AccessToken    string
	InstanceURL    string
	OrganizationID string
	Username       string
}

// Identity describes the Salesforce user behind an AuthContext
type Identity struct {
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id"`
	Username       string `json:"preferred_username"`
	DisplayName    string `json:"name"`
}

// ReplayPreference determines where a new subscription resumes reading
// the upstream event log.
type ReplayPreference struct {
	Preset   ReplayPreset
	ReplayID []byte // only used with ReplayCustom
}

type ReplayPreset int

const (
	ReplayLatest ReplayPreset = iota
	ReplayEarliest
	ReplayCustom
)

// ChangeEvent is one decoded CDC event. Constructed once by the streaming
// client, consumed once by the relay, never mutated.
type ChangeEvent struct {
	ChangeType string
	RecordIDs  []string
	ReplayID   []byte

	// Fields holds the decoded Avro payload minus the header. Optional
	// fields appear either as a union map ({"string": v}) or nil.
	Fields map[string]interface{}

	ReceivedAt time.Time // UTC
}

// StringField unwraps an optional-tagged string field from the event
// payload. Returns false if the field is absent or null.
func (e *ChangeEvent) StringField(name string) (string, bool) {
	raw, ok := e.Fields[name]
	if !ok || raw == nil {
		return "", false
	}

	// goavro decodes the ["null","string"] union as map[string]interface{}
	if union, ok := raw.(map[string]interface{}); ok {
		if s, ok := union["string"].(string); ok {
			return s, true
		}
		return "", false
	}

	if s, ok := raw.(string); ok {
		return s, true
	}

	return "", false
}

// RelayMessage is the wire format exchanged with client connections, in
// both directions.
type RelayMessage struct {
	Kind string                 `json:"kind"`
	Data map[string]interface{} `json:"data"`

	// Raw is the original frame as received from a client connection.
	// Unset on the broadcast path.
	Raw []byte `json:"-"`

	// ConnectionID and UserID identify the submitting connection on the
	// inbound path. Unset on the broadcast path.
	ConnectionID string `json:"-"`
	UserID       string `json:"-"`
}
