package domain

import "time"

// AuditEventType classifies entries in the audit trail.
type AuditEventType string

const (
	AuditLoginSucceeded AuditEventType = "login_succeeded"
	AuditLoginFailed    AuditEventType = "login_failed"
	AuditAccessDenied   AuditEventType = "access_denied"
	AuditEntityCreated  AuditEventType = "entity_created"
	AuditEntityUpdated  AuditEventType = "entity_updated"
	AuditEntityDeleted  AuditEventType = "entity_deleted"
)

// AuditEvent records one security-relevant occurrence. Actor is the username
// the event is attributed to; it also keys the dispatcher shard, so events
// for the same actor are persisted in order.
type AuditEvent struct {
	Type      AuditEventType `json:"type" bson:"type"`
	Actor     string         `json:"actor" bson:"actor"`
	ActorID   int64          `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	Action    string         `json:"action,omitempty" bson:"action,omitempty"`
	Target    string         `json:"target,omitempty" bson:"target,omitempty"`
	Detail    string         `json:"detail,omitempty" bson:"detail,omitempty"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
}
