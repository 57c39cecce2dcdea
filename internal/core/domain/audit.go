package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry records a single state-changing action. Entries are append-only:
// never updated, never deleted. EntryHash chains each entry to its predecessor
// (HMAC-SHA256 over the previous hash and the canonical entry) so tampering
// with history is detectable.
type AuditEntry struct {
	ID         uuid.UUID `json:"id"`
	ActorID    uuid.UUID `json:"actor_id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   uuid.UUID `json:"entity_id"`
	OldValue   *string   `json:"old_value,omitempty"` // JSON snapshot
	NewValue   *string   `json:"new_value,omitempty"` // JSON snapshot
	EntryHash  string    `json:"entry_hash"`
	CreatedAt  time.Time `json:"created_at"`
}
