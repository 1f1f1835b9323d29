package model

import "time"

const (
	AuditEntityUser   = "user"
	AuditEntityCourse = "course"

	AuditActionCreated = "created"
	AuditActionUpdated = "updated"
	AuditActionDeleted = "deleted"
)

// AuditEvent records a successful mutation. Events are published to the
// audit queue by the services and persisted by the audit worker.
type AuditEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Entity     string    `gorm:"size:32;not null;index" json:"entity"`
	EntityID   uint      `gorm:"not null" json:"entityId"`
	Action     string    `gorm:"size:32;not null" json:"action"`
	ActorID    uint      `gorm:"not null" json:"actorId"`
	OccurredAt time.Time `json:"occurredAt"`
	CreatedAt  time.Time `json:"created_at"`
}
