package models

import "time"

// Activity is one append-only audit entry for an admin-initiated action (PostgreSQL)
type Activity struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	AdminID     uint      `json:"admin_id" gorm:"index"`
	Action      string    `json:"action" gorm:"size:30"` // approve, decline, complete, fail
	EntityKind  string    `json:"entity_kind" gorm:"size:30"`
	EntityID    string    `json:"entity_id"`
	SubjectName string    `json:"subject_name"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
