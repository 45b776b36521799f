package models

import "time"

// FollowUpAction is a to-do attached to a communication, completable
// independently of its parent.
type FollowUpAction struct {
	BaseModel

	CommunicationID uint       `gorm:"not null;index" json:"communicationId"`
	Description     string     `gorm:"not null" json:"description"`
	DueDate         *time.Time `json:"dueDate,omitempty"`
	Completed       bool       `gorm:"not null;default:false" json:"completed"`
	Priority        Priority   `gorm:"not null;default:MEDIUM" json:"priority"`

	// Relationships
	Communication *Communication `gorm:"foreignKey:CommunicationID" json:"communication,omitempty"`
}
