package models

import "time"

// Communication is one logged interaction with a contact. A future Date
// denotes a scheduled meeting rather than a past conversation.
type Communication struct {
	BaseModel

	ContactID uint              `gorm:"not null;index" json:"contactId"`
	Type      CommunicationType `gorm:"not null" json:"type"`
	Subject   string            `json:"subject,omitempty"`
	Content   string            `json:"content,omitempty"`
	Date      time.Time         `gorm:"not null;index" json:"date"`
	Duration  *int              `json:"duration,omitempty"`
	Location  string            `json:"location,omitempty"`

	// Relationships
	Contact         *Contact         `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	FollowUpActions []FollowUpAction `gorm:"foreignKey:CommunicationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"followUpActions,omitempty"`
}
