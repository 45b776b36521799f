package models

import "time"

type Task struct {
	BaseModel

	UserID        uint         `gorm:"not null;index" json:"userId"`
	Title         string       `gorm:"not null" json:"title"`
	Description   string       `json:"description,omitempty"`
	DueDate       *time.Time   `json:"dueDate,omitempty"`
	Completed     bool         `gorm:"not null;default:false" json:"completed"`
	Priority      Priority     `gorm:"not null;default:MEDIUM" json:"priority"`
	Category      TaskCategory `gorm:"not null;default:OTHER" json:"category"`
	ApplicationID *uint        `gorm:"index" json:"applicationId,omitempty"`
	ContactID     *uint        `gorm:"index" json:"contactId,omitempty"`

	// Relationships
	Application *Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
	Contact     *Contact     `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
}
