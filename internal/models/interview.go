package models

import (
	"time"

	"gorm.io/datatypes"
)

type Interview struct {
	BaseModel

	ApplicationID uint                        `gorm:"not null;index" json:"applicationId"`
	Type          string                      `gorm:"not null" json:"type"`
	ScheduledAt   time.Time                   `gorm:"not null" json:"scheduledAt"`
	Duration      *int                        `json:"duration,omitempty"`
	Location      string                      `json:"location,omitempty"`
	Interviewers  datatypes.JSONSlice[string] `json:"interviewers"`
	Notes         string                      `json:"notes,omitempty"`
	Outcome       string                      `json:"outcome,omitempty"`

	// Relationships
	Application *Application `gorm:"foreignKey:ApplicationID" json:"-"`
}
