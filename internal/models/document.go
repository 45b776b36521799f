package models

type Document struct {
	BaseModel

	UserID        uint   `gorm:"not null;index" json:"userId"`
	Type          string `gorm:"not null" json:"type"`
	Name          string `gorm:"not null" json:"name"`
	URL           string `gorm:"not null" json:"url"`
	Version       int    `gorm:"not null;default:1" json:"version"`
	ApplicationID *uint  `gorm:"index" json:"applicationId,omitempty"`

	// Relationships
	Application *Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
}
