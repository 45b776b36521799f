package models

import "time"

type Contact struct {
	BaseModel

	UserID uint   `gorm:"not null;index" json:"userId"`
	Name   string `gorm:"not null" json:"name"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	// Company is the legacy free-text name kept for rows that predate the
	// structured Company entity; CompanyID is the real reference.
	Company     string      `json:"company,omitempty"`
	CompanyID   *uint       `gorm:"index" json:"companyId,omitempty"`
	Position    string      `json:"position,omitempty"`
	LinkedinURL string      `json:"linkedinUrl,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	Type        ContactType `gorm:"not null;default:OTHER" json:"type"`
	LastContact *time.Time  `json:"lastContact,omitempty"`
	NextContact *time.Time  `json:"nextContact,omitempty"`

	// Relationships
	CompanyRef     *Company        `gorm:"foreignKey:CompanyID" json:"companyRef,omitempty"`
	Communications []Communication `gorm:"foreignKey:ContactID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"communications,omitempty"`
	Tasks          []Task          `gorm:"foreignKey:ContactID" json:"-"`
}
