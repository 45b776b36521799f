package models

import "time"

type Application struct {
	BaseModel

	UserID uint `gorm:"not null;index" json:"userId"`
	// Company is the legacy free-text name; CompanyID links the structured row.
	Company     string     `json:"company,omitempty"`
	CompanyID   *uint      `gorm:"index" json:"companyId,omitempty"`
	Position    string     `gorm:"not null" json:"position"`
	Location    string     `json:"location,omitempty"`
	Salary      string     `json:"salary,omitempty"`
	JobURL      string     `json:"jobUrl,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      string     `gorm:"not null;default:APPLIED" json:"status"`
	AppliedDate *time.Time `json:"appliedDate,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	ContactID   *uint      `gorm:"index" json:"contactId,omitempty"`

	// Relationships
	CompanyRef *Company    `gorm:"foreignKey:CompanyID" json:"companyRef,omitempty"`
	Contact    *Contact    `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Interviews []Interview `gorm:"foreignKey:ApplicationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"interviews,omitempty"`
}
