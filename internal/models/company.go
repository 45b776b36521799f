package models

type Company struct {
	BaseModel

	UserID      uint          `gorm:"not null;index;uniqueIndex:idx_user_company_name" json:"userId"`
	Name        string        `gorm:"not null;uniqueIndex:idx_user_company_name" json:"name"`
	Website     string        `json:"website,omitempty"`
	Industry    string        `json:"industry,omitempty"`
	Size        CompanySize   `gorm:"default:UNKNOWN" json:"size"`
	Location    string        `json:"location,omitempty"`
	Description string        `json:"description,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	Founded     *int          `json:"founded,omitempty"`
	Status      CompanyStatus `gorm:"not null;default:RESEARCH" json:"status"`

	// Relationships
	Contacts     []Contact     `gorm:"foreignKey:CompanyID" json:"contacts,omitempty"`
	Applications []Application `gorm:"foreignKey:CompanyID" json:"applications,omitempty"`
}
