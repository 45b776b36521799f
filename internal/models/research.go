package models

import "gorm.io/datatypes"

// Research targets a contact, application or company through a tagged
// (TargetKind, TargetID) pair instead of a real foreign key. The pair is
// validated against the owning user's rows when set.
type Research struct {
	BaseModel

	UserID     uint                        `gorm:"not null;index" json:"userId"`
	Title      string                      `gorm:"not null" json:"title"`
	Type       ResearchType                `gorm:"not null;default:GENERAL" json:"type"`
	TargetKind ResearchTargetKind          `gorm:"index:idx_research_target" json:"targetType,omitempty"`
	TargetID   *uint                       `gorm:"index:idx_research_target" json:"targetId,omitempty"`
	Summary    string                      `json:"summary,omitempty"`
	Findings   datatypes.JSONSlice[string] `json:"findings"`
	Notes      string                      `json:"notes,omitempty"`
	Importance ResearchImportance          `gorm:"not null;default:MEDIUM" json:"importance"`
	Tags       datatypes.JSONSlice[string] `json:"tags"`

	// Relationships
	Links []ResearchLink `gorm:"foreignKey:ResearchID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"links,omitempty"`
}

type ResearchLink struct {
	BaseModel

	ResearchID  uint             `gorm:"not null;index" json:"researchId"`
	Title       string           `gorm:"not null" json:"title"`
	URL         string           `gorm:"not null" json:"url"`
	Description string           `json:"description,omitempty"`
	Type        ResearchLinkType `gorm:"not null;default:OTHER" json:"type"`
}
