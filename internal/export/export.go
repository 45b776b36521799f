// Package export assembles the downloadable snapshot of one user's data.
package export

import (
	"time"

	"gorm.io/gorm"

	"github.com/jobtrail-dev/jobtrail/internal/models"
)

const SchemaVersion = "1.0"

type Counts struct {
	Companies       int `json:"companies"`
	Contacts        int `json:"contacts"`
	Applications    int `json:"applications"`
	Communications  int `json:"communications"`
	FollowUpActions int `json:"followUpActions"`
	Interviews      int `json:"interviews"`
	Research        int `json:"research"`
	Tasks           int `json:"tasks"`
	Documents       int `json:"documents"`
}

type Metadata struct {
	ExportedAt    time.Time `json:"exportedAt"`
	SchemaVersion string    `json:"schemaVersion"`
	UserID        uint      `json:"userId"`
	UserName      string    `json:"userName"`
	UserEmail     string    `json:"userEmail"`
	TotalRecords  Counts    `json:"totalRecords"`
}

type Profile struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CompanyRecord pairs a company with the research targeting it.
type CompanyRecord struct {
	models.Company
	Research []models.Research `json:"research"`
}

type UserData struct {
	Profile      Profile              `json:"profile"`
	Companies    []CompanyRecord      `json:"companies"`
	Contacts     []models.Contact     `json:"contacts"`
	Applications []models.Application `json:"applications"`
	Tasks        []models.Task        `json:"tasks"`
	Documents    []models.Document    `json:"documents"`
}

// Document is the self-describing snapshot consumed by the import endpoint.
type Document struct {
	ExportMetadata Metadata `json:"exportMetadata"`
	UserData       UserData `json:"userData"`
}

type Engine struct {
	DB *gorm.DB
}

// Build walks the user's full graph and assembles the snapshot. Any
// persistence error aborts the walk; a partial document is never returned.
func (e *Engine) Build(userID uint) (*Document, error) {
	var user models.User

	if err := e.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}

	var companies []models.Company

	if err := e.DB.Where("user_id = ?", userID).Order("created_at asc").Find(&companies).Error; err != nil {
		return nil, err
	}

	var companyResearch []models.Research

	if err := e.DB.Preload("Links").
		Where("user_id = ? AND target_kind = ?", userID, models.ResearchTargetCompany).
		Order("updated_at desc").
		Find(&companyResearch).Error; err != nil {
		return nil, err
	}

	researchByCompany := make(map[uint][]models.Research)

	for _, item := range companyResearch {
		if item.TargetID != nil {
			researchByCompany[*item.TargetID] = append(researchByCompany[*item.TargetID], item)
		}
	}

	companyRecords := make([]CompanyRecord, 0, len(companies))
	totalResearch := 0

	for _, company := range companies {
		research := researchByCompany[company.ID]
		if research == nil {
			research = []models.Research{}
		}
		totalResearch += len(research)
		companyRecords = append(companyRecords, CompanyRecord{Company: company, Research: research})
	}

	var contacts []models.Contact

	if err := e.DB.
		Preload("Communications", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("communications.date desc")
		}).
		Preload("Communications.FollowUpActions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("follow_up_actions.created_at asc")
		}).
		Preload("CompanyRef").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&contacts).Error; err != nil {
		return nil, err
	}

	var applications []models.Application

	if err := e.DB.
		Preload("Interviews", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("interviews.scheduled_at asc")
		}).
		Preload("Contact").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&applications).Error; err != nil {
		return nil, err
	}

	var tasks []models.Task

	if err := e.DB.
		Preload("Application").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	var documents []models.Document

	if err := e.DB.
		Preload("Application").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&documents).Error; err != nil {
		return nil, err
	}

	totalCommunications := 0
	totalFollowUpActions := 0

	for _, contact := range contacts {
		totalCommunications += len(contact.Communications)
		for _, communication := range contact.Communications {
			totalFollowUpActions += len(communication.FollowUpActions)
		}
	}

	totalInterviews := 0

	for _, application := range applications {
		totalInterviews += len(application.Interviews)
	}

	return &Document{
		ExportMetadata: Metadata{
			ExportedAt:    time.Now().UTC(),
			SchemaVersion: SchemaVersion,
			UserID:        user.ID,
			UserName:      user.Name,
			UserEmail:     user.Email,
			TotalRecords: Counts{
				Companies:       len(companies),
				Contacts:        len(contacts),
				Applications:    len(applications),
				Communications:  totalCommunications,
				FollowUpActions: totalFollowUpActions,
				Interviews:      totalInterviews,
				Research:        totalResearch,
				Tasks:           len(tasks),
				Documents:       len(documents),
			},
		},
		UserData: UserData{
			Profile: Profile{
				ID:        user.ID,
				Email:     user.Email,
				Name:      user.Name,
				CreatedAt: user.CreatedAt,
				UpdatedAt: user.UpdatedAt,
			},
			Companies:    companyRecords,
			Contacts:     contacts,
			Applications: applications,
			Tasks:        tasks,
			Documents:    documents,
		},
	}, nil
}

// Filename names the download attachment for the given day.
func Filename(now time.Time) string {
	return "job-search-data-" + now.Format("2006-01-02") + ".json"
}
