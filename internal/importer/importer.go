// Package importer re-creates a snapshot document's graph for one user
// inside a single transaction.
package importer

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jobtrail-dev/jobtrail/internal/models"
)

// Document is the accepted import shape. Later entries re-link to earlier
// ones by name (company name, contact name), never by stored id.
type Document struct {
	Companies []CompanyEntry `json:"companies" binding:"omitempty,dive"`
	Contacts  []ContactEntry `json:"contacts" binding:"omitempty,dive"`
	Tasks     []TaskEntry    `json:"tasks" binding:"omitempty,dive"`
}

type CompanyEntry struct {
	Name        string          `json:"name" binding:"required"`
	Website     string          `json:"website"`
	Industry    string          `json:"industry"`
	Size        string          `json:"size"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	Notes       string          `json:"notes"`
	Founded     *int            `json:"founded"`
	Research    []ResearchEntry `json:"research" binding:"omitempty,dive"`
}

// ResearchEntry keeps the legacy snapshot shape (content/source) and is
// mapped onto the current research model (summary/notes).
type ResearchEntry struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content"`
	Source  string   `json:"source"`
	Tags    []string `json:"tags"`
	Date    string   `json:"date"`
}

type ContactEntry struct {
	Name           string               `json:"name" binding:"required"`
	Email          string               `json:"email"`
	Phone          string               `json:"phone"`
	Company        string               `json:"company"`     // legacy free-text label, stored as-is
	CompanyName    string               `json:"companyName"` // re-linked against companies created above
	Position       string               `json:"position"`
	LinkedinURL    string               `json:"linkedinUrl"`
	Notes          string               `json:"notes"`
	Type           models.ContactType   `json:"type" binding:"omitempty,oneof=RECRUITER HIRING_MANAGER REFERRAL COLLEAGUE OTHER"`
	Communications []CommunicationEntry `json:"communications" binding:"omitempty,dive"`
}

type CommunicationEntry struct {
	Type            models.CommunicationType `json:"type" binding:"required,oneof=EMAIL PHONE LINKEDIN TEXT MEETING OTHER"`
	Subject         string                   `json:"subject"`
	Content         string                   `json:"content"`
	Date            time.Time                `json:"date" binding:"required"`
	Duration        *int                     `json:"duration"`
	Location        string                   `json:"location"`
	FollowUpActions []FollowUpActionEntry    `json:"followUpActions" binding:"omitempty,dive"`
}

type FollowUpActionEntry struct {
	Description string          `json:"description" binding:"required"`
	DueDate     *time.Time      `json:"dueDate"`
	Priority    models.Priority `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	Completed   bool            `json:"completed"`
}

type TaskEntry struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	Priority    models.Priority     `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	Category    models.TaskCategory `json:"category" binding:"omitempty,oneof=APPLICATION FOLLOW_UP INTERVIEW_PREP NETWORKING RESUME OTHER"`
	DueDate     *time.Time          `json:"dueDate"`
	Completed   bool                `json:"completed"`
	ContactName string              `json:"contactName"` // re-linked against contacts created above
}

type Summary struct {
	CompaniesCreated       int `json:"companiesCreated"`
	ResearchCreated        int `json:"researchCreated"`
	ContactsCreated        int `json:"contactsCreated"`
	CommunicationsCreated  int `json:"communicationsCreated"`
	FollowUpActionsCreated int `json:"followUpActionsCreated"`
	TasksCreated           int `json:"tasksCreated"`
}

type Engine struct {
	DB *gorm.DB
}

// Run creates the whole document for userID inside one transaction; any
// failure rolls everything back. The returned warnings list duplicate names
// within the document, which collapse to last-write-wins in the name maps.
func (e *Engine) Run(userID uint, doc Document) (Summary, []string, error) {
	var summary Summary
	var warnings []string

	err := e.DB.Transaction(func(tx *gorm.DB) error {
		companyIDs := make(map[string]uint)
		contactIDs := make(map[string]uint)

		// Companies first; contacts and tasks re-link against these maps.
		for _, entry := range doc.Companies {
			if _, seen := companyIDs[entry.Name]; seen {
				warnings = append(warnings, fmt.Sprintf("duplicate company name %q: later entry wins for re-linking", entry.Name))
			}

			company := models.Company{
				UserID:      userID,
				Name:        entry.Name,
				Website:     entry.Website,
				Industry:    entry.Industry,
				Size:        models.CompanySize(entry.Size),
				Location:    entry.Location,
				Description: entry.Description,
				Notes:       entry.Notes,
				Founded:     entry.Founded,
			}
			if entry.Size == "" {
				company.Size = models.CompanySizeUnknown
			}

			if err := tx.Create(&company).Error; err != nil {
				return err
			}

			companyIDs[entry.Name] = company.ID
			summary.CompaniesCreated++

			for _, researchEntry := range entry.Research {
				targetID := company.ID
				research := models.Research{
					UserID:     userID,
					Title:      researchEntry.Title,
					Type:       models.ResearchTypeCompany,
					TargetKind: models.ResearchTargetCompany,
					TargetID:   &targetID,
					Summary:    researchEntry.Content,
					Notes:      researchEntry.Source,
					Importance: models.ResearchImportanceMedium,
					Tags:       datatypes.NewJSONSlice(researchEntry.Tags),
				}

				if err := tx.Create(&research).Error; err != nil {
					return err
				}

				summary.ResearchCreated++
			}
		}

		for _, entry := range doc.Contacts {
			if _, seen := contactIDs[entry.Name]; seen {
				warnings = append(warnings, fmt.Sprintf("duplicate contact name %q: later entry wins for re-linking", entry.Name))
			}

			contact := models.Contact{
				UserID:      userID,
				Name:        entry.Name,
				Email:       entry.Email,
				Phone:       entry.Phone,
				Company:     entry.Company,
				Position:    entry.Position,
				LinkedinURL: entry.LinkedinURL,
				Notes:       entry.Notes,
				Type:        entry.Type,
			}
			if contact.Type == "" {
				contact.Type = models.ContactTypeOther
			}
			if entry.CompanyName != "" {
				if companyID, ok := companyIDs[entry.CompanyName]; ok {
					contact.CompanyID = &companyID
				}
			}

			if err := tx.Create(&contact).Error; err != nil {
				return err
			}

			contactIDs[entry.Name] = contact.ID
			summary.ContactsCreated++

			for _, communicationEntry := range entry.Communications {
				communication := models.Communication{
					ContactID: contact.ID,
					Type:      communicationEntry.Type,
					Subject:   communicationEntry.Subject,
					Content:   communicationEntry.Content,
					Date:      communicationEntry.Date,
					Duration:  communicationEntry.Duration,
					Location:  communicationEntry.Location,
				}

				if err := tx.Create(&communication).Error; err != nil {
					return err
				}

				summary.CommunicationsCreated++

				for _, actionEntry := range communicationEntry.FollowUpActions {
					action := models.FollowUpAction{
						CommunicationID: communication.ID,
						Description:     actionEntry.Description,
						DueDate:         actionEntry.DueDate,
						Priority:        actionEntry.Priority,
						Completed:       actionEntry.Completed,
					}
					if action.Priority == "" {
						action.Priority = models.PriorityMedium
					}

					if err := tx.Create(&action).Error; err != nil {
						return err
					}

					summary.FollowUpActionsCreated++
				}
			}
		}

		for _, entry := range doc.Tasks {
			task := models.Task{
				UserID:      userID,
				Title:       entry.Title,
				Description: entry.Description,
				Priority:    entry.Priority,
				Category:    entry.Category,
				DueDate:     entry.DueDate,
				Completed:   entry.Completed,
			}
			if task.Priority == "" {
				task.Priority = models.PriorityMedium
			}
			if task.Category == "" {
				task.Category = models.TaskCategoryOther
			}
			if entry.ContactName != "" {
				if contactID, ok := contactIDs[entry.ContactName]; ok {
					task.ContactID = &contactID
				}
			}

			if err := tx.Create(&task).Error; err != nil {
				return err
			}

			summary.TasksCreated++
		}

		return nil
	})

	if err != nil {
		return Summary{}, nil, err
	}

	return summary, warnings, nil
}
