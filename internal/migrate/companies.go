// Package migrate holds one-shot batch reconciliation jobs run out-of-band.
package migrate

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/jobtrail-dev/jobtrail/internal/models"
)

// Outcome records the fate of a single item in a best-effort batch.
type Outcome struct {
	Item string `json:"item"`
	OK   bool   `json:"ok"`
	Err  string `json:"error,omitempty"`
}

type Summary struct {
	CompaniesCreated    int       `json:"companiesCreated"`
	ApplicationsUpdated int       `json:"applicationsUpdated"`
	ContactsUpdated     int       `json:"contactsUpdated"`
	Outcomes            []Outcome `json:"outcomes"`
}

type companyKey struct {
	userID uint
	name   string
}

// MigrateCompanies backfills structured Company rows from the legacy
// free-text company strings on applications and contacts. Per-item failures
// are recorded and skipped; the batch never aborts on a single bad row.
func MigrateCompanies(conn *gorm.DB) (*Summary, error) {
	summary := &Summary{}

	var applications []models.Application

	if err := conn.Where("company_id IS NULL").Find(&applications).Error; err != nil {
		return nil, err
	}

	var contacts []models.Contact

	if err := conn.Where("company_id IS NULL").Find(&contacts).Error; err != nil {
		return nil, err
	}

	// Distinct (user, trimmed name) pairs across both tables.
	names := make(map[companyKey]bool)

	for _, application := range applications {
		name := strings.TrimSpace(application.Company)
		if name != "" {
			names[companyKey{application.UserID, name}] = true
		}
	}

	for _, contact := range contacts {
		name := strings.TrimSpace(contact.Company)
		if name != "" {
			names[companyKey{contact.UserID, name}] = true
		}
	}

	log.Printf("Found %d unique companies to reconcile", len(names))

	companyIDs := make(map[companyKey]uint)

	for key := range names {
		companyID, created, err := findOrCreateCompany(conn, key.userID, key.name)

		if err != nil {
			log.Printf("Failed to resolve company %q for user %d: %v", key.name, key.userID, err)
			summary.Outcomes = append(summary.Outcomes, Outcome{
				Item: fmt.Sprintf("company %q (user %d)", key.name, key.userID),
				Err:  err.Error(),
			})
			continue
		}

		if created {
			summary.CompaniesCreated++
		}

		companyIDs[key] = companyID
		summary.Outcomes = append(summary.Outcomes, Outcome{
			Item: fmt.Sprintf("company %q (user %d)", key.name, key.userID),
			OK:   true,
		})
	}

	for _, application := range applications {
		name := strings.TrimSpace(application.Company)
		if name == "" {
			continue
		}

		item := fmt.Sprintf("application %d", application.ID)
		companyID, ok := companyIDs[companyKey{application.UserID, name}]

		if !ok {
			summary.Outcomes = append(summary.Outcomes, Outcome{Item: item, Err: "no company resolved"})
			continue
		}

		if err := conn.Model(&models.Application{}).Where("id = ?", application.ID).
			Update("company_id", companyID).Error; err != nil {
			log.Printf("Failed to update application %d: %v", application.ID, err)
			summary.Outcomes = append(summary.Outcomes, Outcome{Item: item, Err: err.Error()})
			continue
		}

		summary.ApplicationsUpdated++
		summary.Outcomes = append(summary.Outcomes, Outcome{Item: item, OK: true})
	}

	for _, contact := range contacts {
		name := strings.TrimSpace(contact.Company)
		if name == "" {
			continue
		}

		item := fmt.Sprintf("contact %d", contact.ID)
		companyID, ok := companyIDs[companyKey{contact.UserID, name}]

		if !ok {
			summary.Outcomes = append(summary.Outcomes, Outcome{Item: item, Err: "no company resolved"})
			continue
		}

		if err := conn.Model(&models.Contact{}).Where("id = ?", contact.ID).
			Update("company_id", companyID).Error; err != nil {
			log.Printf("Failed to update contact %d: %v", contact.ID, err)
			summary.Outcomes = append(summary.Outcomes, Outcome{Item: item, Err: err.Error()})
			continue
		}

		summary.ContactsUpdated++
		summary.Outcomes = append(summary.Outcomes, Outcome{Item: item, OK: true})
	}

	log.Printf("Migration complete: %d companies created, %d applications updated, %d contacts updated",
		summary.CompaniesCreated, summary.ApplicationsUpdated, summary.ContactsUpdated)

	return summary, nil
}

func findOrCreateCompany(conn *gorm.DB, userID uint, name string) (uint, bool, error) {
	var existing models.Company

	err := conn.Where("user_id = ? AND name = ?", userID, name).First(&existing).Error

	if err == nil {
		return existing.ID, false, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, err
	}

	company := models.Company{
		UserID: userID,
		Name:   name,
	}

	if err := conn.Create(&company).Error; err != nil {
		return 0, false, err
	}

	return company.ID, true, nil
}
