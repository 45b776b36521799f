// Package unified merges manual tasks and communication follow-up actions
// into one ordered to-do list.
package unified

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/jobtrail-dev/jobtrail/internal/models"
)

type SourceKind string

const (
	SourceManual   SourceKind = "manual"
	SourceFollowUp SourceKind = "followup"
)

// Source identifies the contact or application a unified task came from.
// Follow-up entries also carry the originating interaction's date and type.
type Source struct {
	Type            string                   `json:"type"` // "contact" or "application"
	ID              uint                     `json:"id"`
	Name            string                   `json:"name"`
	InteractionDate *time.Time               `json:"interactionDate,omitempty"`
	InteractionType models.CommunicationType `json:"interactionType,omitempty"`
}

// Task is the normalized shape shared by manual tasks and follow-up actions.
type Task struct {
	ID          uint                `json:"id"`
	Type        SourceKind          `json:"type"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	Priority    models.Priority     `json:"priority"`
	DueDate     *time.Time          `json:"dueDate"`
	Completed   bool                `json:"completed"`
	Category    models.TaskCategory `json:"category"`
	CreatedAt   time.Time           `json:"createdAt"`
	Source      *Source             `json:"source"`
}

type Filters struct {
	Priority models.Priority // empty matches all
	Status   string          // "", "pending" or "completed"
	Source   string          // "", "all", "manual" or "followup"
}

type Engine struct {
	DB *gorm.DB
}

// List produces the ordered unified sequence for one user. Manual tasks are
// fetched first so that ties in the sort keep manual-before-followup order.
func (e *Engine) List(userID uint, filters Filters) ([]Task, error) {
	tasks := e.DB.
		Preload("Application").
		Preload("Application.CompanyRef").
		Preload("Contact").
		Where("user_id = ?", userID)
	tasks = applyItemFilters(tasks, filters, "tasks")

	var manual []models.Task

	if err := tasks.Find(&manual).Error; err != nil {
		return nil, err
	}

	actions := e.DB.
		Preload("Communication.Contact").
		Joins("JOIN communications ON communications.id = follow_up_actions.communication_id").
		Joins("JOIN contacts ON contacts.id = communications.contact_id").
		Where("contacts.user_id = ? AND contacts.deleted_at IS NULL AND communications.deleted_at IS NULL", userID)
	actions = applyItemFilters(actions, filters, "follow_up_actions")

	var followUps []models.FollowUpAction

	if err := actions.Find(&followUps).Error; err != nil {
		return nil, err
	}

	merged := make([]Task, 0, len(manual)+len(followUps))

	for _, task := range manual {
		merged = append(merged, FromTask(task))
	}

	for _, action := range followUps {
		merged = append(merged, FromFollowUpAction(action))
	}

	Sort(merged)

	return filterSource(merged, filters.Source), nil
}

func applyItemFilters(query *gorm.DB, filters Filters, table string) *gorm.DB {
	if filters.Priority != "" {
		query = query.Where(table+".priority = ?", filters.Priority)
	}

	switch filters.Status {
	case "completed":
		query = query.Where(table+".completed = ?", true)
	case "pending":
		query = query.Where(table+".completed = ?", false)
	}

	return query
}

// FromTask maps a manual task into the unified shape. An application-linked
// task is labeled "<position> at <company>"; a contact-linked one by the
// contact's name.
func FromTask(task models.Task) Task {
	unified := Task{
		ID:        task.ID,
		Type:      SourceManual,
		Title:     task.Title,
		Priority:  task.Priority,
		DueDate:   task.DueDate,
		Completed: task.Completed,
		Category:  task.Category,
		CreatedAt: task.CreatedAt,
	}

	if task.Description != "" {
		description := task.Description
		unified.Description = &description
	}

	if task.Application != nil {
		company := task.Application.Company
		if task.Application.CompanyRef != nil {
			company = task.Application.CompanyRef.Name
		}
		unified.Source = &Source{
			Type: "application",
			ID:   task.Application.ID,
			Name: fmt.Sprintf("%s at %s", task.Application.Position, company),
		}
	} else if task.Contact != nil {
		unified.Source = &Source{
			Type: "contact",
			ID:   task.Contact.ID,
			Name: task.Contact.Name,
		}
	}

	return unified
}

// FromFollowUpAction maps a follow-up action into the unified shape. The
// action's description becomes the title and the category is always
// FOLLOW_UP. Expects Communication and its Contact to be loaded.
func FromFollowUpAction(action models.FollowUpAction) Task {
	unified := Task{
		ID:        action.ID,
		Type:      SourceFollowUp,
		Title:     action.Description,
		Priority:  action.Priority,
		DueDate:   action.DueDate,
		Completed: action.Completed,
		Category:  models.TaskCategoryFollowUp,
		CreatedAt: action.CreatedAt,
	}

	if action.Communication != nil && action.Communication.Contact != nil {
		date := action.Communication.Date
		unified.Source = &Source{
			Type:            "contact",
			ID:              action.Communication.Contact.ID,
			Name:            action.Communication.Contact.Name,
			InteractionDate: &date,
			InteractionType: action.Communication.Type,
		}
	}

	return unified
}

// Sort orders items in place: incomplete before completed, then ascending
// due date with undated items last, then priority HIGH > MEDIUM > LOW.
// The sort is stable so equal items keep encounter order.
func Sort(items []Task) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]

		if a.Completed != b.Completed {
			return !a.Completed
		}

		switch {
		case a.DueDate != nil && b.DueDate != nil:
			if !a.DueDate.Equal(*b.DueDate) {
				return a.DueDate.Before(*b.DueDate)
			}
		case a.DueDate != nil:
			return true
		case b.DueDate != nil:
			return false
		}

		return models.PriorityRank(a.Priority) > models.PriorityRank(b.Priority)
	})
}

func filterSource(items []Task, source string) []Task {
	if source == "" || source == "all" {
		return items
	}

	filtered := make([]Task, 0, len(items))

	for _, item := range items {
		if string(item.Type) == source {
			filtered = append(filtered, item)
		}
	}

	return filtered
}
