package unified

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jobtrail-dev/jobtrail/db"
	"github.com/jobtrail-dev/jobtrail/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	return conn
}

func titles(items []Task) []string {
	result := make([]string, 0, len(items))

	for _, item := range items {
		result = append(result, item.Title)
	}

	return result
}

func TestSortDueDateThenPriority(t *testing.T) {
	due := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	items := []Task{
		{Title: "A", DueDate: &due, Priority: models.PriorityLow},
		{Title: "B", DueDate: &due, Priority: models.PriorityHigh},
		{Title: "C", Priority: models.PriorityHigh},
	}

	Sort(items)

	assert.Equal(t, []string{"B", "A", "C"}, titles(items))
}

func TestSortCompletedLast(t *testing.T) {
	soon := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	later := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	items := []Task{
		{Title: "done-early", DueDate: &soon, Priority: models.PriorityHigh, Completed: true},
		{Title: "open-late", DueDate: &later, Priority: models.PriorityLow},
		{Title: "open-undated", Priority: models.PriorityLow},
	}

	Sort(items)

	assert.Equal(t, []string{"open-late", "open-undated", "done-early"}, titles(items))
}

func TestSortIsStable(t *testing.T) {
	items := []Task{
		{Title: "first", Priority: models.PriorityMedium},
		{Title: "second", Priority: models.PriorityMedium},
		{Title: "third", Priority: models.PriorityMedium},
	}

	Sort(items)

	assert.Equal(t, []string{"first", "second", "third"}, titles(items))
}

func TestFromTaskApplicationSource(t *testing.T) {
	task := models.Task{
		Title:    "Prep for onsite",
		Priority: models.PriorityHigh,
		Category: models.TaskCategoryInterviewPrep,
		Application: &models.Application{
			BaseModel:  models.BaseModel{ID: 7},
			Company:    "legacy name",
			CompanyRef: &models.Company{Name: "Initech"},
			Position:   "Backend Engineer",
		},
	}

	unified := FromTask(task)

	assert.Equal(t, SourceManual, unified.Type)
	require.NotNil(t, unified.Source)
	assert.Equal(t, "application", unified.Source.Type)
	assert.Equal(t, uint(7), unified.Source.ID)
	assert.Equal(t, "Backend Engineer at Initech", unified.Source.Name)
	assert.Nil(t, unified.Description)
}

func TestFromTaskFallsBackToLegacyCompanyName(t *testing.T) {
	task := models.Task{
		Title: "Send availability",
		Application: &models.Application{
			Company:  "Hooli",
			Position: "SRE",
		},
	}

	unified := FromTask(task)

	require.NotNil(t, unified.Source)
	assert.Equal(t, "SRE at Hooli", unified.Source.Name)
}

func TestFromFollowUpAction(t *testing.T) {
	when := time.Date(2026, 2, 10, 15, 30, 0, 0, time.UTC)
	action := models.FollowUpAction{
		BaseModel:   models.BaseModel{ID: 3},
		Description: "Send thank-you note",
		Priority:    models.PriorityLow,
		Communication: &models.Communication{
			Type: models.CommunicationTypeMeeting,
			Date: when,
			Contact: &models.Contact{
				BaseModel: models.BaseModel{ID: 12},
				Name:      "Sam Ortiz",
			},
		},
	}

	unified := FromFollowUpAction(action)

	assert.Equal(t, SourceFollowUp, unified.Type)
	assert.Equal(t, "Send thank-you note", unified.Title)
	assert.Equal(t, models.TaskCategoryFollowUp, unified.Category)
	require.NotNil(t, unified.Source)
	assert.Equal(t, "contact", unified.Source.Type)
	assert.Equal(t, uint(12), unified.Source.ID)
	assert.Equal(t, "Sam Ortiz", unified.Source.Name)
	require.NotNil(t, unified.Source.InteractionDate)
	assert.True(t, unified.Source.InteractionDate.Equal(when))
	assert.Equal(t, models.CommunicationTypeMeeting, unified.Source.InteractionType)
}

func TestEngineList(t *testing.T) {
	conn := testDB(t)

	user := models.User{Name: "Dana", Email: "dana@example.com", PasswordHash: "x"}
	require.NoError(t, conn.Create(&user).Error)

	other := models.User{Name: "Noise", Email: "noise@example.com", PasswordHash: "x"}
	require.NoError(t, conn.Create(&other).Error)

	contact := models.Contact{UserID: user.ID, Name: "Sam Ortiz", Type: models.ContactTypeRecruiter}
	require.NoError(t, conn.Create(&contact).Error)

	communication := models.Communication{
		ContactID: contact.ID,
		Type:      models.CommunicationTypeEmail,
		Date:      time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, conn.Create(&communication).Error)

	due := time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)
	action := models.FollowUpAction{
		CommunicationID: communication.ID,
		Description:     "Reply with portfolio",
		Priority:        models.PriorityLow,
		DueDate:         &due,
	}
	require.NoError(t, conn.Create(&action).Error)

	task := models.Task{
		UserID:   user.ID,
		Title:    "Update resume",
		Priority: models.PriorityHigh,
		Category: models.TaskCategoryResume,
	}
	require.NoError(t, conn.Create(&task).Error)

	otherTask := models.Task{UserID: other.ID, Title: "Not yours", Priority: models.PriorityHigh}
	require.NoError(t, conn.Create(&otherTask).Error)

	engine := &Engine{DB: conn}

	items, err := engine.List(user.ID, Filters{})
	require.NoError(t, err)

	// Dated follow-up first, undated manual task second, other user excluded.
	require.Len(t, items, 2)
	assert.Equal(t, SourceFollowUp, items[0].Type)
	assert.Equal(t, "Reply with portfolio", items[0].Title)
	assert.Equal(t, SourceManual, items[1].Type)
	assert.Equal(t, "Update resume", items[1].Title)
	require.NotNil(t, items[0].Source)
	assert.Equal(t, "Sam Ortiz", items[0].Source.Name)
	assert.Equal(t, models.CommunicationTypeEmail, items[0].Source.InteractionType)

	manualOnly, err := engine.List(user.ID, Filters{Source: "manual"})
	require.NoError(t, err)
	require.Len(t, manualOnly, 1)
	assert.Equal(t, SourceManual, manualOnly[0].Type)

	highOnly, err := engine.List(user.ID, Filters{Priority: models.PriorityHigh})
	require.NoError(t, err)
	require.Len(t, highOnly, 1)
	assert.Equal(t, "Update resume", highOnly[0].Title)

	completed, err := engine.List(user.ID, Filters{Status: "completed"})
	require.NoError(t, err)
	assert.Empty(t, completed)
}

func TestEngineListUsesStructuredCompanyName(t *testing.T) {
	conn := testDB(t)

	user := models.User{Name: "Dana", Email: "dana@example.com", PasswordHash: "x"}
	require.NoError(t, conn.Create(&user).Error)

	company := models.Company{UserID: user.ID, Name: "Initech"}
	require.NoError(t, conn.Create(&company).Error)

	application := models.Application{
		UserID:    user.ID,
		Position:  "Backend Engineer",
		Company:   "legacy label",
		CompanyID: &company.ID,
		Status:    "APPLIED",
	}
	require.NoError(t, conn.Create(&application).Error)

	task := models.Task{UserID: user.ID, Title: "Prep for onsite", ApplicationID: &application.ID, Priority: models.PriorityHigh}
	require.NoError(t, conn.Create(&task).Error)

	engine := &Engine{DB: conn}

	items, err := engine.List(user.ID, Filters{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Source)
	assert.Equal(t, "Backend Engineer at Initech", items[0].Source.Name)
}

func TestEngineListSkipsDeletedContacts(t *testing.T) {
	conn := testDB(t)

	user := models.User{Name: "Dana", Email: "dana@example.com", PasswordHash: "x"}
	require.NoError(t, conn.Create(&user).Error)

	contact := models.Contact{UserID: user.ID, Name: "Gone"}
	require.NoError(t, conn.Create(&contact).Error)

	communication := models.Communication{
		ContactID: contact.ID,
		Type:      models.CommunicationTypePhone,
		Date:      time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, conn.Create(&communication).Error)

	action := models.FollowUpAction{CommunicationID: communication.ID, Description: "Call back", Priority: models.PriorityMedium}
	require.NoError(t, conn.Create(&action).Error)

	require.NoError(t, conn.Delete(&contact).Error)

	engine := &Engine{DB: conn}

	items, err := engine.List(user.ID, Filters{})
	require.NoError(t, err)
	assert.Empty(t, items)
}
