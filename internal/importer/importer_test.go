package importer

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

func seedUser(t *testing.T, conn *gorm.DB) models.User {
	t.Helper()

	user := models.User{Name: "Dana", Email: "dana@example.com", PasswordHash: "x"}
	require.NoError(t, conn.Create(&user).Error)

	return user
}

func TestRunCreatesFullGraph(t *testing.T) {
	conn := testDB(t)
	user := seedUser(t, conn)

	due := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	doc := Document{
		Companies: []CompanyEntry{
			{
				Name:     "Initech",
				Industry: "Software",
				Research: []ResearchEntry{
					{Title: "Funding round", Content: "Series B closed", Source: "TechCrunch", Tags: []string{"funding"}},
				},
			},
		},
		Contacts: []ContactEntry{
			{
				Name:        "Sam Ortiz",
				CompanyName: "Initech",
				Type:        models.ContactTypeRecruiter,
				Communications: []CommunicationEntry{
					{
						Type: models.CommunicationTypeEmail,
						Date: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
						FollowUpActions: []FollowUpActionEntry{
							{Description: "Reply with portfolio", DueDate: &due},
						},
					},
				},
			},
		},
		Tasks: []TaskEntry{
			{Title: "Update resume", ContactName: "Sam Ortiz", Priority: models.PriorityHigh},
		},
	}

	engine := &Engine{DB: conn}

	summary, warnings, err := engine.Run(user.ID, doc)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, 1, summary.CompaniesCreated)
	assert.Equal(t, 1, summary.ResearchCreated)
	assert.Equal(t, 1, summary.ContactsCreated)
	assert.Equal(t, 1, summary.CommunicationsCreated)
	assert.Equal(t, 1, summary.FollowUpActionsCreated)
	assert.Equal(t, 1, summary.TasksCreated)

	var company models.Company
	require.NoError(t, conn.Where("user_id = ? AND name = ?", user.ID, "Initech").First(&company).Error)
	assert.Equal(t, models.CompanySizeUnknown, company.Size)

	var contact models.Contact
	require.NoError(t, conn.Where("user_id = ? AND name = ?", user.ID, "Sam Ortiz").First(&contact).Error)
	require.NotNil(t, contact.CompanyID)
	assert.Equal(t, company.ID, *contact.CompanyID)

	var research models.Research
	require.NoError(t, conn.Where("user_id = ?", user.ID).First(&research).Error)
	assert.Equal(t, models.ResearchTargetCompany, research.TargetKind)
	require.NotNil(t, research.TargetID)
	assert.Equal(t, company.ID, *research.TargetID)
	assert.Equal(t, "Series B closed", research.Summary)
	assert.Equal(t, "TechCrunch", research.Notes)

	var task models.Task
	require.NoError(t, conn.Where("user_id = ?", user.ID).First(&task).Error)
	require.NotNil(t, task.ContactID)
	assert.Equal(t, contact.ID, *task.ContactID)
	assert.Equal(t, models.TaskCategoryOther, task.Category)

	var action models.FollowUpAction
	require.NoError(t, conn.First(&action).Error)
	assert.Equal(t, models.PriorityMedium, action.Priority)
}

func TestRunUnknownCompanyNameLeavesContactUnlinked(t *testing.T) {
	conn := testDB(t)
	user := seedUser(t, conn)

	doc := Document{
		Contacts: []ContactEntry{
			{Name: "Sam Ortiz", Company: "Acme (old label)", CompanyName: "No Such Company"},
		},
	}

	engine := &Engine{DB: conn}

	summary, warnings, err := engine.Run(user.ID, doc)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 1, summary.ContactsCreated)

	var contact models.Contact
	require.NoError(t, conn.Where("user_id = ?", user.ID).First(&contact).Error)
	assert.Nil(t, contact.CompanyID)
	assert.Equal(t, "Acme (old label)", contact.Company)
}

func TestRunDuplicateContactNamesWarnAndLastWins(t *testing.T) {
	conn := testDB(t)
	user := seedUser(t, conn)

	doc := Document{
		Contacts: []ContactEntry{
			{Name: "Sam Ortiz", Email: "first@example.com"},
			{Name: "Sam Ortiz", Email: "second@example.com"},
		},
		Tasks: []TaskEntry{
			{Title: "Ping Sam", ContactName: "Sam Ortiz"},
		},
	}

	engine := &Engine{DB: conn}

	summary, warnings, err := engine.Run(user.ID, doc)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.ContactsCreated)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Sam Ortiz")

	var second models.Contact
	require.NoError(t, conn.Where("email = ?", "second@example.com").First(&second).Error)

	var task models.Task
	require.NoError(t, conn.Where("user_id = ?", user.ID).First(&task).Error)
	require.NotNil(t, task.ContactID)
	assert.Equal(t, second.ID, *task.ContactID)
}

func TestRunRollsBackEverythingOnFailure(t *testing.T) {
	conn := testDB(t)
	user := seedUser(t, conn)

	// The second company violates the per-user unique name index, failing
	// the transaction after the first company was already created in it.
	doc := Document{
		Companies: []CompanyEntry{
			{Name: "Initech", Industry: "Software"},
			{Name: "Initech", Industry: "Hardware"},
		},
	}

	engine := &Engine{DB: conn}

	_, _, err := engine.Run(user.ID, doc)
	require.Error(t, err)

	var count int64
	require.NoError(t, conn.Model(&models.Company{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRunTwiceDoublesCounts(t *testing.T) {
	conn := testDB(t)
	user := seedUser(t, conn)

	doc := Document{
		Contacts: []ContactEntry{
			{Name: "Sam Ortiz"},
		},
		Tasks: []TaskEntry{
			{Title: "Update resume"},
			{Title: "Write cover letter"},
		},
	}

	engine := &Engine{DB: conn}

	_, _, err := engine.Run(user.ID, doc)
	require.NoError(t, err)
	_, _, err = engine.Run(user.ID, doc)
	require.NoError(t, err)

	var contacts int64
	require.NoError(t, conn.Model(&models.Contact{}).Where("user_id = ?", user.ID).Count(&contacts).Error)
	assert.EqualValues(t, 2, contacts)

	var tasks int64
	require.NoError(t, conn.Model(&models.Task{}).Where("user_id = ?", user.ID).Count(&tasks).Error)
	assert.EqualValues(t, 4, tasks)
}
