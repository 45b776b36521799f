package export

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

func TestBuildAssemblesSnapshot(t *testing.T) {
	conn := testDB(t)

	user := models.User{Name: "Dana", Email: "dana@example.com", PasswordHash: "x"}
	require.NoError(t, conn.Create(&user).Error)

	initech := models.Company{UserID: user.ID, Name: "Initech"}
	require.NoError(t, conn.Create(&initech).Error)

	hooli := models.Company{UserID: user.ID, Name: "Hooli"}
	require.NoError(t, conn.Create(&hooli).Error)

	targetID := initech.ID
	research := models.Research{
		UserID:     user.ID,
		Title:      "Funding round",
		Type:       models.ResearchTypeCompany,
		TargetKind: models.ResearchTargetCompany,
		TargetID:   &targetID,
		Importance: models.ResearchImportanceMedium,
	}
	require.NoError(t, conn.Create(&research).Error)

	contact := models.Contact{UserID: user.ID, Name: "Sam Ortiz", CompanyID: &initech.ID}
	require.NoError(t, conn.Create(&contact).Error)

	communication := models.Communication{
		ContactID: contact.ID,
		Type:      models.CommunicationTypeEmail,
		Date:      time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, conn.Create(&communication).Error)

	action := models.FollowUpAction{CommunicationID: communication.ID, Description: "Reply", Priority: models.PriorityMedium}
	require.NoError(t, conn.Create(&action).Error)

	application := models.Application{UserID: user.ID, Position: "Backend Engineer", CompanyID: &initech.ID, Status: "APPLIED"}
	require.NoError(t, conn.Create(&application).Error)

	interview := models.Interview{
		ApplicationID: application.ID,
		Type:          "TECHNICAL",
		ScheduledAt:   time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC),
	}
	require.NoError(t, conn.Create(&interview).Error)

	task := models.Task{UserID: user.ID, Title: "Update resume", Priority: models.PriorityHigh, Category: models.TaskCategoryResume}
	require.NoError(t, conn.Create(&task).Error)

	document := models.Document{UserID: user.ID, Type: "RESUME", Name: "resume-v3", URL: "https://example.com/resume.pdf", Version: 3}
	require.NoError(t, conn.Create(&document).Error)

	// Another user's rows must never leak into the snapshot.
	stranger := models.User{Name: "Noise", Email: "noise@example.com", PasswordHash: "x"}
	require.NoError(t, conn.Create(&stranger).Error)
	require.NoError(t, conn.Create(&models.Company{UserID: stranger.ID, Name: "Initech"}).Error)

	engine := &Engine{DB: conn}

	snapshot, err := engine.Build(user.ID)
	require.NoError(t, err)

	metadata := snapshot.ExportMetadata
	assert.Equal(t, SchemaVersion, metadata.SchemaVersion)
	assert.Equal(t, user.ID, metadata.UserID)
	assert.Equal(t, "Dana", metadata.UserName)
	assert.Equal(t, "dana@example.com", metadata.UserEmail)
	assert.False(t, metadata.ExportedAt.IsZero())

	counts := metadata.TotalRecords
	assert.Equal(t, 2, counts.Companies)
	assert.Equal(t, 1, counts.Contacts)
	assert.Equal(t, 1, counts.Applications)
	assert.Equal(t, 1, counts.Communications)
	assert.Equal(t, 1, counts.FollowUpActions)
	assert.Equal(t, 1, counts.Interviews)
	assert.Equal(t, 1, counts.Research)
	assert.Equal(t, 1, counts.Tasks)
	assert.Equal(t, 1, counts.Documents)

	data := snapshot.UserData
	assert.Equal(t, "Dana", data.Profile.Name)

	require.Len(t, data.Companies, 2)
	assert.Equal(t, "Initech", data.Companies[0].Name)
	require.Len(t, data.Companies[0].Research, 1)
	assert.Equal(t, "Funding round", data.Companies[0].Research[0].Title)
	// A company without research still carries an empty array, not null.
	require.NotNil(t, data.Companies[1].Research)
	assert.Empty(t, data.Companies[1].Research)

	require.Len(t, data.Contacts, 1)
	require.Len(t, data.Contacts[0].Communications, 1)
	require.Len(t, data.Contacts[0].Communications[0].FollowUpActions, 1)

	require.Len(t, data.Applications, 1)
	require.Len(t, data.Applications[0].Interviews, 1)
	require.Len(t, data.Tasks, 1)
	require.Len(t, data.Documents, 1)
}

func TestBuildUnknownUser(t *testing.T) {
	conn := testDB(t)

	engine := &Engine{DB: conn}

	_, err := engine.Build(42)
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, "job-search-data-2026-08-29.json", Filename(now))
}
