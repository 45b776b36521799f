package migrate

import (
	"fmt"
	"testing"

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

func TestMigrateCompaniesBackfillsLegacyNames(t *testing.T) {
	conn := testDB(t)

	user := models.User{Name: "Dana", Email: "dana@example.com", PasswordHash: "x"}
	require.NoError(t, conn.Create(&user).Error)

	// Globex already exists as a structured row and must be reused.
	globex := models.Company{UserID: user.ID, Name: "Globex"}
	require.NoError(t, conn.Create(&globex).Error)

	applications := []models.Application{
		{UserID: user.ID, Position: "Backend Engineer", Company: "Acme", Status: "APPLIED"},
		{UserID: user.ID, Position: "SRE", Company: "  Acme  ", Status: "APPLIED"},
		{UserID: user.ID, Position: "Data Engineer", Company: "Globex", Status: "APPLIED"},
		{UserID: user.ID, Position: "Intern", Company: "", Status: "APPLIED"},
	}
	require.NoError(t, conn.Create(&applications).Error)

	contacts := []models.Contact{
		{UserID: user.ID, Name: "Sam Ortiz", Company: "Acme"},
		{UserID: user.ID, Name: "Robin Vale", Company: ""},
	}
	require.NoError(t, conn.Create(&contacts).Error)

	summary, err := MigrateCompanies(conn)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.CompaniesCreated) // Acme; Globex reused
	assert.Equal(t, 3, summary.ApplicationsUpdated)
	assert.Equal(t, 1, summary.ContactsUpdated)

	for _, outcome := range summary.Outcomes {
		assert.True(t, outcome.OK, "unexpected failure for %s: %s", outcome.Item, outcome.Err)
	}

	var acme models.Company
	require.NoError(t, conn.Where("user_id = ? AND name = ?", user.ID, "Acme").First(&acme).Error)

	var backfilled models.Application
	require.NoError(t, conn.Where("position = ?", "SRE").First(&backfilled).Error)
	require.NotNil(t, backfilled.CompanyID)
	assert.Equal(t, acme.ID, *backfilled.CompanyID)

	var reused models.Application
	require.NoError(t, conn.Where("position = ?", "Data Engineer").First(&reused).Error)
	require.NotNil(t, reused.CompanyID)
	assert.Equal(t, globex.ID, *reused.CompanyID)

	var blank models.Application
	require.NoError(t, conn.Where("position = ?", "Intern").First(&blank).Error)
	assert.Nil(t, blank.CompanyID)

	var contact models.Contact
	require.NoError(t, conn.Where("name = ?", "Sam Ortiz").First(&contact).Error)
	require.NotNil(t, contact.CompanyID)
	assert.Equal(t, acme.ID, *contact.CompanyID)
}

func TestMigrateCompaniesScopesByUser(t *testing.T) {
	conn := testDB(t)

	one := models.User{Name: "One", Email: "one@example.com", PasswordHash: "x"}
	require.NoError(t, conn.Create(&one).Error)

	two := models.User{Name: "Two", Email: "two@example.com", PasswordHash: "x"}
	require.NoError(t, conn.Create(&two).Error)

	require.NoError(t, conn.Create(&models.Application{UserID: one.ID, Position: "A", Company: "Acme", Status: "APPLIED"}).Error)
	require.NoError(t, conn.Create(&models.Application{UserID: two.ID, Position: "B", Company: "Acme", Status: "APPLIED"}).Error)

	summary, err := MigrateCompanies(conn)
	require.NoError(t, err)

	// Same name, different owners: one company each.
	assert.Equal(t, 2, summary.CompaniesCreated)

	var count int64
	require.NoError(t, conn.Model(&models.Company{}).Where("name = ?", "Acme").Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestMigrateCompaniesSkipsAlreadyLinkedRows(t *testing.T) {
	conn := testDB(t)

	user := models.User{Name: "Dana", Email: "dana@example.com", PasswordHash: "x"}
	require.NoError(t, conn.Create(&user).Error)

	company := models.Company{UserID: user.ID, Name: "Acme"}
	require.NoError(t, conn.Create(&company).Error)

	linked := models.Application{UserID: user.ID, Position: "A", Company: "Acme", CompanyID: &company.ID, Status: "APPLIED"}
	require.NoError(t, conn.Create(&linked).Error)

	summary, err := MigrateCompanies(conn)
	require.NoError(t, err)

	assert.Zero(t, summary.CompaniesCreated)
	assert.Zero(t, summary.ApplicationsUpdated)
	assert.Empty(t, summary.Outcomes)
}
