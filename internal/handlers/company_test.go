package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jobtrail-dev/jobtrail/internal/models"
)

func companyRouter(conn *gorm.DB, user models.User) *gin.Engine {
	r := gin.New()
	r.Use(authAs(user))

	h := NewCompanyHandler(conn)
	r.GET("/api/companies", h.ListCompanies)
	r.POST("/api/companies", h.CreateCompany)
	r.POST("/api/companies/find-or-create", h.FindOrCreateCompany)
	r.PUT("/api/companies/:id", h.UpdateCompany)
	r.DELETE("/api/companies/:id", h.DeleteCompany)

	return r
}

func TestCreateCompanyRejectsDuplicateNamePerUser(t *testing.T) {
	conn := testDB(t)
	user := seedUser(t, conn, "dana@example.com")
	r := companyRouter(conn, user)

	first := performJSON(t, r, http.MethodPost, "/api/companies", gin.H{"name": "Initech"})
	require.Equal(t, http.StatusCreated, first.Code)

	second := performJSON(t, r, http.MethodPost, "/api/companies", gin.H{"name": "Initech"})
	assert.Equal(t, http.StatusBadRequest, second.Code)
	assert.Equal(t, "Company with this name already exists", decodeBody(t, second)["error"])
}

func TestCreateCompanySameNameDifferentUsers(t *testing.T) {
	conn := testDB(t)
	one := seedUser(t, conn, "one@example.com")
	two := seedUser(t, conn, "two@example.com")

	first := performJSON(t, companyRouter(conn, one), http.MethodPost, "/api/companies", gin.H{"name": "Initech"})
	require.Equal(t, http.StatusCreated, first.Code)

	second := performJSON(t, companyRouter(conn, two), http.MethodPost, "/api/companies", gin.H{"name": "Initech"})
	assert.Equal(t, http.StatusCreated, second.Code)
}

func TestCreateCompanyDefaults(t *testing.T) {
	conn := testDB(t)
	user := seedUser(t, conn, "dana@example.com")
	r := companyRouter(conn, user)

	recorder := performJSON(t, r, http.MethodPost, "/api/companies", gin.H{"name": "Initech"})
	require.Equal(t, http.StatusCreated, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "UNKNOWN", body["size"])
	assert.Equal(t, "RESEARCH", body["status"])
}

func TestDeleteCompanyWithDependentsRejected(t *testing.T) {
	conn := testDB(t)
	user := seedUser(t, conn, "dana@example.com")
	r := companyRouter(conn, user)

	company := models.Company{UserID: user.ID, Name: "Initech"}
	require.NoError(t, conn.Create(&company).Error)

	contact := models.Contact{UserID: user.ID, Name: "Sam Ortiz", CompanyID: &company.ID}
	require.NoError(t, conn.Create(&contact).Error)

	recorder := performJSON(t, r, http.MethodDelete, "/api/companies/1", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Cannot delete company with existing applications or contacts", decodeBody(t, recorder)["error"])

	var count int64
	require.NoError(t, conn.Model(&models.Company{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteCompanyWithoutDependents(t *testing.T) {
	conn := testDB(t)
	user := seedUser(t, conn, "dana@example.com")
	r := companyRouter(conn, user)

	company := models.Company{UserID: user.ID, Name: "Initech"}
	require.NoError(t, conn.Create(&company).Error)

	recorder := performJSON(t, r, http.MethodDelete, "/api/companies/1", nil)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestDeleteCompanyFreesNameForReuse(t *testing.T) {
	conn := testDB(t)
	user := seedUser(t, conn, "dana@example.com")
	r := companyRouter(conn, user)

	first := performJSON(t, r, http.MethodPost, "/api/companies", gin.H{"name": "Initech"})
	require.Equal(t, http.StatusCreated, first.Code)

	deleted := performJSON(t, r, http.MethodDelete, "/api/companies/1", nil)
	require.Equal(t, http.StatusNoContent, deleted.Code)

	second := performJSON(t, r, http.MethodPost, "/api/companies", gin.H{"name": "Initech"})
	assert.Equal(t, http.StatusCreated, second.Code)

	var count int64
	require.NoError(t, conn.Model(&models.Company{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteCompanyOwnedByAnotherUser(t *testing.T) {
	conn := testDB(t)
	owner := seedUser(t, conn, "owner@example.com")
	intruder := seedUser(t, conn, "intruder@example.com")

	company := models.Company{UserID: owner.ID, Name: "Initech"}
	require.NoError(t, conn.Create(&company).Error)

	recorder := performJSON(t, companyRouter(conn, intruder), http.MethodDelete, "/api/companies/1", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestUpdateCompanyRenameConflict(t *testing.T) {
	conn := testDB(t)
	user := seedUser(t, conn, "dana@example.com")
	r := companyRouter(conn, user)

	require.NoError(t, conn.Create(&models.Company{UserID: user.ID, Name: "Initech"}).Error)
	require.NoError(t, conn.Create(&models.Company{UserID: user.ID, Name: "Hooli"}).Error)

	recorder := performJSON(t, r, http.MethodPut, "/api/companies/2", gin.H{"name": "Initech"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Company with this name already exists", decodeBody(t, recorder)["error"])
}

func TestFindOrCreateCompanyReturnsExisting(t *testing.T) {
	conn := testDB(t)
	user := seedUser(t, conn, "dana@example.com")
	r := companyRouter(conn, user)

	first := performJSON(t, r, http.MethodPost, "/api/companies/find-or-create", gin.H{"name": "Initech"})
	require.Equal(t, http.StatusOK, first.Code)

	second := performJSON(t, r, http.MethodPost, "/api/companies/find-or-create", gin.H{"name": "Initech"})
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, decodeBody(t, first)["id"], decodeBody(t, second)["id"])

	var count int64
	require.NoError(t, conn.Model(&models.Company{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
