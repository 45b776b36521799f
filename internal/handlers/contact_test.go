package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jobtrail-dev/jobtrail/internal/models"
)

func contactRouter(conn *gorm.DB, user models.User) *gin.Engine {
	r := gin.New()
	r.Use(authAs(user))

	h := NewContactHandler(conn)
	r.POST("/api/contacts", h.CreateContact)
	r.PUT("/api/contacts/:id", h.UpdateContact)
	r.DELETE("/api/contacts/:id", h.DeleteContact)

	return r
}

func TestCreateContactRejectsForeignCompany(t *testing.T) {
	conn := testDB(t)
	user := seedUser(t, conn, "dana@example.com")
	other := seedUser(t, conn, "other@example.com")
	r := contactRouter(conn, user)

	company := models.Company{UserID: other.ID, Name: "Initech"}
	require.NoError(t, conn.Create(&company).Error)

	recorder := performJSON(t, r, http.MethodPost, "/api/contacts", gin.H{
		"name":      "Sam Ortiz",
		"companyId": company.ID,
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Company not found", decodeBody(t, recorder)["error"])

	var count int64
	require.NoError(t, conn.Model(&models.Contact{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateContactRejectsForeignCompany(t *testing.T) {
	conn := testDB(t)
	user := seedUser(t, conn, "dana@example.com")
	other := seedUser(t, conn, "other@example.com")
	r := contactRouter(conn, user)

	contact := models.Contact{UserID: user.ID, Name: "Sam Ortiz"}
	require.NoError(t, conn.Create(&contact).Error)

	company := models.Company{UserID: other.ID, Name: "Initech"}
	require.NoError(t, conn.Create(&company).Error)

	recorder := performJSON(t, r, http.MethodPut, "/api/contacts/1", gin.H{"companyId": company.ID})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestDeleteContactCascadesCommunications(t *testing.T) {
	conn := testDB(t)
	user := seedUser(t, conn, "dana@example.com")
	r := contactRouter(conn, user)

	contact := models.Contact{UserID: user.ID, Name: "Sam Ortiz"}
	require.NoError(t, conn.Create(&contact).Error)

	communication := models.Communication{
		ContactID: contact.ID,
		Type:      models.CommunicationTypeEmail,
		Date:      time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, conn.Create(&communication).Error)

	action := models.FollowUpAction{CommunicationID: communication.ID, Description: "Reply", Priority: models.PriorityMedium}
	require.NoError(t, conn.Create(&action).Error)

	recorder := performJSON(t, r, http.MethodDelete, "/api/contacts/1", nil)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	var contacts int64
	require.NoError(t, conn.Model(&models.Contact{}).Count(&contacts).Error)
	assert.Zero(t, contacts)

	var communications int64
	require.NoError(t, conn.Model(&models.Communication{}).Count(&communications).Error)
	assert.Zero(t, communications)

	// Grandchild follow-up actions go with their communications.
	var actions int64
	require.NoError(t, conn.Model(&models.FollowUpAction{}).Count(&actions).Error)
	assert.Zero(t, actions)
}
