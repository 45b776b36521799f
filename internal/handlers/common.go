package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindJSON binds the body and answers a 400 with field-level details when
// validation fails.
func bindJSON(ctx *gin.Context, obj interface{}) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation error",
			"details": validationDetails(err),
		})
		return false
	}

	return true
}

func validationDetails(err error) []string {
	var fieldErrors validator.ValidationErrors

	if errors.As(err, &fieldErrors) {
		details := make([]string, 0, len(fieldErrors))

		for _, fieldError := range fieldErrors {
			details = append(details, fieldError.Namespace()+": failed on '"+fieldError.Tag()+"'")
		}

		return details
	}

	return []string{err.Error()}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(ctx.Param(name), 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}

	return uint(value), true
}

// parseIDQuery reads an optional numeric query parameter. The second result
// reports presence, the third whether the request may proceed.
func parseIDQuery(ctx *gin.Context, name string) (uint, bool, bool) {
	raw := ctx.Query(name)

	if raw == "" {
		return 0, false, true
	}

	value, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false, false
	}

	return uint(value), true, true
}
