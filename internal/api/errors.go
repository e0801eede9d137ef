package api

import (
	"alcyxob/coach-app/internal/service"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondError maps a service error to a status code. Anything that is not
// a user-facing service error is logged and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) || errors.Is(err, service.ErrDatabase) || errors.Is(err, service.ErrInternal) {
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.FullPath(), err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	switch {
	case errors.Is(err, service.ErrValidation):
		abortWithError(c, http.StatusBadRequest, svcErr.Msg)
	case errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, svcErr.Msg)
	case errors.Is(err, service.ErrUnauthorized):
		abortWithError(c, http.StatusForbidden, svcErr.Msg)
	case errors.Is(err, service.ErrNotFound):
		abortWithError(c, http.StatusNotFound, svcErr.Msg)
	case errors.Is(err, service.ErrConflict):
		abortWithError(c, http.StatusConflict, svcErr.Msg)
	default:
		log.Printf("ERROR: %s %s: unmapped service error: %v", c.Request.Method, c.FullPath(), err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}

// objectIDParam parses a hex ObjectID path parameter, aborting with 400 on
// a malformed value.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" format.")
		return primitive.NilObjectID, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return false
	}
	return true
}
