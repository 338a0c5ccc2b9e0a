package api

import (
	"errors"
	"net/http"

	"github.com/emrgen/wiki/internal/service"
	"github.com/emrgen/wiki/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	msgNotFound     = "Not found."
	msgInvalidPage  = "Invalid page."
	msgServerError  = "A server error occurred."
	msgNoRevision   = "Attachment has no current revision"
	msgLoginFailed  = "Unable to log in with provided credentials."
	msgUsernameUsed = "A user with that username already exists."
	msgGroupUsed    = "group with this name already exists."
	msgTagUsed      = "tag with this name already exists."
)

func detail(msg string) gin.H {
	return gin.H{"detail": msg}
}

// validationBody renders field messages under the field name and the rest
// under non_field_errors.
func validationBody(verr *service.ValidationError) gin.H {
	body := gin.H{}
	for field, msgs := range verr.Fields {
		body[field] = msgs
	}
	if len(verr.NonField) > 0 {
		body["non_field_errors"] = verr.NonField
	}
	return body
}

// abortWithError maps errors shared by all endpoints onto responses.
// Anything unexpected is logged and reported as a server error.
func abortWithError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, validationBody(verr))
	case errors.Is(err, errInvalidPage):
		c.AbortWithStatusJSON(http.StatusNotFound, detail(msgInvalidPage))
	case errors.Is(err, store.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, detail(msgNotFound))
	case errors.Is(err, service.ErrNoCurrentRevision):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": msgNoRevision})
	default:
		logrus.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, detail(msgServerError))
	}
}
