package api

import (
	"errors"
	"net/http"

	"alcyxob/fitsocial/internal/apiclient"
	"alcyxob/fitsocial/internal/service"
	"alcyxob/fitsocial/internal/session"
	"alcyxob/fitsocial/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Constants for context keys
const (
	ContextUserIDKey    = "userID"
	ContextRequestIDKey = "requestID"
)

// RequestIDMiddleware tags every request with an id, reusing the caller's
// X-Request-ID when present.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(apiclient.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, id)
		c.Header(apiclient.RequestIDHeader, id)
		c.Next()
	}
}

// SessionMiddleware rejects requests while nobody is logged in and puts the
// user id in the context for downstream handlers.
func SessionMiddleware(holder *session.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := holder.User()
		if u == nil {
			abortWithError(c, http.StatusUnauthorized, "Please login to continue")
			return
		}
		c.Set(ContextUserIDKey, u.ID)
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// respondError maps dispatcher errors to status codes. Remote 4xx answers
// pass through; remote 5xx and network failures become 502.
func respondError(c *gin.Context, err error) {
	var vErr *validation.Error
	var reqErr *apiclient.RequestError
	switch {
	case errors.As(err, &vErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "fields": vErr.Fields})
	case errors.Is(err, service.ErrBusy):
		abortWithError(c, http.StatusConflict, "A request for this item is already in progress")
	case errors.Is(err, service.ErrNotLoggedIn), errors.Is(err, session.ErrUnauthenticated):
		abortWithError(c, http.StatusUnauthorized, "Please login to continue")
	case errors.Is(err, service.ErrNotOwner):
		abortWithError(c, http.StatusForbidden, "You can only change your own content")
	case errors.Is(err, service.ErrCommentNotFound):
		abortWithError(c, http.StatusNotFound, "Comment not found")
	case errors.Is(err, service.ErrFollowSelf):
		abortWithError(c, http.StatusBadRequest, "You cannot follow yourself")
	case errors.Is(err, service.ErrMediaUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, "Media upload is not configured")
	case errors.Is(err, service.ErrMissingID):
		abortWithError(c, http.StatusBadGateway, apiclient.FallbackMessage)
	case errors.As(err, &reqErr):
		code := reqErr.StatusCode
		if code < 400 || code >= 500 {
			code = http.StatusBadGateway
		}
		abortWithError(c, code, apiclient.MessageOf(err))
	default:
		abortWithError(c, http.StatusInternalServerError, apiclient.FallbackMessage)
	}
}
