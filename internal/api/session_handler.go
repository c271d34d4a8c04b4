package api

import (
	"errors"
	"fmt"
	"net/http"

	"alcyxob/fitsocial/internal/domain"
	"alcyxob/fitsocial/internal/service"
	"alcyxob/fitsocial/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionHandler serves login, logout and profile actions.
type SessionHandler struct {
	d *service.Dispatcher
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(d *service.Dispatcher) *SessionHandler {
	return &SessionHandler{d: d}
}

// Login godoc
// @Summary Log in
// @Description Authenticates against the remote API and stores the session.
// @Tags Session
// @Accept json
// @Produce json
// @Param credentials body domain.Credentials true "Login credentials"
// @Success 200 {object} domain.User
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Invalid email or password"
// @Router /auth/login [post]
func (h *SessionHandler) Login(c *gin.Context) {
	var creds domain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	s, err := h.d.Login(c.Request.Context(), creds)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.User)
}

// Register godoc
// @Summary Register a new account
// @Tags Session
// @Accept json
// @Produce json
// @Param user body domain.Registration true "Registration details"
// @Success 201 {object} domain.User
// @Failure 400 {object} gin.H "Invalid input"
// @Router /auth/register [post]
func (h *SessionHandler) Register(c *gin.Context) {
	var reg domain.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	u, err := h.d.Register(c.Request.Context(), reg)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Logout always clears the local session.
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.d.Logout(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me returns the logged-in user, restoring the session on first use.
func (h *SessionHandler) Me(c *gin.Context) {
	if u := h.d.Session().User(); u != nil {
		c.JSON(http.StatusOK, u)
		return
	}
	s, err := h.d.LoadSession(c.Request.Context())
	if err != nil {
		if errors.Is(err, session.ErrUnauthenticated) {
			abortWithError(c, http.StatusUnauthorized, "Please login to continue")
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.User)
}

func (h *SessionHandler) UpdateProfile(c *gin.Context) {
	var upd domain.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	userID, _ := getUserIDFromContext(c)
	u, err := h.d.UpdateProfile(c.Request.Context(), userID, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *SessionHandler) DeleteAccount(c *gin.Context) {
	if err := h.d.DeleteAccount(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListUsers returns the user directory. ?active=true limits it to active
// users, ?reload=true refetches it.
func (h *SessionHandler) ListUsers(c *gin.Context) {
	users := h.d.Lists().Users
	if !users.Loaded() || c.Query("reload") == "true" || c.Query("active") != "" {
		if err := h.d.LoadUsers(c.Request.Context(), c.Query("active") == "true"); err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, users.Items())
}

func (h *SessionHandler) GetUser(c *gin.Context) {
	u, err := h.d.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Follow toggles following the user in the path.
func (h *SessionHandler) Follow(c *gin.Context) {
	u, err := h.d.FollowUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Helper function to get User ID from context (used by handlers)
func getUserIDFromContext(c *gin.Context) (string, error) {
	idRaw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", errors.New("user ID not found in context")
	}
	idStr, ok := idRaw.(string)
	if !ok {
		return "", errors.New("invalid user ID type in context")
	}
	return idStr, nil
}
