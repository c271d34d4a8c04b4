package api

import (
	"net/http"

	"alcyxob/fitsocial/internal/notify"
	"alcyxob/fitsocial/internal/service"

	"github.com/gin-gonic/gin"
)

// NotificationHandler hands pending notices to the UI and reports the
// state of guarded mutations so it can disable buttons.
type NotificationHandler struct {
	d       *service.Dispatcher
	notices *notify.Recorder
}

func NewNotificationHandler(d *service.Dispatcher, notices *notify.Recorder) *NotificationHandler {
	return &NotificationHandler{d: d, notices: notices}
}

// Drain returns and forgets the pending notices.
func (h *NotificationHandler) Drain(c *gin.Context) {
	notices := h.notices.Drain()
	if notices == nil {
		notices = []notify.Notice{}
	}
	c.JSON(http.StatusOK, notices)
}

// State reports the guard state of /state/:kind or /state/:kind/:id.
func (h *NotificationHandler) State(c *gin.Context) {
	key := service.GuardKey(c.Param("kind"), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"key":     key,
		"state":   h.d.State(key),
		"outcome": h.d.Outcome(key),
	})
}
