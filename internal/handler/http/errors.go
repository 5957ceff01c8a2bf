package http

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"personal-workspace/internal/middleware"
	"personal-workspace/internal/service"
)

// recovery says where a failed request is sent back to for each kind of failure.
// Empty targets fall back to Default.
type recovery struct {
	Validation string
	NotFound   string
	Forbidden  string
	Default    string

	// Failed is shown when the store is unavailable, e.g. "Failed to save the post."
	Failed string
}

func (r recovery) target(s string) string {
	if s != "" {
		return s
	}
	return r.Default
}

// HandleServiceError turns a service error into a redirect with an error flash.
func HandleServiceError(c *gin.Context, err error, r recovery) {
	logCtx := logrus.WithFields(logrus.Fields{"path": c.Request.URL.Path, "method": c.Request.Method})

	switch {
	case errors.Is(err, service.ErrValidation):
		redirectWithFlash(c, r.target(r.Validation), middleware.FlashError, validationMessage(err))
	case errors.Is(err, service.ErrNotFound):
		redirectWithFlash(c, r.target(r.NotFound), middleware.FlashError, "The requested item could not be found.")
	case errors.Is(err, service.ErrForbidden):
		logCtx.Warn("Forbidden request")
		redirectWithFlash(c, r.target(r.Forbidden), middleware.FlashError, "You do not have permission to do that.")
	case errors.Is(err, service.ErrUnauthenticated):
		redirectWithFlash(c, "/", middleware.FlashError, "Please log in first.")
	default:
		logCtx.WithError(err).Error("Request failed")
		msg := r.Failed
		if msg == "" {
			msg = "Something went wrong."
		}
		redirectWithFlash(c, r.Default, middleware.FlashError, msg+" Please try again later.")
	}
}

// validationMessage strips the sentinel prefix and keeps the detail.
func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": ")
	if msg == "" || msg == service.ErrValidation.Error() {
		return "The submitted data is invalid."
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
