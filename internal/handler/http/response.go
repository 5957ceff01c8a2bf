package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"personal-workspace/internal/domain"
	"personal-workspace/internal/middleware"
)

// Page is the body of every rendered view. Template names the view the
// client should draw with Data.
type Page struct {
	Template string             `json:"template"`
	Data     interface{}        `json:"data"`
	Username string             `json:"username,omitempty"`
	Flashes  []middleware.Flash `json:"flashes"`
}

// render writes a view and consumes the pending flashes.
func render(c *gin.Context, template string, data interface{}) {
	page := Page{Template: template, Data: data, Flashes: middleware.ConsumeFlashes(c)}
	if identity, ok := middleware.CurrentIdentity(c); ok {
		page.Username = identity.Username
	}
	c.JSON(http.StatusOK, page)
}

// redirectWithFlash queues a message and answers 303 See Other.
func redirectWithFlash(c *gin.Context, location, severity, message string) {
	middleware.AddFlash(c, severity, message)
	c.Redirect(http.StatusSeeOther, location)
}

// currentIdentity returns the identity RequireLogin already guaranteed.
func currentIdentity(c *gin.Context) domain.Identity {
	identity, _ := middleware.CurrentIdentity(c)
	return identity
}

// paramID parses a positive numeric path parameter.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// paramInt parses an optional numeric path parameter; absent means 0.
func paramInt(c *gin.Context, name string) (int, bool) {
	raw := c.Param(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
