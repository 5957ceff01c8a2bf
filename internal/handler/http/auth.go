package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"personal-workspace/internal/dto"
	"personal-workspace/internal/middleware"
	"personal-workspace/internal/service"
)

// AuthHandler serves the index, account and session routes.
type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Index shows the logged-in landing page or the anonymous default page.
func (h *AuthHandler) Index(c *gin.Context) {
	if identity, ok := middleware.CurrentIdentity(c); ok {
		render(c, "main_logged_in", gin.H{"username": identity.Username})
		return
	}
	render(c, "default", nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		logrus.WithError(err).Warn("Handler.Register: Invalid input format")
		redirectWithFlash(c, "/", middleware.FlashError, "Username and password are required.")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			redirectWithFlash(c, "/", middleware.FlashError, "That username already exists. Please choose another one.")
			return
		}
		HandleServiceError(c, err, recovery{Default: "/", Failed: "Registration failed."})
		return
	}

	logrus.WithField("user_id", user.ID).Info("Handler.Register: User registered successfully")
	redirectWithFlash(c, "/", middleware.FlashSuccess, "Registration complete. You can log in now.")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		logrus.WithError(err).Warn("Handler.Login: Invalid input format")
		redirectWithFlash(c, "/", middleware.FlashError, "Please enter both username and password.")
		return
	}

	token, identity, err := h.authService.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			redirectWithFlash(c, "/", middleware.FlashError, "Invalid username or password. Please try again.")
			return
		}
		HandleServiceError(c, err, recovery{Default: "/", Failed: "Login failed due to a server error."})
		return
	}

	middleware.SetSessionCookie(c, token, h.authService.SessionTTL())
	redirectWithFlash(c, "/dashboard", middleware.FlashSuccess, fmt.Sprintf("Welcome, %s!", identity.Username))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			logrus.WithError(err).Warn("Handler.Logout: session could not be removed")
		}
	}
	middleware.ClearSessionCookie(c)
	redirectWithFlash(c, "/", middleware.FlashSuccess, "You have been logged out.")
}

// Dashboard sends logged-in users to the index and tells everyone else to log in.
func (h *AuthHandler) Dashboard(c *gin.Context) {
	if _, ok := middleware.CurrentIdentity(c); ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	redirectWithFlash(c, "/", middleware.FlashError, "You need to log in to access this page.")
}
