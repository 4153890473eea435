package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupanel/student-portal/internal/services"
	"github.com/edupanel/student-portal/internal/sessions"
	"github.com/edupanel/student-portal/internal/utils"
)

const invalidCredentialsMessage = "Invalid username or password"

type AuthHandler struct {
	BaseHandler
	auth   services.AuthService
	store  *sessions.Store
	signer *sessions.Signer
}

func NewAuthHandler(auth services.AuthService, store *sessions.Store, signer *sessions.Signer, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		auth:        auth,
		store:       store,
		signer:      signer,
	}
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	// An already authenticated client goes straight to the list.
	if _, exists := c.Get(ContextUsernameKey); exists {
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login verifies the posted credentials and starts a session.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	ok, err := h.auth.Verify(c.Request.Context(), username, password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if !ok {
		// Same message for unknown user and wrong password.
		h.LogRequest(c, "Login rejected", "username", username)
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Flashes": []string{invalidCredentialsMessage},
		})
		return
	}

	token, err := h.store.Start(c.Request.Context(), username)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Login succeeded", "username", username)
	c.SetCookie(SessionCookieName, h.signer.Sign(token), 0, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// Logout ends the session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := c.GetString(ContextTokenKey); token != "" {
		if err := h.store.End(c.Request.Context(), token); err != nil {
			h.LogError(c, err, "Failed to end session")
		}
	}

	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}
