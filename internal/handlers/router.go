package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupanel/student-portal/internal/repositories"
	"github.com/edupanel/student-portal/internal/services"
	"github.com/edupanel/student-portal/internal/sessions"
	"github.com/edupanel/student-portal/internal/utils"
)

type HandlerManager struct {
	authHandler    *AuthHandler
	studentHandler *StudentHandler
	sessionAuth    *SessionAuth
	repoManager    repositories.RepositoryManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	repoManager repositories.RepositoryManager,
	store *sessions.Store,
	signer *sessions.Signer,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Auth(), store, signer, logger),
		studentHandler: NewStudentHandler(serviceManager.Student(), serviceManager.Export(), store, logger),
		sessionAuth:    NewSessionAuth(store, signer, logger),
		repoManager:    repoManager,
	}
}

// SetupRoutes sets up all routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Every route sees the session when one exists; only gated routes
	// require it.
	router.Use(hm.sessionAuth.LoadSession())

	// Auth routes
	router.GET("/login", hm.authHandler.ShowLogin)
	router.POST("/login", hm.authHandler.Login)
	router.GET("/logout", hm.authHandler.Logout)

	// Session-gated pages
	authed := router.Group("/")
	authed.Use(hm.sessionAuth.RequireSession())
	{
		authed.GET("", hm.studentHandler.Index)
		authed.GET("/students/export", hm.studentHandler.Export)
	}

	// Mutation routes are not session-gated; the list view is the only
	// guarded page. Uniform gating is a matter of moving these three
	// registrations into the group above.
	students := router.Group("/students")
	{
		students.POST("/add", hm.studentHandler.Add)
		students.POST("/update", hm.studentHandler.Update)
		students.GET("/delete/:id", hm.studentHandler.Delete)
	}

	// Health check endpoint
	router.GET("/health", hm.Health)
}

// Health reports liveness plus store connectivity. A degraded start or a
// store outage answers 503 so probes can tell the two states apart.
func (hm *HandlerManager) Health(c *gin.Context) {
	if err := hm.repoManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "degraded",
			"service": "student-portal",
			"store":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "student-portal",
	})
}
