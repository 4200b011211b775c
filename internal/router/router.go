package router

import (
	"net/http"

	"casa_arbol_gateway/internal/handlers"
	"casa_arbol_gateway/internal/middleware"
	"casa_arbol_gateway/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Clients       *handlers.ClientHandler
	Plans         *handlers.PlanHandler
	Visits        *handlers.VisitHandler
	Payments      *handlers.PaymentHandler
	Notifications *handlers.NotificationHandler
	Items         *handlers.ItemHandler
	Workspace     *handlers.WorkspaceHandler
	Dashboard     *handlers.DashboardHandler
}

// Setup mounts all routes on the engine. Three surfaces: public (login,
// signup, health), portal (session required) and admin (session plus an
// active organization).
func Setup(r *gin.Engine, h Handlers, sessions *session.Manager) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	setupPublicRoutes(api, h)

	guarded := api.Group("")
	guarded.Use(middleware.SessionGuard(sessions))
	setupPortalRoutes(guarded, h)

	admin := guarded.Group("/admin")
	admin.Use(middleware.RequireOrganization())
	setupAdminRoutes(admin, h)
}
