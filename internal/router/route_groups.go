package router

import "github.com/gin-gonic/gin"

func setupPublicRoutes(api *gin.RouterGroup, h Handlers) {
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/signup", h.Auth.Signup)
}

// setupPortalRoutes mounts routes that need a session but no organization:
// identity, personal items and the client portal.
func setupPortalRoutes(g *gin.RouterGroup, h Handlers) {
	g.POST("/auth/logout", h.Auth.Logout)
	g.GET("/auth/me", h.Auth.Me)
	g.POST("/auth/organization", h.Auth.ActivateOrganization)

	g.GET("/items", h.Items.List)
	g.POST("/items", h.Items.Create)
	g.GET("/items/:item_id", h.Items.Get)
	g.PUT("/items/:item_id", h.Items.Update)
	g.DELETE("/items/:item_id", h.Items.Delete)

	portal := g.Group("/portal")
	{
		portal.GET("/plans", h.Plans.MyPlans)
		portal.POST("/reservations", h.Payments.CreateReservation)
		portal.POST("/payments", h.Payments.CreatePayment)
	}
}

// setupAdminRoutes mounts the organization-scoped staff surface.
func setupAdminRoutes(admin *gin.RouterGroup, h Handlers) {
	admin.GET("/dashboard", h.Dashboard.Summary)

	admin.GET("/users", h.Auth.ListUsers)
	admin.DELETE("/users/:user_id", h.Auth.DeleteUser)

	admin.GET("/clients", h.Clients.ListClients)
	admin.POST("/clients", h.Clients.CreateClient)
	admin.GET("/clients/:client_id", h.Clients.GetClient)
	admin.PUT("/clients/:client_id", h.Clients.UpdateClient)
	admin.DELETE("/clients/:client_id", h.Clients.DeleteClient)

	admin.GET("/client-groups", h.Clients.ListGroups)
	admin.POST("/client-groups", h.Clients.CreateGroup)
	admin.GET("/client-groups/:group_id", h.Clients.GetGroup)

	admin.GET("/plans", h.Plans.ListPlans)
	admin.POST("/plans", h.Plans.CreatePlan)
	admin.GET("/plans/:plan_id", h.Plans.GetPlan)
	admin.PUT("/plans/:plan_id", h.Plans.UpdatePlan)
	admin.DELETE("/plans/:plan_id", h.Plans.DeletePlan)

	admin.GET("/plan-instances", h.Plans.ListInstances)
	admin.GET("/plan-instances/:instance_id", h.Plans.GetInstance)

	admin.GET("/tokens", h.Plans.ListTokens)
	admin.POST("/tokens", h.Plans.CreateToken)
	admin.POST("/tokens/validate", h.Plans.ValidateToken)

	admin.POST("/visits/check-in", h.Visits.CheckIn)
	admin.PUT("/visits/:visit_id/check-out", h.Visits.CheckOut)
	admin.GET("/visits/active", h.Visits.ActiveVisits)
	admin.GET("/visits", h.Visits.ListVisits)

	admin.GET("/payments", h.Payments.ListPayments)

	admin.GET("/notifications", h.Notifications.List)
	admin.POST("/notifications", h.Notifications.Create)

	admin.GET("/projects", h.Workspace.ListProjects)
	admin.POST("/projects", h.Workspace.CreateProject)
	admin.GET("/projects/:project_id/tasks", h.Workspace.ListTasks)
	admin.POST("/projects/:project_id/tasks", h.Workspace.CreateTask)
	admin.GET("/chats/:chat_id/messages", h.Workspace.ListMessages)
	admin.POST("/chats/:chat_id/messages", h.Workspace.PostMessage)
}
