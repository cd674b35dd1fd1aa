package routes

import (
	"net/http"

	"github.com/Harishkumar132003/service-app-backend/internal/api/handlers"
	"github.com/Harishkumar132003/service-app-backend/internal/api/middleware"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/user"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Register wires all HTTP routes. Route-level role guards mirror the
// workflow: users submit and verify, admins route, managers approve,
// providers complete, accountants settle. Resource-level scope checks
// happen in the application layer.
func Register(r *gin.Engine, h *handlers.Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/verify", h.Auth.Verify)
	}

	authed := api.Group("")
	authed.Use(middleware.JWTAuthMiddleware())

	tickets := authed.Group("/tickets")
	{
		tickets.POST("", middleware.RequireRoles(user.RoleUser), h.Ticket.Create)
		tickets.GET("", h.Ticket.List)
		tickets.GET("/:id", h.Ticket.Get)
		tickets.PATCH("/:id/assign", middleware.RequireRoles(user.RoleAdmin), h.Ticket.Assign)
		tickets.POST("/:id/complete", middleware.RequireRoles(user.RoleServiceProvider), h.Ticket.Complete)
		tickets.PATCH("/:id/verify", middleware.RequireRoles(user.RoleUser), h.Ticket.Verify)
	}

	invoices := authed.Group("/invoices")
	{
		invoices.POST("", middleware.RequireRoles(user.RoleAdmin), h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PATCH("/:id/approve", middleware.RequireRoles(user.RoleManager), h.Invoice.Approve)
		invoices.PATCH("/:id/reject", middleware.RequireRoles(user.RoleManager), h.Invoice.Reject)
		invoices.PATCH("/:id/process", middleware.RequireRoles(user.RoleAccountant), h.Invoice.Process)
	}

	companies := authed.Group("/companies")
	companies.Use(middleware.RequireRoles(user.RoleAdmin))
	{
		companies.POST("", h.Company.Create)
		companies.GET("", h.Company.List)
		companies.GET("/:id", h.Company.Get)
		companies.PUT("/:id", h.Company.Update)
		companies.DELETE("/:id", h.Company.Delete)
		companies.POST("/:id/users", h.Company.AddUser)
		companies.GET("/:id/users", h.Company.ListUsers)
		companies.PUT("/:id/users/:userId", h.Company.UpdateUser)
		companies.DELETE("/:id/users/:userId", h.Company.RemoveUser)
	}

	categories := authed.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.POST("", middleware.RequireRoles(user.RoleAdmin), h.Category.Create)
	}

	users := authed.Group("/users")
	users.Use(middleware.RequireRoles(user.RoleAdmin))
	{
		users.POST("", h.User.Create)
		users.GET("", h.User.List)
		users.PUT("/:id/oversight", h.User.SetOversight)
	}

	authed.GET("/uploads/:filename", h.Ticket.ServeUpload)
}
