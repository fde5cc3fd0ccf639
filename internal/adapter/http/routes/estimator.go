package routes

import (
	"estimador/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathAuth      = "/auth"
	PathSession   = "/session"
	PathUsers     = "/users"
	PathTemplates = "/templates"
	PathEstimates = "/estimates"
	PathReports   = "/reports"
)

func addEstimatorRoutes(rg *gin.RouterGroup, deps Dependencies) {
	rg.POST(PathAuth+"/login", deps.Auth.Login)

	authed := rg.Group("", middleware.Authenticate(deps.Sessions))
	admin := middleware.RequireAdmin()

	authed.GET(PathSession, deps.Auth.Session)

	users := authed.Group(PathUsers, admin)
	{
		users.GET("", deps.Users.ListUsers)
		users.POST("", deps.Users.CreateUser)
		users.DELETE("/:id", deps.Users.DeleteUser)
	}

	templates := authed.Group(PathTemplates)
	{
		templates.GET("", deps.Templates.ListTemplates)
		templates.GET("/:id", deps.Templates.GetTemplate)
		templates.POST("", admin, deps.Templates.CreateTemplate)
		templates.PUT("/:id", admin, deps.Templates.ReplaceTemplate)
		templates.DELETE("/:id", admin, deps.Templates.DeleteTemplate)
	}

	estimates := authed.Group(PathEstimates)
	{
		estimates.POST("", deps.Estimates.CreateEstimate)
		estimates.GET("/mine", deps.Estimates.ListMyEstimates)
		estimates.GET("/:id", deps.Estimates.GetEstimate)
	}

	reports := authed.Group(PathReports)
	{
		reports.GET("", deps.Reports.GetReport)
		reports.GET("/export", deps.Reports.ExportReport)
	}
}
