package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/doganiot/mywordismyword/internal/handlers"
	"github.com/doganiot/mywordismyword/internal/middleware"
)

// RegisterAPIRoutes registers every authenticated API route.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	apiGroup := api.Group("/api")
	{
		contracts := apiGroup.Group("/contracts")
		{
			contracts.POST("", handlers.CreateContractHandler)
			contracts.GET("", handlers.ListMyContractsHandler)
			contracts.GET("/signed", handlers.ListSignedContractsHandler)
			contracts.GET("/invited", handlers.ListInvitedContractsHandler)
			contracts.GET("/declined", handlers.ListDeclinedContractsHandler)

			contracts.GET("/:id", handlers.GetContractHandler)
			contracts.PUT("/:id", handlers.UpdateContractHandler)
			contracts.DELETE("/:id", handlers.DeleteContractHandler)

			contracts.POST("/:id/sign", handlers.SignContractHandler)
			contracts.POST("/:id/decline", handlers.DeclineContractHandler)
			contracts.POST("/:id/recreate", handlers.RecreateContractHandler)
			contracts.POST("/:id/approve", handlers.ApproveContractHandler)
			contracts.POST("/:id/request-code", handlers.RequestCodeHandler)

			contracts.POST("/:id/parties", handlers.AddPartyHandler)
			contracts.DELETE("/:id/parties/:partyId", handlers.RemovePartyHandler)

			contracts.GET("/:id/comments", handlers.ListCommentsHandler)
			contracts.POST("/:id/comments", handlers.AddCommentHandler)

			contracts.GET("/:id/export/pdf", handlers.ExportContractPDFHandler)
			contracts.GET("/:id/export/jpg", handlers.ExportContractJPEGHandler)
		}

		templates := apiGroup.Group("/templates")
		{
			templates.GET("", handlers.ListTemplatesHandler)
			templates.POST("", handlers.CreateTemplateHandler)
			templates.GET("/:id", handlers.GetTemplateHandler)
			templates.PUT("/:id", handlers.UpdateTemplateHandler)
			templates.DELETE("/:id", handlers.DeleteTemplateHandler)
			templates.POST("/:id/share", handlers.ShareTemplateHandler)
			templates.POST("/:id/use", handlers.UseTemplateHandler)
		}

		notifications := apiGroup.Group("/notifications")
		{
			notifications.GET("", handlers.ListNotificationsHandler)
			notifications.GET("/recent", handlers.RecentNotificationsHandler)
			notifications.GET("/unread-count", handlers.UnreadCountHandler)
			notifications.PUT("/:id/read", handlers.MarkNotificationReadHandler)
			notifications.PUT("/read-all", handlers.MarkAllNotificationsReadHandler)
			notifications.DELETE("/:id", handlers.DeleteNotificationHandler)
		}

		profile := apiGroup.Group("/profile")
		{
			profile.GET("", handlers.GetProfileHandler)
			profile.PUT("", handlers.UpdateProfileHandler)
		}

		apiGroup.GET("/users/search", handlers.SearchUsersHandler)

		admin := apiGroup.Group("/admin")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.GET("/stats", handlers.DashboardStatsHandler)
			admin.GET("/contracts/export", handlers.ExportContractsXLSXHandler)
		}
	}
}
