package routes

import (
	"github.com/juud-8/buildledger02/config"
	"github.com/juud-8/buildledger02/controllers"
	"github.com/juud-8/buildledger02/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {

	// Uploaded logos are served straight from disk.
	r.Static("/uploads", config.Cfg.UploadDir)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
		}

		// Everything below requires a token.
		authed := api.Group("/", middlewares.AuthMiddleware())
		{
			authed.GET("/profile", controllers.GetProfile)
			authed.PUT("/profile", controllers.UpdateProfile)
			authed.GET("/settings", controllers.GetSettings)
			authed.PUT("/settings", controllers.UpdateSettings)
			authed.POST("/profile/logo", controllers.UploadLogo)

			clients := authed.Group("/clients")
			{
				clients.GET("/", controllers.ListClients)
				clients.GET("/:id", controllers.GetClient)
				clients.POST("/", controllers.CreateClient)
				clients.PUT("/:id", controllers.UpdateClient)
				clients.DELETE("/:id", controllers.DeleteClient)
			}

			projects := authed.Group("/projects")
			{
				projects.GET("/", controllers.ListProjects)
				projects.GET("/:id", controllers.GetProject)
				projects.POST("/", controllers.CreateProject)
				projects.PUT("/:id", controllers.UpdateProject)
				projects.DELETE("/:id", controllers.DeleteProject)
				projects.GET("/:id/line-items", controllers.ListLineItems)
				projects.PUT("/:id/line-items", controllers.ReplaceLineItems)
			}

			quotes := authed.Group("/quotes")
			{
				quotes.GET("/", controllers.ListQuotes)
				quotes.GET("/:id", controllers.GetQuote)
				quotes.POST("/", controllers.CreateQuote)
				quotes.PUT("/:id", controllers.UpdateQuote)
				quotes.DELETE("/:id", controllers.DeleteQuote)
				quotes.PUT("/:id/status", controllers.UpdateQuoteStatus)
				quotes.POST("/:id/convert", controllers.ConvertQuoteToInvoice)
				quotes.GET("/:id/pdf", controllers.DownloadQuotePDF)
				quotes.POST("/:id/send", controllers.SendQuoteEmail)
			}

			invoices := authed.Group("/invoices")
			{
				invoices.GET("/", controllers.ListInvoices)
				invoices.GET("/:id", controllers.GetInvoice)
				invoices.POST("/", controllers.CreateInvoice)
				invoices.PUT("/:id", controllers.UpdateInvoice)
				invoices.DELETE("/:id", controllers.DeleteInvoice)
				invoices.PUT("/:id/status", controllers.UpdateInvoiceStatus)
				invoices.GET("/:id/pdf", controllers.DownloadInvoicePDF)
				invoices.POST("/:id/send", controllers.SendInvoiceEmail)

				invoices.GET("/:id/payments", controllers.ListPayments)
				invoices.POST("/:id/payments", controllers.RecordPayment)
				invoices.DELETE("/:id/payments/:paymentID", controllers.DeletePayment)
			}

			dashboard := authed.Group("/dashboard")
			{
				dashboard.GET("/", controllers.GetDashboard)
				dashboard.GET("/quotes", controllers.GetQuotesAnalytics)
			}
		}
	}
}
