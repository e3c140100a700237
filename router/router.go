package router

import (
	"github.com/gin-gonic/gin"
	"github.com/adminpanel/dashboard/controllers"
	"github.com/adminpanel/dashboard/middlewares"
	"github.com/adminpanel/dashboard/utils"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, blacklist utils.TokenBlacklist) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi controller
	authCtrl := controllers.NewAuthController(db, blacklist)
	userCtrl := controllers.NewUserController(db)
	infoCtrl := controllers.NewInformationController(db)
	notifCtrl := controllers.NewNotificationController(db)
	reportCtrl := controllers.NewReportController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter ketat untuk endpoint auth
	public := r.Group("/api/auth")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", authCtrl.Register)
		public.POST("/login", authCtrl.Login)
		public.POST("/refresh", authCtrl.Refresh)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api/admin")
	auth.Use(middlewares.AuthMiddleware(blacklist))

	auth.GET("/profile", authCtrl.GetProfile)
	auth.POST("/logout", authCtrl.Logout)

	// USERS (admin only)
	users := auth.Group("/users")
	users.Use(middlewares.AdminOnly())
	{
		users.GET("", userCtrl.GetAllUsers)
		users.POST("", userCtrl.CreateUser)
		users.GET("/:user_id", userCtrl.GetUserByID)
		users.PUT("/:user_id", userCtrl.UpdateUser)
		users.DELETE("/:user_id", userCtrl.DeleteUser)
	}

	// INFORMATIONS (staff/admin)
	auth.GET("/informations", infoCtrl.GetAllInformations)
	auth.POST("/informations", infoCtrl.CreateInformation)
	auth.GET("/informations/:info_id", infoCtrl.GetInformationByID)
	auth.PUT("/informations/:info_id", infoCtrl.UpdateInformation)
	auth.DELETE("/informations/:info_id", infoCtrl.DeleteInformation)

	// PUSH NOTIFICATIONS (staff/admin)
	auth.GET("/notifications", notifCtrl.GetAllNotifications)
	auth.POST("/notifications", notifCtrl.CreateNotification)
	auth.GET("/notifications/:notif_id", notifCtrl.GetNotificationByID)
	auth.PUT("/notifications/:notif_id", notifCtrl.UpdateNotification)
	auth.DELETE("/notifications/:notif_id", notifCtrl.DeleteNotification)

	// REPORTS (staff/admin)
	auth.GET("/reports", reportCtrl.GetAllReports)
	auth.POST("/reports", reportCtrl.CreateReport)
	auth.GET("/reports/:report_id", reportCtrl.GetReportByID)
	auth.PUT("/reports/:report_id", reportCtrl.UpdateReport)
	auth.DELETE("/reports/:report_id", reportCtrl.DeleteReport)

	return r
}
