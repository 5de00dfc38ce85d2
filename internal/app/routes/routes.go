package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appAuth "github.com/Sujith8257/hostel-ms-sub000/internal/app/auth"
	"github.com/Sujith8257/hostel-ms-sub000/internal/app/controllers"
	"github.com/Sujith8257/hostel-ms-sub000/internal/middleware"
)

// SetupRouter registers all API routes under /api/v1
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	roomController *controllers.RoomController,
	adminController *controllers.AdminController,
	maintenanceController *controllers.MaintenanceController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// Public endpoints
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Everything below requires a valid token
	authed := v1.Group("")
	authed.Use(authMiddleware.JWTAuth())
	{
		authed.POST("/auth/logout", authController.Logout)
		authed.GET("/auth/me", authController.GetProfile)
		authed.PUT("/auth/me", authController.UpdateProfile)
	}

	rooms := authed.Group("/rooms")
	{
		rooms.GET("", authMiddleware.RequirePermission(appAuth.PermRoomsView), authMiddleware.RequireBuildingAccess(), roomController.ListRooms)
		rooms.GET("/available", authMiddleware.RequirePermission(appAuth.PermRoomsView), authMiddleware.RequireBuildingAccess(), roomController.ListAvailableRooms)
		rooms.GET("/stats", authMiddleware.RequirePermission(appAuth.PermRoomsView), roomController.GetRoomStats)
		rooms.GET("/:id", authMiddleware.RequirePermission(appAuth.PermRoomsView), roomController.GetRoom)
		rooms.POST("", authMiddleware.RequirePermission(appAuth.PermRoomsManage), roomController.CreateRoom)
		rooms.PUT("/:id", authMiddleware.RequirePermission(appAuth.PermRoomsManage), roomController.UpdateRoom)
		rooms.DELETE("/:id", authMiddleware.RequirePermission(appAuth.PermRoomsManage), roomController.DeleteRoom)

		rooms.GET("/allotments", authMiddleware.RequirePermission(appAuth.PermRoomsView), roomController.ListAllotments)
		rooms.POST("/allotments", authMiddleware.RequirePermission(appAuth.PermAllotmentsManage), roomController.AllotRoom)
		rooms.PUT("/allotments/:id/vacate", authMiddleware.RequirePermission(appAuth.PermAllotmentsManage), roomController.VacateRoom)
		rooms.PUT("/allotments/:id/transfer", authMiddleware.RequirePermission(appAuth.PermAllotmentsManage), roomController.TransferRoom)
	}

	waiting := authed.Group("/rooms/waiting-list")
	{
		waiting.GET("", authMiddleware.RequirePermission(appAuth.PermWaitingView), roomController.ListWaitingList)
		waiting.POST("", authMiddleware.RequirePermission(appAuth.PermWaitingManage), roomController.AddToWaitingList)
		waiting.DELETE("/:id", authMiddleware.RequirePermission(appAuth.PermWaitingManage), roomController.CancelWaitingEntry)
		waiting.POST("/allot-next", authMiddleware.RequirePermission(appAuth.PermWaitingManage), roomController.AllotNextFromWaitingList)
	}

	maintenance := authed.Group("/maintenance")
	{
		maintenance.GET("", authMiddleware.RequirePermission(appAuth.PermMaintenanceFile), maintenanceController.ListRequests)
		maintenance.POST("", authMiddleware.RequirePermission(appAuth.PermMaintenanceFile), maintenanceController.CreateRequest)
		maintenance.GET("/:id", authMiddleware.RequirePermission(appAuth.PermMaintenanceFile), maintenanceController.GetRequest)
		maintenance.PUT("/:id", authMiddleware.RequirePermission(appAuth.PermMaintenanceWork), maintenanceController.UpdateRequest)
	}

	admin := authed.Group("/admin")
	{
		admin.GET("/dashboard", authMiddleware.RequirePermission(appAuth.PermDashboardView), adminController.GetDashboard)
		admin.GET("/health", authMiddleware.RequirePermission(appAuth.PermSystemHealth), adminController.GetSystemHealth)
		admin.GET("/permissions", authMiddleware.RequirePermission(appAuth.PermDashboardView), adminController.GetPermissions)

		admin.POST("/users", authMiddleware.RequirePermission(appAuth.PermUsersManage), adminController.CreateUser)
		admin.GET("/users", authMiddleware.RequirePermission(appAuth.PermUsersManage), adminController.ListUsers)
		admin.GET("/users/:id", authMiddleware.RequirePermission(appAuth.PermUsersManage), adminController.GetUser)
		admin.PUT("/users/:id", authMiddleware.RequirePermission(appAuth.PermUsersManage), adminController.UpdateUser)
		admin.DELETE("/users/:id", authMiddleware.RequirePermission(appAuth.PermUsersManage), adminController.DeactivateUser)

		admin.POST("/students", authMiddleware.RequirePermission(appAuth.PermStudentsManage), adminController.CreateStudent)
		admin.GET("/students", authMiddleware.RequirePermission(appAuth.PermStudentsView), authMiddleware.RequireBuildingAccess(), adminController.ListStudents)
		admin.GET("/students/:id", authMiddleware.RequirePermission(appAuth.PermStudentsView), adminController.GetStudent)
		admin.PUT("/students/:id", authMiddleware.RequirePermission(appAuth.PermStudentsManage), adminController.UpdateStudent)
		admin.DELETE("/students/:id", authMiddleware.RequirePermission(appAuth.PermStudentsManage), adminController.DeleteStudent)

		admin.POST("/buildings", authMiddleware.RequirePermission(appAuth.PermBuildingsManage), adminController.CreateBuilding)
		admin.GET("/buildings", authMiddleware.RequirePermission(appAuth.PermDashboardView), adminController.ListBuildings)
		admin.GET("/buildings/:id", authMiddleware.RequirePermission(appAuth.PermDashboardView), adminController.GetBuilding)
		admin.PUT("/buildings/:id", authMiddleware.RequirePermission(appAuth.PermBuildingsManage), adminController.UpdateBuilding)

		admin.GET("/entry-logs", authMiddleware.RequirePermission(appAuth.PermEntryLogsView), adminController.ListEntryLogs)

		admin.POST("/alerts", authMiddleware.RequirePermission(appAuth.PermAlertsManage), adminController.CreateAlert)
		admin.GET("/alerts", authMiddleware.RequirePermission(appAuth.PermDashboardView), adminController.ListAlerts)
		admin.POST("/alerts/:id/resolve", authMiddleware.RequirePermission(appAuth.PermAlertsManage), adminController.ResolveAlert)
	}
}
