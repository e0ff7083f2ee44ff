package routes

import (
	"restaurant-api/handlers"
	"restaurant-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)
		public.POST("/auth/admin-login", handlers.AdminLogin)
		public.POST("/auth/token/refresh", handlers.RefreshToken)

		public.GET("/menu", handlers.GetMenu)
		public.GET("/reviews", handlers.ListReviews)

		// State machine info
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/auth/profile", handlers.GetProfile)
		auth.PUT("/profile/update", handlers.UpdateProfile)

		auth.POST("/reservation", handlers.CreateReservation)
		auth.GET("/reservations", handlers.GetMyReservations)
		auth.GET("/reservations/availability", handlers.GetAvailability)

		auth.POST("/order", handlers.PlaceOrder)
		auth.GET("/orders", handlers.GetMyOrders)
		auth.POST("/checkout", handlers.Checkout)

		auth.POST("/review", handlers.CreateReview)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.GET("/users/:id", handlers.AdminGetUserDetail)
		admin.DELETE("/users/:id", handlers.AdminDeleteUser)
		admin.POST("/users/bulk-delete", handlers.AdminBulkDeleteUsers)

		admin.POST("/menu", handlers.AdminAddMenuItem)
		admin.GET("/menu/all", handlers.AdminListMenuItems)
		admin.PUT("/menu/:id", handlers.AdminUpdateMenuItem)
		admin.DELETE("/menu/:id", handlers.AdminDeleteMenuItem)

		admin.GET("/reviews", handlers.AdminListReviews)
		admin.DELETE("/review/:id", handlers.AdminDeleteReview)

		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", handlers.AdminUpdateOrderStatus)

		admin.GET("/reservations", handlers.AdminListReservations)
		admin.PUT("/reservations/:id/approve", handlers.AdminApproveReservation)
		admin.PUT("/reservations/:id/reject", handlers.AdminRejectReservation)
		admin.PUT("/reservations/:id/status", handlers.AdminUpdateReservationStatus)
		admin.PUT("/reservations/:id/table", handlers.AdminAssignTable)
	}
}
