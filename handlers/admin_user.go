package handlers

import (
	"net/http"

	"restaurant-api/config"
	"restaurant-api/logger"
	"restaurant-api/middleware"
	"restaurant-api/services"

	"github.com/gin-gonic/gin"
)

type BulkDeleteRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required"`
}

// AdminGetAllUsers returns all users
func AdminGetAllUsers(c *gin.Context) {
	users, err := services.NewAdminService(config.DB).ListUsers(middleware.GetAdminScope(c))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]gin.H, len(users))
	for i := range users {
		out[i] = userJSON(&users[i])
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": out})
}

// AdminGetUserDetail returns a user with activity statistics
func AdminGetUserDetail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	d, err := services.NewAdminService(config.DB).UserDetail(middleware.GetAdminScope(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":                userJSON(&d.User),
		"statistics":          d.Stats,
		"recent_orders":       d.RecentOrders,
		"recent_reservations": d.RecentReservations,
	})
}

// AdminDeleteUser deletes a user and all rows they own
func AdminDeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	scope := middleware.GetAdminScope(c)
	stats, err := services.NewAdminService(config.DB).DeleteUser(scope, id)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.L().Info("user_deleted", "admin deleted user", middleware.GetRequestID(c), map[string]any{
		"actor_id": scope.ActorID(),
		"user_id":  stats.UserID,
	})
	c.JSON(http.StatusOK, gin.H{
		"message":      "User " + stats.Username + " deleted successfully",
		"deleted_data": stats,
	})
}

// AdminBulkDeleteUsers deletes all listed users or none
func AdminBulkDeleteUsers(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	scope := middleware.GetAdminScope(c)
	deleted, err := services.NewAdminService(config.DB).BulkDelete(scope, req.UserIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.L().Info("users_bulk_deleted", "admin bulk deleted users", middleware.GetRequestID(c), map[string]any{
		"actor_id": scope.ActorID(),
		"count":    len(deleted),
	})
	c.JSON(http.StatusOK, gin.H{
		"message":       "Users deleted successfully",
		"deleted_count": len(deleted),
		"deleted_users": deleted,
	})
}
