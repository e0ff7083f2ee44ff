package handlers

import (
	"net/http"
	"strconv"

	"restaurant-api/config"
	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/services"

	"github.com/gin-gonic/gin"
)

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminGetAllOrders returns all orders with a status summary
func AdminGetAllOrders(c *gin.Context) {
	f := services.OrderFilter{Status: models.OrderStatus(c.Query("status"))}
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
			return
		}
		f.UserID = uint(id)
	}

	orders, summary, err := services.NewOrderService(config.DB).ListAll(middleware.GetAdminScope(c), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary.ByStatus,
		"total_revenue": summary.Revenue,
		"count":         summary.Count,
		"orders":        orders,
	})
}

// AdminUpdateOrderStatus moves an order along its lifecycle
func AdminUpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	order, prev, err := services.NewOrderService(config.DB).UpdateStatus(middleware.GetAdminScope(c), id, models.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"previous_status": prev,
		"order":           order,
	})
}
