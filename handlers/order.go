package handlers

import (
	"net/http"

	"restaurant-api/config"
	"restaurant-api/middleware"
	"restaurant-api/services"

	"github.com/gin-gonic/gin"
)

type OrderItemRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity"`
}

type PlaceOrderRequest struct {
	Items               []OrderItemRequest `json:"items" binding:"required,dive"`
	SpecialInstructions string             `json:"special_instructions"`
}

func (r PlaceOrderRequest) lines() []services.LineRequest {
	out := make([]services.LineRequest, len(r.Items))
	for i, it := range r.Items {
		out[i] = services.LineRequest{MenuItemID: it.MenuItemID, Quantity: it.Quantity}
	}
	return out
}

// PlaceOrder creates a pending order priced from the current menu
func PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	order, err := services.NewOrderService(config.DB).PlaceOrder(middleware.GetUserID(c), req.lines(), req.SpecialInstructions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// Checkout prices the cart and records it as an already delivered order
func Checkout(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	order, err := services.NewOrderService(config.DB).Checkout(middleware.GetUserID(c), req.lines(), req.SpecialInstructions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Checkout completed successfully",
		"order":        order,
		"total_amount": order.TotalAmount,
	})
}

// GetMyOrders returns the caller's order history, newest first
func GetMyOrders(c *gin.Context) {
	orders, err := services.NewOrderService(config.DB).ListForUser(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
