package handlers

import (
	"net/http"
	"strconv"

	"restaurant-api/config"
	"restaurant-api/middleware"
	"restaurant-api/services"

	"github.com/gin-gonic/gin"
)

type ReviewRequest struct {
	OrderID     uint   `json:"order_id" binding:"required"`
	Stars       int    `json:"stars" binding:"required"`
	Description string `json:"description"`
}

// CreateReview attaches the caller's review to one of their orders
func CreateReview(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	review, err := services.NewReviewService(config.DB).Create(middleware.GetUserID(c), req.OrderID, req.Stars, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Review submitted successfully",
		"review":  review,
	})
}

// ListReviews is the public, paginated review feed
func ListReviews(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(services.DefaultPageSize)))
	result, err := services.NewReviewService(config.DB).ListPublic(page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func AdminListReviews(c *gin.Context) {
	reviews, err := services.NewReviewService(config.DB).ListAll(middleware.GetAdminScope(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func AdminDeleteReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := services.NewReviewService(config.DB).Delete(middleware.GetAdminScope(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
