package handlers

import (
	"net/http"

	"restaurant-api/config"
	"restaurant-api/middleware"
	"restaurant-api/services"
	"restaurant-api/storage"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Images receives uploaded menu images. main sets it from the storage config.
var Images storage.ImageStore

type MenuItemRequest struct {
	Name        string           `json:"food_name" binding:"required"`
	Description string           `json:"food_description"`
	Price       *decimal.Decimal `json:"food_price"`
	IsAvailable *bool            `json:"is_available"`
	Image       string           `json:"food_image"`
}

type MenuItemUpdateRequest struct {
	Name        *string          `json:"food_name"`
	Description *string          `json:"food_description"`
	Price       *decimal.Decimal `json:"food_price"`
	IsAvailable *bool            `json:"is_available"`
}

// AdminAddMenuItem creates a menu item, uploading its image if one is sent
func AdminAddMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	in := services.CreateMenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		IsAvailable: req.IsAvailable,
		Image:       req.Image,
	}
	if req.Price != nil {
		in.Price = *req.Price
	}

	item, err := services.NewMenuService(config.DB, Images).Create(c.Request.Context(), middleware.GetAdminScope(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Menu item added successfully",
		"menu_item": item,
	})
}

// AdminListMenuItems returns every menu item including unavailable ones
func AdminListMenuItems(c *gin.Context) {
	items, err := services.NewMenuService(config.DB, Images).ListAll(middleware.GetAdminScope(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "menu_items": items})
}

func AdminUpdateMenuItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req MenuItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	item, err := services.NewMenuService(config.DB, Images).Update(middleware.GetAdminScope(c), id, services.UpdateMenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Menu item updated successfully",
		"menu_item": item,
	})
}

func AdminDeleteMenuItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := services.NewMenuService(config.DB, Images).Delete(middleware.GetAdminScope(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}
