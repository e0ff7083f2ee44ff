package services

import (
	"context"

	"restaurant-api/apperr"
	"restaurant-api/models"
	"restaurant-api/storage"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuService struct {
	DB     *gorm.DB
	Images storage.ImageStore
}

func NewMenuService(db *gorm.DB, images storage.ImageStore) *MenuService {
	return &MenuService{DB: db, Images: images}
}

type CreateMenuItemInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	IsAvailable *bool
	// Image is an optional base64 data URL.
	Image string
}

type UpdateMenuItemInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	IsAvailable *bool
}

// ListAvailable returns the public menu ordered by name.
func (s *MenuService) ListAvailable() ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.DB.Where("is_available = ?", true).Order("name").Find(&items).Error; err != nil {
		return nil, apperr.Internal(err, "failed to load menu")
	}
	return items, nil
}

func (s *MenuService) ListAll(scope AdminScope) ([]models.MenuItem, error) {
	if err := scope.check(); err != nil {
		return nil, err
	}
	var items []models.MenuItem
	if err := s.DB.Order("name").Find(&items).Error; err != nil {
		return nil, apperr.Internal(err, "failed to load menu")
	}
	return items, nil
}

func (s *MenuService) Create(ctx context.Context, scope AdminScope, in CreateMenuItemInput) (*models.MenuItem, error) {
	if err := scope.check(); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, apperr.Validation("food_name is required")
	}
	price := in.Price.Round(2)
	if !price.IsPositive() {
		return nil, apperr.Validation("food_price must be at least 0.01")
	}

	item := models.MenuItem{
		Name:        in.Name,
		Description: in.Description,
		Price:       price,
		IsAvailable: true,
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}

	if in.Image != "" {
		if s.Images == nil {
			return nil, apperr.BadRequest("image uploads are not configured")
		}
		img, err := storage.DecodeDataURL(in.Image)
		if err != nil {
			return nil, apperr.Validation("food_image: %v", err)
		}
		url, err := s.Images.Put(ctx, storage.MenuImageKey(in.Name, img.Ext), img.Data, img.ContentType)
		if err != nil {
			return nil, apperr.Internal(err, "failed to store menu image")
		}
		item.ImageURL = url
	}

	if err := s.DB.Create(&item).Error; err != nil {
		return nil, apperr.Internal(err, "failed to add menu item")
	}
	return &item, nil
}

// Update changes catalog fields. Existing order lines keep their own price.
func (s *MenuService) Update(scope AdminScope, id uint, in UpdateMenuItemInput) (*models.MenuItem, error) {
	if err := scope.check(); err != nil {
		return nil, err
	}
	item, err := firstByID[models.MenuItem](s.DB, id, "Menu item")
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, apperr.Validation("food_name cannot be empty")
		}
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Price != nil {
		price := in.Price.Round(2)
		if !price.IsPositive() {
			return nil, apperr.Validation("food_price must be at least 0.01")
		}
		updates["price"] = price
	}
	if in.IsAvailable != nil {
		updates["is_available"] = *in.IsAvailable
	}
	if len(updates) == 0 {
		return nil, apperr.BadRequest("no updatable fields supplied")
	}

	if err := s.DB.Model(item).Updates(updates).Error; err != nil {
		return nil, apperr.Internal(err, "failed to update menu item")
	}
	return firstByID[models.MenuItem](s.DB, id, "Menu item")
}

// Delete removes an item that no order line references.
func (s *MenuService) Delete(scope AdminScope, id uint) error {
	if err := scope.check(); err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		item, err := firstByID[models.MenuItem](tx, id, "Menu item")
		if err != nil {
			return err
		}
		var refs int64
		if err := tx.Model(&models.OrderLine{}).Where("menu_item_id = ?", id).Count(&refs).Error; err != nil {
			return apperr.Internal(err, "failed to check menu item references")
		}
		if refs > 0 {
			return apperr.Conflict("Menu item '%s' is referenced by %d order line(s); mark it unavailable instead", item.Name, refs).
				With("order_lines", refs)
		}
		if err := tx.Delete(item).Error; err != nil {
			return apperr.Internal(err, "failed to delete menu item")
		}
		return nil
	})
}
