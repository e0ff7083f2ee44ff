package services

import (
	"errors"

	"restaurant-api/apperr"
	"restaurant-api/models"

	"gorm.io/gorm"
)

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

// Create binds a review to an order owned by userID. An order carries at
// most one review; the unique index on order_id backs the existence check.
func (s *ReviewService) Create(userID, orderID uint, stars int, description string) (*models.Review, error) {
	if stars < 1 || stars > 5 {
		return nil, apperr.Validation("stars must be between 1 and 5")
	}

	var review models.Review
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Validation("Order not found or doesn't belong to you")
		}
		if err != nil {
			return apperr.Internal(err, "failed to load order")
		}

		var existing int64
		if err := tx.Model(&models.Review{}).Where("order_id = ?", orderID).Count(&existing).Error; err != nil {
			return apperr.Internal(err, "failed to check existing review")
		}
		if existing > 0 {
			return apperr.Validation("This order already has a review")
		}

		review = models.Review{
			OrderID:     orderID,
			UserID:      userID,
			Stars:       stars,
			Description: description,
		}
		if err := tx.Omit("User").Create(&review).Error; err != nil {
			if isDuplicateKey(err) {
				return apperr.Validation("This order already has a review")
			}
			return apperr.Internal(err, "failed to save review")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListPublic returns reviews newest first, one page at a time.
func (s *ReviewService) ListPublic(page, size int) (Page[models.Review], error) {
	page, size = normalizePage(page, size)

	var count int64
	if err := s.DB.Model(&models.Review{}).Count(&count).Error; err != nil {
		return Page[models.Review]{}, apperr.Internal(err, "failed to count reviews")
	}
	var out []models.Review
	err := s.DB.Preload("User").
		Order("created_at DESC, id DESC").
		Limit(size).Offset((page - 1) * size).
		Find(&out).Error
	if err != nil {
		return Page[models.Review]{}, apperr.Internal(err, "failed to load reviews")
	}
	return newPage(out, count, page, size), nil
}

func (s *ReviewService) ListAll(scope AdminScope) ([]models.Review, error) {
	if err := scope.check(); err != nil {
		return nil, err
	}
	var out []models.Review
	if err := s.DB.Preload("User").Order("created_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, apperr.Internal(err, "failed to load reviews")
	}
	return out, nil
}

func (s *ReviewService) Delete(scope AdminScope, id uint) error {
	if err := scope.check(); err != nil {
		return err
	}
	res := s.DB.Delete(&models.Review{}, id)
	if res.Error != nil {
		return apperr.Internal(res.Error, "failed to delete review")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Review not found")
	}
	return nil
}
