package services

import (
	"sort"

	"restaurant-api/apperr"
	"restaurant-api/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecentLimit caps the recent orders and reservations in a user detail view.
const RecentLimit = 5

type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

// UserStats is the per-user aggregate reported by detail views and
// collected before a delete.
type UserStats struct {
	UserID            uint            `json:"user_id"`
	Email             string          `json:"email"`
	Username          string          `json:"username"`
	OrdersCount       int64           `json:"orders_count"`
	ReservationsCount int64           `json:"reservations_count"`
	ReviewsCount      int64           `json:"reviews_count"`
	TotalSpent        decimal.Decimal `json:"total_spent"`
}

type UserDetail struct {
	User               models.User          `json:"user"`
	Stats              UserStats            `json:"stats"`
	RecentOrders       []models.Order       `json:"recent_orders"`
	RecentReservations []models.Reservation `json:"recent_reservations"`
}

func (s *AdminService) ListUsers(scope AdminScope) ([]models.User, error) {
	if err := scope.check(); err != nil {
		return nil, err
	}
	var users []models.User
	if err := s.DB.Order("created_at DESC, id DESC").Find(&users).Error; err != nil {
		return nil, apperr.Internal(err, "failed to load users")
	}
	return users, nil
}

func (s *AdminService) UserDetail(scope AdminScope, id uint) (*UserDetail, error) {
	if err := scope.check(); err != nil {
		return nil, err
	}
	user, err := firstByID[models.User](s.DB, id, "User")
	if err != nil {
		return nil, err
	}
	stats, err := collectStats(s.DB, user)
	if err != nil {
		return nil, err
	}

	d := &UserDetail{User: *user, Stats: *stats}
	err = s.DB.Where("user_id = ?", id).
		Order("created_at DESC, id DESC").
		Limit(RecentLimit).
		Find(&d.RecentOrders).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to load recent orders")
	}
	err = s.DB.Where("user_id = ?", id).
		Order("created_at DESC, id DESC").
		Limit(RecentLimit).
		Find(&d.RecentReservations).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to load recent reservations")
	}
	return d, nil
}

// DeleteUser removes a user and everything they own in one transaction and
// reports the counts collected before deletion.
func (s *AdminService) DeleteUser(scope AdminScope, id uint) (*UserStats, error) {
	if err := scope.check(); err != nil {
		return nil, err
	}
	if id == scope.ActorID() {
		return nil, apperr.BadRequest("You cannot delete your own account")
	}

	var stats *UserStats
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		user, err := firstByID[models.User](tx, id, "User")
		if err != nil {
			return err
		}
		if stats, err = collectStats(tx, user); err != nil {
			return err
		}
		return deleteCascade(tx, user.ID)
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// BulkDelete deletes every listed user or none of them. Unknown ids fail the
// whole request with NotFound; once every id resolves, the caller's own id
// fails it with BadRequest.
func (s *AdminService) BulkDelete(scope AdminScope, ids []uint) ([]UserStats, error) {
	if err := scope.check(); err != nil {
		return nil, err
	}
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return nil, apperr.BadRequest("user_ids must contain at least one id")
	}
	var out []UserStats
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var users []models.User
		if err := tx.Where("id IN ?", ids).Order("id").Find(&users).Error; err != nil {
			return apperr.Internal(err, "failed to load users")
		}
		if len(users) != len(ids) {
			found := make(map[uint]bool, len(users))
			for _, u := range users {
				found[u.ID] = true
			}
			var missing []uint
			for _, id := range ids {
				if !found[id] {
					missing = append(missing, id)
				}
			}
			return apperr.NotFound("User(s) not found").With("missing_ids", missing)
		}
		for _, u := range users {
			if u.ID == scope.ActorID() {
				return apperr.BadRequest("You cannot delete your own account").With("user_id", u.ID)
			}
		}

		out = make([]UserStats, 0, len(users))
		for i := range users {
			stats, err := collectStats(tx, &users[i])
			if err != nil {
				return err
			}
			if err := deleteCascade(tx, users[i].ID); err != nil {
				return err
			}
			out = append(out, *stats)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func collectStats(db *gorm.DB, u *models.User) (*UserStats, error) {
	st := &UserStats{UserID: u.ID, Email: u.Email, Username: u.Username, TotalSpent: decimal.Zero}

	var totals []decimal.Decimal
	if err := db.Model(&models.Order{}).Where("user_id = ?", u.ID).Pluck("total_amount", &totals).Error; err != nil {
		return nil, apperr.Internal(err, "failed to load orders")
	}
	st.OrdersCount = int64(len(totals))
	for _, t := range totals {
		st.TotalSpent = st.TotalSpent.Add(t)
	}

	if err := db.Model(&models.Reservation{}).Where("user_id = ?", u.ID).Count(&st.ReservationsCount).Error; err != nil {
		return nil, apperr.Internal(err, "failed to count reservations")
	}
	if err := db.Model(&models.Review{}).Where("user_id = ?", u.ID).Count(&st.ReviewsCount).Error; err != nil {
		return nil, apperr.Internal(err, "failed to count reviews")
	}
	return st, nil
}

// deleteCascade removes a user's rows children first: reviews written by the
// user or attached to the user's orders, then status history, order lines, orders,
// reservations and finally the user.
func deleteCascade(tx *gorm.DB, userID uint) error {
	var orderIDs []uint
	if err := tx.Model(&models.Order{}).Where("user_id = ?", userID).Pluck("id", &orderIDs).Error; err != nil {
		return apperr.Internal(err, "failed to load orders")
	}

	steps := []struct {
		what string
		run  func() error
	}{
		{"reviews", func() error {
			q := tx.Where("user_id = ?", userID)
			if len(orderIDs) > 0 {
				q = q.Or("order_id IN ?", orderIDs)
			}
			return q.Delete(&models.Review{}).Error
		}},
		{"order status history", func() error {
			if len(orderIDs) == 0 {
				return nil
			}
			return tx.Where("order_id IN ?", orderIDs).Delete(&models.OrderStatusHistory{}).Error
		}},
		{"order items", func() error {
			if len(orderIDs) == 0 {
				return nil
			}
			return tx.Where("order_id IN ?", orderIDs).Delete(&models.OrderLine{}).Error
		}},
		{"orders", func() error {
			return tx.Where("user_id = ?", userID).Delete(&models.Order{}).Error
		}},
		{"reservations", func() error {
			return tx.Where("user_id = ?", userID).Delete(&models.Reservation{}).Error
		}},
		{"user", func() error {
			return tx.Delete(&models.User{}, userID).Error
		}},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return apperr.Internal(err, "failed to delete "+step.what)
		}
	}
	return nil
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
