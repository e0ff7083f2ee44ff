package services

import (
	"errors"
	"sort"

	"restaurant-api/apperr"
	"restaurant-api/models"
	"restaurant-api/statemachine"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LineRequest struct {
	MenuItemID uint
	Quantity   int
}

type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

// PlaceOrder creates a pending order priced from the current catalog.
func (s *OrderService) PlaceOrder(userID uint, lines []LineRequest, instructions string) (*models.Order, error) {
	return s.create(userID, lines, instructions, models.OrderPending)
}

// Checkout prices the cart like PlaceOrder but records the order as delivered
// immediately; there is no kitchen workflow behind it.
func (s *OrderService) Checkout(userID uint, lines []LineRequest, instructions string) (*models.Order, error) {
	return s.create(userID, lines, instructions, models.OrderDelivered)
}

func (s *OrderService) create(userID uint, reqs []LineRequest, instructions string, status models.OrderStatus) (*models.Order, error) {
	if len(reqs) == 0 {
		return nil, apperr.Validation("items must contain at least one entry")
	}
	for i, r := range reqs {
		if r.Quantity < 1 {
			return nil, apperr.Validation("items[%d].quantity must be a positive integer", i)
		}
	}

	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		lines, total, err := priceLines(tx, reqs)
		if err != nil {
			return err
		}

		order = models.Order{
			UserID:              userID,
			Status:              status,
			TotalAmount:         total,
			SpecialInstructions: instructions,
		}
		if err := tx.Omit("Lines", "Review", "User", "StatusHistory").Create(&order).Error; err != nil {
			return apperr.Internal(err, "failed to place order")
		}
		for i := range lines {
			lines[i].OrderID = order.ID
		}
		if err := tx.Omit("MenuItem").Create(&lines).Error; err != nil {
			return apperr.Internal(err, "failed to save order items")
		}
		order.Lines = lines

		note := "order placed"
		if status == models.OrderDelivered {
			note = "checkout"
		}
		entry := models.OrderStatusHistory{OrderID: order.ID, ToStatus: status, ChangedBy: userID, Note: note}
		if err := tx.Create(&entry).Error; err != nil {
			return apperr.Internal(err, "failed to record order status")
		}
		order.StatusHistory = []models.OrderStatusHistory{entry}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// priceLines snapshots each menu item's current price and name into a line
// and returns the order total.
func priceLines(tx *gorm.DB, reqs []LineRequest) ([]models.OrderLine, decimal.Decimal, error) {
	ids := make([]uint, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.MenuItemID)
	}
	var items []models.MenuItem
	if err := tx.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, decimal.Zero, apperr.Internal(err, "failed to load menu items")
	}
	byID := make(map[uint]models.MenuItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	var missing []uint
	seen := map[uint]bool{}
	for _, id := range ids {
		if _, ok := byID[id]; !ok && !seen[id] {
			missing = append(missing, id)
			seen[id] = true
		}
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return nil, decimal.Zero, apperr.NotFound("Menu item(s) not found").With("missing_ids", missing)
	}

	total := decimal.Zero
	lines := make([]models.OrderLine, 0, len(reqs))
	for _, r := range reqs {
		item := byID[r.MenuItemID]
		if !item.IsAvailable {
			return nil, decimal.Zero, apperr.Validation("Menu item '%s' is not available", item.Name)
		}
		line := models.OrderLine{
			MenuItemID:  item.ID,
			Name:        item.Name,
			Quantity:    r.Quantity,
			PriceAtTime: item.Price,
		}
		total = total.Add(line.Subtotal())
		lines = append(lines, line)
	}
	return lines, total, nil
}

// ListForUser returns the user's orders newest first with their lines.
func (s *OrderService) ListForUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Preload("Lines").Preload("Review").
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&orders).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to load orders")
	}
	return orders, nil
}

func (s *OrderService) Get(id uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.Preload("Lines").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, apperr.Internal(err, "failed to load order")
	}
	return &order, nil
}

type OrderFilter struct {
	Status models.OrderStatus
	UserID uint
}

type OrderSummary struct {
	Count    int                        `json:"count"`
	ByStatus map[models.OrderStatus]int `json:"by_status"`
	Revenue  decimal.Decimal            `json:"delivered_revenue"`
}

func (s *OrderService) ListAll(scope AdminScope, f OrderFilter) ([]models.Order, OrderSummary, error) {
	var summary OrderSummary
	if err := scope.check(); err != nil {
		return nil, summary, err
	}
	q := s.DB.Preload("Lines").Preload("User").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
	if f.Status != "" {
		if !f.Status.Valid() {
			return nil, summary, apperr.Validation("unknown order status %q", f.Status)
		}
		q = q.Where("status = ?", f.Status)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	var orders []models.Order
	if err := q.Order("created_at desc, id desc").Find(&orders).Error; err != nil {
		return nil, summary, apperr.Internal(err, "failed to load orders")
	}

	summary = OrderSummary{Count: len(orders), ByStatus: map[models.OrderStatus]int{}, Revenue: decimal.Zero}
	for _, o := range orders {
		summary.ByStatus[o.Status]++
		if o.Status == models.OrderDelivered {
			summary.Revenue = summary.Revenue.Add(o.TotalAmount)
		}
	}
	return orders, summary, nil
}

// UpdateStatus moves an order along the order transition table. The update is
// guarded on the previous status so concurrent changes cannot both win.
func (s *OrderService) UpdateStatus(scope AdminScope, id uint, to models.OrderStatus) (*models.Order, models.OrderStatus, error) {
	if err := scope.check(); err != nil {
		return nil, "", err
	}
	if !to.Valid() {
		return nil, "", apperr.Validation("unknown order status %q", to)
	}

	var prev models.OrderStatus
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := firstByID[models.Order](tx, id, "Order")
		if err != nil {
			return err
		}
		prev = order.Status
		if err := statemachine.Orders.CanTransition(order.Status, to); err != nil {
			return apperr.Validation("%v", err).
				With("current_status", order.Status).
				With("valid_next_states", statemachine.Orders.ValidTransitionsFrom(order.Status))
		}
		res := tx.Model(&models.Order{}).Where("id = ? AND status = ?", id, prev).Update("status", to)
		if res.Error != nil {
			return apperr.Internal(res.Error, "failed to update order status")
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict("Order status changed concurrently; retry")
		}
		entry := models.OrderStatusHistory{OrderID: id, FromStatus: prev, ToStatus: to, ChangedBy: scope.ActorID(), Note: "admin update"}
		if err := tx.Create(&entry).Error; err != nil {
			return apperr.Internal(err, "failed to record order status")
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	order, err := s.Get(id)
	return order, prev, err
}
