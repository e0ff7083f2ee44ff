package services

import (
	"fmt"
	"time"

	"restaurant-api/apperr"
	"restaurant-api/models"
	"restaurant-api/statemachine"

	"gorm.io/gorm"
)

// TableCount is the fixed number of tables, numbered 1..TableCount.
const TableCount = 20

const (
	MinPartySize = 1
	MaxPartySize = 20
)

type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

type CreateReservationInput struct {
	Date            string
	Time            string
	PartySize       int
	SpecialRequests string
}

// ParseSlot validates a date (YYYY-MM-DD) and time (HH:MM or HH:MM:SS) and
// returns them in canonical storage form together with the local instant.
func ParseSlot(date, clock string) (string, string, time.Time, error) {
	d, err := time.ParseInLocation(models.DateLayout, date, time.Local)
	if err != nil {
		return "", "", time.Time{}, apperr.Validation("reservation_date must be formatted as YYYY-MM-DD")
	}
	var c time.Time
	if c, err = time.Parse(models.TimeLayout, clock); err != nil {
		if c, err = time.Parse("15:04:05", clock); err != nil {
			return "", "", time.Time{}, apperr.Validation("reservation_time must be formatted as HH:MM")
		}
	}
	at := time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, time.Local)
	return at.Format(models.DateLayout), at.Format(models.TimeLayout), at, nil
}

// Create books a pending reservation with no table assigned.
func (s *ReservationService) Create(userID uint, in CreateReservationInput) (*models.Reservation, error) {
	date, clock, at, err := ParseSlot(in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	if at.Before(now()) {
		return nil, apperr.Validation("Cannot make reservations for past dates and times")
	}
	if in.PartySize < MinPartySize || in.PartySize > MaxPartySize {
		return nil, apperr.Validation("party_size must be between %d and %d", MinPartySize, MaxPartySize)
	}

	r := models.Reservation{
		UserID:          userID,
		ReservationDate: date,
		ReservationTime: clock,
		PartySize:       in.PartySize,
		SpecialRequests: in.SpecialRequests,
		Status:          models.ReservationPending,
	}
	if err := s.DB.Omit("User").Create(&r).Error; err != nil {
		return nil, apperr.Internal(err, "failed to create reservation")
	}
	return &r, nil
}

func (s *ReservationService) ListForUser(userID uint) ([]models.Reservation, error) {
	var out []models.Reservation
	err := s.DB.Where("user_id = ?", userID).
		Order("reservation_date, reservation_time").
		Find(&out).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to load reservations")
	}
	return out, nil
}

// Availability returns the tables not held by a confirmed or seated
// reservation at the slot, in ascending order.
func (s *ReservationService) Availability(date, clock string) ([]int, error) {
	date, clock, _, err := ParseSlot(date, clock)
	if err != nil {
		return nil, err
	}
	var taken []int
	err = s.DB.Model(&models.Reservation{}).
		Where("reservation_date = ? AND reservation_time = ? AND status IN ? AND table_number IS NOT NULL",
			date, clock, models.HoldingReservationStatuses).
		Pluck("table_number", &taken).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to load reservations")
	}

	held := make(map[int]bool, len(taken))
	for _, n := range taken {
		held[n] = true
	}
	free := make([]int, 0, TableCount)
	for n := 1; n <= TableCount; n++ {
		if !held[n] {
			free = append(free, n)
		}
	}
	return free, nil
}

type ReservationFilter struct {
	Status models.ReservationStatus
	Date   string
}

func (s *ReservationService) ListAll(scope AdminScope, f ReservationFilter) ([]models.Reservation, error) {
	if err := scope.check(); err != nil {
		return nil, err
	}
	q := s.DB.Preload("User")
	if f.Status != "" {
		if !f.Status.Valid() {
			return nil, apperr.Validation("unknown reservation status %q", f.Status)
		}
		q = q.Where("status = ?", f.Status)
	}
	if f.Date != "" {
		q = q.Where("reservation_date = ?", f.Date)
	}
	var out []models.Reservation
	if err := q.Order("reservation_date, reservation_time, id").Find(&out).Error; err != nil {
		return nil, apperr.Internal(err, "failed to load reservations")
	}
	return out, nil
}

// Approve confirms a pending reservation. When table is given the slot must
// not already be held by another confirmed or seated reservation.
func (s *ReservationService) Approve(scope AdminScope, id uint, table *int) (*models.Reservation, error) {
	if err := scope.check(); err != nil {
		return nil, err
	}
	return s.transition(id, models.ReservationConfirmed, table)
}

// AssignTable gives a table to a reservation that already holds its slot,
// running the same exclusivity check as Approve.
func (s *ReservationService) AssignTable(scope AdminScope, id uint, table int) (*models.Reservation, error) {
	if err := scope.check(); err != nil {
		return nil, err
	}
	return s.mutate(id, func(tx *gorm.DB, r *models.Reservation) (map[string]any, error) {
		if !r.Status.Holding() {
			return nil, apperr.Validation("only confirmed or seated reservations can be assigned a table (status is %s)", r.Status)
		}
		if err := checkSlot(tx, r, table); err != nil {
			return nil, err
		}
		return map[string]any{"table_number": table}, nil
	})
}

// Reject cancels a reservation from any state. Rejecting a cancelled
// reservation changes nothing.
func (s *ReservationService) Reject(scope AdminScope, id uint) (*models.Reservation, error) {
	if err := scope.check(); err != nil {
		return nil, err
	}
	return s.mutate(id, func(_ *gorm.DB, r *models.Reservation) (map[string]any, error) {
		if r.Status == models.ReservationCancelled {
			return nil, nil
		}
		return map[string]any{"status": models.ReservationCancelled}, nil
	})
}

// UpdateStatus applies any transition from the reservation table. Moving to
// confirmed behaves like Approve without a table.
func (s *ReservationService) UpdateStatus(scope AdminScope, id uint, to models.ReservationStatus) (*models.Reservation, error) {
	if err := scope.check(); err != nil {
		return nil, err
	}
	if !to.Valid() {
		return nil, apperr.Validation("unknown reservation status %q", to)
	}
	return s.transition(id, to, nil)
}

func (s *ReservationService) transition(id uint, to models.ReservationStatus, table *int) (*models.Reservation, error) {
	return s.mutate(id, func(tx *gorm.DB, r *models.Reservation) (map[string]any, error) {
		if err := statemachine.Reservations.CanTransition(r.Status, to); err != nil {
			return nil, apperr.Validation("%v", err).
				With("current_status", r.Status).
				With("valid_next_states", statemachine.Reservations.ValidTransitionsFrom(r.Status))
		}
		updates := map[string]any{"status": to}
		if table != nil {
			if err := checkSlot(tx, r, *table); err != nil {
				return nil, err
			}
			updates["table_number"] = *table
		}
		return updates, nil
	})
}

// mutate loads the reservation inside a transaction, lets fn decide the
// column updates, and applies them guarded on the status that was read.
// A nil update map leaves the row untouched.
func (s *ReservationService) mutate(id uint, fn func(tx *gorm.DB, r *models.Reservation) (map[string]any, error)) (*models.Reservation, error) {
	var out *models.Reservation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		r, err := firstByID[models.Reservation](tx, id, "Reservation")
		if err != nil {
			return err
		}
		updates, err := fn(tx, r)
		if err != nil {
			return err
		}
		if len(updates) > 0 {
			res := tx.Model(&models.Reservation{}).
				Where("id = ? AND status = ?", r.ID, r.Status).
				Updates(updates)
			if isDuplicateKey(res.Error) {
				return slotConflict(r, updates)
			}
			if res.Error != nil {
				return apperr.Internal(res.Error, "failed to update reservation")
			}
			if res.RowsAffected == 0 {
				return apperr.Conflict("Reservation was modified concurrently; retry")
			}
		}
		out, err = firstByID[models.Reservation](tx, id, "Reservation")
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func checkSlot(tx *gorm.DB, r *models.Reservation, table int) error {
	if table < 1 || table > TableCount {
		return apperr.Validation("table_number must be between 1 and %d", TableCount)
	}
	var clash int64
	err := tx.Model(&models.Reservation{}).
		Where("reservation_date = ? AND reservation_time = ? AND table_number = ? AND status IN ? AND id <> ?",
			r.ReservationDate, r.ReservationTime, table, models.HoldingReservationStatuses, r.ID).
		Count(&clash).Error
	if err != nil {
		return apperr.Internal(err, "failed to check table availability")
	}
	if clash > 0 {
		return slotConflict(r, map[string]any{"table_number": table})
	}
	return nil
}

func slotConflict(r *models.Reservation, updates map[string]any) error {
	table := "The requested table"
	if n, ok := updates["table_number"]; ok {
		table = fmt.Sprintf("Table %v", n)
	} else if r.TableNumber != nil {
		table = fmt.Sprintf("Table %d", *r.TableNumber)
	}
	return apperr.Conflict("%s is already reserved for %s at %s",
		table, r.ReservationDate, r.ReservationTime).
		With("reservation_date", r.ReservationDate).
		With("reservation_time", r.ReservationTime)
}
