package models

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationSeated    ReservationStatus = "seated"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationNoShow    ReservationStatus = "no_show"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationSeated,
		ReservationCompleted, ReservationCancelled, ReservationNoShow:
		return true
	}
	return false
}

// Holding reports whether a reservation in this status occupies its table.
func (s ReservationStatus) Holding() bool {
	return s == ReservationConfirmed || s == ReservationSeated
}

// HoldingReservationStatuses is the set used by slot exclusivity checks and the
// partial unique index created at migration time.
var HoldingReservationStatuses = []ReservationStatus{ReservationConfirmed, ReservationSeated}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Reservation struct {
	ID              uint              `json:"id" gorm:"primaryKey"`
	UserID          uint              `json:"user_id" gorm:"not null;index"`
	User            *User             `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ReservationDate string            `json:"reservation_date" gorm:"not null;index:idx_reservation_slot"`
	ReservationTime string            `json:"reservation_time" gorm:"not null;index:idx_reservation_slot"`
	PartySize       int               `json:"party_size" gorm:"not null;check:party_size BETWEEN 1 AND 20"`
	TableNumber     *int              `json:"table_number"`
	SpecialRequests string            `json:"special_requests"`
	Status          ReservationStatus `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
