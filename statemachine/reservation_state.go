package statemachine

import "restaurant-api/models"

// Reservations is the reservation lifecycle. Rejection is an admin override
// to cancelled and is not expressed here.
var Reservations = newMachine("reservation", []Transition[models.ReservationStatus]{
	{From: models.ReservationPending, To: models.ReservationConfirmed},
	{From: models.ReservationPending, To: models.ReservationCancelled},
	{From: models.ReservationConfirmed, To: models.ReservationSeated},
	{From: models.ReservationConfirmed, To: models.ReservationNoShow},
	{From: models.ReservationConfirmed, To: models.ReservationCancelled},
	{From: models.ReservationSeated, To: models.ReservationCompleted},
})
