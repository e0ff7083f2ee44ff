package handlers

import (
	"net/http"

	"restaurant-api/config"
	"restaurant-api/middleware"
	"restaurant-api/services"

	"github.com/gin-gonic/gin"
)

type ReservationRequest struct {
	ReservationDate string `json:"reservation_date" binding:"required"`
	ReservationTime string `json:"reservation_time" binding:"required"`
	PartySize       int    `json:"party_size" binding:"required"`
	SpecialRequests string `json:"special_requests"`
}

// CreateReservation books a pending table request
func CreateReservation(c *gin.Context) {
	var req ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	r, err := services.NewReservationService(config.DB).Create(middleware.GetUserID(c), services.CreateReservationInput{
		Date:            req.ReservationDate,
		Time:            req.ReservationTime,
		PartySize:       req.PartySize,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Reservation created successfully",
		"reservation": r,
	})
}

func GetMyReservations(c *gin.Context) {
	list, err := services.NewReservationService(config.DB).ListForUser(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetAvailability lists the free tables for ?date=YYYY-MM-DD&time=HH:MM
func GetAvailability(c *gin.Context) {
	date, clock := c.Query("date"), c.Query("time")
	if date == "" || clock == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and time query parameters are required"})
		return
	}
	free, err := services.NewReservationService(config.DB).Availability(date, clock)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":             date,
		"time":             clock,
		"available_tables": free,
		"total_tables":     services.TableCount,
	})
}
