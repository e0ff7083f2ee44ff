package handlers

import (
	"net/http"

	"restaurant-api/config"
	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/services"

	"github.com/gin-gonic/gin"
)

type ApproveRequest struct {
	TableNumber *int `json:"table_number"`
}

type AssignTableRequest struct {
	TableNumber int `json:"table_number" binding:"required"`
}

func AdminListReservations(c *gin.Context) {
	list, err := services.NewReservationService(config.DB).ListAll(middleware.GetAdminScope(c), services.ReservationFilter{
		Status: models.ReservationStatus(c.Query("status")),
		Date:   c.Query("date"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "reservations": list})
}

// AdminApproveReservation confirms a pending reservation, optionally seating
// it at a table. The body may be empty.
func AdminApproveReservation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ApproveRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}
	r, err := services.NewReservationService(config.DB).Approve(middleware.GetAdminScope(c), id, req.TableNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Reservation approved successfully",
		"reservation": r,
	})
}

func AdminRejectReservation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	r, err := services.NewReservationService(config.DB).Reject(middleware.GetAdminScope(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Reservation rejected",
		"reservation": r,
	})
}

func AdminUpdateReservationStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	r, err := services.NewReservationService(config.DB).UpdateStatus(middleware.GetAdminScope(c), id, models.ReservationStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Reservation status updated",
		"reservation": r,
	})
}

func AdminAssignTable(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req AssignTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	r, err := services.NewReservationService(config.DB).AssignTable(middleware.GetAdminScope(c), id, req.TableNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Table assigned",
		"reservation": r,
	})
}
