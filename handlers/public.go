package handlers

import (
	"net/http"

	"restaurant-api/config"
	"restaurant-api/services"
	"restaurant-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetMenu returns the available menu items (public)
func GetMenu(c *gin.Context) {
	items, err := services.NewMenuService(config.DB, Images).ListAvailable()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetStateMachineInfo describes both lifecycles for API consumers
func GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"order": gin.H{
			"transitions":     statemachine.Orders.Transitions(),
			"terminal_states": statemachine.Orders.TerminalStates(),
			"description":     "Order lifecycle; checkout records orders as delivered immediately",
		},
		"reservation": gin.H{
			"transitions":     statemachine.Reservations.Transitions(),
			"terminal_states": statemachine.Reservations.TerminalStates(),
			"description":     "Reservation lifecycle; admin reject cancels from any state",
		},
		"table_count": services.TableCount,
	})
}
