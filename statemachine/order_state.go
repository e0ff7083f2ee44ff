package statemachine

import "restaurant-api/models"

// Orders is the authoritative order lifecycle. Checkout creates orders
// directly in the delivered state without walking this table.
var Orders = newMachine("order", []Transition[models.OrderStatus]{
	{From: models.OrderPending, To: models.OrderConfirmed},
	{From: models.OrderPending, To: models.OrderCancelled},
	{From: models.OrderConfirmed, To: models.OrderPreparing},
	{From: models.OrderConfirmed, To: models.OrderCancelled},
	{From: models.OrderPreparing, To: models.OrderReady},
	{From: models.OrderPreparing, To: models.OrderCancelled},
	{From: models.OrderReady, To: models.OrderDelivered},
})
