package gateway

import (
	"errors"
	"net/http"

	"github.com/Sakthivel0926/food-ordering-backend/pkg/models"
	"github.com/Sakthivel0926/food-ordering-backend/pkg/ordering"
	"github.com/gin-gonic/gin"
)

type createOrderRequest struct {
	UserID        string                   `json:"userId" binding:"required"`
	Name          string                   `json:"name" binding:"required"`
	Address       string                   `json:"address" binding:"required"`
	Contact       string                   `json:"contact" binding:"required"`
	Location      string                   `json:"location" binding:"required"`
	PaymentMethod string                   `json:"paymentMethod" binding:"required"`
	Items         []ordering.RequestedItem `json:"items"`
}

func (g *Gateway) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation Error: " + err.Error()})
		return
	}

	order, err := g.orders.PlaceOrder(c.Request.Context(), ordering.PlaceOrderRequest{
		UserID:        req.UserID,
		Name:          req.Name,
		Address:       req.Address,
		Contact:       req.Contact,
		Location:      req.Location,
		PaymentMethod: req.PaymentMethod,
		Items:         req.Items,
	})
	if err != nil {
		g.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
	})
}

func (g *Gateway) listOrders(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userId is required"})
		return
	}

	orders, err := g.orders.ListOrders(c.Request.Context(), userID)
	if err != nil {
		g.respondError(c, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, orders)
}

type cancelOrderRequest struct {
	UserID string `json:"userId" binding:"required"`
}

func (g *Gateway) cancelOrder(c *gin.Context) {
	var req cancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
		return
	}

	order, err := g.orders.CancelOrder(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		// Partial stock restoration still cancels the order; surface it
		// as a warning on the success response.
		var partial *ordering.PartialRestorationError
		if errors.As(err, &partial) {
			c.JSON(http.StatusOK, gin.H{
				"message": "Order cancelled successfully",
				"warning": partial.Error(),
				"order":   order,
			})
			return
		}
		g.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled successfully",
		"order":   order,
	})
}

func (g *Gateway) deliverOrder(c *gin.Context) {
	order, err := g.orders.MarkDelivered(c.Request.Context(), c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order marked as delivered",
		"order":   order,
	})
}

type updateStatusRequest struct {
	Status models.Status `json:"status" binding:"required"`
}

func (g *Gateway) updateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "status is required"})
		return
	}

	order, err := g.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		g.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"order":   order,
	})
}
