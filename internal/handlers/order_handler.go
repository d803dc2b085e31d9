package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"tableside/internal/middleware"
	"tableside/internal/models"
	"tableside/internal/services"
	"tableside/internal/session"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
	sessions     session.Store
}

func NewOrderHandler(orderService services.OrderService, sessions session.Store) *OrderHandler {
	return &OrderHandler{orderService: orderService, sessions: sessions}
}

type OrderLineRequest struct {
	MenuItemID uint   `json:"menuItemId"`
	Name       string `json:"name" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required"`
	UnitPrice  string `json:"unitPrice" binding:"required"`
}

type CreateOrderRequest struct {
	TableNumber  int                `json:"tableNumber" binding:"required"`
	CustomerName string             `json:"customerName" binding:"required"`
	Items        []OrderLineRequest `json:"items" binding:"required"`
	Total        string             `json:"total" binding:"required"`
	Timestamp    string             `json:"timestamp"`
	Date         string             `json:"date"`
}

// List returns orders newest first. Staff with a live session get every
// order; anyone else must scope the query to their own table and name, so
// order data never leaves the server unfiltered.
func (h *OrderHandler) List(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	if _, ok := middleware.CurrentUserID(c, h.sessions); ok {
		orders, err := h.orderService.GetAll()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
		return
	}

	table, err := strconv.Atoi(c.Query("table"))
	customer := c.Query("customer")
	if err != nil || table <= 0 || customer == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "table and customer query parameters are required"})
		return
	}

	orders, err := h.orderService.GetForCustomer(table, customer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// Create submits a new table order. The cart snapshot is copied as typed
// lines and the order starts out pending.
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	order := &models.Order{
		TableNumber:  req.TableNumber,
		CustomerName: req.CustomerName,
		Total:        req.Total,
		Timestamp:    req.Timestamp,
		Date:         req.Date,
	}
	for _, line := range req.Items {
		order.Items = append(order.Items, models.OrderLine{
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
		})
	}

	if err := h.orderService.Create(order); err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus advances an order through the lifecycle. Admin only.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	order, err := h.orderService.UpdateStatus(uint(id), models.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}
