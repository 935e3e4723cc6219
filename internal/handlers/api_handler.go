package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"group_order_tracker/internal/models"
	"group_order_tracker/internal/services"

	"github.com/gin-gonic/gin"
)

type APIHandler struct {
	catalogService   services.CatalogService
	inventoryService services.InventoryService
	periodService    services.PeriodService
	orderService     services.OrderService
}

func NewAPIHandler(
	catalogService services.CatalogService,
	inventoryService services.InventoryService,
	periodService services.PeriodService,
	orderService services.OrderService,
) *APIHandler {
	return &APIHandler{
		catalogService:   catalogService,
		inventoryService: inventoryService,
		periodService:    periodService,
		orderService:     orderService,
	}
}

// statusForError maps service errors to HTTP status codes. Anything outside
// the taxonomy is a store failure and reports as 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrDuplicateName),
		errors.Is(err, services.ErrDuplicatePeriod),
		errors.Is(err, services.ErrNoOpenPeriod):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}

func periodJSON(period *models.OrderPeriod) gin.H {
	return gin.H{
		"id":      period.ID,
		"month":   period.Month,
		"year":    period.Year,
		"is_open": period.IsOpen,
	}
}

func orderJSON(order *models.Order) gin.H {
	items := make([]gin.H, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, gin.H{
			"product_id":   item.ProductID,
			"product_name": item.Product.Name,
			"quantity":     item.Quantity,
		})
	}
	return gin.H{
		"id":              order.ID,
		"user_id":         order.UserID,
		"user_name":       order.UserName,
		"is_delivered":    order.IsDelivered,
		"order_period_id": order.OrderPeriodID,
		"items":           items,
	}
}

func (h *APIHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts()
	if err != nil {
		abortWithError(c, err)
		return
	}

	result := make([]gin.H, 0, len(products))
	for _, product := range products {
		result = append(result, gin.H{
			"id":          product.ID,
			"name":        product.Name,
			"description": product.Description,
		})
	}
	c.JSON(http.StatusOK, result)
}

func (h *APIHandler) ListInventory(c *gin.Context) {
	records, err := h.inventoryService.ListAll()
	if err != nil {
		abortWithError(c, err)
		return
	}

	result := make([]gin.H, 0, len(records))
	for _, record := range records {
		result = append(result, gin.H{
			"product_id":   record.ProductID,
			"product_name": record.Product.Name,
			"quantity":     record.Quantity,
		})
	}
	c.JSON(http.StatusOK, result)
}

func (h *APIHandler) ListPeriods(c *gin.Context) {
	periods, err := h.periodService.ListPeriods()
	if err != nil {
		abortWithError(c, err)
		return
	}

	result := make([]gin.H, 0, len(periods))
	for _, period := range periods {
		result = append(result, periodJSON(&period))
	}
	c.JSON(http.StatusOK, result)
}

func (h *APIHandler) CurrentPeriod(c *gin.Context) {
	period, err := h.periodService.CurrentOpenPeriod()
	if err != nil {
		abortWithError(c, err)
		return
	}
	if period == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No open order period found"})
		return
	}
	c.JSON(http.StatusOK, periodJSON(period))
}

func (h *APIHandler) CreatePeriod(c *gin.Context) {
	var req struct {
		Month int `json:"month"`
		Year  int `json:"year"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	period, err := h.periodService.OpenNewPeriod(req.Month, req.Year)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, periodJSON(period))
}

func (h *APIHandler) TogglePeriod(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period id"})
		return
	}

	period, err := h.periodService.TogglePeriod(uint(id))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, periodJSON(period))
}

func (h *APIHandler) ListOrders(c *gin.Context) {
	var periodID uint
	if raw := c.Query("period_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period id"})
			return
		}
		period, err := h.periodService.GetPeriod(uint(id))
		if err != nil {
			abortWithError(c, err)
			return
		}
		periodID = period.ID
	} else {
		period, err := h.periodService.CurrentOpenPeriod()
		if err != nil {
			abortWithError(c, err)
			return
		}
		if period == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No open order period found"})
			return
		}
		periodID = period.ID
	}

	orders, err := h.orderService.OrdersForPeriod(periodID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	result := make([]gin.H, 0, len(orders))
	for i := range orders {
		result = append(result, orderJSON(&orders[i]))
	}
	c.JSON(http.StatusOK, result)
}

func (h *APIHandler) CreateOrder(c *gin.Context) {
	var req struct {
		UserID   string               `json:"user_id"`
		UserName string               `json:"user_name"`
		Items    []services.OrderLine `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, err := h.orderService.PlaceOrder(req.UserID, req.UserName, req.Items)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":              order.ID,
		"user_id":         order.UserID,
		"user_name":       order.UserName,
		"is_delivered":    order.IsDelivered,
		"order_period_id": order.OrderPeriodID,
	})
}

func (h *APIHandler) DeleteOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	if err := h.orderService.RemoveOrder(uint(id), ""); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *APIHandler) ToggleDelivery(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := h.orderService.ToggleDelivery(uint(id))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":              order.ID,
		"user_id":         order.UserID,
		"user_name":       order.UserName,
		"is_delivered":    order.IsDelivered,
		"order_period_id": order.OrderPeriodID,
	})
}
