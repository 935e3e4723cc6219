package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"group_order_tracker/internal/models"
	"group_order_tracker/internal/services"

	"github.com/gin-gonic/gin"
)

// WebHandler renders the admin-facing HTML pages. Form posts redirect back
// to their page with a flash message in the query string.
type WebHandler struct {
	catalogService   services.CatalogService
	inventoryService services.InventoryService
	periodService    services.PeriodService
	orderService     services.OrderService
}

func NewWebHandler(
	catalogService services.CatalogService,
	inventoryService services.InventoryService,
	periodService services.PeriodService,
	orderService services.OrderService,
) *WebHandler {
	return &WebHandler{
		catalogService:   catalogService,
		inventoryService: inventoryService,
		periodService:    periodService,
		orderService:     orderService,
	}
}

func redirectWithFlash(c *gin.Context, target, message, level string) {
	c.Redirect(http.StatusSeeOther, target+"?flash="+url.QueryEscape(message)+"&flash_type="+level)
}

func flashFromQuery(c *gin.Context) gin.H {
	return gin.H{
		"Flash":     c.Query("flash"),
		"FlashType": c.DefaultQuery("flash_type", "success"),
	}
}

func (h *WebHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", flashFromQuery(c))
}

func (h *WebHandler) Products(c *gin.Context) {
	products, err := h.catalogService.ListProducts()
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load products")
		return
	}

	data := flashFromQuery(c)
	data["Products"] = products
	c.HTML(http.StatusOK, "products.html", data)
}

func (h *WebHandler) AddProduct(c *gin.Context) {
	name := c.PostForm("name")
	description := c.PostForm("description")

	product, err := h.catalogService.AddProduct(name, description)
	if err != nil {
		redirectWithFlash(c, "/products", err.Error(), "danger")
		return
	}
	redirectWithFlash(c, "/products", "Product \""+product.Name+"\" added successfully", "success")
}

func (h *WebHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.PostForm("editing_product_id"), 10, 32)
	if err != nil {
		redirectWithFlash(c, "/products", "Invalid input data", "danger")
		return
	}
	name := c.PostForm("name")
	description := c.PostForm("description")

	product, err := h.catalogService.UpdateProduct(uint(id), name, description)
	if err != nil {
		redirectWithFlash(c, "/products", err.Error(), "danger")
		return
	}
	redirectWithFlash(c, "/products", "Product \""+product.Name+"\" updated successfully", "success")
}

func (h *WebHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		redirectWithFlash(c, "/products", "Invalid product id", "danger")
		return
	}

	product, err := h.catalogService.DeleteProduct(uint(id))
	if err != nil {
		redirectWithFlash(c, "/products", err.Error(), "danger")
		return
	}
	redirectWithFlash(c, "/products",
		"Product \""+product.Name+"\" and all related inventory/order items have been deleted", "success")
}

// inventoryRow joins a catalog entry with its ledger record; products never
// counted show as zero here even though the ledger has no row for them.
type inventoryRow struct {
	Product  models.Product
	Quantity int
	Tracked  bool
}

func (h *WebHandler) Inventory(c *gin.Context) {
	products, err := h.catalogService.ListProducts()
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load products")
		return
	}
	records, err := h.inventoryService.ListAll()
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load inventory")
		return
	}

	byProduct := make(map[uint]int, len(records))
	for _, record := range records {
		byProduct[record.ProductID] = record.Quantity
	}

	rows := make([]inventoryRow, 0, len(products))
	for _, product := range products {
		quantity, tracked := byProduct[product.ID]
		rows = append(rows, inventoryRow{Product: product, Quantity: quantity, Tracked: tracked})
	}

	data := flashFromQuery(c)
	data["Rows"] = rows
	c.HTML(http.StatusOK, "inventory.html", data)
}

func (h *WebHandler) UpdateInventory(c *gin.Context) {
	productID, err := strconv.ParseUint(c.PostForm("product_id"), 10, 32)
	if err != nil {
		redirectWithFlash(c, "/inventory", "Invalid input data", "danger")
		return
	}
	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil {
		redirectWithFlash(c, "/inventory", "Invalid input data", "danger")
		return
	}

	if _, err := h.inventoryService.SetQuantity(uint(productID), quantity); err != nil {
		redirectWithFlash(c, "/inventory", err.Error(), "danger")
		return
	}
	redirectWithFlash(c, "/inventory", "Inventory updated successfully", "success")
}

func (h *WebHandler) OrderPeriods(c *gin.Context) {
	periods, err := h.periodService.ListPeriods()
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load order periods")
		return
	}
	current, err := h.periodService.CurrentOpenPeriod()
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load order periods")
		return
	}

	data := flashFromQuery(c)
	data["Periods"] = periods
	data["CurrentPeriod"] = current
	c.HTML(http.StatusOK, "order_periods.html", data)
}

func (h *WebHandler) CreateOrderPeriod(c *gin.Context) {
	month, errM := strconv.Atoi(c.PostForm("month"))
	year, errY := strconv.Atoi(c.PostForm("year"))
	if errM != nil || errY != nil {
		redirectWithFlash(c, "/order_periods", "Invalid month or year", "danger")
		return
	}

	period, err := h.periodService.OpenNewPeriod(month, year)
	if err != nil {
		redirectWithFlash(c, "/order_periods", err.Error(), "danger")
		return
	}
	redirectWithFlash(c, "/order_periods",
		"Order period for "+period.Label()+" created and opened", "success")
}

func (h *WebHandler) ToggleOrderPeriod(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		redirectWithFlash(c, "/order_periods", "Invalid period id", "danger")
		return
	}

	period, err := h.periodService.TogglePeriod(uint(id))
	if err != nil {
		redirectWithFlash(c, "/order_periods", err.Error(), "danger")
		return
	}

	action := "closed"
	if period.IsOpen {
		action = "opened"
	}
	redirectWithFlash(c, "/order_periods",
		"Order period "+period.Label()+" has been "+action, "success")
}

func (h *WebHandler) Orders(c *gin.Context) {
	current, err := h.periodService.CurrentOpenPeriod()
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load orders")
		return
	}

	period := current
	if raw := c.Query("period_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err == nil {
			if p, err := h.periodService.GetPeriod(uint(id)); err == nil {
				period = p
			}
		}
	}

	var orders []models.Order
	if period != nil {
		orders, err = h.orderService.OrdersForPeriod(period.ID)
		if err != nil {
			c.String(http.StatusInternalServerError, "failed to load orders")
			return
		}
	}

	periods, err := h.periodService.ListPeriods()
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load orders")
		return
	}
	products, err := h.catalogService.ListProducts()
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load orders")
		return
	}

	data := flashFromQuery(c)
	data["Orders"] = orders
	data["Period"] = period
	data["Periods"] = periods
	data["Products"] = products
	data["CurrentPeriod"] = current
	c.HTML(http.StatusOK, "orders.html", data)
}

func (h *WebHandler) AddOrder(c *gin.Context) {
	userName := c.PostForm("user_name")
	userID := c.DefaultPostForm("user_id", userName)
	productIDs := c.PostFormArray("product_id[]")
	quantities := c.PostFormArray("quantity[]")

	lines := make([]services.OrderLine, 0, len(productIDs))
	for i, raw := range productIDs {
		if i >= len(quantities) {
			break
		}
		productID, errP := strconv.ParseUint(raw, 10, 32)
		quantity, errQ := strconv.Atoi(quantities[i])
		if errP != nil || errQ != nil {
			continue
		}
		lines = append(lines, services.OrderLine{ProductID: uint(productID), Quantity: quantity})
	}

	if _, err := h.orderService.PlaceOrder(userID, userName, lines); err != nil {
		redirectWithFlash(c, "/orders", err.Error(), "danger")
		return
	}
	redirectWithFlash(c, "/orders", "Order saved successfully", "success")
}

func (h *WebHandler) DeleteOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		redirectWithFlash(c, "/orders", "Invalid order id", "danger")
		return
	}

	if err := h.orderService.RemoveOrder(uint(id), ""); err != nil {
		redirectWithFlash(c, "/orders", err.Error(), "danger")
		return
	}
	redirectWithFlash(c, "/orders", "Order deleted successfully", "success")
}

func (h *WebHandler) ToggleOrderDelivery(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		redirectWithFlash(c, "/orders", "Invalid order id", "danger")
		return
	}

	order, err := h.orderService.ToggleDelivery(uint(id))
	if err != nil {
		redirectWithFlash(c, "/orders", err.Error(), "danger")
		return
	}

	status := "Not Delivered"
	if order.IsDelivered {
		status = "Delivered"
	}

	target := "/orders"
	if periodID := c.Query("period_id"); periodID != "" {
		target += "?period_id=" + url.QueryEscape(periodID)
		c.Redirect(http.StatusSeeOther, target+"&flash="+url.QueryEscape("Order by "+order.UserName+" marked as "+status)+"&flash_type=success")
		return
	}
	redirectWithFlash(c, target, "Order by "+order.UserName+" marked as "+status, "success")
}
