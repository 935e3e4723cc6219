package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"group_order_tracker/internal/redis"
	"group_order_tracker/internal/services"

	"github.com/gin-gonic/gin"
)

type DiscordHandler struct {
	botService       services.BotService
	catalogService   services.CatalogService
	inventoryService services.InventoryService
	periodService    services.PeriodService
	orderService     services.OrderService
	webhookSecret    string
}

func NewDiscordHandler(
	botService services.BotService,
	catalogService services.CatalogService,
	inventoryService services.InventoryService,
	periodService services.PeriodService,
	orderService services.OrderService,
	webhookSecret string,
) *DiscordHandler {
	return &DiscordHandler{
		botService:       botService,
		catalogService:   catalogService,
		inventoryService: inventoryService,
		periodService:    periodService,
		orderService:     orderService,
		webhookSecret:    webhookSecret,
	}
}

type DiscordWebhookRequest struct {
	ChannelID string `json:"channel_id"`
	Content   string `json:"content"`
	Author    struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		IsAdmin  bool   `json:"is_admin"`
		Bot      bool   `json:"bot"`
	} `json:"author"`
}

func (h *DiscordHandler) HandleWebhook(c *gin.Context) {
	if c.GetHeader("X-Webhook-Secret") != h.webhookSecret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook secret"})
		return
	}

	var req DiscordWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// Never react to our own (or any bot's) messages
	if req.Author.Bot {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	response := h.processMessage(&req)
	if response == "" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if err := h.botService.SendMessage(req.ChannelID, response); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// SendMessage lets operators push an arbitrary message through the bot.
func (h *DiscordHandler) SendMessage(c *gin.Context) {
	var req struct {
		ChannelID string `json:"channel_id"`
		Message   string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.botService.SendMessage(req.ChannelID, req.Message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *DiscordHandler) processMessage(req *DiscordWebhookRequest) string {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return ""
	}

	if strings.HasPrefix(content, "!") {
		// A fresh command always abandons a pending conversation
		h.botService.EndSession(req.Author.ID)

		parts := strings.Fields(content)
		command := parts[0]
		args := parts[1:]

		switch command {
		case "!help":
			return h.helpMessage(req.Author.IsAdmin)
		case "!inventory":
			return h.showInventory()
		case "!products":
			return h.listProducts()
		case "!current_orders":
			return h.showCurrentOrders()
		case "!past_orders":
			return h.showPastOrders(args)
		case "!order":
			return h.startOrder(req)
		case "!cancel_order":
			return h.cancelOrder(req.Author.ID)
		default:
			if req.Author.IsAdmin {
				return h.processAdminCommand(content, args, command)
			}
			return "❌ Unknown command. Type !help for available commands."
		}
	}

	// Not a command: only meaningful as a reply to a pending conversation
	session, err := h.botService.GetSession(req.Author.ID)
	if err != nil || session == nil {
		return ""
	}
	if session.Command == "order" {
		return h.finishOrder(req, content)
	}
	return ""
}

func (h *DiscordHandler) processAdminCommand(content string, args []string, command string) string {
	switch command {
	case "!open_month":
		return h.openMonth(args)
	case "!toggle_month":
		return h.toggleMonth(args)
	case "!update_stock":
		return h.updateStock(args)
	case "!add_product":
		return h.addProduct(content)
	default:
		return "❌ Unknown command. Type !help for available commands."
	}
}

func (h *DiscordHandler) helpMessage(isAdmin bool) string {
	msg := `📋 **Available Commands:**

!inventory - Show current inventory
!products - List all available products
!current_orders - Show orders for the current open month
!past_orders MM/YYYY - Show orders for a past month
!order - Place or replace your order for the current month
!cancel_order - Cancel your order for the current month
!help - Show this help message
`
	if isAdmin {
		msg += `
**Admin Commands:**
!open_month MM/YYYY - Open a new order month
!toggle_month MM/YYYY - Open/close an order month
!update_stock <product_id> <quantity> - Set inventory quantity
!add_product "name" description - Add a new product
`
	}
	return msg
}

func (h *DiscordHandler) showInventory() string {
	records, err := h.inventoryService.ListAll()
	if err != nil {
		return "❌ Failed to get inventory: " + err.Error()
	}

	if len(records) == 0 {
		return "No inventory items found."
	}

	response := "📦 **Current Inventory:**\n\n"
	for _, record := range records {
		response += fmt.Sprintf("%s: %d\n", record.Product.Name, record.Quantity)
	}
	return response
}

func (h *DiscordHandler) listProducts() string {
	products, err := h.catalogService.ListProducts()
	if err != nil {
		return "❌ Failed to get products: " + err.Error()
	}

	if len(products) == 0 {
		return "No products found."
	}

	response := "🛒 **Available Products:**\n\n"
	for _, product := range products {
		description := product.Description
		if description == "" {
			description = "No description"
		}
		response += fmt.Sprintf("%d. **%s** - %s\n", product.ID, product.Name, description)
	}
	return response
}

func (h *DiscordHandler) showCurrentOrders() string {
	period, err := h.periodService.CurrentOpenPeriod()
	if err != nil {
		return "❌ Failed to look up the open period: " + err.Error()
	}
	if period == nil {
		return "No open order period available."
	}

	return h.renderOrders(period.ID, period.Label())
}

func (h *DiscordHandler) showPastOrders(args []string) string {
	if len(args) < 1 {
		return "Please provide a month/year in MM/YYYY format."
	}

	month, year, err := parseMonthYear(args[0])
	if err != nil {
		return err.Error()
	}

	period, err := h.periodService.GetPeriodByMonthYear(month, year)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fmt.Sprintf("No order period found for %d/%d.", month, year)
		}
		return "❌ Failed to look up the period: " + err.Error()
	}

	return h.renderOrders(period.ID, period.Label())
}

func (h *DiscordHandler) renderOrders(periodID uint, label string) string {
	orders, err := h.orderService.OrdersForPeriod(periodID)
	if err != nil {
		return "❌ Failed to get orders: " + err.Error()
	}

	if len(orders) == 0 {
		return fmt.Sprintf("No orders found for %s.", label)
	}

	response := fmt.Sprintf("🧾 **Orders for %s:**\n\n", label)
	for _, order := range orders {
		delivered := ""
		if order.IsDelivered {
			delivered = " ✅ delivered"
		}
		response += fmt.Sprintf("**%s**%s\n", order.UserName, delivered)
		if len(order.Items) == 0 {
			response += "  (no items)\n"
		}
		for _, item := range order.Items {
			response += fmt.Sprintf("  %s: %d\n", item.Product.Name, item.Quantity)
		}
		response += "\n"
	}
	return response
}

// startOrder shows the numbered product menu and parks a session so the
// user's next plain message is read as their item selection.
func (h *DiscordHandler) startOrder(req *DiscordWebhookRequest) string {
	period, err := h.periodService.CurrentOpenPeriod()
	if err != nil {
		return "❌ Failed to look up the open period: " + err.Error()
	}
	if period == nil {
		return "No open order period available for ordering."
	}

	products, err := h.catalogService.ListProducts()
	if err != nil {
		return "❌ Failed to get products: " + err.Error()
	}
	if len(products) == 0 {
		return "No products available for ordering."
	}

	menu := make([]redis.MenuEntry, 0, len(products))
	response := fmt.Sprintf("🛒 **Available Products for %s**\nReply with product numbers and quantities as: 1:5 2:3 ...\n\n", period.Label())
	for i, product := range products {
		menu = append(menu, redis.MenuEntry{
			Index:     i + 1,
			ProductID: product.ID,
			Name:      product.Name,
		})
		description := product.Description
		if description == "" {
			description = "No description"
		}
		response += fmt.Sprintf("%d. **%s** - %s\n", i+1, product.Name, description)
	}

	if err := h.botService.SetProductMenu(req.Author.ID, menu); err != nil {
		return "❌ Failed to start order: " + err.Error()
	}
	session := &redis.SessionData{
		UserID:    req.Author.ID,
		UserName:  req.Author.Username,
		ChannelID: req.ChannelID,
		Command:   "order",
		Step:      1,
		Data:      make(map[string]interface{}),
	}
	if err := h.botService.StartSession(session); err != nil {
		return "❌ Failed to start order: " + err.Error()
	}

	return response
}

// finishOrder resolves the "1:5 2:3" reply against the menu the user was
// shown and places the order.
func (h *DiscordHandler) finishOrder(req *DiscordWebhookRequest, content string) string {
	defer h.botService.EndSession(req.Author.ID)
	defer h.botService.ClearProductMenu(req.Author.ID)

	menu, err := h.botService.GetProductMenu(req.Author.ID)
	if err != nil {
		return "Your order menu expired. Please run !order again."
	}

	lines, names := parseOrderSelections(content, menu)
	if len(lines) == 0 {
		return "No valid items specified. Order not placed."
	}

	order, err := h.orderService.PlaceOrder(req.Author.ID, req.Author.Username, lines)
	if err != nil {
		return "❌ Error: " + err.Error()
	}

	response := "✅ **Order Placed Successfully**\n\n"
	for _, item := range order.Items {
		response += fmt.Sprintf("%s: %d\n", names[item.ProductID], item.Quantity)
	}
	return response
}

func (h *DiscordHandler) cancelOrder(userID string) string {
	period, err := h.periodService.CurrentOpenPeriod()
	if err != nil {
		return "❌ Failed to look up the open period: " + err.Error()
	}
	if period == nil {
		return "No open order period available."
	}

	order, err := h.orderService.OrderForUser(userID, period.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return "You don't have an order for the current period."
		}
		return "❌ Failed to look up your order: " + err.Error()
	}

	if err := h.orderService.RemoveOrder(order.ID, userID); err != nil {
		return "❌ Error: " + err.Error()
	}
	return fmt.Sprintf("Your order for %s has been cancelled.", period.Label())
}

func (h *DiscordHandler) openMonth(args []string) string {
	if len(args) < 1 {
		return "Please provide a month/year in MM/YYYY format."
	}

	month, year, err := parseMonthYear(args[0])
	if err != nil {
		return err.Error()
	}

	period, err := h.periodService.OpenNewPeriod(month, year)
	if err != nil {
		return "❌ Error: " + err.Error()
	}
	return fmt.Sprintf("Order period for %s has been opened for orders.", period.Label())
}

func (h *DiscordHandler) toggleMonth(args []string) string {
	if len(args) < 1 {
		return "Please provide a month/year in MM/YYYY format."
	}

	month, year, err := parseMonthYear(args[0])
	if err != nil {
		return err.Error()
	}

	period, err := h.periodService.GetPeriodByMonthYear(month, year)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fmt.Sprintf("No order period found for %d/%d.", month, year)
		}
		return "❌ Failed to look up the period: " + err.Error()
	}

	period, err = h.periodService.TogglePeriod(period.ID)
	if err != nil {
		return "❌ Error: " + err.Error()
	}

	status := "closed"
	if period.IsOpen {
		status = "opened"
	}
	return fmt.Sprintf("Order period for %s has been %s.", period.Label(), status)
}

func (h *DiscordHandler) updateStock(args []string) string {
	if len(args) < 2 {
		return "Please provide both product ID and quantity."
	}

	productID, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return "Please provide both product ID and quantity."
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return "Please provide both product ID and quantity."
	}

	record, err := h.inventoryService.SetQuantity(uint(productID), quantity)
	if err != nil {
		return "❌ Error: " + err.Error()
	}
	return fmt.Sprintf("Inventory updated: %s now has %d units.", record.Product.Name, record.Quantity)
}

func (h *DiscordHandler) addProduct(content string) string {
	name, description, err := parseAddProductArgs(content)
	if err != nil {
		return err.Error()
	}

	product, err := h.catalogService.AddProduct(name, description)
	if err != nil {
		return "❌ Error: " + err.Error()
	}
	return fmt.Sprintf("Product '%s' added successfully with ID %d.", product.Name, product.ID)
}
