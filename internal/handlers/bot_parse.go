package handlers

import (
	"errors"
	"strconv"
	"strings"

	"group_order_tracker/internal/redis"
	"group_order_tracker/internal/services"
)

// parseMonthYear reads the MM/YYYY argument used by the month commands.
func parseMonthYear(arg string) (int, int, error) {
	parts := strings.Split(arg, "/")
	if len(parts) != 2 {
		return 0, 0, errors.New("Invalid format. Please use MM/YYYY format (e.g., 01/2023).")
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, errors.New("Invalid format. Please use MM/YYYY format (e.g., 01/2023).")
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, errors.New("Invalid format. Please use MM/YYYY format (e.g., 01/2023).")
	}

	if month < 1 || month > 12 {
		return 0, 0, errors.New("Month must be between 1 and 12.")
	}
	return month, year, nil
}

// parseOrderSelections turns a "1:5 2:3" reply into order lines using the
// menu the user was shown. Unknown indexes, malformed tokens and
// non-positive quantities are skipped; repeated indexes keep the last
// quantity. The returned map gives product names for the confirmation reply.
func parseOrderSelections(content string, menu []redis.MenuEntry) ([]services.OrderLine, map[uint]string) {
	byIndex := make(map[int]redis.MenuEntry, len(menu))
	for _, entry := range menu {
		byIndex[entry.Index] = entry
	}

	quantities := make(map[uint]int)
	names := make(map[uint]string)
	var productOrder []uint

	for _, part := range strings.Fields(content) {
		if !strings.Contains(part, ":") {
			continue
		}
		pieces := strings.SplitN(part, ":", 2)

		index, err := strconv.Atoi(pieces[0])
		if err != nil {
			continue
		}
		quantity, err := strconv.Atoi(pieces[1])
		if err != nil || quantity < 1 {
			continue
		}

		entry, ok := byIndex[index]
		if !ok {
			continue
		}
		if _, seen := quantities[entry.ProductID]; !seen {
			productOrder = append(productOrder, entry.ProductID)
		}
		quantities[entry.ProductID] = quantity
		names[entry.ProductID] = entry.Name
	}

	lines := make([]services.OrderLine, 0, len(productOrder))
	for _, productID := range productOrder {
		lines = append(lines, services.OrderLine{
			ProductID: productID,
			Quantity:  quantities[productID],
		})
	}
	return lines, names
}

// parseAddProductArgs reads `!add_product "name" description...`. The name
// may be quoted to allow spaces; without quotes the first word is the name
// and the rest is the description.
func parseAddProductArgs(content string) (string, string, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(content, "!add_product"))
	if rest == "" {
		return "", "", errors.New("Please provide a product name.")
	}

	if strings.HasPrefix(rest, "\"") {
		closing := strings.Index(rest[1:], "\"")
		if closing < 0 {
			return "", "", errors.New("Unclosed quote in product name.")
		}
		name := rest[1 : closing+1]
		if strings.TrimSpace(name) == "" {
			return "", "", errors.New("Please provide a product name.")
		}
		description := strings.TrimSpace(rest[closing+2:])
		return name, description, nil
	}

	parts := strings.SplitN(rest, " ", 2)
	name := parts[0]
	description := ""
	if len(parts) == 2 {
		description = strings.TrimSpace(parts[1])
	}
	return name, description, nil
}
