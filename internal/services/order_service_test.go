package services

import (
	"testing"

	"group_order_tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrderRequiresOpenPeriod(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustAddProduct(t, "Coffee")

	_, err := env.orders.PlaceOrder("alice", "alice", []OrderLine{{ProductID: product.ID, Quantity: 2}})
	assert.ErrorIs(t, err, ErrNoOpenPeriod)
}

func TestPlaceOrderValidation(t *testing.T) {
	env := newTestEnv(t)
	env.mustOpenPeriod(t, 6, 2024)
	product := env.mustAddProduct(t, "Coffee")

	_, err := env.orders.PlaceOrder("alice", "", []OrderLine{{ProductID: product.ID, Quantity: 2}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.orders.PlaceOrder("alice", "alice", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlaceOrderAmendReplacesItems(t *testing.T) {
	env := newTestEnv(t)
	env.mustOpenPeriod(t, 6, 2024)
	coffee := env.mustAddProduct(t, "Coffee")
	honey := env.mustAddProduct(t, "Honey")

	first, err := env.orders.PlaceOrder("alice", "alice", []OrderLine{
		{ProductID: coffee.ID, Quantity: 2},
		{ProductID: honey.ID, Quantity: 1},
	})
	require.NoError(t, err)

	second, err := env.orders.PlaceOrder("alice", "alice", []OrderLine{
		{ProductID: honey.ID, Quantity: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "amend must reuse the order identity")

	var count int64
	require.NoError(t, env.db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var items []models.OrderItem
	require.NoError(t, env.db.Where("order_id = ?", second.ID).Find(&items).Error)
	require.Len(t, items, 1, "old items must not survive an amend")
	assert.Equal(t, honey.ID, items[0].ProductID)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestPlaceOrderFiltersInvalidLines(t *testing.T) {
	env := newTestEnv(t)
	env.mustOpenPeriod(t, 6, 2024)
	coffee := env.mustAddProduct(t, "Coffee")
	honey := env.mustAddProduct(t, "Honey")

	order, err := env.orders.PlaceOrder("alice", "alice", []OrderLine{
		{ProductID: coffee.ID, Quantity: 2},
		{ProductID: honey.ID, Quantity: 0},
		{ProductID: 0, Quantity: 3},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, coffee.ID, order.Items[0].ProductID)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestPlaceOrderAllLinesFilteredKeepsEmptyOrder(t *testing.T) {
	env := newTestEnv(t)
	env.mustOpenPeriod(t, 6, 2024)
	coffee := env.mustAddProduct(t, "Coffee")

	// Every line is dropped but the order row survives with zero items
	order, err := env.orders.PlaceOrder("alice", "alice", []OrderLine{
		{ProductID: coffee.ID, Quantity: -1},
	})
	require.NoError(t, err)
	assert.Empty(t, order.Items)

	var count int64
	require.NoError(t, env.db.Model(&models.Order{}).Where("id = ?", order.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPlaceOrderSeparateUsersSeparateOrders(t *testing.T) {
	env := newTestEnv(t)
	env.mustOpenPeriod(t, 6, 2024)
	coffee := env.mustAddProduct(t, "Coffee")

	_, err := env.orders.PlaceOrder("alice", "alice", []OrderLine{{ProductID: coffee.ID, Quantity: 1}})
	require.NoError(t, err)
	_, err = env.orders.PlaceOrder("bob", "bob", []OrderLine{{ProductID: coffee.ID, Quantity: 2}})
	require.NoError(t, err)

	var count int64
	require.NoError(t, env.db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestRemoveOrderOwnership(t *testing.T) {
	env := newTestEnv(t)
	env.mustOpenPeriod(t, 6, 2024)
	coffee := env.mustAddProduct(t, "Coffee")

	order, err := env.orders.PlaceOrder("alice", "alice", []OrderLine{{ProductID: coffee.ID, Quantity: 1}})
	require.NoError(t, err)

	// Someone else's user id reports NotFound, not a permission error
	err = env.orders.RemoveOrder(order.ID, "bob")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, env.orders.RemoveOrder(order.ID, "alice"))

	var itemCount int64
	require.NoError(t, env.db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error)
	assert.EqualValues(t, 0, itemCount)
}

func TestRemoveOrderClosedPeriodIsImmutable(t *testing.T) {
	env := newTestEnv(t)
	coffee := env.mustAddProduct(t, "Coffee")
	honey := env.mustAddProduct(t, "Honey")

	env.mustOpenPeriod(t, 6, 2024)
	order, err := env.orders.PlaceOrder("alice", "alice", []OrderLine{
		{ProductID: coffee.ID, Quantity: 2},
		{ProductID: honey.ID, Quantity: 0},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)

	// Opening the next month closes 6/2024; alice's order becomes history
	env.mustOpenPeriod(t, 7, 2024)

	err = env.orders.RemoveOrder(order.ID, "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	// Still present in storage
	var count int64
	require.NoError(t, env.db.Model(&models.Order{}).Where("id = ?", order.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRemoveOrderNoOpenPeriod(t *testing.T) {
	env := newTestEnv(t)
	coffee := env.mustAddProduct(t, "Coffee")

	env.mustOpenPeriod(t, 6, 2024)
	order, err := env.orders.PlaceOrder("alice", "alice", []OrderLine{{ProductID: coffee.ID, Quantity: 1}})
	require.NoError(t, err)

	period, err := env.periods.CurrentOpenPeriod()
	require.NoError(t, err)
	_, err = env.periods.TogglePeriod(period.ID)
	require.NoError(t, err)

	err = env.orders.RemoveOrder(order.ID, "alice")
	assert.ErrorIs(t, err, ErrNoOpenPeriod)
}

func TestToggleDelivery(t *testing.T) {
	env := newTestEnv(t)
	coffee := env.mustAddProduct(t, "Coffee")

	_, err := env.orders.ToggleDelivery(99)
	assert.ErrorIs(t, err, ErrNotFound)

	env.mustOpenPeriod(t, 6, 2024)
	order, err := env.orders.PlaceOrder("alice", "alice", []OrderLine{{ProductID: coffee.ID, Quantity: 1}})
	require.NoError(t, err)

	toggled, err := env.orders.ToggleDelivery(order.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsDelivered)

	// Delivery marking still works after the period closes
	env.mustOpenPeriod(t, 7, 2024)
	toggled, err = env.orders.ToggleDelivery(order.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsDelivered)
}

func TestOrdersForPeriodEagerItems(t *testing.T) {
	env := newTestEnv(t)
	period := env.mustOpenPeriod(t, 6, 2024)
	coffee := env.mustAddProduct(t, "Coffee")

	_, err := env.orders.PlaceOrder("alice", "alice", []OrderLine{{ProductID: coffee.ID, Quantity: 3}})
	require.NoError(t, err)

	orders, err := env.orders.OrdersForPeriod(period.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Coffee", orders[0].Items[0].Product.Name)
}

func TestOrderForUser(t *testing.T) {
	env := newTestEnv(t)
	period := env.mustOpenPeriod(t, 6, 2024)
	coffee := env.mustAddProduct(t, "Coffee")

	_, err := env.orders.OrderForUser("alice", period.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	placed, err := env.orders.PlaceOrder("alice", "alice", []OrderLine{{ProductID: coffee.ID, Quantity: 1}})
	require.NoError(t, err)

	found, err := env.orders.OrderForUser("alice", period.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, found.ID)
}
