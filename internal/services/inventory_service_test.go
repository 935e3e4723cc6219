package services

import (
	"testing"

	"group_order_tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetQuantityValidation(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustAddProduct(t, "Coffee")

	_, err := env.inventory.SetQuantity(product.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.inventory.SetQuantity(999, 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetQuantityIdempotent(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustAddProduct(t, "Coffee")

	record, err := env.inventory.SetQuantity(product.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, record.Quantity)

	record, err = env.inventory.SetQuantity(product.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, record.Quantity)

	var count int64
	require.NoError(t, env.db.Model(&models.Inventory{}).
		Where("product_id = ?", product.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSetQuantityOverwrites(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustAddProduct(t, "Coffee")

	_, err := env.inventory.SetQuantity(product.ID, 5)
	require.NoError(t, err)
	record, err := env.inventory.SetQuantity(product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, record.Quantity)
}

func TestListAllOmitsUntrackedProducts(t *testing.T) {
	env := newTestEnv(t)
	tracked := env.mustAddProduct(t, "Coffee")
	env.mustAddProduct(t, "Honey")

	_, err := env.inventory.SetQuantity(tracked.ID, 7)
	require.NoError(t, err)

	records, err := env.inventory.ListAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "untracked products are omitted, not reported as zero")
	assert.Equal(t, tracked.ID, records[0].ProductID)
	assert.Equal(t, "Coffee", records[0].Product.Name)
}
