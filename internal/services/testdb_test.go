package services

import (
	"testing"

	"group_order_tracker/internal/database"
	"group_order_tracker/internal/models"
	"group_order_tracker/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

type testEnv struct {
	db        *gorm.DB
	catalog   CatalogService
	inventory InventoryService
	periods   PeriodService
	orders    OrderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	periodRepo := repository.NewOrderPeriodRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	return &testEnv{
		db:        db,
		catalog:   NewCatalogService(productRepo),
		inventory: NewInventoryService(inventoryRepo, productRepo),
		periods:   NewPeriodService(periodRepo),
		orders:    NewOrderService(orderRepo, periodRepo),
	}
}

func (env *testEnv) mustAddProduct(t *testing.T, name string) *models.Product {
	t.Helper()
	product, err := env.catalog.AddProduct(name, "")
	require.NoError(t, err)
	return product
}

func (env *testEnv) mustOpenPeriod(t *testing.T, month, year int) *models.OrderPeriod {
	t.Helper()
	period, err := env.periods.OpenNewPeriod(month, year)
	require.NoError(t, err)
	return period
}

func (env *testEnv) countOpenPeriods(t *testing.T) int {
	t.Helper()
	var count int64
	require.NoError(t, env.db.Model(&models.OrderPeriod{}).
		Where("is_open = ?", true).Count(&count).Error)
	return int(count)
}
