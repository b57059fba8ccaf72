package db

import (
	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table the application owns, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Store{},
		&model.Product{},
		&model.Order{},
		&model.ProductUpdate{},
		&model.Warehouse{},
		&model.ProductSupplyRequest{},
	}
}

// Migrate runs database migrations against the global connection.
func Migrate() error {
	return MigrateDB(DB)
}

// MigrateDB runs AutoMigrate and seeds the warehouse list when it is empty.
func MigrateDB(conn *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := conn.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedWarehouses(conn); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// defaultWarehouses are the distribution centres every fresh database starts with.
var defaultWarehouses = []model.Warehouse{
	{Area: 120000, Latitude: 34.052235, Longitude: -118.243683},
	{Area: 95000, Latitude: 40.712776, Longitude: -74.005974},
	{Area: 80000, Latitude: 41.878113, Longitude: -87.629799},
	{Area: 60000, Latitude: 29.760427, Longitude: -95.369804},
	{Area: 45000, Latitude: 47.606209, Longitude: -122.332069},
}

func seedWarehouses(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&model.Warehouse{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Warehouses already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	warehouses := make([]model.Warehouse, len(defaultWarehouses))
	copy(warehouses, defaultWarehouses)
	if err := conn.Create(&warehouses).Error; err != nil {
		return err
	}

	logger.Info("Warehouses seeded", map[string]interface{}{
		"count": len(warehouses),
	})
	return nil
}

// sequenceTables have serial ids that imports may fill with explicit values.
var sequenceTables = []string{"users", "stores", "warehouses"}

// ResetSequences moves each serial id sequence past the largest stored id, so
// rows inserted with explicit ids do not collide with later inserts. It does
// nothing on databases without sequences.
func ResetSequences(conn *gorm.DB) error {
	if conn.Dialector.Name() != "postgres" {
		return nil
	}
	for _, table := range sequenceTables {
		sql := "SELECT setval(pg_get_serial_sequence('" + table + "', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM " + table
		if err := conn.Exec(sql).Error; err != nil {
			logger.Error("Failed to reset id sequence", err, map[string]interface{}{
				"table": table,
			})
			return err
		}
	}
	return nil
}
