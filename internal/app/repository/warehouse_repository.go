package repository

import (
	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/pkg/logger"
	"gorm.io/gorm"
)

type WarehouseRepository interface {
	CreateBatch(warehouses []model.Warehouse) error
	FindAll() ([]model.Warehouse, error)
	FindByID(id uint) (*model.Warehouse, error)
}

type warehouseRepository struct {
	db *gorm.DB
}

func NewWarehouseRepository(db *gorm.DB) WarehouseRepository {
	return &warehouseRepository{db: db}
}

func (r *warehouseRepository) CreateBatch(warehouses []model.Warehouse) error {
	if len(warehouses) == 0 {
		return nil
	}
	if err := r.db.Create(&warehouses).Error; err != nil {
		logger.Error("Failed to create warehouses", err, map[string]interface{}{
			"count": len(warehouses),
		})
		return err
	}
	return nil
}

func (r *warehouseRepository) FindAll() ([]model.Warehouse, error) {
	var warehouses []model.Warehouse
	if err := r.db.Order("id ASC").Find(&warehouses).Error; err != nil {
		logger.Error("Failed to list warehouses", err)
		return nil, err
	}
	return warehouses, nil
}

func (r *warehouseRepository) FindByID(id uint) (*model.Warehouse, error) {
	var warehouse model.Warehouse
	if err := r.db.First(&warehouse, id).Error; err != nil {
		return nil, err
	}
	return &warehouse, nil
}
