package repository

import (
	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/pkg/logger"
	"gorm.io/gorm"
)

type SupplyRequestRepository interface {
	Create(req *model.ProductSupplyRequest) error
}

type supplyRequestRepository struct {
	db *gorm.DB
}

func NewSupplyRequestRepository(db *gorm.DB) SupplyRequestRepository {
	return &supplyRequestRepository{db: db}
}

func (r *supplyRequestRepository) Create(req *model.ProductSupplyRequest) error {
	logger.Debug("Creating supply request in database", map[string]interface{}{
		"manager_id":   req.ManagerID,
		"warehouse_id": req.WarehouseID,
		"store_id":     req.StoreID,
		"product_name": req.ProductName,
		"units":        req.UnitsRequested,
	})

	if err := r.db.Create(req).Error; err != nil {
		logger.Error("Failed to create supply request in database", err, map[string]interface{}{
			"store_id":     req.StoreID,
			"product_name": req.ProductName,
		})
		return err
	}
	return nil
}
