package repository

import (
	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/pkg/logger"
	"gorm.io/gorm"
)

// ProductUpdateRepository writes and reads the product audit trail. There is no
// update or delete path.
type ProductUpdateRepository interface {
	Create(update *model.ProductUpdate) error
	FindRecentByManager(managerID uint, limit int) ([]model.ProductUpdate, error)
}

type productUpdateRepository struct {
	db *gorm.DB
}

func NewProductUpdateRepository(db *gorm.DB) ProductUpdateRepository {
	return &productUpdateRepository{db: db}
}

func (r *productUpdateRepository) Create(update *model.ProductUpdate) error {
	if err := r.db.Create(update).Error; err != nil {
		logger.Error("Failed to record product update", err, map[string]interface{}{
			"manager_id":   update.ManagerID,
			"store_id":     update.StoreID,
			"product_name": update.ProductName,
		})
		return err
	}

	logger.Debug("Product update recorded", map[string]interface{}{
		"update_id":    update.ID,
		"store_id":     update.StoreID,
		"product_name": update.ProductName,
	})
	return nil
}

// FindRecentByManager returns audit rows for every store the manager runs,
// newest first. Rows written by admins at those stores are included.
func (r *productUpdateRepository) FindRecentByManager(managerID uint, limit int) ([]model.ProductUpdate, error) {
	var updates []model.ProductUpdate
	err := r.db.
		Where("store_id IN (?)", r.db.Model(&model.Store{}).Select("id").Where("manager_id = ?", managerID)).
		Order("updated_on DESC").
		Order("id DESC").
		Limit(limit).
		Find(&updates).Error
	if err != nil {
		logger.Error("Failed to find recent product updates", err, map[string]interface{}{
			"manager_id": managerID,
		})
		return nil, err
	}
	return updates, nil
}
