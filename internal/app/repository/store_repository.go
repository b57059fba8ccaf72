package repository

import (
	"errors"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/pkg/logger"
	"gorm.io/gorm"
)

type StoreRepository interface {
	Create(store *model.Store) error
	BulkCreate(stores []model.Store, batchSize int) error
	FindAll() ([]model.Store, error)
	FindByID(id uint) (*model.Store, error)
	FindByManager(managerID uint) ([]model.Store, error)
	IsManagedBy(storeID, managerID uint) (bool, error)
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(store *model.Store) error {
	logger.Debug("Creating store in database", map[string]interface{}{
		"name":       store.Name,
		"manager_id": store.ManagerID,
	})

	if err := r.db.Create(store).Error; err != nil {
		logger.Error("Failed to create store in database", err, map[string]interface{}{
			"name":       store.Name,
			"manager_id": store.ManagerID,
		})
		return err
	}

	logger.Debug("Store created in database", map[string]interface{}{
		"store_id":   store.ID,
		"manager_id": store.ManagerID,
	})
	return nil
}

// BulkCreate inserts stores batchSize rows per statement. IDs given in the
// input are kept.
func (r *storeRepository) BulkCreate(stores []model.Store, batchSize int) error {
	if len(stores) == 0 {
		return nil
	}
	if err := r.db.CreateInBatches(&stores, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create stores", err, map[string]interface{}{
			"count": len(stores),
		})
		return err
	}

	logger.Debug("Stores bulk created", map[string]interface{}{
		"count": len(stores),
	})
	return nil
}

// FindAll returns every store in storage (id) order.
func (r *storeRepository) FindAll() ([]model.Store, error) {
	var stores []model.Store
	if err := r.db.Order("id ASC").Find(&stores).Error; err != nil {
		logger.Error("Failed to fetch stores", err)
		return nil, err
	}

	logger.Debug("Stores fetched", map[string]interface{}{
		"count": len(stores),
	})
	return stores, nil
}

func (r *storeRepository) FindByID(id uint) (*model.Store, error) {
	var store model.Store
	if err := r.db.First(&store, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find store by ID", err, map[string]interface{}{
				"store_id": id,
			})
		}
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindByManager(managerID uint) ([]model.Store, error) {
	logger.Debug("Finding stores by manager", map[string]interface{}{
		"manager_id": managerID,
	})

	var stores []model.Store
	if err := r.db.Where("manager_id = ?", managerID).Order("id ASC").Find(&stores).Error; err != nil {
		logger.Error("Failed to find stores by manager", err, map[string]interface{}{
			"manager_id": managerID,
		})
		return nil, err
	}
	return stores, nil
}

func (r *storeRepository) IsManagedBy(storeID, managerID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Store{}).
		Where("id = ? AND manager_id = ?", storeID, managerID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check store manager", err, map[string]interface{}{
			"store_id":   storeID,
			"manager_id": managerID,
		})
		return false, err
	}
	return count > 0, nil
}
