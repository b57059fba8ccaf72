package repository

import (
	"errors"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductOffer is another store's listing of a product, with that store's location.
type ProductOffer struct {
	StoreID      uint
	Latitude     float64
	Longitude    float64
	PricePerUnit float64
}

type ProductRepository interface {
	Create(product *model.Product) error
	BulkCreate(products []model.Product, batchSize int) error
	FindByStore(storeID uint) ([]model.Product, error)
	FindOne(storeID uint, name string) (*model.Product, error)
	FindOneForUpdate(storeID uint, name string) (*model.Product, error)
	Exists(storeID uint, name string) (bool, error)
	NameExists(name string) (bool, error)
	FindOffersElsewhere(storeID uint, name string) ([]ProductOffer, error)
	DecrementUnits(storeID uint, name string, units int) (bool, error)
	IncrementUnits(storeID uint, name string, units int) error
	Update(storeID uint, name string, fields map[string]interface{}) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) key(storeID uint, name string) *gorm.DB {
	return r.db.Model(&model.Product{}).Where("store_id = ? AND product_name = ?", storeID, name)
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"store_id":     product.StoreID,
		"product_name": product.ProductName,
		"units":        product.NumberOfUnits,
		"price":        product.PricePerUnit,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"store_id":     product.StoreID,
			"product_name": product.ProductName,
		})
		return err
	}
	return nil
}

func (r *productRepository) BulkCreate(products []model.Product, batchSize int) error {
	if len(products) == 0 {
		return nil
	}
	if err := r.db.CreateInBatches(&products, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create products", err, map[string]interface{}{
			"count": len(products),
		})
		return err
	}

	logger.Debug("Products bulk created", map[string]interface{}{
		"count": len(products),
	})
	return nil
}

func (r *productRepository) FindByStore(storeID uint) ([]model.Product, error) {
	logger.Debug("Finding products by store", map[string]interface{}{
		"store_id": storeID,
	})

	var products []model.Product
	if err := r.db.Where("store_id = ?", storeID).Order("product_name ASC").Find(&products).Error; err != nil {
		logger.Error("Failed to find products by store", err, map[string]interface{}{
			"store_id": storeID,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindOne(storeID uint, name string) (*model.Product, error) {
	return r.findOne(r.db, storeID, name)
}

// FindOneForUpdate locks the row until the surrounding transaction ends.
func (r *productRepository) FindOneForUpdate(storeID uint, name string) (*model.Product, error) {
	return r.findOne(r.db.Clauses(clause.Locking{Strength: "UPDATE"}), storeID, name)
}

func (r *productRepository) findOne(query *gorm.DB, storeID uint, name string) (*model.Product, error) {
	var product model.Product
	err := query.Where("store_id = ? AND product_name = ?", storeID, name).First(&product).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find product", err, map[string]interface{}{
				"store_id":     storeID,
				"product_name": name,
			})
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Exists(storeID uint, name string) (bool, error) {
	var count int64
	if err := r.key(storeID, name).Count(&count).Error; err != nil {
		logger.Error("Failed to check product at store", err, map[string]interface{}{
			"store_id":     storeID,
			"product_name": name,
		})
		return false, err
	}
	return count > 0, nil
}

// NameExists reports whether any store carries a product with this name.
func (r *productRepository) NameExists(name string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Product{}).Where("product_name = ?", name).Count(&count).Error; err != nil {
		logger.Error("Failed to check product name", err, map[string]interface{}{
			"product_name": name,
		})
		return false, err
	}
	return count > 0, nil
}

// FindOffersElsewhere lists the stores other than storeID that carry the product,
// in store id order.
func (r *productRepository) FindOffersElsewhere(storeID uint, name string) ([]ProductOffer, error) {
	var offers []ProductOffer
	err := r.db.Table("stores AS s").
		Select("s.id AS store_id, s.latitude, s.longitude, p.price_per_unit").
		Joins("JOIN products AS p ON p.store_id = s.id").
		Where("s.id <> ? AND p.product_name = ?", storeID, name).
		Order("s.id ASC").
		Scan(&offers).Error
	if err != nil {
		logger.Error("Failed to find product offers at other stores", err, map[string]interface{}{
			"store_id":     storeID,
			"product_name": name,
		})
		return nil, err
	}

	logger.Debug("Product offers found", map[string]interface{}{
		"store_id":     storeID,
		"product_name": name,
		"count":        len(offers),
	})
	return offers, nil
}

// DecrementUnits removes units only when enough remain. It reports false and
// changes nothing when the product has fewer than units left.
func (r *productRepository) DecrementUnits(storeID uint, name string, units int) (bool, error) {
	result := r.key(storeID, name).
		Where("number_of_units >= ?", units).
		Update("number_of_units", gorm.Expr("number_of_units - ?", units))
	if result.Error != nil {
		logger.Error("Failed to decrement product units", result.Error, map[string]interface{}{
			"store_id":     storeID,
			"product_name": name,
			"units":        units,
		})
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *productRepository) IncrementUnits(storeID uint, name string, units int) error {
	result := r.key(storeID, name).Update("number_of_units", gorm.Expr("number_of_units + ?", units))
	if result.Error != nil {
		logger.Error("Failed to increment product units", result.Error, map[string]interface{}{
			"store_id":     storeID,
			"product_name": name,
			"units":        units,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Update sets columns on one product. A "product_name" entry renames it.
func (r *productRepository) Update(storeID uint, name string, fields map[string]interface{}) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"store_id":     storeID,
		"product_name": name,
		"fields":       fields,
	})

	result := r.key(storeID, name).Updates(fields)
	if result.Error != nil {
		logger.Error("Failed to update product in database", result.Error, map[string]interface{}{
			"store_id":     storeID,
			"product_name": name,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
