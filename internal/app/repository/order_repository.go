package repository

import (
	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/pkg/logger"
	"gorm.io/gorm"
)

// ProductPopularity is the number of orders placed for a product name.
type ProductPopularity struct {
	ProductName string
	OrderCount  int64
}

// CustomerPopularity is the number of orders placed by one customer.
type CustomerPopularity struct {
	CustomerID uint
	Name       string
	Latitude   float64
	Longitude  float64
	OrderCount int64
}

type OrderRepository interface {
	Create(order *model.Order) error
	FindRecentByCustomer(customerID uint, limit int) ([]model.Order, error)
	FindByStore(storeID uint) ([]model.Order, error)
	PopularProducts(managerID uint, limit int) ([]ProductPopularity, error)
	PopularCustomers(managerID uint, limit int) ([]CustomerPopularity, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) managedStores(managerID uint) *gorm.DB {
	return r.db.Model(&model.Store{}).Select("id").Where("manager_id = ?", managerID)
}

func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"customer_id":  order.CustomerID,
		"store_id":     order.StoreID,
		"product_name": order.ProductName,
		"units":        order.UnitsOrdered,
	})

	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"customer_id": order.CustomerID,
			"store_id":    order.StoreID,
		})
		return err
	}

	logger.Debug("Order created in database", map[string]interface{}{
		"order_id": order.ID,
	})
	return nil
}

// FindRecentByCustomer returns the customer's newest orders first.
func (r *orderRepository) FindRecentByCustomer(customerID uint, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Where("customer_id = ?", customerID).
		Order("order_time DESC").
		Order("id DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find recent orders", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByStore(storeID uint) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.Where("store_id = ?", storeID).Order("id ASC").Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders by store", err, map[string]interface{}{
			"store_id": storeID,
		})
		return nil, err
	}

	logger.Debug("Orders found by store", map[string]interface{}{
		"store_id": storeID,
		"count":    len(orders),
	})
	return orders, nil
}

// PopularProducts counts orders per product name across the manager's stores.
func (r *orderRepository) PopularProducts(managerID uint, limit int) ([]ProductPopularity, error) {
	var rows []ProductPopularity
	err := r.db.Model(&model.Order{}).
		Select("product_name, COUNT(*) AS order_count").
		Where("store_id IN (?)", r.managedStores(managerID)).
		Group("product_name").
		Order("order_count DESC").
		Order("product_name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to aggregate popular products", err, map[string]interface{}{
			"manager_id": managerID,
		})
		return nil, err
	}
	return rows, nil
}

// PopularCustomers counts orders per customer across the manager's stores.
func (r *orderRepository) PopularCustomers(managerID uint, limit int) ([]CustomerPopularity, error) {
	var rows []CustomerPopularity
	err := r.db.Table("orders AS o").
		Select("o.customer_id, u.name, u.latitude, u.longitude, COUNT(*) AS order_count").
		Joins("JOIN users AS u ON u.id = o.customer_id").
		Where("o.store_id IN (?)", r.managedStores(managerID)).
		Group("o.customer_id, u.name, u.latitude, u.longitude").
		Order("order_count DESC").
		Order("o.customer_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to aggregate popular customers", err, map[string]interface{}{
			"manager_id": managerID,
		})
		return nil, err
	}
	return rows, nil
}
