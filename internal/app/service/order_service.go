package service

import (
	"errors"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/repository"
	"github.com/ikkim/storefront/pkg/logger"
	"gorm.io/gorm"
)

const recentLimit = 5

type OrderService interface {
	PlaceOrder(customerID, storeID uint, productName string, units int) (*model.Order, error)
	RecentOrders(customerID uint) ([]model.Order, error)
	StoreOrders(managerID, storeID uint) ([]model.Order, error)
}

type orderService struct {
	repos *repository.Repositories
}

func NewOrderService(repos *repository.Repositories) OrderService {
	return &orderService{repos: repos}
}

// PlaceOrder records the order and takes the units off the shelf in one
// transaction. The decrement is conditional, so stock never goes negative even
// if the count changed after the customer saw it.
func (s *orderService) PlaceOrder(customerID, storeID uint, productName string, units int) (*model.Order, error) {
	logger.Info("Placing order", map[string]interface{}{
		"customer_id":  customerID,
		"store_id":     storeID,
		"product_name": productName,
		"units":        units,
	})

	if units <= 0 {
		return nil, ErrInvalidQuantity
	}

	var order *model.Order
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		customer, err := loadActor(tx, customerID)
		if err != nil {
			return err
		}

		nearby, err := nearbyStores(tx, customer)
		if err != nil {
			return err
		}
		if !containsStore(nearby, storeID) {
			return ErrStoreNotNearby
		}

		product, err := tx.Products.FindOneForUpdate(storeID, productName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		if product.NumberOfUnits < units {
			logger.Warn("Order refused: insufficient stock", map[string]interface{}{
				"store_id":     storeID,
				"product_name": productName,
				"requested":    units,
				"available":    product.NumberOfUnits,
			})
			return ErrInsufficientStock
		}

		order = &model.Order{
			CustomerID:   customerID,
			StoreID:      storeID,
			ProductName:  productName,
			UnitsOrdered: units,
		}
		if err := tx.Orders.Create(order); err != nil {
			return err
		}

		ok, err := tx.Products.DecrementUnits(storeID, productName, units)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInsufficientStock
		}
		return nil
	})
	if err != nil {
		if !IsValidationError(err) {
			logger.Error("Failed to place order", err, map[string]interface{}{
				"customer_id": customerID,
				"store_id":    storeID,
			})
		}
		return nil, err
	}

	logger.Info("Order placed successfully", map[string]interface{}{
		"order_id":     order.ID,
		"customer_id":  customerID,
		"store_id":     storeID,
		"product_name": productName,
		"units":        units,
	})
	return order, nil
}

func containsStore(nearby []NearbyStore, storeID uint) bool {
	for _, n := range nearby {
		if n.Store.ID == storeID {
			return true
		}
	}
	return false
}

// RecentOrders returns the customer's five newest orders.
func (s *orderService) RecentOrders(customerID uint) ([]model.Order, error) {
	return s.repos.Orders.FindRecentByCustomer(customerID, recentLimit)
}

// StoreOrders lists every order at a store the manager runs.
func (s *orderService) StoreOrders(managerID, storeID uint) ([]model.Order, error) {
	actor, err := requireRole(s.repos, managerID, model.RoleManager, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if _, err := requireStore(s.repos, actor, storeID); err != nil {
		return nil, err
	}
	return s.repos.Orders.FindByStore(storeID)
}
