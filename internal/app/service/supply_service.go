package service

import (
	"errors"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/repository"
	"github.com/ikkim/storefront/internal/validation"
	"github.com/ikkim/storefront/pkg/logger"
	"gorm.io/gorm"
)

// SupplyOutcome says what a supply request did to the store's inventory.
type SupplyOutcome int

const (
	SupplyRestocked        SupplyOutcome = iota // existing product's units were increased
	SupplyStocked                               // product was added at the nearest store's price
	SupplyPriceUnavailable                      // no other store carries it; inventory unchanged
)

func (o SupplyOutcome) String() string {
	switch o {
	case SupplyRestocked:
		return "restocked"
	case SupplyStocked:
		return "stocked"
	case SupplyPriceUnavailable:
		return "price_unavailable"
	}
	return "unknown"
}

type SupplyRequestInput struct {
	ManagerID   uint
	StoreID     uint
	WarehouseID uint
	ProductName string
	Units       int
}

type SupplyResult struct {
	Request model.ProductSupplyRequest
	Outcome SupplyOutcome
	Price   float64 // price of the new product when Outcome is SupplyStocked
}

type SupplyService interface {
	ProductNameKnown(productName string) (bool, error)
	WarehouseExists(warehouseID uint) (bool, error)
	ListWarehouses() ([]model.Warehouse, error)
	PlaceRequest(input SupplyRequestInput) (*SupplyResult, error)
}

type supplyService struct {
	repos *repository.Repositories
}

func NewSupplyService(repos *repository.Repositories) SupplyService {
	return &supplyService{repos: repos}
}

// ProductNameKnown reports whether any store carries a product with this name.
func (s *supplyService) ProductNameKnown(productName string) (bool, error) {
	return s.repos.Lookup.Exists("products", "product_name", productName)
}

func (s *supplyService) WarehouseExists(warehouseID uint) (bool, error) {
	return s.repos.Lookup.Exists("warehouses", "id", warehouseID)
}

func (s *supplyService) ListWarehouses() ([]model.Warehouse, error) {
	return s.repos.Warehouses.FindAll()
}

// PlaceRequest records a supply request and applies it to the store's inventory.
// Any existing store may be supplied. When the store does not carry the product
// and no other store does either, the request row is still written but the
// inventory is left unchanged and the result says SupplyPriceUnavailable.
func (s *supplyService) PlaceRequest(input SupplyRequestInput) (*SupplyResult, error) {
	logger.Info("Placing supply request", map[string]interface{}{
		"manager_id":   input.ManagerID,
		"store_id":     input.StoreID,
		"warehouse_id": input.WarehouseID,
		"product_name": input.ProductName,
		"units":        input.Units,
	})

	if r := validation.ProductName(input.ProductName); !r.OK() {
		if r.Skipped() {
			return nil, invalidInput("a product name is required")
		}
		return nil, invalidInput(r.Message)
	}
	if input.Units <= 0 {
		return nil, ErrInvalidQuantity
	}

	result := &SupplyResult{}
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		if _, err := requireRole(tx, input.ManagerID, model.RoleManager, model.RoleAdmin); err != nil {
			return err
		}
		if _, err := tx.Stores.FindByID(input.StoreID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStoreNotFound
			}
			return err
		}
		known, err := tx.Products.NameExists(input.ProductName)
		if err != nil {
			return err
		}
		if !known {
			return ErrProductNotFound
		}
		if _, err := tx.Warehouses.FindByID(input.WarehouseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWarehouseNotFound
			}
			return err
		}

		return recordSupply(tx, input, result)
	})
	if err != nil {
		if !IsValidationError(err) {
			logger.Error("Failed to place supply request", err, map[string]interface{}{
				"manager_id": input.ManagerID,
				"store_id":   input.StoreID,
			})
		}
		return nil, err
	}

	fields := map[string]interface{}{
		"request_id": result.Request.ID,
		"store_id":   input.StoreID,
		"outcome":    result.Outcome.String(),
	}
	if result.Outcome == SupplyPriceUnavailable {
		logger.Warn("Supply request recorded without inventory change: no price source", fields)
	} else {
		logger.Info("Supply request placed successfully", fields)
	}
	return result, nil
}

// recordSupply writes the request row and then restocks the store or stocks the
// product at the nearest other store's price.
func recordSupply(tx *repository.Repositories, input SupplyRequestInput, result *SupplyResult) error {
	result.Request = model.ProductSupplyRequest{
		ManagerID:      input.ManagerID,
		WarehouseID:    input.WarehouseID,
		StoreID:        input.StoreID,
		ProductName:    input.ProductName,
		UnitsRequested: input.Units,
	}
	if err := tx.SupplyRequests.Create(&result.Request); err != nil {
		return err
	}

	carried, err := tx.Products.Exists(input.StoreID, input.ProductName)
	if err != nil {
		return err
	}
	if carried {
		result.Outcome = SupplyRestocked
		return tx.Products.IncrementUnits(input.StoreID, input.ProductName, input.Units)
	}

	price, found, err := nearestPrice(tx, input.StoreID, input.ProductName)
	if err != nil {
		return err
	}
	if !found {
		// PlaceRequest has already required that some store carries the name, so
		// only callers that skip that check land here. The request row is kept.
		result.Outcome = SupplyPriceUnavailable
		return nil
	}

	result.Outcome = SupplyStocked
	result.Price = price
	return tx.Products.Create(&model.Product{
		StoreID:       input.StoreID,
		ProductName:   input.ProductName,
		NumberOfUnits: input.Units,
		PricePerUnit:  price,
	})
}
