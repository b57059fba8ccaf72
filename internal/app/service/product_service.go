package service

import (
	"errors"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/repository"
	"github.com/ikkim/storefront/internal/validation"
	"github.com/ikkim/storefront/pkg/logger"
	"gorm.io/gorm"
)

// ProductChanges lists the fields to change on one product. Nil fields are left alone.
type ProductChanges struct {
	NewName *string
	Units   *int
	Price   *float64
}

// Empty reports whether there is nothing to apply.
func (c ProductChanges) Empty() bool {
	return c.NewName == nil && c.Units == nil && c.Price == nil
}

// ProductUpdateResult is the product after the update and the audit rows written for it.
type ProductUpdateResult struct {
	Product   model.Product
	AuditRows []model.ProductUpdate
}

type ProductService interface {
	ProductExists(storeID uint, productName string) (bool, error)
	UpdateProduct(actorID, storeID uint, productName string, changes ProductChanges) (*ProductUpdateResult, error)
	RecentUpdates(managerID uint) ([]model.ProductUpdate, error)
}

type productService struct {
	repos *repository.Repositories
}

func NewProductService(repos *repository.Repositories) ProductService {
	return &productService{repos: repos}
}

func (s *productService) ProductExists(storeID uint, productName string) (bool, error) {
	return s.repos.Products.Exists(storeID, productName)
}

// UpdateProduct applies changes to one product and appends the audit trail in the
// same transaction. A rename writes one audit row under the new name; a units
// and/or price change writes one more. Only admins may rename, and managers may
// only touch stores they manage.
func (s *productService) UpdateProduct(actorID, storeID uint, productName string, changes ProductChanges) (*ProductUpdateResult, error) {
	logger.Info("Updating product", map[string]interface{}{
		"actor_id":     actorID,
		"store_id":     storeID,
		"product_name": productName,
		"rename":       changes.NewName != nil,
		"units":        changes.Units != nil,
		"price":        changes.Price != nil,
	})

	if changes.Empty() {
		return nil, ErrNothingToUpdate
	}
	if changes.Units != nil && *changes.Units < 0 {
		return nil, invalidInput(validation.MsgNegative)
	}
	if changes.Price != nil && *changes.Price < 0 {
		return nil, invalidInput(validation.MsgNegative)
	}
	if changes.NewName != nil {
		if r := validation.ProductName(*changes.NewName); !r.OK() {
			if r.Skipped() {
				return nil, invalidInput("a new product name cannot be empty")
			}
			return nil, invalidInput(r.Message)
		}
	}

	result := &ProductUpdateResult{}
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		actor, err := requireRole(tx, actorID, model.RoleManager, model.RoleAdmin)
		if err != nil {
			return err
		}
		if changes.NewName != nil && actor.Role != model.RoleAdmin {
			return ErrPermissionDenied
		}
		if _, err := requireStore(tx, actor, storeID); err != nil {
			return err
		}

		if _, err := tx.Products.FindOneForUpdate(storeID, productName); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		name := productName
		if changes.NewName != nil {
			taken, err := tx.Products.Exists(storeID, *changes.NewName)
			if err != nil {
				return err
			}
			if taken {
				return ErrProductNameTaken
			}
			if err := tx.Products.Update(storeID, name, map[string]interface{}{"product_name": *changes.NewName}); err != nil {
				return err
			}
			name = *changes.NewName

			audit, err := recordUpdate(tx, actor.ID, storeID, name)
			if err != nil {
				return err
			}
			result.AuditRows = append(result.AuditRows, *audit)
		}

		fields := map[string]interface{}{}
		if changes.Units != nil {
			fields["number_of_units"] = *changes.Units
		}
		if changes.Price != nil {
			fields["price_per_unit"] = *changes.Price
		}
		if len(fields) > 0 {
			if err := tx.Products.Update(storeID, name, fields); err != nil {
				return err
			}
			audit, err := recordUpdate(tx, actor.ID, storeID, name)
			if err != nil {
				return err
			}
			result.AuditRows = append(result.AuditRows, *audit)
		}

		product, err := tx.Products.FindOne(storeID, name)
		if err != nil {
			return err
		}
		result.Product = *product
		return nil
	})
	if err != nil {
		if !IsValidationError(err) {
			logger.Error("Failed to update product", err, map[string]interface{}{
				"actor_id":     actorID,
				"store_id":     storeID,
				"product_name": productName,
			})
		}
		return nil, err
	}

	logger.Info("Product updated successfully", map[string]interface{}{
		"actor_id":     actorID,
		"store_id":     storeID,
		"product_name": result.Product.ProductName,
		"audit_rows":   len(result.AuditRows),
	})
	return result, nil
}

func recordUpdate(tx *repository.Repositories, actorID, storeID uint, productName string) (*model.ProductUpdate, error) {
	audit := &model.ProductUpdate{
		ManagerID:   actorID,
		StoreID:     storeID,
		ProductName: productName,
	}
	if err := tx.ProductUpdates.Create(audit); err != nil {
		return nil, err
	}
	return audit, nil
}

// RecentUpdates returns the five newest audit rows across the manager's stores.
func (s *productService) RecentUpdates(managerID uint) ([]model.ProductUpdate, error) {
	return s.repos.ProductUpdates.FindRecentByManager(managerID, recentLimit)
}
