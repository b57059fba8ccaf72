package service

import (
	"errors"
	"fmt"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/repository"
	"github.com/ikkim/storefront/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNameTaken          = errors.New("that name has already been taken")
	ErrInvalidCredentials = errors.New("unrecognized username or incorrect password")
	ErrUserNotFound       = errors.New("user not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrStoreNotFound      = errors.New("store not found")
	ErrStoreNotNearby     = errors.New("store is not within the nearby radius")
	ErrNotStoreManager    = errors.New("not the manager of this store")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductNameTaken   = errors.New("product name already exists at this store")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrWarehouseNotFound  = errors.New("warehouse not found")
	ErrNothingToUpdate    = errors.New("no changes provided")
)

// IsValidationError reports whether err is an expected rejection of user input
// rather than a storage failure.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidInput,
		ErrNameTaken,
		ErrInvalidCredentials,
		ErrUserNotFound,
		ErrPermissionDenied,
		ErrStoreNotFound,
		ErrStoreNotNearby,
		ErrNotStoreManager,
		ErrProductNotFound,
		ErrProductNameTaken,
		ErrInsufficientStock,
		ErrInvalidQuantity,
		ErrWarehouseNotFound,
		ErrNothingToUpdate,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func invalidInput(message string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, message)
}

// loadActor re-reads the acting user so role changes take effect immediately.
func loadActor(repos *repository.Repositories, userID uint) (*model.User, error) {
	user, err := repos.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func requireRole(repos *repository.Repositories, userID uint, roles ...model.UserRole) (*model.User, error) {
	user, err := loadActor(repos, userID)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		if user.Role == role {
			return user, nil
		}
	}
	logger.Warn("Action refused for role", map[string]interface{}{
		"user_id": userID,
		"role":    user.Role,
		"allowed": roles,
	})
	return nil, ErrPermissionDenied
}

// requireStore checks the store exists and, unless the actor is an admin, that
// the actor manages it.
func requireStore(repos *repository.Repositories, actor *model.User, storeID uint) (*model.Store, error) {
	store, err := repos.Stores.FindByID(storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	if actor.Role == model.RoleAdmin {
		return store, nil
	}
	managed, err := repos.Stores.IsManagedBy(storeID, actor.ID)
	if err != nil {
		return nil, err
	}
	if !managed {
		logger.Warn("Store access refused: not the store manager", map[string]interface{}{
			"store_id": storeID,
			"user_id":  actor.ID,
		})
		return nil, ErrNotStoreManager
	}
	return store, nil
}
