package service

import (
	"errors"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/repository"
	"github.com/ikkim/storefront/internal/validation"
	"github.com/ikkim/storefront/pkg/logger"
	"github.com/ikkim/storefront/pkg/util"
	"gorm.io/gorm"
)

type AdminService interface {
	ListUsers(adminID uint) ([]model.User, error)
	UserExists(userID uint) (bool, error)
	RenameUser(adminID, userID uint, name string) error
	ChangePassword(adminID, userID uint, password string) error
	Relocate(adminID, userID uint, latitude, longitude float64) error
	ChangeRole(adminID, userID uint, role model.UserRole) error
}

type adminService struct {
	repos *repository.Repositories
}

func NewAdminService(repos *repository.Repositories) AdminService {
	return &adminService{repos: repos}
}

func (s *adminService) ListUsers(adminID uint) ([]model.User, error) {
	if _, err := requireRole(s.repos, adminID, model.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repos.Users.FindAll()
}

func (s *adminService) UserExists(userID uint) (bool, error) {
	return s.repos.Lookup.Exists("users", "id", userID)
}

// RenameUser enforces the same rules as registration: length and uniqueness.
func (s *adminService) RenameUser(adminID, userID uint, name string) error {
	if r := validation.Name(name); !r.OK() {
		return invalidInput(r.Message)
	}
	return s.apply(adminID, userID, "name", func(tx *repository.Repositories) error {
		exists, err := tx.Users.NameExists(name)
		if err != nil {
			return err
		}
		if exists {
			return ErrNameTaken
		}
		return tx.Users.UpdateName(userID, name)
	})
}

func (s *adminService) ChangePassword(adminID, userID uint, password string) error {
	if r := validation.Password(password); !r.OK() {
		return invalidInput(validation.MsgPasswordLength)
	}
	hash, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return s.apply(adminID, userID, "password", func(tx *repository.Repositories) error {
		return tx.Users.UpdatePasswordHash(userID, hash)
	})
}

func (s *adminService) Relocate(adminID, userID uint, latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 {
		return invalidInput(validation.MsgLatitudeFormat)
	}
	if longitude < -180 || longitude > 180 {
		return invalidInput(validation.MsgLongitudeFormat)
	}
	return s.apply(adminID, userID, "location", func(tx *repository.Repositories) error {
		return tx.Users.UpdateLocation(userID, latitude, longitude)
	})
}

func (s *adminService) ChangeRole(adminID, userID uint, role model.UserRole) error {
	if !role.Valid() {
		return invalidInput("unknown user type")
	}
	return s.apply(adminID, userID, "role", func(tx *repository.Repositories) error {
		return tx.Users.UpdateRole(userID, role)
	})
}

func (s *adminService) apply(adminID, userID uint, field string, fn func(tx *repository.Repositories) error) error {
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		if _, err := requireRole(tx, adminID, model.RoleAdmin); err != nil {
			return err
		}
		err := fn(tx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	})
	if err != nil {
		if !IsValidationError(err) {
			logger.Error("Failed to update user", err, map[string]interface{}{
				"admin_id": adminID,
				"user_id":  userID,
				"field":    field,
			})
		}
		return err
	}

	logger.Info("User updated by admin", map[string]interface{}{
		"admin_id": adminID,
		"user_id":  userID,
		"field":    field,
	})
	return nil
}
