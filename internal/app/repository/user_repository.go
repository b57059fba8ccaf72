package repository

import (
	"errors"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByName(name string) (*model.User, error)
	FindAll() ([]model.User, error)
	NameExists(name string) (bool, error)
	UpdateName(id uint, name string) error
	UpdatePasswordHash(id uint, hash string) error
	UpdateLocation(id uint, latitude, longitude float64) error
	UpdateRole(id uint, role model.UserRole) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"name": user.Name,
		"role": user.Role,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"name": user.Name,
		})
		return err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id": user.ID,
		"name":    user.Name,
	})
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	logger.Debug("Finding user by ID in database", map[string]interface{}{
		"user_id": id,
	})

	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find user by ID in database", err, map[string]interface{}{
				"user_id": id,
			})
		}
		return nil, err
	}
	return &user, nil
}

// FindByName matches the name exactly and case-sensitively.
func (r *userRepository) FindByName(name string) (*model.User, error) {
	logger.Debug("Finding user by name in database", map[string]interface{}{
		"name": name,
	})

	var user model.User
	if err := r.db.Where("name = ?", name).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find user by name in database", err, map[string]interface{}{
				"name": name,
			})
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll() ([]model.User, error) {
	var users []model.User
	if err := r.db.Order("id ASC").Find(&users).Error; err != nil {
		logger.Error("Failed to list users in database", err)
		return nil, err
	}

	logger.Debug("Users listed from database", map[string]interface{}{
		"count": len(users),
	})
	return users, nil
}

func (r *userRepository) NameExists(name string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.User{}).Where("name = ?", name).Count(&count).Error; err != nil {
		logger.Error("Failed to check user name in database", err, map[string]interface{}{
			"name": name,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) UpdateName(id uint, name string) error {
	return r.update(id, map[string]interface{}{"name": name})
}

func (r *userRepository) UpdatePasswordHash(id uint, hash string) error {
	return r.update(id, map[string]interface{}{"password_hash": hash})
}

func (r *userRepository) UpdateLocation(id uint, latitude, longitude float64) error {
	return r.update(id, map[string]interface{}{
		"latitude":  latitude,
		"longitude": longitude,
	})
}

func (r *userRepository) UpdateRole(id uint, role model.UserRole) error {
	return r.update(id, map[string]interface{}{"role": role})
}

func (r *userRepository) update(id uint, fields map[string]interface{}) error {
	columns := make([]string, 0, len(fields))
	for k := range fields {
		columns = append(columns, k)
	}
	logger.Debug("Updating user in database", map[string]interface{}{
		"user_id": id,
		"columns": columns,
	})

	result := r.db.Model(&model.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		logger.Error("Failed to update user in database", result.Error, map[string]interface{}{
			"user_id": id,
			"columns": columns,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
