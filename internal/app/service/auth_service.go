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

type AuthService interface {
	NameAvailable(name string) (bool, error)
	Register(name, password string, latitude, longitude float64) (*model.User, error)
	Login(name, password string) (*model.User, error)
	CurrentUser(id uint) (*model.User, error)
}

type authService struct {
	repos *repository.Repositories
}

func NewAuthService(repos *repository.Repositories) AuthService {
	return &authService{repos: repos}
}

func (s *authService) NameAvailable(name string) (bool, error) {
	exists, err := s.repos.Users.NameExists(name)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// Register creates a customer account. The name must be unused.
func (s *authService) Register(name, password string, latitude, longitude float64) (*model.User, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"name": name,
	})

	if r := validation.Name(name); !r.OK() {
		return nil, invalidInput(r.Message)
	}
	if r := validation.Password(password); !r.OK() {
		return nil, invalidInput(validation.MsgPasswordLength)
	}

	exists, err := s.repos.Users.NameExists(name)
	if err != nil {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"name": name,
		})
		return nil, err
	}
	if exists {
		logger.Warn("Registration failed: name already exists", map[string]interface{}{
			"name": name,
		})
		return nil, ErrNameTaken
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"name": name,
		})
		return nil, err
	}

	user := &model.User{
		Name:         name,
		PasswordHash: hashedPassword,
		Latitude:     latitude,
		Longitude:    longitude,
		Role:         model.RoleCustomer,
	}
	if err := s.repos.Users.Create(user); err != nil {
		return nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"name":    name,
	})
	return user, nil
}

// Login returns ErrInvalidCredentials for both an unknown name and a wrong password.
func (s *authService) Login(name, password string) (*model.User, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"name": name,
	})

	user, err := s.repos.Users.FindByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"name": name,
			})
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, ErrInvalidCredentials
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return user, nil
}

// CurrentUser re-reads the user, including the role, from storage.
func (s *authService) CurrentUser(id uint) (*model.User, error) {
	return loadActor(s.repos, id)
}
