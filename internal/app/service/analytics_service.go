package service

import (
	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/repository"
	"github.com/ikkim/storefront/pkg/logger"
)

const popularLimit = 5

// ManagerReport gathers the analytics shown to a manager.
type ManagerReport struct {
	Manager          model.User
	Stores           []model.Store
	PopularProducts  []repository.ProductPopularity
	PopularCustomers []repository.CustomerPopularity
	RecentUpdates    []model.ProductUpdate
}

type AnalyticsService interface {
	PopularProducts(managerID uint) ([]repository.ProductPopularity, error)
	PopularCustomers(managerID uint) ([]repository.CustomerPopularity, error)
	Report(managerID uint) (*ManagerReport, error)
}

type analyticsService struct {
	repos *repository.Repositories
}

func NewAnalyticsService(repos *repository.Repositories) AnalyticsService {
	return &analyticsService{repos: repos}
}

// PopularProducts ranks product names by order count across the manager's stores.
func (s *analyticsService) PopularProducts(managerID uint) ([]repository.ProductPopularity, error) {
	return s.repos.Orders.PopularProducts(managerID, popularLimit)
}

// PopularCustomers ranks customers by order count across the manager's stores.
func (s *analyticsService) PopularCustomers(managerID uint) ([]repository.CustomerPopularity, error) {
	return s.repos.Orders.PopularCustomers(managerID, popularLimit)
}

func (s *analyticsService) Report(managerID uint) (*ManagerReport, error) {
	manager, err := requireRole(s.repos, managerID, model.RoleManager, model.RoleAdmin)
	if err != nil {
		return nil, err
	}

	report := &ManagerReport{Manager: *manager}
	if report.Stores, err = s.repos.Stores.FindByManager(managerID); err != nil {
		return nil, err
	}
	if report.PopularProducts, err = s.PopularProducts(managerID); err != nil {
		return nil, err
	}
	if report.PopularCustomers, err = s.PopularCustomers(managerID); err != nil {
		return nil, err
	}
	if report.RecentUpdates, err = s.repos.ProductUpdates.FindRecentByManager(managerID, recentLimit); err != nil {
		return nil, err
	}

	logger.Info("Manager report assembled", map[string]interface{}{
		"manager_id": managerID,
		"stores":     len(report.Stores),
		"products":   len(report.PopularProducts),
		"customers":  len(report.PopularCustomers),
		"updates":    len(report.RecentUpdates),
	})
	return report, nil
}
