package service

import (
	"github.com/ikkim/storefront/internal/app/repository"
)

// Services is every service the console needs, sharing one set of repositories.
type Services struct {
	Auth      AuthService
	Stores    StoreService
	Orders    OrderService
	Products  ProductService
	Supply    SupplyService
	Analytics AnalyticsService
	Admin     AdminService
}

func New(repos *repository.Repositories) *Services {
	return &Services{
		Auth:      NewAuthService(repos),
		Stores:    NewStoreService(repos),
		Orders:    NewOrderService(repos),
		Products:  NewProductService(repos),
		Supply:    NewSupplyService(repos),
		Analytics: NewAnalyticsService(repos),
		Admin:     NewAdminService(repos),
	}
}
