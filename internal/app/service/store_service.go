package service

import (
	"errors"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/repository"
	"github.com/ikkim/storefront/pkg/geo"
	"github.com/ikkim/storefront/pkg/logger"
	"gorm.io/gorm"
)

// NearbyStore is a store within geo.NearbyRadius of a user.
type NearbyStore struct {
	Store    model.Store
	Distance float64
}

type StoreService interface {
	AllStores() ([]model.Store, error)
	NearbyStores(userID uint) ([]NearbyStore, error)
	ManagedStores(managerID uint) ([]model.Store, error)
	StoreExists(storeID uint) (bool, error)
	CheckAccess(actorID, storeID uint) error
	ListProducts(storeID uint) ([]model.Product, error)
	NearestPrice(storeID uint, productName string) (float64, bool, error)
}

type storeService struct {
	repos *repository.Repositories
}

func NewStoreService(repos *repository.Repositories) StoreService {
	return &storeService{repos: repos}
}

func (s *storeService) AllStores() ([]model.Store, error) {
	return s.repos.Stores.FindAll()
}

// NearbyStores keeps storage order. Results are not sorted by distance.
func (s *storeService) NearbyStores(userID uint) ([]NearbyStore, error) {
	user, err := loadActor(s.repos, userID)
	if err != nil {
		return nil, err
	}
	return nearbyStores(s.repos, user)
}

func nearbyStores(repos *repository.Repositories, user *model.User) ([]NearbyStore, error) {
	stores, err := repos.Stores.FindAll()
	if err != nil {
		return nil, err
	}

	origin := geo.Point{Latitude: user.Latitude, Longitude: user.Longitude}
	nearby := make([]NearbyStore, 0, len(stores))
	for _, store := range stores {
		at := geo.Point{Latitude: store.Latitude, Longitude: store.Longitude}
		if geo.Within(origin, at, geo.NearbyRadius) {
			nearby = append(nearby, NearbyStore{Store: store, Distance: geo.Between(origin, at)})
		}
	}

	logger.Debug("Nearby stores computed", map[string]interface{}{
		"user_id":      user.ID,
		"total_stores": len(stores),
		"nearby":       len(nearby),
	})
	return nearby, nil
}

func (s *storeService) ManagedStores(managerID uint) ([]model.Store, error) {
	return s.repos.Stores.FindByManager(managerID)
}

func (s *storeService) StoreExists(storeID uint) (bool, error) {
	return s.repos.Lookup.Exists("stores", "id", storeID)
}

// CheckAccess reports ErrStoreNotFound or ErrNotStoreManager when the actor may not
// manage products at the store. Admins may manage every store.
func (s *storeService) CheckAccess(actorID, storeID uint) error {
	actor, err := requireRole(s.repos, actorID, model.RoleManager, model.RoleAdmin)
	if err != nil {
		return err
	}
	_, err = requireStore(s.repos, actor, storeID)
	return err
}

func (s *storeService) ListProducts(storeID uint) ([]model.Product, error) {
	if _, err := s.repos.Stores.FindByID(storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return s.repos.Products.FindByStore(storeID)
}

// NearestPrice returns the price charged by the closest other store carrying the
// product. found is false when no other store carries it.
func (s *storeService) NearestPrice(storeID uint, productName string) (float64, bool, error) {
	return nearestPrice(s.repos, storeID, productName)
}

func nearestPrice(repos *repository.Repositories, storeID uint, productName string) (float64, bool, error) {
	store, err := repos.Stores.FindByID(storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, ErrStoreNotFound
		}
		return 0, false, err
	}

	offers, err := repos.Products.FindOffersElsewhere(storeID, productName)
	if err != nil {
		return 0, false, err
	}

	candidates := make([]geo.Point, len(offers))
	for i, o := range offers {
		candidates[i] = geo.Point{Latitude: o.Latitude, Longitude: o.Longitude}
	}
	idx, distance := geo.Nearest(geo.Point{Latitude: store.Latitude, Longitude: store.Longitude}, candidates)
	if idx < 0 {
		return 0, false, nil
	}

	logger.Debug("Nearest price resolved", map[string]interface{}{
		"store_id":     storeID,
		"product_name": productName,
		"source_store": offers[idx].StoreID,
		"distance":     distance,
		"price":        offers[idx].PricePerUnit,
	})
	return offers[idx].PricePerUnit, true, nil
}
