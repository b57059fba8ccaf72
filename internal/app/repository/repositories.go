package repository

import (
	"gorm.io/gorm"
)

// Repositories bundles every repository over one connection or transaction.
type Repositories struct {
	db *gorm.DB

	Users          UserRepository
	Stores         StoreRepository
	Products       ProductRepository
	Orders         OrderRepository
	ProductUpdates ProductUpdateRepository
	SupplyRequests SupplyRequestRepository
	Warehouses     WarehouseRepository
	Lookup         LookupRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:             db,
		Users:          NewUserRepository(db),
		Stores:         NewStoreRepository(db),
		Products:       NewProductRepository(db),
		Orders:         NewOrderRepository(db),
		ProductUpdates: NewProductUpdateRepository(db),
		SupplyRequests: NewSupplyRequestRepository(db),
		Warehouses:     NewWarehouseRepository(db),
		Lookup:         NewLookupRepository(db),
	}
}

// Transaction runs fn as one unit of work. fn must only use the repositories it
// is given; they are bound to the transaction, which commits when fn returns nil
// and rolls back otherwise.
func (r *Repositories) Transaction(fn func(tx *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
