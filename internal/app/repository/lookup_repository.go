package repository

import (
	"fmt"

	"github.com/ikkim/storefront/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lookupColumns whitelists the identifiers Exists may touch. Table and column
// names cannot be bound as parameters, so anything else is refused.
var lookupColumns = map[string]map[string]bool{
	"users":      {"id": true, "name": true},
	"stores":     {"id": true, "manager_id": true},
	"products":   {"product_name": true, "store_id": true},
	"warehouses": {"id": true},
	"orders":     {"id": true, "customer_id": true, "store_id": true},
}

// LookupRepository answers "does a row with this value exist" questions.
type LookupRepository interface {
	Exists(table, column string, value interface{}) (bool, error)
}

type lookupRepository struct {
	db *gorm.DB
}

func NewLookupRepository(db *gorm.DB) LookupRepository {
	return &lookupRepository{db: db}
}

func (r *lookupRepository) Exists(table, column string, value interface{}) (bool, error) {
	if !lookupColumns[table][column] {
		return false, fmt.Errorf("lookup on %s.%s is not permitted", table, column)
	}

	var count int64
	err := r.db.Table(table).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed existence lookup", err, map[string]interface{}{
			"table":  table,
			"column": column,
		})
		return false, err
	}
	return count > 0, nil
}
