package workflow

import (
	"fmt"
	"strconv"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/service"
	"github.com/ikkim/storefront/internal/console"
	"github.com/ikkim/storefront/internal/validation"
)

type ProductWorkflow struct {
	authService    service.AuthService
	storeService   service.StoreService
	productService service.ProductService
}

func NewProductWorkflow(
	authService service.AuthService,
	storeService service.StoreService,
	productService service.ProductService,
) *ProductWorkflow {
	return &ProductWorkflow{
		authService:    authService,
		storeService:   storeService,
		productService: productService,
	}
}

// UpdateProduct edits products store by store. Blank answers leave a field as
// it is, and only admins are offered a rename.
func (w *ProductWorkflow) UpdateProduct(s *Session) error {
	p := s.Port

	actor, err := w.authService.CurrentUser(s.UserID)
	if err != nil {
		return err
	}
	canRename := actor.Role == model.RoleAdmin

	for {
		if err := w.listStores(s, canRename); err != nil {
			return err
		}
		storeID, err := askManagedStore(s, w.storeService, "\tEnter the ID of the store you are updating a product at: ")
		if err != nil {
			return err
		}

		for {
			if err := w.updateOne(s, storeID, canRename); err != nil {
				return err
			}
			p.Println()
			again, err := confirm(p, fmt.Sprintf("\tDo you want to update another product at store %d? [y/N]: ", storeID))
			if err != nil {
				return err
			}
			if !again {
				break
			}
		}

		p.Println()
		again, err := confirm(p, "\tDo you want to update products for another store? [y/N]: ")
		if err != nil || !again {
			return err
		}
	}
}

// listStores prints every store for admins and the managed stores otherwise.
func (w *ProductWorkflow) listStores(s *Session, all bool) error {
	var (
		stores []model.Store
		err    error
	)
	if all {
		stores, err = w.storeService.AllStores()
	} else {
		stores, err = w.storeService.ManagedStores(s.UserID)
	}
	if err != nil {
		return err
	}
	if len(stores) == 0 {
		s.Port.Println("You do not manage any stores.")
		return nil
	}
	s.Port.Println()
	printStores(s.Port, stores)
	return nil
}

func (w *ProductWorkflow) updateOne(s *Session, storeID uint, canRename bool) error {
	p := s.Port

	products, err := w.storeService.ListProducts(storeID)
	if err != nil {
		return err
	}
	p.Println()
	printProducts(p, storeID, products)

	var productName string
	for {
		name, err := p.Prompt("\tEnter the name of the product you are updating: ")
		if err != nil {
			return err
		}
		exists, err := w.productService.ProductExists(storeID, name)
		if err != nil {
			return err
		}
		if exists {
			productName = name
			break
		}
		p.Println(msgNotInDatabase)
	}

	var changes service.ProductChanges
	if canRename {
		newName, err := w.askNewName(p, storeID)
		if err != nil {
			return err
		}
		changes.NewName = newName
	}

	units, err := ask(p, "\tUpdate number of units? Provide updated value (no entry to skip): ", validation.ParseCount)
	if err != nil {
		return err
	}
	if units.OK() {
		changes.Units = &units.Value
	}

	price, err := ask(p, "\tUpdate price per unit? Provide updated price (no entry to skip): ", validation.ParsePrice)
	if err != nil {
		return err
	}
	if price.OK() {
		changes.Price = &price.Value
	}

	if changes.Empty() {
		p.Println("No changes made.")
		return nil
	}

	result, err := w.productService.UpdateProduct(s.UserID, storeID, productName, changes)
	if err != nil {
		if service.IsValidationError(err) {
			p.Warn(explain(err, "update product"))
			return nil
		}
		return err
	}

	updated := result.Product
	p.Success(fmt.Sprintf("Updated %s at store %d: %d units at $%s per unit.",
		updated.ProductName, storeID, updated.NumberOfUnits, formatPrice(updated.PricePerUnit)))
	return nil
}

// askNewName returns nil when the rename is skipped.
func (w *ProductWorkflow) askNewName(p *console.Port, storeID uint) (*string, error) {
	for {
		r, err := ask(p, "\tUpdate product name? Provide updated name (no entry to skip): ", validation.ProductName)
		if err != nil {
			return nil, err
		}
		if r.Skipped() {
			return nil, nil
		}
		taken, err := w.productService.ProductExists(storeID, r.Value)
		if err != nil {
			return nil, err
		}
		if !taken {
			return &r.Value, nil
		}
		p.Printf("Product named %s already exists at store %d.\n", r.Value, storeID)
	}
}

// RecentUpdates shows the five newest audit rows across the manager's stores.
func (w *ProductWorkflow) RecentUpdates(s *Session) error {
	updates, err := w.productService.RecentUpdates(s.UserID)
	if err != nil {
		return err
	}
	if len(updates) == 0 {
		s.Port.Println("No product updates recorded for your stores.")
		return nil
	}

	rows := make([][]string, 0, len(updates))
	for _, u := range updates {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(u.ID), 10),
			strconv.FormatUint(uint64(u.ManagerID), 10),
			strconv.FormatUint(uint64(u.StoreID), 10),
			u.ProductName,
			u.UpdatedOn.Format(orderTimeLayout),
		})
	}
	s.Port.Table([]string{"updateNumber", "managerID", "storeID", "productName", "updatedOn"}, rows)
	return nil
}
