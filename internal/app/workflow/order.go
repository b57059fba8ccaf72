package workflow

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/service"
	"github.com/ikkim/storefront/internal/validation"
)

const orderTimeLayout = "2006-01-02 15:04:05"

type OrderWorkflow struct {
	storeService service.StoreService
	orderService service.OrderService
}

func NewOrderWorkflow(storeService service.StoreService, orderService service.OrderService) *OrderWorkflow {
	return &OrderWorkflow{
		storeService: storeService,
		orderService: orderService,
	}
}

// PlaceOrder walks the customer from nearby store to product to quantity. An
// empty answer at any step cancels without touching storage.
func (w *OrderWorkflow) PlaceOrder(s *Session) error {
	p := s.Port

	nearby, err := w.storeService.NearbyStores(s.UserID)
	if err != nil {
		return err
	}
	printNearby(p, nearby)
	if len(nearby) == 0 {
		return nil
	}

	var storeID uint
	for {
		r, err := ask(p, "\nEnter the ID of the store within 30 miles you will order from (no entry to cancel): ", validation.ParseID)
		if err != nil {
			return err
		}
		if r.Skipped() {
			return nil
		}
		if isListed(nearby, r.Value) {
			storeID = r.Value
			break
		}
		p.Println("Please enter a store ID from the provided list of stores within 30 miles of your location.")
	}

	products, err := w.storeService.ListProducts(storeID)
	if err != nil {
		return err
	}
	p.Println()
	printProducts(p, storeID, products)
	if len(products) == 0 {
		return nil
	}

	var product model.Product
	for {
		name, err := p.Prompt(fmt.Sprintf("Enter the name of the product you are ordering from store %d (no entry to cancel): ", storeID))
		if err != nil {
			return err
		}
		if name == "" {
			return nil
		}
		if found, ok := findProduct(products, name); ok {
			product = found
			break
		}
		p.Println(msgNotInDatabase)
	}

	p.Printf("\nStore %d has %d units of %s available for order at $%s per unit.\n",
		storeID, product.NumberOfUnits, product.ProductName, formatPrice(product.PricePerUnit))

	var units int
	for {
		r, err := ask(p, fmt.Sprintf("Enter the number of units of %s you want to order (no entry to cancel): ", product.ProductName),
			validation.ParsePositiveCount)
		if err != nil {
			return err
		}
		if r.Skipped() {
			return nil
		}
		if r.Value <= product.NumberOfUnits {
			units = r.Value
			break
		}
		p.Println(msgCannotOrderMore)
	}

	if _, err := w.orderService.PlaceOrder(s.UserID, storeID, product.ProductName, units); err != nil {
		if errors.Is(err, service.ErrInsufficientStock) {
			p.Println(msgCannotOrderMore)
			return nil
		}
		return err
	}

	p.Success(fmt.Sprintf("Order placed for %d units of %s from store %d.", units, product.ProductName, storeID))
	return nil
}

func isListed(nearby []service.NearbyStore, storeID uint) bool {
	for _, n := range nearby {
		if n.Store.ID == storeID {
			return true
		}
	}
	return false
}

func findProduct(products []model.Product, name string) (model.Product, bool) {
	for _, product := range products {
		if product.ProductName == name {
			return product, true
		}
	}
	return model.Product{}, false
}

// RecentOrders shows the customer's five newest orders.
func (w *OrderWorkflow) RecentOrders(s *Session) error {
	orders, err := w.orderService.RecentOrders(s.UserID)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		s.Port.Println("You have not placed any orders yet.")
		return nil
	}
	printOrders(s, orders)
	return nil
}

// StoreOrders lists all orders at stores the manager picks, one store at a time.
func (w *OrderWorkflow) StoreOrders(s *Session) error {
	p := s.Port

	for {
		storeID, err := askManagedStore(s, w.storeService, "\tEnter the ID of the store to view orders from: ")
		if err != nil {
			return err
		}

		orders, err := w.orderService.StoreOrders(s.UserID, storeID)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			p.Printf("Store %d has no orders.\n", storeID)
		} else {
			printOrders(s, orders)
		}

		again, err := confirm(p, "\tDo you want to view orders from another store? [y/N]: ")
		if err != nil || !again {
			return err
		}
	}
}

func printOrders(s *Session, orders []model.Order) {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(o.ID), 10),
			strconv.FormatUint(uint64(o.CustomerID), 10),
			strconv.FormatUint(uint64(o.StoreID), 10),
			o.ProductName,
			strconv.Itoa(o.UnitsOrdered),
			o.OrderTime.Format(orderTimeLayout),
		})
	}
	s.Port.Table([]string{"orderNumber", "customerID", "storeID", "productName", "unitsOrdered", "orderTime"}, rows)
}

// askManagedStore reads a store id until it names a store the session user may
// manage. Admins may pick any store.
func askManagedStore(s *Session, stores service.StoreService, label string) (uint, error) {
	for {
		storeID, err := askRequired(s.Port, label, validation.ParseID, validation.MsgNotANumber)
		if err != nil {
			return 0, err
		}
		err = stores.CheckAccess(s.UserID, storeID)
		switch {
		case err == nil:
			return storeID, nil
		case errors.Is(err, service.ErrStoreNotFound):
			s.Port.Println(msgNotInDatabase)
		case errors.Is(err, service.ErrNotStoreManager):
			s.Port.Println(msgNotManaged)
		default:
			return 0, err
		}
	}
}
