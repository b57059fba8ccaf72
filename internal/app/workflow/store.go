package workflow

import (
	"fmt"
	"strconv"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/service"
	"github.com/ikkim/storefront/internal/console"
)

type StoreWorkflow struct {
	storeService service.StoreService
}

func NewStoreWorkflow(storeService service.StoreService) *StoreWorkflow {
	return &StoreWorkflow{
		storeService: storeService,
	}
}

// ViewStores lists the stores within the nearby radius of the user, in storage order.
func (w *StoreWorkflow) ViewStores(s *Session) error {
	nearby, err := w.storeService.NearbyStores(s.UserID)
	if err != nil {
		return err
	}
	printNearby(s.Port, nearby)
	return nil
}

func printNearby(p *console.Port, nearby []service.NearbyStore) {
	if len(nearby) == 0 {
		p.Println(msgNoStoresNearby)
		return
	}
	rows := make([][]string, 0, len(nearby))
	for _, n := range nearby {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(n.Store.ID), 10),
			fmt.Sprintf("%.2f", n.Distance),
		})
	}
	p.Table([]string{"storeID", "distance (miles)"}, rows)
}

// ViewProducts prints the inventory of one store. An empty store id cancels.
func (w *StoreWorkflow) ViewProducts(s *Session) error {
	p := s.Port

	storeID, ok, err := askExisting(p, "Enter the ID of the store to view products at (no entry to cancel): ",
		true, w.storeService.StoreExists)
	if err != nil || !ok {
		return err
	}

	products, err := w.storeService.ListProducts(storeID)
	if err != nil {
		return err
	}
	printProducts(p, storeID, products)
	return nil
}

func printProducts(p *console.Port, storeID uint, products []model.Product) {
	if len(products) == 0 {
		p.Printf("Store %d has no products.\n", storeID)
		return
	}
	rows := make([][]string, 0, len(products))
	for _, product := range products {
		rows = append(rows, []string{
			product.ProductName,
			strconv.Itoa(product.NumberOfUnits),
			formatPrice(product.PricePerUnit),
		})
	}
	p.Table([]string{"productName", "numberOfUnits", "pricePerUnit"}, rows)
}

// printStores lists stores with their location and opening date.
func printStores(p *console.Port, stores []model.Store) {
	rows := make([][]string, 0, len(stores))
	for _, store := range stores {
		established := ""
		if !store.DateEstablished.IsZero() {
			established = store.DateEstablished.Format("2006-01-02")
		}
		rows = append(rows, []string{
			strconv.FormatUint(uint64(store.ID), 10),
			strconv.FormatFloat(store.Latitude, 'f', 6, 64),
			strconv.FormatFloat(store.Longitude, 'f', 6, 64),
			established,
		})
	}
	p.Table([]string{"storeID", "latitude", "longitude", "dateEstablished"}, rows)
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}
