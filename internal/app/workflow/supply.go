package workflow

import (
	"fmt"
	"strconv"

	"github.com/ikkim/storefront/internal/app/service"
	"github.com/ikkim/storefront/internal/validation"
)

type SupplyWorkflow struct {
	storeService  service.StoreService
	supplyService service.SupplyService
}

func NewSupplyWorkflow(storeService service.StoreService, supplyService service.SupplyService) *SupplyWorkflow {
	return &SupplyWorkflow{
		storeService:  storeService,
		supplyService: supplyService,
	}
}

// SupplyRequest asks a warehouse to ship units of a known product to a store.
func (w *SupplyWorkflow) SupplyRequest(s *Session) error {
	p := s.Port

	storeID, _, err := askExisting(p, "\tEnter Store ID: ", false, w.storeService.StoreExists)
	if err != nil {
		return err
	}

	var productName string
	for {
		r, err := ask(p, "\tEnter product name: ", validation.ProductName)
		if err != nil {
			return err
		}
		if r.OK() {
			known, err := w.supplyService.ProductNameKnown(r.Value)
			if err != nil {
				return err
			}
			if known {
				productName = r.Value
				break
			}
		}
		p.Println(msgNotInDatabase)
	}

	units, err := askRequired(p, fmt.Sprintf("\tEnter requested number of units of %s: ", productName),
		validation.ParsePositiveCount, validation.MsgNotANumber)
	if err != nil {
		return err
	}

	warehouses, err := w.supplyService.ListWarehouses()
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(warehouses))
	for _, wh := range warehouses {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(wh.ID), 10),
			strconv.FormatFloat(wh.Latitude, 'f', 6, 64),
			strconv.FormatFloat(wh.Longitude, 'f', 6, 64),
		})
	}
	p.Table([]string{"warehouseID", "latitude", "longitude"}, rows)

	warehouseID, _, err := askExisting(p, "\tEnter the ID of the warehouse to request from: ", false, w.supplyService.WarehouseExists)
	if err != nil {
		return err
	}

	result, err := w.supplyService.PlaceRequest(service.SupplyRequestInput{
		ManagerID:   s.UserID,
		StoreID:     storeID,
		WarehouseID: warehouseID,
		ProductName: productName,
		Units:       units,
	})
	if err != nil {
		return err
	}

	p.Success(fmt.Sprintf("Order for %d unit(s) of %s placed for Store %d from Warehouse %d.",
		units, productName, storeID, warehouseID))
	switch result.Outcome {
	case service.SupplyStocked:
		p.Printf("Store %d now carries %s at $%s per unit.\n", storeID, productName, formatPrice(result.Price))
	case service.SupplyPriceUnavailable:
		p.Warn(fmt.Sprintf("No other store carries %s, so store %d's inventory was not changed.", productName, storeID))
	}
	return nil
}
