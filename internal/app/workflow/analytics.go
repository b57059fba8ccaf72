package workflow

import (
	"strconv"

	"github.com/ikkim/storefront/internal/app/service"
)

type AnalyticsWorkflow struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsWorkflow(analyticsService service.AnalyticsService) *AnalyticsWorkflow {
	return &AnalyticsWorkflow{
		analyticsService: analyticsService,
	}
}

// PopularItems shows the five most ordered products across the manager's stores.
func (w *AnalyticsWorkflow) PopularItems(s *Session) error {
	items, err := w.analyticsService.PopularProducts(s.UserID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		s.Port.Println("No orders have been placed at your stores.")
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{item.ProductName, strconv.FormatInt(item.OrderCount, 10)})
	}
	s.Port.Table([]string{"productName", "order_count"}, rows)
	return nil
}

// PopularCustomers shows the five customers with the most orders at the manager's stores.
func (w *AnalyticsWorkflow) PopularCustomers(s *Session) error {
	customers, err := w.analyticsService.PopularCustomers(s.UserID)
	if err != nil {
		return err
	}
	if len(customers) == 0 {
		s.Port.Println("No orders have been placed at your stores.")
		return nil
	}

	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(c.CustomerID), 10),
			c.Name,
			strconv.FormatFloat(c.Latitude, 'f', 6, 64),
			strconv.FormatFloat(c.Longitude, 'f', 6, 64),
			strconv.FormatInt(c.OrderCount, 10),
		})
	}
	s.Port.Table([]string{"customerID", "name", "latitude", "longitude", "order_count"}, rows)
	return nil
}
