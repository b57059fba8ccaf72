package workflow

import (
	"errors"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/service"
	"github.com/ikkim/storefront/internal/console"
)

const logOutChoice = 20

// menuItem is one numbered entry of a role menu.
type menuItem struct {
	choice int
	label  string
	action string // names the action in logs and diagnostics
	run    func(*Session) error
}

// Menu is the interactive entry point: the start menu and one menu per role.
type Menu struct {
	authService service.AuthService
	account     *AccountWorkflow
	roleMenus   map[model.UserRole][]menuItem
}

func NewMenu(services *service.Services) *Menu {
	stores := NewStoreWorkflow(services.Stores)
	orders := NewOrderWorkflow(services.Stores, services.Orders)
	products := NewProductWorkflow(services.Auth, services.Stores, services.Products)
	supply := NewSupplyWorkflow(services.Stores, services.Supply)
	analytics := NewAnalyticsWorkflow(services.Analytics)
	admin := NewAdminWorkflow(services.Auth, services.Admin)

	viewStores := menuItem{1, "View Stores within 30 miles", "view stores", stores.ViewStores}
	viewProducts := menuItem{2, "View Product List", "view products", stores.ViewProducts}

	return &Menu{
		authService: services.Auth,
		account:     NewAccountWorkflow(services.Auth),
		roleMenus: map[model.UserRole][]menuItem{
			model.RoleCustomer: {
				viewStores,
				viewProducts,
				{3, "Place an Order", "place order", orders.PlaceOrder},
				{4, "View 5 Most Recent Orders", "view recent orders", orders.RecentOrders},
			},
			model.RoleManager: {
				viewStores,
				viewProducts,
				{3, "Update Product", "update product", products.UpdateProduct},
				{4, "View 5 Most Recent Product Updates", "view recent product updates", products.RecentUpdates},
				{5, "View 5 Most Popular Items", "view popular items", analytics.PopularItems},
				{6, "View 5 Most Popular Customers", "view popular customers", analytics.PopularCustomers},
				{7, "Place Product Supply Request to Warehouse", "place supply request", supply.SupplyRequest},
				{8, "View Orders", "view store orders", orders.StoreOrders},
			},
			model.RoleAdmin: {
				viewStores,
				{2, "View/Update User Information", "update user", admin.UpdateUser},
				{3, "View/Update Product", "update product", products.UpdateProduct},
			},
		},
	}
}

// Run drives the console until the user exits or input ends.
func (m *Menu) Run(port *console.Port) error {
	greeting(port)

	for {
		port.Println()
		port.Heading("MAIN MENU")
		port.Println("---------")
		port.Println("1. Create user")
		port.Println("2. Log in")
		port.Println("9. < EXIT")

		choice, err := readChoice(port)
		if err != nil {
			return closed(err)
		}

		switch choice {
		case 1:
			err = anonymous(port).run("create user", m.account.CreateUser)
		case 2:
			err = m.logIn(port)
		case 9:
			return nil
		default:
			port.Println("Unrecognized choice!")
		}
		if err != nil {
			return closed(err)
		}
	}
}

func (m *Menu) logIn(port *console.Port) error {
	var user *model.User
	err := anonymous(port).run("log in", func(s *Session) error {
		var err error
		user, err = m.account.LogIn(s)
		return err
	})
	if err != nil || user == nil {
		return err
	}
	return m.userMenu(NewSession(port, user.ID))
}

// userMenu shows the menu for the user's current role. The role is read again
// before every menu so a change by an admin applies at once.
func (m *Menu) userMenu(s *Session) error {
	s.Log.Info("Session started", nil)
	defer s.Log.Info("Session ended", nil)

	for {
		user, err := m.authService.CurrentUser(s.UserID)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				s.Port.Warn("Your account no longer exists.")
				return nil
			}
			return s.run("load user", func(*Session) error { return err })
		}
		items, ok := m.roleMenus[user.Role]
		if !ok {
			s.Log.Warn("No menu for role", map[string]interface{}{
				"role": user.Role,
			})
			return nil
		}

		s.Port.Println()
		s.Port.Heading("MAIN MENU")
		s.Port.Println("---------")
		for _, item := range items {
			s.Port.Printf("%d. %s\n", item.choice, item.label)
		}
		s.Port.Println(".........................")
		s.Port.Printf("%d. Log Out\n", logOutChoice)

		choice, err := readChoice(s.Port)
		if err != nil {
			return err
		}
		if choice == logOutChoice {
			return nil
		}

		item, ok := find(items, choice)
		if !ok {
			s.Port.Println(msgUnrecognized)
			continue
		}
		if err := s.run(item.action, item.run); err != nil {
			return err
		}
	}
}

func find(items []menuItem, choice int) (menuItem, bool) {
	for _, item := range items {
		if item.choice == choice {
			return item, true
		}
	}
	return menuItem{}, false
}

// closed treats the end of input as a normal exit.
func closed(err error) error {
	if errors.Is(err, console.ErrInputClosed) {
		return nil
	}
	return err
}

func greeting(port *console.Port) {
	port.Println()
	port.Println("*******************************************************")
	port.Heading("              Storefront Console")
	port.Println("*******************************************************")
}
