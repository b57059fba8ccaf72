package workflow

import (
	"strconv"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/service"
	"github.com/ikkim/storefront/internal/validation"
)

// Field menu choices for editing a user.
const (
	fieldName = iota + 1
	fieldPassword
	fieldLocation
	fieldRole
	fieldDone
)

var roleChoices = map[int]model.UserRole{
	1: model.RoleCustomer,
	2: model.RoleManager,
	3: model.RoleAdmin,
}

type AdminWorkflow struct {
	authService  service.AuthService
	adminService service.AdminService
}

func NewAdminWorkflow(authService service.AuthService, adminService service.AdminService) *AdminWorkflow {
	return &AdminWorkflow{
		authService:  authService,
		adminService: adminService,
	}
}

// UpdateUser lists every user and edits the chosen one field by field.
func (w *AdminWorkflow) UpdateUser(s *Session) error {
	p := s.Port

	for {
		users, err := w.adminService.ListUsers(s.UserID)
		if err != nil {
			return err
		}
		printUsers(s, users)

		targetID, ok, err := askExisting(p, "\tInput the user ID of the user you are editing (no entry to cancel): ",
			true, w.adminService.UserExists)
		if err != nil || !ok {
			return err
		}

		if err := w.editFields(s, targetID); err != nil {
			return err
		}

		again, err := confirm(p, "\tWould you like to update another user's information? [y/N]: ")
		if err != nil || !again {
			return err
		}
	}
}

func (w *AdminWorkflow) editFields(s *Session, targetID uint) error {
	p := s.Port

	for {
		p.Println("1. Name")
		p.Println("2. Password")
		p.Println("3. Latitude / Longitude")
		p.Println("4. User Type")
		p.Println("5. Done")

		choice, err := readChoice(p)
		if err != nil {
			return err
		}

		switch choice {
		case fieldName:
			err = w.editName(s, targetID)
		case fieldPassword:
			err = w.editPassword(s, targetID)
		case fieldLocation:
			err = w.editLocation(s, targetID)
		case fieldRole:
			err = w.editRole(s, targetID)
		case fieldDone:
			return nil
		default:
			p.Println(msgUnrecognized)
			continue
		}
		if err != nil {
			return err
		}

		again, err := confirm(p, "Would you like to update another field? [y/N]: ")
		if err != nil || !again {
			return err
		}
	}
}

func (w *AdminWorkflow) editName(s *Session, targetID uint) error {
	p := s.Port
	for {
		r, err := ask(p, "\tEnter the updated name with a max of 50 characters (no entry to cancel): ", optionalName)
		if err != nil {
			return err
		}
		if !r.OK() {
			return nil
		}
		available, err := w.authService.NameAvailable(r.Value)
		if err != nil {
			return err
		}
		if !available {
			p.Println("That name has already been taken. Please choose another.")
			continue
		}
		if err := w.adminService.RenameUser(s.UserID, targetID, r.Value); err != nil {
			return err
		}
		p.Success("Name updated.")
		return nil
	}
}

// optionalName is validation.Name with empty input meaning cancel.
func optionalName(input string) validation.Result[string] {
	if input == "" {
		return validation.Result[string]{Status: validation.Skipped}
	}
	return validation.Name(input)
}

func (w *AdminWorkflow) editPassword(s *Session, targetID uint) error {
	r, err := ask(s.Port, "\tEnter the updated password with between 3 and 11 characters (no entry to cancel): ", validation.Password)
	if err != nil || r.Skipped() {
		return err
	}
	if err := w.adminService.ChangePassword(s.UserID, targetID, r.Value); err != nil {
		return err
	}
	s.Port.Success("Password updated.")
	return nil
}

// editLocation needs both coordinates; leaving either blank cancels the change.
func (w *AdminWorkflow) editLocation(s *Session, targetID uint) error {
	p := s.Port

	lat, err := ask(p, "\tEnter the updated latitude coordinate, between -90 and 90 with up to six digits after the decimal (no entry to cancel): ",
		validation.Latitude)
	if err != nil || lat.Skipped() {
		return err
	}
	lon, err := ask(p, "\tEnter the updated longitude coordinate, between -180 and 180 with up to six digits after the decimal (no entry to cancel): ",
		validation.Longitude)
	if err != nil || lon.Skipped() {
		return err
	}

	if err := w.adminService.Relocate(s.UserID, targetID, lat.Value, lon.Value); err != nil {
		return err
	}
	p.Success("Location updated.")
	return nil
}

func (w *AdminWorkflow) editRole(s *Session, targetID uint) error {
	p := s.Port

	p.Println()
	p.Println("1. Customer")
	p.Println("2. Manager")
	p.Println("3. Admin")
	for {
		r, err := ask(p, "\tEnter the updated user type (no entry to cancel): ", validation.ParseCount)
		if err != nil || r.Skipped() {
			return err
		}
		role, ok := roleChoices[r.Value]
		if !ok {
			p.Println(msgUnrecognized)
			continue
		}
		if err := w.adminService.ChangeRole(s.UserID, targetID, role); err != nil {
			return err
		}
		p.Success("User type updated to " + string(role) + ".")
		return nil
	}
}

func printUsers(s *Session, users []model.User) {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(u.ID), 10),
			u.Name,
			strconv.FormatFloat(u.Latitude, 'f', 6, 64),
			strconv.FormatFloat(u.Longitude, 'f', 6, 64),
			string(u.Role),
		})
	}
	s.Port.Table([]string{"userID", "name", "latitude", "longitude", "type"}, rows)
}
