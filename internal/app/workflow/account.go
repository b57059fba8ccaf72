package workflow

import (
	"errors"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/service"
	"github.com/ikkim/storefront/internal/validation"
)

type AccountWorkflow struct {
	authService service.AuthService
}

func NewAccountWorkflow(authService service.AuthService) *AccountWorkflow {
	return &AccountWorkflow{
		authService: authService,
	}
}

// CreateUser registers a customer. Every field is re-prompted until valid.
func (w *AccountWorkflow) CreateUser(s *Session) error {
	p := s.Port

	var name string
	for {
		var err error
		name, err = askRequired(p, "\tEnter name (less than 50 characters): ", validation.Name, validation.MsgNameRequired)
		if err != nil {
			return err
		}
		available, err := w.authService.NameAvailable(name)
		if err != nil {
			return err
		}
		if available {
			break
		}
		p.Println("That name has already been taken. Please choose another.")
	}

	password, err := askRequired(p, "\tEnter password consisting of at least 3 and no more than 11 characters: ",
		validation.Password, validation.MsgPasswordLength)
	if err != nil {
		return err
	}
	latitude, err := askRequired(p, "\tEnter latitude (-90 to 90, up to six digits after decimal point): ",
		validation.Latitude, validation.MsgLatitudeFormat)
	if err != nil {
		return err
	}
	longitude, err := askRequired(p, "\tEnter longitude (-180 to 180, up to six digits after decimal point): ",
		validation.Longitude, validation.MsgLongitudeFormat)
	if err != nil {
		return err
	}

	user, err := w.authService.Register(name, password, latitude, longitude)
	if err != nil {
		return err
	}

	s.Log.Info("User created at console", map[string]interface{}{
		"new_user_id": user.ID,
	})
	p.Success("User successfully created!")
	return nil
}

// LogIn returns the authenticated user, or nil when the name or password is wrong.
func (w *AccountWorkflow) LogIn(s *Session) (*model.User, error) {
	p := s.Port

	name, err := p.Prompt("\tEnter name: ")
	if err != nil {
		return nil, err
	}
	password, err := p.Prompt("\tEnter password: ")
	if err != nil {
		return nil, err
	}

	user, err := w.authService.Login(name, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			p.Println()
			p.Error("Unrecognized username or incorrect password entered.")
			p.Println()
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
