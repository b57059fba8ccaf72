package workflow

import (
	"github.com/ikkim/storefront/internal/console"
	"github.com/ikkim/storefront/internal/validation"
)

const (
	msgNotInDatabase   = "Invalid input. Entered value does not exist in database."
	msgNotManaged      = "Invalid input. You do not manage this store."
	msgUnrecognized    = "Unrecognized choice."
	msgInvalidChoice   = "Your input is invalid!"
	msgNoStoresNearby  = "No stores found within 30 miles of your location."
	msgCannotOrderMore = "You cannot order more units than the store has available"
)

// ask prompts until parse accepts the line or the line is empty. Rejections
// print their message and prompt again.
func ask[T any](p *console.Port, label string, parse func(string) validation.Result[T]) (validation.Result[T], error) {
	for {
		line, err := p.Prompt(label)
		if err != nil {
			return validation.Result[T]{}, err
		}
		r := parse(line)
		if r.Status != validation.Invalid {
			return r, nil
		}
		p.Println(r.Message)
	}
}

// askRequired is ask where empty input is rejected with emptyMsg.
func askRequired[T any](p *console.Port, label string, parse func(string) validation.Result[T], emptyMsg string) (T, error) {
	for {
		r, err := ask(p, label, parse)
		if err != nil {
			var zero T
			return zero, err
		}
		if r.OK() {
			return r.Value, nil
		}
		p.Println(emptyMsg)
	}
}

// askExisting reads an id until exists accepts it. With allowEmpty an empty
// line returns ok == false.
func askExisting(p *console.Port, label string, allowEmpty bool, exists func(uint) (bool, error)) (id uint, ok bool, err error) {
	for {
		r, err := ask(p, label, validation.ParseID)
		if err != nil {
			return 0, false, err
		}
		if r.Skipped() {
			if allowEmpty {
				return 0, false, nil
			}
			p.Println(validation.MsgNotANumber)
			continue
		}
		found, err := exists(r.Value)
		if err != nil {
			return 0, false, err
		}
		if found {
			return r.Value, true, nil
		}
		p.Println(msgNotInDatabase)
	}
}

func confirm(p *console.Port, label string) (bool, error) {
	r, err := ask(p, label, validation.YesNo)
	return r.Value, err
}

// readChoice reads a menu number. Anything that is not a number is rejected.
func readChoice(p *console.Port) (int, error) {
	for {
		line, err := p.Prompt("Please make your choice: ")
		if err != nil {
			return 0, err
		}
		if r := validation.ParseCount(line); r.OK() {
			return r.Value, nil
		}
		p.Println(msgInvalidChoice)
	}
}
