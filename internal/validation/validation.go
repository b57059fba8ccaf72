package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MaxNameLength        = 50
	MinPasswordLength    = 3
	MaxPasswordLength    = 11
	MaxProductNameLength = 30
)

// User-facing messages.
const (
	MsgNotANumber      = "Invalid input. This field should be a number."
	MsgNegative        = "Invalid input. This field should be a positive number."
	MsgAtLeastOneUnit  = "Invalid input. You must request at least 1 unit."
	MsgNameRequired    = "Invalid input. A name is required."
	MsgNameTooLong     = "Invalid input. Name must be 50 characters or less."
	MsgPasswordLength  = "Invalid input. Password must be between 3 and 11 characters."
	MsgProductTooLong  = "Invalid input. Product name must be 30 characters or less."
	MsgLatitudeFormat  = "Invalid input. Your latitude coordinate should be in the range of -90 to 90, with up to six digits after the decimal point."
	MsgLongitudeFormat = "Invalid input. Your longitude coordinate should be in the range of -180 to 180, with up to six digits after the decimal point."
	MsgYesNo           = "Invalid input. Please answer y or n."
)

// Coordinates are checked against their decimal spelling, not their parsed magnitude,
// so "90.0000001" is rejected for its seventh fractional digit.
var (
	latitudePattern  = regexp.MustCompile(`^[-+]?([1-8]?\d(\.\d{1,6})?|90(\.0{1,6})?)$`)
	longitudePattern = regexp.MustCompile(`^[-+]?(180(\.0+)?|((1[0-7]\d)|([1-9]?\d))(\.\d{1,6})?)$`)
)

// ParseCount parses a non-negative integer such as a unit count or menu choice.
func ParseCount(input string) Result[int] {
	input = strings.TrimSpace(input)
	if input == "" {
		return skipped[int]()
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		return invalid[int](MsgNotANumber)
	}
	if n < 0 {
		return invalid[int](MsgNegative)
	}
	return ok(n)
}

// ParsePositiveCount is ParseCount with zero rejected.
func ParsePositiveCount(input string) Result[int] {
	r := ParseCount(input)
	if r.OK() && r.Value == 0 {
		return invalid[int](MsgAtLeastOneUnit)
	}
	return r
}

// ParseID parses a row identifier.
func ParseID(input string) Result[uint] {
	r := ParseCount(input)
	if !r.OK() {
		return Result[uint]{Status: r.Status, Message: r.Message}
	}
	return ok(uint(r.Value))
}

// ParsePrice parses a non-negative decimal price.
func ParsePrice(input string) Result[float64] {
	input = strings.TrimSpace(input)
	if input == "" {
		return skipped[float64]()
	}
	f, err := strconv.ParseFloat(input, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return invalid[float64](MsgNotANumber)
	}
	if f < 0 {
		return invalid[float64](MsgNegative)
	}
	return ok(f)
}

// Latitude accepts -90..90 with at most six fractional digits.
func Latitude(input string) Result[float64] {
	return coordinate(input, latitudePattern, MsgLatitudeFormat)
}

// Longitude accepts -180..180 with at most six fractional digits.
func Longitude(input string) Result[float64] {
	return coordinate(input, longitudePattern, MsgLongitudeFormat)
}

func coordinate(input string, pattern *regexp.Regexp, msg string) Result[float64] {
	if input == "" {
		return skipped[float64]()
	}
	if !pattern.MatchString(input) {
		return invalid[float64](msg)
	}
	f, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return invalid[float64](msg)
	}
	return ok(f)
}

// Name checks a user name's length. Uniqueness needs storage and is checked by the caller.
func Name(input string) Result[string] {
	if input == "" {
		return invalid[string](MsgNameRequired)
	}
	if utf8.RuneCountInString(input) > MaxNameLength {
		return invalid[string](MsgNameTooLong)
	}
	return ok(input)
}

// Password checks the length bounds of a new password.
func Password(input string) Result[string] {
	n := utf8.RuneCountInString(input)
	if input == "" {
		return skipped[string]()
	}
	if n < MinPasswordLength || n > MaxPasswordLength {
		return invalid[string](MsgPasswordLength)
	}
	return ok(input)
}

// ProductName checks a product name's length.
func ProductName(input string) Result[string] {
	if input == "" {
		return skipped[string]()
	}
	if utf8.RuneCountInString(input) > MaxProductNameLength {
		return invalid[string](MsgProductTooLong)
	}
	return ok(input)
}

// YesNo reads a [y/N] answer. Empty input means no.
func YesNo(input string) Result[bool] {
	switch strings.TrimSpace(input) {
	case "":
		return ok(false)
	case "y", "Y":
		return ok(true)
	case "n", "N":
		return ok(false)
	}
	return invalid[bool](MsgYesNo)
}
