package checkout

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// minPhoneDigits is the minimum digit count a buyer phone number must carry.
const minPhoneDigits = 10

var birthDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// BuyerInfo is the buyer-specific field set the membership modal collects.
// The order only becomes ready once the whole struct validates as a unit.
type BuyerInfo struct {
	Name      string `validate:"required,max=50"`
	BirthDate string `validate:"required,birthdate"`
	Phone     string `validate:"required,phonedigits"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for blank tags; these are compile-time constants.
	_ = v.RegisterValidation("birthdate", validBirthDate)
	_ = v.RegisterValidation("phonedigits", validPhoneDigits)
	return v
}

// Validate checks the gate. Any failure keeps the gate unsatisfied
// regardless of the other fields.
func (b BuyerInfo) Validate() error {
	return validate.Struct(b)
}

// Ready reports whether the buyer gate is satisfied.
func (b BuyerInfo) Ready() bool {
	return b.Validate() == nil
}

// validBirthDate enforces the strict YYYY-MM-DD pattern with month in [1,12]
// and day in [1,31].
func validBirthDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !birthDatePattern.MatchString(s) {
		return false
	}
	month, err := strconv.Atoi(s[5:7])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	day, err := strconv.Atoi(s[8:10])
	if err != nil || day < 1 || day > 31 {
		return false
	}
	return true
}

// validPhoneDigits requires a digits-only value of at least minPhoneDigits.
func validPhoneDigits(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < minPhoneDigits {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) == -1
}
