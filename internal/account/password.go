// Package account holds the change-password rules and the call that
// applies them.
package account

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// SpecialChars are the characters that satisfy the special requirement.
const SpecialChars = `!@#$%^&*(),.?":{}|<>`

var (
	ErrOldPasswordRequired = errors.New("old password is required")
	ErrWeakPassword        = errors.New("new password does not meet the requirements")
	ErrSamePassword        = errors.New("new password must differ from the old one")
)

// Requirements reports which password rules a candidate satisfies.
type Requirements struct {
	Length  bool
	Upper   bool
	Lower   bool
	Number  bool
	Special bool
}

func (r Requirements) Met() bool {
	return r.Length && r.Upper && r.Lower && r.Number && r.Special
}

// Rule is one line of the checklist the password screen shows.
type Rule struct {
	Label string
	OK    bool
}

func (r Requirements) Rules() []Rule {
	return []Rule{
		{"At least 6 characters", r.Length},
		{"One uppercase letter", r.Upper},
		{"One lowercase letter", r.Lower},
		{"One number", r.Number},
		{"One special character", r.Special},
	}
}

// CheckPassword reports the rules s meets. Letters and digits count only in
// their ASCII ranges.
func CheckPassword(s string) Requirements {
	r := Requirements{Length: len([]rune(s)) >= MinPasswordLength}
	for _, c := range s {
		switch {
		case c >= 'A' && c <= 'Z':
			r.Upper = true
		case c >= 'a' && c <= 'z':
			r.Lower = true
		case c >= '0' && c <= '9':
			r.Number = true
		case strings.ContainsRune(SpecialChars, c):
			r.Special = true
		}
	}
	return r
}

type changeForm struct {
	Old string `validate:"required"`
	New string `validate:"strongpw,nefield=Old"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("strongpw", func(fl validator.FieldLevel) bool {
			return CheckPassword(fl.Field().String()).Met()
		})
	})
	return validate
}

// ValidateChange runs the checks in the order the screen reports them:
// old present, new strong enough, new different from old.
func ValidateChange(oldPassword, newPassword string) error {
	err := formValidator().Struct(changeForm{Old: oldPassword, New: newPassword})
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			return ErrOldPasswordRequired
		case "strongpw":
			return ErrWeakPassword
		case "nefield":
			return ErrSamePassword
		}
	}
	return err
}
