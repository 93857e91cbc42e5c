package httpserver

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	phonePattern   = regexp.MustCompile(`^[+]?[\d\s-]{10,}$`)
	pincodePattern = regexp.MustCompile(`^\d{6}$`)

	registerOnce sync.Once
	registerErr  error
)

// registerValidators adds the storefront's form rules to gin's validator.
func registerValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		rules := map[string]validator.Func{
			"phone":    matchString(phonePattern),
			"pincode":  matchString(pincodePattern),
			"password": strongPassword,
		}
		for tag, fn := range rules {
			if err := v.RegisterValidation(tag, fn); err != nil {
				registerErr = fmt.Errorf("register %s validator: %w", tag, err)
				return
			}
		}
	})
	return registerErr
}

func matchString(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// strongPassword wants at least one lower-case letter, one upper-case letter
// and one digit.
func strongPassword(fl validator.FieldLevel) bool {
	var lower, upper, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

func fieldErrors(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Field() == "terms" {
			return "You must accept the terms and conditions"
		}
		return fe.Field() + " is required"
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "eqfield":
		return "Passwords must match"
	case "phone":
		return "Invalid phone number"
	case "pincode":
		return "Invalid pincode"
	case "password":
		return "Password must contain uppercase, lowercase and number"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	}
	return fe.Field() + " is invalid"
}
