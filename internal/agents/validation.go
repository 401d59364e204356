package agents

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Jojo-not/Ticketing/internal/domain"
)

// AddForm is the create-agent form as posted by the browser.
type AddForm struct {
	Name            string `form:"name" validate:"required"`
	Email           string `form:"email" validate:"required,email"`
	Category        string `form:"category" validate:"required,category"`
	Password        string `form:"password" validate:"required,min=8"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=Password"`
}

// EditForm is the edit-agent form; passwords are not editable here.
type EditForm struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Category string `form:"category" validate:"required,category"`
}

// FieldErrors maps a form field name to the message shown under it.
type FieldErrors map[string]string

var fieldMessages = map[string]map[string]string{
	"name": {
		"required": "Full Name is required.",
	},
	"email": {
		"required": "Email is required.",
		"email":    "Enter a valid email.",
	},
	"category": {
		"required": "Category is required.",
		"category": "Choose a valid category.",
	},
	"password": {
		"required": "Password is required.",
		"min":      "Password must be at least 8 characters.",
	},
	"confirmPassword": {
		"required": "Please confirm your password.",
		"eqfield":  "Passwords do not match.",
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return domain.Category(fl.Field().String()).Valid()
	})
	return v
}

// Normalize trims surrounding whitespace from the identity fields.
func (f *AddForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
}

// Validate returns the per-field errors, or nil when the form can be sent.
func (f AddForm) Validate() FieldErrors {
	return check(f)
}

// Registration converts a valid form into the backend payload.
func (f AddForm) Registration() domain.Registration {
	return domain.Registration{
		Name:                 f.Name,
		Email:                f.Email,
		Category:             f.Category,
		Password:             f.Password,
		PasswordConfirmation: f.ConfirmPassword,
		Role:                 domain.RoleAgent,
	}
}

// Normalize trims surrounding whitespace from the identity fields.
func (f *EditForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
}

// Validate returns the per-field errors, or nil when the form can be sent.
func (f EditForm) Validate() FieldErrors {
	return check(f)
}

// Update converts a valid form into the backend payload.
func (f EditForm) Update() domain.AgentUpdate {
	return domain.AgentUpdate{Name: f.Name, Email: f.Email, Category: f.Category}
}

func check(form any) FieldErrors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": err.Error()}
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		msg, ok := fieldMessages[field][fe.Tag()]
		if !ok {
			msg = "Invalid value."
		}
		out[field] = msg
	}
	return out
}
