package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jojo-not/Ticketing/internal/domain"
)

func validAddForm() AddForm {
	return AddForm{
		Name:            "Gina Tan",
		Email:           "gina@qtech.ph",
		Category:        string(domain.CategoryQSA),
		Password:        "longenough",
		ConfirmPassword: "longenough",
	}
}

func TestAddFormValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AddForm)
		want   FieldErrors
	}{
		{"valid", func(*AddForm) {}, nil},
		{"missing name", func(f *AddForm) { f.Name = "" }, FieldErrors{"name": "Full Name is required."}},
		{"missing email", func(f *AddForm) { f.Email = "" }, FieldErrors{"email": "Email is required."}},
		{"bad email", func(f *AddForm) { f.Email = "gina-at-qtech" }, FieldErrors{"email": "Enter a valid email."}},
		{"missing category", func(f *AddForm) { f.Category = "" }, FieldErrors{"category": "Category is required."}},
		{"unknown category", func(f *AddForm) { f.Category = "Other" }, FieldErrors{"category": "Choose a valid category."}},
		{"missing password", func(f *AddForm) { f.Password = ""; f.ConfirmPassword = "" }, FieldErrors{
			"password":        "Password is required.",
			"confirmPassword": "Please confirm your password.",
		}},
		{"short password", func(f *AddForm) { f.Password = "short"; f.ConfirmPassword = "short" }, FieldErrors{
			"password": "Password must be at least 8 characters.",
		}},
		{"mismatch", func(f *AddForm) { f.ConfirmPassword = "different1" }, FieldErrors{
			"confirmPassword": "Passwords do not match.",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validAddForm()
			tt.mutate(&form)
			assert.Equal(t, tt.want, form.Validate())
		})
	}
}

func TestAddFormRegistration(t *testing.T) {
	form := validAddForm()
	reg := form.Registration()
	assert.Equal(t, domain.RoleAgent, reg.Role)
	assert.Equal(t, form.ConfirmPassword, reg.PasswordConfirmation)
}

func TestAddFormNormalize(t *testing.T) {
	form := validAddForm()
	form.Name = "  Gina Tan "
	form.Email = " gina@qtech.ph"
	form.Normalize()
	assert.Equal(t, "Gina Tan", form.Name)
	assert.Equal(t, "gina@qtech.ph", form.Email)
	assert.Nil(t, form.Validate())
}

func TestEditFormValidate(t *testing.T) {
	form := EditForm{Name: "Gina", Email: "gina@qtech.ph", Category: string(domain.CategoryPOS)}
	assert.Nil(t, form.Validate())

	form.Email = "nope"
	form.Name = ""
	assert.Equal(t, FieldErrors{
		"name":  "Full Name is required.",
		"email": "Enter a valid email.",
	}, form.Validate())
}
