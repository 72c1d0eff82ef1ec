package validate_test

import (
	"strings"
	"testing"

	"github.com/shashiranjanraj/staybook/pkg/validate"
)

type roomInput struct {
	Name     string `form:"name"            validate:"required,max=120"`
	Category string `form:"category"        validate:"required,oneof=Standard Suite Luxury"`
	Capacity int    `form:"capacity"        validate:"required,gt=0,lte=20"`
	Price    string `form:"price_per_night" validate:"required"`
}

type signupInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Website  string `json:"website"  validate:"omitempty,url"`
	Internal string `json:"-"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(roomInput{Name: "Royal Suite", Category: "Suite", Capacity: 2, Price: "250"})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}

	errs = validate.Struct(&signupInput{Email: "guest@example.com", Password: "long-enough"})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(roomInput{})
	for _, field := range []string{"name", "category", "capacity", "price_per_night"} {
		if !strings.Contains(errs[field], "required") {
			t.Errorf("expected required error for %s, got %q", field, errs[field])
		}
	}
}

func TestMessagesUseWireNames(t *testing.T) {
	errs := validate.Struct(roomInput{Name: "x", Category: "Penthouse", Capacity: 50, Price: "1"})

	if got := errs["category"]; got != "The category must be one of: Standard, Suite, Luxury." {
		t.Errorf("unexpected category message: %q", got)
	}
	if got := errs["capacity"]; got != "The capacity may not be greater than 20." {
		t.Errorf("unexpected capacity message: %q", got)
	}
}

func TestStringLengthAndFormat(t *testing.T) {
	errs := validate.Struct(signupInput{Email: "nope", Password: "short", Website: "::"})

	if got := errs["password"]; got != "The password must be at least 8 characters." {
		t.Errorf("unexpected password message: %q", got)
	}
	if got := errs["email"]; got != "The email must be a valid email address." {
		t.Errorf("unexpected email message: %q", got)
	}
	if _, ok := errs["website"]; !ok {
		t.Errorf("expected website error, got %v", errs)
	}
}

func TestNonStructInput(t *testing.T) {
	errs := validate.Struct("plain string")
	if !validate.HasErrors(errs) {
		t.Error("expected an error for non-struct input")
	}
}
