package validate_test

import (
	"testing"

	"github.com/vendora/vendora/pkg/validate"
)

type registerInput struct {
	Username string `json:"username" validate:"required,alpha_dash,min=2,max=150"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,in=owner,staff,customer"`
	Phone    string `json:"phone"    validate:"nullable,max=50"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(registerInput{
		Username: "john_doe",
		Email:    "john@example.com",
		Password: "secret123",
		Role:     "customer",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(registerInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected required errors")
	}
	for _, field := range []string{"username", "email", "password", "role"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected %s to be required", field)
		}
	}
	if _, ok := errs["phone"]; ok {
		t.Error("nullable phone must not error when empty")
	}
}

func TestInRuleSurvivesCommaSplit(t *testing.T) {
	type in struct {
		Role string `json:"role" validate:"required,in=owner,staff,customer"`
	}
	for _, role := range []string{"owner", "staff", "customer"} {
		if errs := validate.Struct(in{Role: role}); validate.HasErrors(errs) {
			t.Errorf("expected role %q to pass, got: %v", role, errs)
		}
	}
	if errs := validate.Struct(in{Role: "admin"}); !validate.HasErrors(errs) {
		t.Error("expected unknown role to fail")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	if errs := validate.Struct(in{Email: "not-an-email"}); !validate.HasErrors(errs) {
		t.Error("expected email validation error")
	}
	if errs := validate.Struct(in{Email: "valid@example.com"}); validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestMinOnStringsAndNumbers(t *testing.T) {
	type in struct {
		Password string `json:"password" validate:"required,min=8"`
		Quantity int    `json:"quantity" validate:"required,min=1"`
	}
	errs := validate.Struct(in{Password: "short", Quantity: 0})
	if _, ok := errs["password"]; !ok {
		t.Error("expected short password to fail")
	}
	if _, ok := errs["quantity"]; !ok {
		t.Error("expected zero quantity to fail")
	}
	if errs := validate.Struct(in{Password: "long enough", Quantity: 3}); validate.HasErrors(errs) {
		t.Errorf("expected valid input to pass, got: %v", errs)
	}
}

func TestGteOnDecimalString(t *testing.T) {
	type in struct {
		Price string `json:"price" validate:"nullable,numeric,gte=0"`
	}
	if errs := validate.Struct(in{Price: "-1.50"}); !validate.HasErrors(errs) {
		t.Error("expected negative price to fail")
	}
	if errs := validate.Struct(in{Price: "12.99"}); validate.HasErrors(errs) {
		t.Errorf("expected positive price to pass, got: %v", errs)
	}
	if errs := validate.Struct(in{}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable price to pass, got: %v", errs)
	}
}

func TestErrorMessageUsesJSONName(t *testing.T) {
	type in struct {
		VendorDomain string `json:"vendor_domain" validate:"required"`
	}
	errs := validate.Struct(in{})
	if _, ok := errs["vendor_domain"]; !ok {
		t.Errorf("expected key vendor_domain, got: %v", errs)
	}
}
