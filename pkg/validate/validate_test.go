package validate_test

import (
	"testing"

	"github.com/aurigalabs/storefront/pkg/validate"
)

type reviewInput struct {
	ProductID string `json:"productId" validate:"required"`
	Rating    int    `json:"rating"    validate:"required,gte=1,lte=5"`
	Title     string `json:"title"     validate:"required,max=200"`
	Comment   string `json:"comment"   validate:"required,max=2000"`
	Website   string `json:"website"   validate:"nullable,url"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(reviewInput{
		ProductID: "65f2a6f4d3",
		Rating:    4,
		Title:     "Great",
		Comment:   "Solid build quality.",
		Website:   "", // nullable — allowed to be empty
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(reviewInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["productId"]; !ok {
		t.Error("expected productId to be required")
	}
	if _, ok := errs["rating"]; !ok {
		t.Error("expected rating to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Rating int `json:"rating" validate:"required,gte=1,lte=5"`
	}
	if errs := validate.Struct(in{Rating: 6}); !validate.HasErrors(errs) {
		t.Error("expected rating > 5 to fail")
	}
	if errs := validate.Struct(in{Rating: 3}); validate.HasErrors(errs) {
		t.Errorf("expected rating 3 to pass, got: %v", errs)
	}
}

func TestInRuleKeepsMultiValueParams(t *testing.T) {
	type in struct {
		Type string `json:"type" validate:"required,in=shipping,billing,both,max=20"`
	}
	if errs := validate.Struct(in{Type: "warehouse"}); !validate.HasErrors(errs) {
		t.Error("expected unknown type to fail")
	}
	for _, typ := range []string{"shipping", "billing", "both"} {
		if errs := validate.Struct(in{Type: typ}); validate.HasErrors(errs) {
			t.Errorf("expected %q to pass, got: %v", typ, errs)
		}
	}
}

func TestBetweenOnStrings(t *testing.T) {
	type in struct {
		Currency string `json:"currency" validate:"required,between=3,3"`
	}
	if errs := validate.Struct(in{Currency: "US"}); !validate.HasErrors(errs) {
		t.Error("expected 2-char currency to fail")
	}
	if errs := validate.Struct(in{Currency: "USD"}); validate.HasErrors(errs) {
		t.Errorf("expected USD to pass, got: %v", errs)
	}
}

func TestAlphaDash(t *testing.T) {
	type in struct {
		SKU string `json:"sku" validate:"required,alpha_dash"`
	}
	if errs := validate.Struct(in{SKU: "DESK ORG"}); !validate.HasErrors(errs) {
		t.Error("expected space in sku to fail")
	}
	if errs := validate.Struct(in{SKU: "DESK-ORG_2"}); validate.HasErrors(errs) {
		t.Errorf("expected DESK-ORG_2 to pass, got: %v", errs)
	}
}

func TestNullableSkipsEmpty(t *testing.T) {
	type in struct {
		Site string `json:"site" validate:"nullable,url"`
	}
	if errs := validate.Struct(in{}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable field to pass, got: %v", errs)
	}
	if errs := validate.Struct(in{Site: "not a url"}); !validate.HasErrors(errs) {
		t.Error("expected bad url on non-empty nullable field to fail")
	}
}
