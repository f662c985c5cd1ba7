package validator

import (
	"testing"

	"github.com/shopspring/decimal"
)

type sample struct {
	Code     string          `validate:"required,max=5"`
	Stock    decimal.Decimal `validate:"dgte0"`
	Quantity decimal.Decimal `validate:"dgt0"`
}

func TestValidateStructDecimalBounds(t *testing.T) {
	ok := sample{Code: "F1", Stock: decimal.Zero, Quantity: decimal.RequireFromString("0.000001")}
	if errs := ValidateStruct(ok); len(errs) != 0 {
		t.Fatalf("expected no errors, got %+v", errs)
	}

	negStock := sample{Code: "F1", Stock: decimal.NewFromInt(-1), Quantity: decimal.NewFromInt(1)}
	errs := ValidateStruct(negStock)
	if len(errs) != 1 || errs[0].Tag != "dgte0" {
		t.Fatalf("expected dgte0 failure, got %+v", errs)
	}

	zeroQty := sample{Code: "F1", Stock: decimal.Zero, Quantity: decimal.Zero}
	errs = ValidateStruct(zeroQty)
	if len(errs) != 1 || errs[0].Tag != "dgt0" {
		t.Fatalf("expected dgt0 failure, got %+v", errs)
	}
}

func TestValidateStructRequiredFields(t *testing.T) {
	blank := sample{Code: "", Stock: decimal.Zero, Quantity: decimal.NewFromInt(1)}
	errs := ValidateStruct(blank)
	if len(errs) != 1 || errs[0].Tag != "required" {
		t.Fatalf("expected required failure, got %+v", errs)
	}

	long := sample{Code: "TOOLONG", Stock: decimal.Zero, Quantity: decimal.NewFromInt(1)}
	errs = ValidateStruct(long)
	if len(errs) != 1 || errs[0].Tag != "max" {
		t.Fatalf("expected max failure, got %+v", errs)
	}
}
