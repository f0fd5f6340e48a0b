package models

import (
	"errors"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/coffer/internal/domain"
)

// inputValidate checks the presence rules declared on input structs.
// Field names in reported errors are taken from the json tags.
var inputValidate = newInputValidator()

func newInputValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	return v
}

// validateInput runs tag validation and translates failures into field errors.
func validateInput(input any) domain.ValidationErrors {
	err := inputValidate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{domain.NewValidationError("input", "%s", err.Error())}
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, &domain.ValidationError{Field: fe.Field(), Message: describeFieldError(fe)})
	}
	return out
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		if fe.Kind() == reflect.Slice {
			return "must contain at least " + fe.Param() + " entry"
		}
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// ParseAmount parses a user supplied decimal amount for field.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, domain.NewValidationError(field, "is required")
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return decimal.Zero, domain.NewValidationError(field, "must be a number, got %q", raw)
	}
	return amount, nil
}

// checkPositive records a failure when amount is not strictly positive.
func checkPositive(errs *domain.ValidationErrors, field string, amount decimal.Decimal) {
	if !amount.IsPositive() {
		errs.Add(field, "must be greater than 0")
	}
}

// SplitList splits a comma separated form value, trimming entries and
// dropping blanks.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeAddress trims s and returns the EIP-55 checksum form of hex addresses.
func NormalizeAddress(s string) string {
	s = strings.TrimSpace(s)
	if common.IsHexAddress(s) {
		return common.HexToAddress(s).Hex()
	}
	return s
}

// SameAddress compares two addresses case-insensitively.
func SameAddress(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// uniqueAddresses trims entries, drops blanks and removes case-insensitive
// duplicates, keeping first occurrences. It reports whether duplicates were seen.
func uniqueAddresses(addrs []string) ([]string, bool) {
	seen := make(map[string]struct{}, len(addrs))
	out := make([]string, 0, len(addrs))
	dup := false
	for _, a := range addrs {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		key := strings.ToLower(a)
		if _, ok := seen[key]; ok {
			dup = true
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out, dup
}

// checkAddress validates addr as a hex address when strict is set and
// returns the normalised value.
func checkAddress(errs *domain.ValidationErrors, field, addr string, strict bool) string {
	if !strict {
		return strings.TrimSpace(addr)
	}
	if !common.IsHexAddress(strings.TrimSpace(addr)) {
		errs.Add(field, "%q is not a valid hex address", addr)
		return addr
	}
	return NormalizeAddress(addr)
}
