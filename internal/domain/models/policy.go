package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/coffer/internal/domain"
)

// PolicyType determines the shape of a policy's config
type PolicyType string

const (
	PolicyTypeSpendingLimit PolicyType = "spending_limit"
	PolicyTypeWhitelist     PolicyType = "whitelist"
	PolicyTypeBlacklist     PolicyType = "blacklist"
	PolicyTypeCategoryLimit PolicyType = "category_limit"
)

// AllPolicyTypes lists every policy type in display order.
var AllPolicyTypes = []PolicyType{
	PolicyTypeSpendingLimit,
	PolicyTypeWhitelist,
	PolicyTypeBlacklist,
	PolicyTypeCategoryLimit,
}

// IsValid reports whether t is a declared policy type.
func (t PolicyType) IsValid() bool {
	return slices.Contains(AllPolicyTypes, t)
}

// Raw form keys understood by ParsePolicyConfig.
const (
	FormDailyLimit          = "dailyLimit"
	FormMonthlyLimit        = "monthlyLimit"
	FormPerTransactionLimit = "perTransactionLimit"
	FormAddresses           = "addresses"
	FormCategories          = "categories"
	FormCategoryName        = "categoryName"
	FormCategoryLimit       = "categoryLimit"
)

// CategoryLimit caps spending for one proposal category.
type CategoryLimit struct {
	Name  string          `json:"name"`
	Limit decimal.Decimal `json:"limit"`
}

// PolicyConfig is the type-specific payload of a policy. Only the fields
// relevant to the policy type are set.
type PolicyConfig struct {
	DailyLimit          *decimal.Decimal `json:"dailyLimit,omitempty"`
	MonthlyLimit        *decimal.Decimal `json:"monthlyLimit,omitempty"`
	PerTransactionLimit *decimal.Decimal `json:"perTransactionLimit,omitempty"`
	Addresses           []string         `json:"addresses,omitempty"`
	Categories          []CategoryLimit  `json:"categories,omitempty"`
}

// Policy is a declarative spending-control rule attached to a treasury.
// Policies are stored and toggled but not enforced against transactions.
type Policy struct {
	ID         string       `json:"id"`
	TreasuryID string       `json:"treasuryId"`
	Name       string       `json:"name"`
	Type       PolicyType   `json:"type"`
	Enabled    bool         `json:"enabled"`
	Config     PolicyConfig `json:"config"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// CreatePolicyInput holds the parsed fields of a policy creation request
type CreatePolicyInput struct {
	TreasuryID string       `json:"treasury" validate:"required"`
	Name       string       `json:"name" validate:"required"`
	Type       PolicyType   `json:"type" validate:"required,oneof=spending_limit whitelist blacklist category_limit"`
	Config     PolicyConfig `json:"config" validate:"-"`
}

// ParsePolicyConfig converts untyped form values into a typed config for t.
// Only the keys relevant to t are read; numbers that fail to parse are
// reported per field. Range checks happen in PolicyConfig.Validate.
func ParsePolicyConfig(t PolicyType, raw map[string]string) (PolicyConfig, error) {
	var cfg PolicyConfig
	var errs domain.ValidationErrors

	parseLimit := func(key string) *decimal.Decimal {
		v, ok := raw[key]
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		amount, err := ParseAmount(key, v)
		if err != nil {
			errs.Add(key, "must be a number, got %q", v)
			return nil
		}
		return &amount
	}

	switch t {
	case PolicyTypeSpendingLimit:
		cfg.DailyLimit = parseLimit(FormDailyLimit)
		cfg.MonthlyLimit = parseLimit(FormMonthlyLimit)
		cfg.PerTransactionLimit = parseLimit(FormPerTransactionLimit)
	case PolicyTypeWhitelist, PolicyTypeBlacklist:
		cfg.Addresses = SplitList(raw[FormAddresses])
	case PolicyTypeCategoryLimit:
		for i, entry := range SplitList(raw[FormCategories]) {
			name, limit, ok := strings.Cut(entry, "=")
			if !ok {
				errs.Add(fmt.Sprintf("categories[%d]", i), "must be name=limit, got %q", entry)
				continue
			}
			field := fmt.Sprintf("categories[%d].limit", i)
			amount, err := ParseAmount(field, limit)
			if err != nil {
				errs.Add(field, "must be a number, got %q", limit)
				continue
			}
			cfg.Categories = append(cfg.Categories, CategoryLimit{Name: strings.TrimSpace(name), Limit: amount})
		}
		if name := strings.TrimSpace(raw[FormCategoryName]); name != "" || strings.TrimSpace(raw[FormCategoryLimit]) != "" {
			amount, err := ParseAmount(FormCategoryLimit, raw[FormCategoryLimit])
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				errs = append(errs, ve)
			} else {
				cfg.Categories = append(cfg.Categories, CategoryLimit{Name: name, Limit: amount})
			}
		}
	default:
		errs.Add("type", "must be one of: spending_limit, whitelist, blacklist, category_limit")
	}

	return cfg, errs.Err()
}

// Normalize trims address and category entries and drops blank or duplicate
// addresses.
func (c PolicyConfig) Normalize() PolicyConfig {
	out := c
	if c.Addresses != nil {
		out.Addresses, _ = uniqueAddresses(c.Addresses)
	}
	if c.Categories != nil {
		out.Categories = make([]CategoryLimit, len(c.Categories))
		for i, cat := range c.Categories {
			out.Categories[i] = CategoryLimit{Name: strings.TrimSpace(cat.Name), Limit: cat.Limit}
		}
	}
	return out
}

// Validate applies the type-specific rules to a normalised config.
func (c PolicyConfig) Validate(t PolicyType) domain.ValidationErrors {
	var errs domain.ValidationErrors

	requirePositive := func(field string, v *decimal.Decimal) {
		if v == nil {
			errs.Add(field, "is required")
			return
		}
		checkPositive(&errs, field, *v)
	}

	switch t {
	case PolicyTypeSpendingLimit:
		requirePositive(FormDailyLimit, c.DailyLimit)
		requirePositive(FormMonthlyLimit, c.MonthlyLimit)
		requirePositive(FormPerTransactionLimit, c.PerTransactionLimit)
	case PolicyTypeWhitelist, PolicyTypeBlacklist:
		if len(c.Addresses) == 0 {
			errs.Add(FormAddresses, "must contain at least 1 address")
		}
	case PolicyTypeCategoryLimit:
		if len(c.Categories) == 0 {
			errs.Add(FormCategories, "must contain at least 1 category")
		}
		for i, cat := range c.Categories {
			if cat.Name == "" {
				errs.Add(fmt.Sprintf("categories[%d].name", i), "is required")
			}
			checkPositive(&errs, fmt.Sprintf("categories[%d].limit", i), cat.Limit)
		}
	}
	return errs
}

// NewPolicy validates input and builds an enabled policy.
func NewPolicy(id string, input CreatePolicyInput, now time.Time) (*Policy, error) {
	input.TreasuryID = strings.TrimSpace(input.TreasuryID)
	input.Name = strings.TrimSpace(input.Name)
	input.Config = input.Config.Normalize()

	errs := validateInput(input)
	if input.Type.IsValid() {
		errs = append(errs, input.Config.Validate(input.Type)...)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	return &Policy{
		ID:         id,
		TreasuryID: input.TreasuryID,
		Name:       input.Name,
		Type:       input.Type,
		Enabled:    true,
		Config:     input.Config,
		CreatedAt:  now,
	}, nil
}

// Toggle flips Enabled and returns the new value.
func (p *Policy) Toggle() bool {
	p.Enabled = !p.Enabled
	return p.Enabled
}

// Validate checks a policy loaded from seed or persisted data.
func (p *Policy) Validate() error {
	var errs domain.ValidationErrors
	if p.ID == "" {
		errs.Add("id", "is required")
	}
	if p.TreasuryID == "" {
		errs.Add("treasuryId", "is required")
	}
	if !p.Type.IsValid() {
		errs.Add("type", "unknown policy type %q", p.Type)
	} else {
		errs = append(errs, p.Config.Validate(p.Type)...)
	}
	if err := errs.Err(); err != nil {
		return fmt.Errorf("policy %q: %w", p.ID, err)
	}
	return nil
}

// Clone returns a deep copy of the policy.
func (p *Policy) Clone() *Policy {
	clone := *p
	clone.Config.Addresses = slices.Clone(p.Config.Addresses)
	clone.Config.Categories = slices.Clone(p.Config.Categories)
	return &clone
}
