package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/coffer/internal/domain"
)

func TestNewPolicy(t *testing.T) {
	tests := []struct {
		name       string
		policyType PolicyType
		raw        map[string]string
		wantFields []string
		check      func(t *testing.T, p *Policy)
	}{
		{
			name:       "spending limit with zero daily limit",
			policyType: PolicyTypeSpendingLimit,
			raw:        map[string]string{"dailyLimit": "0", "monthlyLimit": "1000", "perTransactionLimit": "50"},
			wantFields: []string{"dailyLimit"},
		},
		{
			name:       "spending limit missing monthly",
			policyType: PolicyTypeSpendingLimit,
			raw:        map[string]string{"dailyLimit": "100", "perTransactionLimit": "50"},
			wantFields: []string{"monthlyLimit"},
		},
		{
			name:       "spending limit",
			policyType: PolicyTypeSpendingLimit,
			raw:        map[string]string{"dailyLimit": "100", "monthlyLimit": "1,000", "perTransactionLimit": "50"},
			check: func(t *testing.T, p *Policy) {
				require.NotNil(t, p.Config.MonthlyLimit)
				assert.True(t, p.Config.MonthlyLimit.Equal(decimal.NewFromInt(1000)))
				assert.Nil(t, p.Config.Addresses)
			},
		},
		{
			name:       "whitelist trims and dedupes",
			policyType: PolicyTypeWhitelist,
			raw:        map[string]string{"addresses": " 0xabc, ,0xdef,0xABC "},
			check: func(t *testing.T, p *Policy) {
				assert.Equal(t, []string{"0xabc", "0xdef"}, p.Config.Addresses)
			},
		},
		{
			name:       "blacklist of blanks",
			policyType: PolicyTypeBlacklist,
			raw:        map[string]string{"addresses": " , ,"},
			wantFields: []string{"addresses"},
		},
		{
			name:       "category list",
			policyType: PolicyTypeCategoryLimit,
			raw:        map[string]string{"categories": "Marketing=500, Security=2000"},
			check: func(t *testing.T, p *Policy) {
				require.Len(t, p.Config.Categories, 2)
				assert.Equal(t, "Security", p.Config.Categories[1].Name)
				assert.True(t, p.Config.Categories[1].Limit.Equal(decimal.NewFromInt(2000)))
			},
		},
		{
			name:       "single category fields",
			policyType: PolicyTypeCategoryLimit,
			raw:        map[string]string{"categoryName": "Marketing", "categoryLimit": "500"},
			check: func(t *testing.T, p *Policy) {
				require.Len(t, p.Config.Categories, 1)
				assert.Equal(t, "Marketing", p.Config.Categories[0].Name)
				assert.True(t, p.Config.Categories[0].Limit.Equal(decimal.NewFromInt(500)))
			},
		},
		{
			name:       "category without name",
			policyType: PolicyTypeCategoryLimit,
			raw:        map[string]string{"categories": "=500"},
			wantFields: []string{"categories[0].name"},
		},
		{
			name:       "category with negative limit",
			policyType: PolicyTypeCategoryLimit,
			raw:        map[string]string{"categoryName": "Ops", "categoryLimit": "-1"},
			wantFields: []string{"categories[0].limit"},
		},
		{
			name:       "no categories",
			policyType: PolicyTypeCategoryLimit,
			raw:        map[string]string{},
			wantFields: []string{"categories"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParsePolicyConfig(tt.policyType, tt.raw)
			require.NoError(t, err)

			p, err := NewPolicy("pol1", CreatePolicyInput{TreasuryID: "t1", Name: "Limits", Type: tt.policyType, Config: cfg}, testNow)
			if len(tt.wantFields) > 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantFields, invalidFields(t, err))
				return
			}
			require.NoError(t, err)
			assert.True(t, p.Enabled)
			assert.Equal(t, tt.policyType, p.Type)
			assert.NoError(t, p.Validate())
			if tt.check != nil {
				tt.check(t, p)
			}
		})
	}
}

func TestParsePolicyConfig_BadNumbers(t *testing.T) {
	_, err := ParsePolicyConfig(PolicyTypeSpendingLimit, map[string]string{"dailyLimit": "lots", "monthlyLimit": "10"})
	assert.Equal(t, []string{"dailyLimit"}, invalidFields(t, err))

	_, err = ParsePolicyConfig(PolicyTypeCategoryLimit, map[string]string{"categories": "Ops=abc"})
	assert.Equal(t, []string{"categories[0].limit"}, invalidFields(t, err))

	_, err = ParsePolicyConfig(PolicyTypeCategoryLimit, map[string]string{"categoryName": "Ops"})
	assert.Equal(t, []string{"categoryLimit"}, invalidFields(t, err))
}

func TestParsePolicyConfig_CategoryWithoutLimit(t *testing.T) {
	_, err := ParsePolicyConfig(PolicyTypeCategoryLimit, map[string]string{"categories": "Security=100, Marketing"})

	var errs domain.ValidationErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	assert.Equal(t, "categories[1]", errs[0].Field)
	assert.Equal(t, `must be name=limit, got "Marketing"`, errs[0].Message)
}

func TestNewPolicy_RejectsUnknownType(t *testing.T) {
	_, err := NewPolicy("pol1", CreatePolicyInput{TreasuryID: "t1", Name: "x", Type: "quota"}, testNow)
	assert.Equal(t, []string{"type"}, invalidFields(t, err))
}

func TestPolicy_Toggle(t *testing.T) {
	p := &Policy{Enabled: true}

	assert.False(t, p.Toggle())
	assert.True(t, p.Toggle())
}
