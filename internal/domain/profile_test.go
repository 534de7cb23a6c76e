package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseItemAnnualAmount(t *testing.T) {
	monthly := ExpenseItem{Name: "Groceries", Amount: decimal.NewFromInt(15000), Frequency: FrequencyMonthly}
	assert.True(t, monthly.AnnualAmount().Equal(decimal.NewFromInt(180000)), "got %s", monthly.AnnualAmount())

	annual := ExpenseItem{Name: "Insurance", Amount: decimal.NewFromInt(40000), Frequency: FrequencyAnnual}
	assert.True(t, annual.AnnualAmount().Equal(decimal.NewFromInt(40000)))
}

func TestValidateProfileBounds(t *testing.T) {
	require.NoError(t, ValidateProfile(Profile{CurrentAge: 40, RetirementAge: MaxAge, LifeExpectancy: MaxAge}))

	tests := []struct {
		name  string
		p     Profile
		field string
	}{
		{"life expectancy above maximum", Profile{CurrentAge: 40, RetirementAge: 60, LifeExpectancy: MaxAge + 1}, "life_expectancy"},
		{"retirement above maximum", Profile{CurrentAge: 40, RetirementAge: MaxAge + 1, LifeExpectancy: 85}, "target_retirement_age"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ce *ConfigError
			require.ErrorAs(t, ValidateProfile(tt.p), &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestValidateMilestone(t *testing.T) {
	assert.NoError(t, ValidateMilestone(Milestone{Name: "College", TargetAge: 18}))
	assert.NoError(t, ValidateMilestone(Milestone{Name: "Trip", TargetAge: MaxAge}))
	assert.True(t, IsConfigError(ValidateMilestone(Milestone{Name: "Far", TargetAge: MaxAge + 1})))
	assert.True(t, IsConfigError(ValidateMilestone(Milestone{Name: "Past", TargetAge: -1})))
}
