package analysis_test

import (
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker_core/internal/core/analysis"
	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	"github.com/SscSPs/finance_tracker_core/internal/platform/clock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 0, 0, 0, 0, time.UTC)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestSavingsRate(t *testing.T) {
	strategy := analysis.NewSavingsRateStrategy(eurFactory(t))

	tests := []struct {
		name     string
		txs      []*domain.Transaction
		wantRate string
		wantRef  string
	}{
		{
			name: "half of income saved",
			txs: []*domain.Transaction{
				tx(t, 1, "1000.00", day(time.June, 1), domain.Salary),
				tx(t, 2, "-300.00", day(time.June, 2), domain.Food),
				tx(t, 3, "-200.00", day(time.June, 3), domain.Housing),
			},
			wantRate: "50",
			wantRef:  "1000",
		},
		{
			name: "overspending gives negative rate",
			txs: []*domain.Transaction{
				tx(t, 1, "300.00", day(time.June, 1), domain.Salary),
				tx(t, 2, "-400.00", day(time.June, 2), domain.Food),
			},
			wantRate: "-33.33",
			wantRef:  "300",
		},
		{
			name: "no income",
			txs: []*domain.Transaction{
				tx(t, 1, "-50.00", day(time.June, 2), domain.Food),
			},
			wantRate: "0",
			wantRef:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := strategy.Analyze(tt.txs)
			require.NoError(t, err)

			assert.Equal(t, domain.SavingsRate, result.KPIType())
			assert.Equal(t, domain.PercentUnit, result.Metric().Unit())
			assertDecimal(t, tt.wantRate, result.Metric().Value())
			ref, ok := result.Reference()
			require.True(t, ok)
			assertDecimal(t, tt.wantRef, ref)
		})
	}
}

func TestMonthlyAverageExpense(t *testing.T) {
	strategy := analysis.NewMonthlyAverageExpenseStrategy(clock.NewFixed(testNow), eurFactory(t))

	t.Run("spread over three months", func(t *testing.T) {
		result, err := strategy.Analyze([]*domain.Transaction{
			tx(t, 1, "-300.00", day(time.March, 15), domain.Food),
			tx(t, 2, "2000.00", day(time.January, 1), domain.Salary),
			tx(t, 3, "-150.00", day(time.June, 1), domain.Transportation),
		})
		require.NoError(t, err)

		assert.Equal(t, domain.CurrencyUnit, result.Metric().Unit())
		assert.Equal(t, "EUR", result.Metric().Currency())
		assertDecimal(t, "-150", result.Metric().Value())

		breakdown := result.Breakdown()
		require.Len(t, breakdown, 2)
		assertDecimal(t, "-300", breakdown[domain.Food])
		assertDecimal(t, "-150", breakdown[domain.Transportation])
	})

	t.Run("same month divides by one", func(t *testing.T) {
		result, err := strategy.Analyze([]*domain.Transaction{
			tx(t, 1, "-90.00", day(time.June, 1), domain.Food),
		})
		require.NoError(t, err)
		assertDecimal(t, "-90", result.Metric().Value())
	})

	t.Run("income only", func(t *testing.T) {
		result, err := strategy.Analyze([]*domain.Transaction{
			tx(t, 1, "90.00", day(time.June, 1), domain.Salary),
		})
		require.NoError(t, err)
		assert.True(t, result.Metric().Value().IsZero())
		assert.Empty(t, result.Breakdown())
	})
}

func TestSpendingTrend(t *testing.T) {
	strategy := analysis.NewSpendingTrendStrategy(clock.NewFixed(testNow), eurFactory(t))

	t.Run("spending increased", func(t *testing.T) {
		result, err := strategy.Analyze([]*domain.Transaction{
			tx(t, 1, "-100.00", day(time.June, 10), domain.Food),
			tx(t, 2, "-50.00", day(time.June, 1), domain.Food),
			tx(t, 3, "-100.00", day(time.May, 10), domain.Food),
			tx(t, 4, "-999.00", day(time.March, 1), domain.Food),
			tx(t, 5, "5000.00", day(time.June, 1), domain.Salary),
		})
		require.NoError(t, err)

		assert.Equal(t, domain.PercentUnit, result.Metric().Unit())
		assertDecimal(t, "50", result.Metric().Value())
		ref, ok := result.Reference()
		require.True(t, ok)
		assertDecimal(t, "100", ref)
	})

	t.Run("spending decreased", func(t *testing.T) {
		result, err := strategy.Analyze([]*domain.Transaction{
			tx(t, 1, "-25.00", day(time.June, 10), domain.Food),
			tx(t, 2, "-100.00", day(time.May, 1), domain.Food),
		})
		require.NoError(t, err)
		assertDecimal(t, "-75", result.Metric().Value())
	})

	t.Run("empty previous window", func(t *testing.T) {
		result, err := strategy.Analyze([]*domain.Transaction{
			tx(t, 1, "-25.00", day(time.June, 10), domain.Food),
		})
		require.NoError(t, err)
		assert.True(t, result.Metric().Value().IsZero())
	})

	t.Run("window boundaries", func(t *testing.T) {
		// May 16 closes the previous window, April 16 is outside both.
		result, err := strategy.Analyze([]*domain.Transaction{
			tx(t, 1, "-40.00", day(time.May, 17), domain.Food),
			tx(t, 2, "-20.00", day(time.May, 16), domain.Food),
			tx(t, 3, "-500.00", day(time.April, 16), domain.Food),
		})
		require.NoError(t, err)
		assertDecimal(t, "100", result.Metric().Value())
	})
}

func TestSpendingTrend_ByCategory(t *testing.T) {
	reg, err := analysis.NewDefaultRegistry(clock.NewFixed(testNow), eurFactory(t))
	require.NoError(t, err)

	result, err := reg.AnalyzeByCategory(domain.SpendingTrend, []*domain.Transaction{
		tx(t, 1, "-30.00", day(time.June, 10), domain.Food),
		tx(t, 2, "-20.00", day(time.May, 10), domain.Food),
		tx(t, 3, "-500.00", day(time.June, 10), domain.Travel),
	}, domain.Food)
	require.NoError(t, err)
	assertDecimal(t, "50", result.Metric().Value())
}
