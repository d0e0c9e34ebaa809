package domain_test

import (
	"testing"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.ExpenseStatus
		to   domain.ExpenseStatus
		want bool
	}{
		{"draft to pending", domain.ExpenseDraft, domain.ExpensePending, true},
		{"draft auto-approved", domain.ExpenseDraft, domain.ExpenseApproved, true},
		{"draft annulled", domain.ExpenseDraft, domain.ExpenseAnnulled, true},
		{"draft cannot be paid", domain.ExpenseDraft, domain.ExpensePaid, false},
		{"pending approved", domain.ExpensePending, domain.ExpenseApproved, true},
		{"pending rejected", domain.ExpensePending, domain.ExpenseRejected, true},
		{"pending annulled", domain.ExpensePending, domain.ExpenseAnnulled, true},
		{"pending cannot be paid", domain.ExpensePending, domain.ExpensePaid, false},
		{"approved paid", domain.ExpenseApproved, domain.ExpensePaid, true},
		{"approved annulled", domain.ExpenseApproved, domain.ExpenseAnnulled, true},
		{"approved cannot go back to pending", domain.ExpenseApproved, domain.ExpensePending, false},
		{"rejected is terminal", domain.ExpenseRejected, domain.ExpenseAnnulled, false},
		{"paid is terminal", domain.ExpensePaid, domain.ExpenseAnnulled, false},
		{"annulled is terminal", domain.ExpenseAnnulled, domain.ExpensePending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestExpenseStatus_TerminalStatesAreFixedPoints(t *testing.T) {
	all := []domain.ExpenseStatus{
		domain.ExpenseDraft, domain.ExpensePending, domain.ExpenseApproved,
		domain.ExpenseRejected, domain.ExpensePaid, domain.ExpenseAnnulled,
	}
	for _, terminal := range []domain.ExpenseStatus{domain.ExpensePaid, domain.ExpenseRejected, domain.ExpenseAnnulled} {
		assert.True(t, terminal.IsTerminal(), "%s should be terminal", terminal)
		for _, target := range all {
			assert.False(t, terminal.CanTransitionTo(target), "%s -> %s must be rejected", terminal, target)
		}
	}
	assert.False(t, domain.ExpenseDraft.IsTerminal())
	assert.False(t, domain.ExpensePending.IsTerminal())
	assert.False(t, domain.ExpenseApproved.IsTerminal())
}

func TestExpense_NormalizedAmount(t *testing.T) {
	rate := decimal.NewFromFloat(3.75)

	t.Run("base currency passes through", func(t *testing.T) {
		e := domain.Expense{Amount: decimal.NewFromFloat(100.00), CurrencyCode: domain.BaseCurrencyCode}
		got, err := e.NormalizedAmount()
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromFloat(100.00)))
	})

	t.Run("USD converted with recorded rate", func(t *testing.T) {
		e := domain.Expense{Amount: decimal.NewFromFloat(40.00), CurrencyCode: "USD", ExchangeRate: &rate}
		got, err := e.NormalizedAmount()
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromFloat(150.00)), "got %s", got)
	})

	t.Run("missing rate is a hard error", func(t *testing.T) {
		e := domain.Expense{Amount: decimal.NewFromFloat(40.00), CurrencyCode: "USD"}
		_, err := e.NormalizedAmount()
		assert.ErrorIs(t, err, domain.ErrMissingExchangeRate)
	})

	t.Run("non-positive rate is a hard error", func(t *testing.T) {
		zero := decimal.Zero
		e := domain.Expense{Amount: decimal.NewFromFloat(40.00), CurrencyCode: "EUR", ExchangeRate: &zero}
		_, err := e.NormalizedAmount()
		assert.ErrorIs(t, err, domain.ErrMissingExchangeRate)
	})
}

func TestExpense_Renderable(t *testing.T) {
	for status, want := range map[domain.ExpenseStatus]bool{
		domain.ExpenseDraft:    false,
		domain.ExpensePending:  false,
		domain.ExpenseApproved: true,
		domain.ExpensePaid:     true,
		domain.ExpenseRejected: false,
		domain.ExpenseAnnulled: false,
	} {
		e := domain.Expense{Status: status}
		assert.Equal(t, want, e.Renderable(), "status %s", status)
	}
}

func TestFundStatus_Transitions(t *testing.T) {
	tests := []struct {
		name string
		from domain.FundStatus
		to   domain.FundStatus
		want bool
	}{
		{"asignado to por_rendir", domain.FundAsignado, domain.FundPorRendir, true},
		{"asignado rendered directly", domain.FundAsignado, domain.FundRendido, true},
		{"asignado annulled", domain.FundAsignado, domain.FundAnulado, true},
		{"por_rendir rendered", domain.FundPorRendir, domain.FundRendido, true},
		{"por_rendir annulled", domain.FundPorRendir, domain.FundAnulado, true},
		{"rendido cannot be annulled", domain.FundRendido, domain.FundAnulado, false},
		{"rendido cannot be re-rendered", domain.FundRendido, domain.FundRendido, false},
		{"anulado is terminal", domain.FundAnulado, domain.FundPorRendir, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestCostCenter_Budget(t *testing.T) {
	cc := domain.CostCenter{
		PresupuestoAsignado:  decimal.NewFromInt(1000),
		PresupuestoConsumido: decimal.NewFromInt(950),
	}

	assert.True(t, cc.Disponible().Equal(decimal.NewFromInt(50)))
	assert.False(t, cc.CanSetBudget(decimal.NewFromInt(900)), "budget below consumed must be rejected")
	assert.True(t, cc.CanSetBudget(decimal.NewFromInt(950)), "budget equal to consumed is allowed")
	assert.True(t, cc.CanSetBudget(decimal.NewFromInt(2000)))
}
