package domain_test

import (
	"testing"
	"time"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_SignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(30)

	income := domain.Transaction{Amount: amount, Type: domain.Income}
	expense := domain.Transaction{Amount: amount, Type: domain.Expense}

	assert.True(t, amount.Equal(income.SignedAmount()))
	assert.True(t, amount.Neg().Equal(expense.SignedAmount()))
}

func TestTransaction_EffectOn(t *testing.T) {
	now := time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC)
	amount := decimal.NewFromInt(50)

	tests := []struct {
		name string
		txn  domain.Transaction
		want decimal.Decimal
	}{
		{
			name: "past expense subtracts",
			txn:  domain.Transaction{Amount: amount, Type: domain.Expense, Date: now.AddDate(0, 0, -1)},
			want: amount.Neg(),
		},
		{
			name: "past income adds",
			txn:  domain.Transaction{Amount: amount, Type: domain.Income, Date: now.AddDate(0, 0, -1)},
			want: amount,
		},
		{
			name: "same instant counts",
			txn:  domain.Transaction{Amount: amount, Type: domain.Income, Date: now},
			want: amount,
		},
		{
			name: "future transaction has no effect",
			txn:  domain.Transaction{Amount: amount, Type: domain.Expense, Date: now.AddDate(0, 0, 1)},
			want: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(tt.txn.EffectOn(now)), "want %s", tt.want)
		})
	}
}

func TestTransaction_State(t *testing.T) {
	due := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	before := due.AddDate(0, -1, 0)

	assert.Equal(t, domain.TemplateScheduled, domain.Transaction{Date: due}.State())
	assert.Equal(t, domain.TemplateScheduled, domain.Transaction{Date: due, LastProcessedDate: &before}.State())
	assert.Equal(t, domain.TemplateDone, domain.Transaction{Date: due, LastProcessedDate: &due}.State())
}

func TestSharePermission_Allows(t *testing.T) {
	assert.True(t, domain.PermissionEdit.Allows(domain.PermissionView))
	assert.True(t, domain.PermissionEdit.Allows(domain.PermissionEdit))
	assert.True(t, domain.PermissionView.Allows(domain.PermissionView))
	assert.False(t, domain.PermissionView.Allows(domain.PermissionEdit))
}
