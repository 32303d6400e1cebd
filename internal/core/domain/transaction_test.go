package domain_test

import (
	"testing"

	"github.com/finstock/finstock_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_Effects(t *testing.T) {
	from := "acc-from"
	to := "acc-to"
	amount := decimal.NewFromInt(500)

	tests := []struct {
		name    string
		txn     domain.Transaction
		want    []domain.BalanceEffect
		wantErr bool
	}{
		{
			name: "transfer debits source and credits destination",
			txn:  domain.Transaction{Type: domain.Transfer, FromAccountID: &from, ToAccountID: &to, Amount: amount},
			want: []domain.BalanceEffect{
				{AccountID: from, Delta: amount.Neg()},
				{AccountID: to, Delta: amount},
			},
		},
		{
			name: "deposit credits destination only",
			txn:  domain.Transaction{Type: domain.Deposit, ToAccountID: &to, Amount: amount},
			want: []domain.BalanceEffect{{AccountID: to, Delta: amount}},
		},
		{
			name: "withdrawal debits source only",
			txn:  domain.Transaction{Type: domain.Withdrawal, FromAccountID: &from, Amount: amount},
			want: []domain.BalanceEffect{{AccountID: from, Delta: amount.Neg()}},
		},
		{
			name: "payment debits source",
			txn:  domain.Transaction{Type: domain.Payment, FromAccountID: &from, Amount: amount},
			want: []domain.BalanceEffect{{AccountID: from, Delta: amount.Neg()}},
		},
		{
			name: "refund debits source",
			txn:  domain.Transaction{Type: domain.Refund, FromAccountID: &from, Amount: amount},
			want: []domain.BalanceEffect{{AccountID: from, Delta: amount.Neg()}},
		},
		{
			name: "adjustment with both sides",
			txn:  domain.Transaction{Type: domain.Adjustment, FromAccountID: &from, ToAccountID: &to, Amount: amount},
			want: []domain.BalanceEffect{
				{AccountID: from, Delta: amount.Neg()},
				{AccountID: to, Delta: amount},
			},
		},
		{
			name:    "transfer without destination fails",
			txn:     domain.Transaction{Type: domain.Transfer, FromAccountID: &from, Amount: amount},
			wantErr: true,
		},
		{
			name:    "deposit without destination fails",
			txn:     domain.Transaction{Type: domain.Deposit, Amount: amount},
			wantErr: true,
		},
		{
			name:    "adjustment without any side fails",
			txn:     domain.Transaction{Type: domain.Adjustment, Amount: amount},
			wantErr: true,
		},
		{
			name:    "unknown type fails",
			txn:     domain.Transaction{Type: "MYSTERY", FromAccountID: &from, Amount: amount},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.txn.Effects()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransaction_InverseEffects(t *testing.T) {
	from := "acc-from"
	to := "acc-to"
	txn := domain.Transaction{
		Type:          domain.Transfer,
		FromAccountID: &from,
		ToAccountID:   &to,
		Amount:        decimal.NewFromInt(250),
	}

	effects, err := txn.Effects()
	require.NoError(t, err)
	inverse, err := txn.InverseEffects()
	require.NoError(t, err)

	require.Len(t, inverse, len(effects))
	for i := range effects {
		assert.Equal(t, effects[i].AccountID, inverse[i].AccountID)
		assert.True(t, effects[i].Delta.Add(inverse[i].Delta).IsZero(),
			"inverse delta must cancel the original")
	}
}

func TestTransactionStatus_CanTransitionTo(t *testing.T) {
	statuses := []domain.TransactionStatus{
		domain.Pending, domain.Completed, domain.Failed, domain.Cancelled, domain.Reversed,
	}

	legal := map[domain.TransactionStatus]map[domain.TransactionStatus]bool{
		domain.Pending:   {domain.Completed: true, domain.Cancelled: true, domain.Failed: true},
		domain.Completed: {domain.Reversed: true},
	}

	// Check the full matrix so an accidental new transition shows up here.
	for _, fromStatus := range statuses {
		for _, toStatus := range statuses {
			want := legal[fromStatus][toStatus]
			got := fromStatus.CanTransitionTo(toStatus)
			assert.Equal(t, want, got, "transition %s -> %s", fromStatus, toStatus)
		}
	}
}

func TestTransaction_Validate(t *testing.T) {
	from := "acc-from"
	to := "acc-to"

	valid := domain.Transaction{
		Type:          domain.Transfer,
		FromAccountID: &from,
		ToAccountID:   &to,
		Amount:        decimal.NewFromInt(10),
	}
	assert.NoError(t, valid.Validate())

	zeroAmount := valid
	zeroAmount.Amount = decimal.Zero
	assert.Error(t, zeroAmount.Validate())

	negAmount := valid
	negAmount.Amount = decimal.NewFromInt(-1)
	assert.Error(t, negAmount.Validate())
}
