package domain_test

import (
	"testing"

	"github.com/finstock/finstock_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateNoteTotals(t *testing.T) {
	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	tests := []struct {
		name       string
		itemTotals []decimal.Decimal
		subTotal   string
		tax        string
		total      string
		wantErr    bool
	}{
		{
			name:       "exact match",
			itemTotals: []decimal.Decimal{d("60.00"), d("40.00")},
			subTotal:   "100.00", tax: "18.00", total: "118.00",
		},
		{
			name:       "within epsilon",
			itemTotals: []decimal.Decimal{d("33.33"), d("33.33"), d("33.33")},
			subTotal:   "100.00", tax: "0", total: "100.00",
			wantErr: false, // 99.99 vs 100.00 is within the 0.01 tolerance
		},
		{
			name:       "item sum off by more than epsilon",
			itemTotals: []decimal.Decimal{d("50.00"), d("40.00")},
			subTotal:   "100.00", tax: "0", total: "100.00",
			wantErr: true,
		},
		{
			name:       "total does not include tax",
			itemTotals: []decimal.Decimal{d("100.00")},
			subTotal:   "100.00", tax: "18.00", total: "100.00",
			wantErr: true,
		},
		{
			name:       "no items against zero subtotal",
			itemTotals: nil,
			subTotal:   "0", tax: "0", total: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateNoteTotals(tt.itemTotals, d(tt.subTotal), d(tt.tax), d(tt.total))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEntityRef_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ref     domain.EntityRef
		wantErr bool
	}{
		{name: "empty ref", ref: domain.NoRef()},
		{name: "sale ref", ref: domain.EntityRef{Kind: domain.RefSale, ID: "sale-1"}},
		{name: "purchase ref", ref: domain.EntityRef{Kind: domain.RefPurchase, ID: "pur-1"}},
		{name: "capital ref", ref: domain.EntityRef{Kind: domain.RefCapitalMovement, ID: "cap-1"}},
		{name: "kind without id", ref: domain.EntityRef{Kind: domain.RefSale}, wantErr: true},
		{name: "id without kind", ref: domain.EntityRef{Kind: domain.RefNone, ID: "sale-1"}, wantErr: true},
		{name: "unknown kind", ref: domain.EntityRef{Kind: "EXPENDITURE", ID: "x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ref.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
