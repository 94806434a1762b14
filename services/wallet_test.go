package services

import (
	"errors"
	"testing"
	"vclub/models"

	"github.com/shopspring/decimal"
)

func TestWalletValidation(t *testing.T) {
	member := &models.Member{}
	member.ID = 1

	if _, err := WalletDeposit(member, decimal.Zero, "", nil); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero deposit: got %v, want ErrInvalidAmount", err)
	}
	if _, err := WalletDeposit(member, decimal.NewFromInt(-10), "", nil); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative deposit: got %v, want ErrInvalidAmount", err)
	}
	if _, err := WalletSpend(member, decimal.Zero, "", nil); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero spend: got %v, want ErrInvalidAmount", err)
	}
	if _, err := WalletSpend(member, decimal.NewFromInt(-5), "", nil); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative spend: got %v, want ErrInvalidAmount", err)
	}
	if _, err := AdjustBalance(member, decimal.Zero, "", nil); !errors.Is(err, ErrZeroAmount) {
		t.Errorf("zero adjustment: got %v, want ErrZeroAmount", err)
	}
	if _, err := AdminDebit(member, decimal.NewFromInt(-1), "", nil, nil); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative admin debit: got %v, want ErrInvalidAmount", err)
	}
}

func TestSignedAmount(t *testing.T) {
	amount := decimal.NewFromFloat(12.34)

	cases := []struct {
		txType string
		want   decimal.Decimal
	}{
		{models.TxTypeDeposit, amount},
		{models.TxTypeRefund, amount},
		{models.TxTypeBonus, amount},
		{models.TxTypeSpend, amount.Neg()},
		{models.TxTypeWithdraw, amount.Neg()},
		{models.TxTypeAdminDebit, amount.Neg()},
	}

	for _, tc := range cases {
		wtx := models.WalletTransaction{Type: tc.txType, Amount: amount}
		if got := wtx.SignedAmount(); !got.Equal(tc.want) {
			t.Errorf("SignedAmount(%s) = %s, want %s", tc.txType, got, tc.want)
		}
	}
}
