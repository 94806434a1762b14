package services

import (
	"errors"
	"testing"
	"vclub/database"
	"vclub/models"

	"github.com/shopspring/decimal"
)

func TestWalletLedgerFlow(t *testing.T) {
	setupTestDB(t)

	m := createTestMember(t, models.UserTypePlayer, models.RankStandard, nil)

	if _, err := WalletDeposit(m, decimal.NewFromInt(100), "top-up", nil); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, err := WalletSpend(m, decimal.NewFromInt(30), "entry fee", nil); err != nil {
		t.Fatalf("spend: %v", err)
	}

	// Overdraft is rejected and leaves no trace.
	if _, err := WalletSpend(m, decimal.NewFromInt(200), "too much", nil); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("overdraft: got %v, want ErrInsufficientBalance", err)
	}

	m = reloadMember(t, m.ID)
	if !m.CashBalance.Equal(decimal.NewFromInt(70)) {
		t.Errorf("balance = %s, want 70", m.CashBalance)
	}

	var txs []models.WalletTransaction
	if err := database.DB.Where("member_id = ?", m.ID).Order("id ASC").Find(&txs).Error; err != nil {
		t.Fatalf("loading transactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", len(txs))
	}
	if !txs[len(txs)-1].BalanceAfter.Equal(m.CashBalance) {
		t.Errorf("last balance_after = %s, balance = %s", txs[len(txs)-1].BalanceAfter, m.CashBalance)
	}

	// The signed ledger reconciles to the stored balance.
	sum := decimal.Zero
	for _, wtx := range txs {
		sum = sum.Add(wtx.SignedAmount())
	}
	if !sum.Equal(m.CashBalance) {
		t.Errorf("signed sum = %s, balance = %s", sum, m.CashBalance)
	}
}

func TestAdjustBalanceAndAdminDebit(t *testing.T) {
	setupTestDB(t)

	admin := createTestMember(t, models.UserTypePlayer, models.RankStandard, nil)
	m := createTestMember(t, models.UserTypePlayer, models.RankStandard, nil)

	if _, err := AdjustBalance(m, decimal.RequireFromString("10.555"), "correction", nil); err != nil {
		t.Fatalf("credit adjustment: %v", err)
	}
	m = reloadMember(t, m.ID)
	// Stored balance is kept at two decimal places.
	if !m.CashBalance.Equal(decimal.RequireFromString("10.56")) {
		t.Errorf("balance = %s, want 10.56", m.CashBalance)
	}

	// A negative adjustment below zero is refused.
	if _, err := AdjustBalance(m, decimal.NewFromInt(-11), "overcorrection", nil); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("overcorrection: got %v, want ErrInsufficientBalance", err)
	}

	wtx, err := AdminDebit(m, decimal.RequireFromString("5.56"), "chargeback", admin, nil)
	if err != nil {
		t.Fatalf("admin debit: %v", err)
	}
	if wtx.Type != models.TxTypeAdminDebit {
		t.Errorf("debit type = %s, want %s", wtx.Type, models.TxTypeAdminDebit)
	}
	m = reloadMember(t, m.ID)
	if !m.CashBalance.Equal(decimal.RequireFromString("5")) {
		t.Errorf("balance = %s, want 5", m.CashBalance)
	}
}

func TestMarkWithdrawalPaid(t *testing.T) {
	setupTestDB(t)

	m := createTestMember(t, models.UserTypePlayer, models.RankStandard, nil)
	if _, err := WalletDeposit(m, decimal.NewFromInt(100), "top-up", nil); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	request := &models.WithdrawalRequest{
		MemberID: m.ID,
		Amount:   decimal.NewFromInt(60),
		Method:   models.WithdrawalMethodCard,
		Status:   models.WithdrawalStatusApproved,
	}
	if err := database.DB.Create(request).Error; err != nil {
		t.Fatalf("creating request: %v", err)
	}

	wtx, err := MarkWithdrawalPaid(request)
	if err != nil {
		t.Fatalf("MarkWithdrawalPaid: %v", err)
	}
	if wtx == nil || wtx.Type != models.TxTypeWithdraw {
		t.Fatalf("expected withdraw ledger entry, got %+v", wtx)
	}
	if request.Status != models.WithdrawalStatusPaid || request.ProcessedAt == nil {
		t.Errorf("request not finalized: %+v", request)
	}
	m = reloadMember(t, m.ID)
	if !m.CashBalance.Equal(decimal.NewFromInt(40)) {
		t.Errorf("balance = %s, want 40", m.CashBalance)
	}

	// Second call is a no-op.
	wtx2, err := MarkWithdrawalPaid(request)
	if err != nil {
		t.Fatalf("repeat MarkWithdrawalPaid: %v", err)
	}
	if wtx2 != nil {
		t.Errorf("repeat call produced a ledger entry: %+v", wtx2)
	}
	m = reloadMember(t, m.ID)
	if !m.CashBalance.Equal(decimal.NewFromInt(40)) {
		t.Errorf("balance changed on repeat: %s", m.CashBalance)
	}

	// A request the balance cannot cover stays unpaid.
	big := &models.WithdrawalRequest{
		MemberID: m.ID,
		Amount:   decimal.NewFromInt(500),
		Method:   models.WithdrawalMethodCard,
		Status:   models.WithdrawalStatusApproved,
	}
	if err := database.DB.Create(big).Error; err != nil {
		t.Fatalf("creating request: %v", err)
	}
	if _, err := MarkWithdrawalPaid(big); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("uncovered payout: got %v, want ErrInsufficientBalance", err)
	}
	var fresh models.WithdrawalRequest
	if err := database.DB.First(&fresh, big.ID).Error; err != nil {
		t.Fatalf("reloading request: %v", err)
	}
	if fresh.Status != models.WithdrawalStatusApproved {
		t.Errorf("uncovered request status = %s, want approved", fresh.Status)
	}
}

func TestCheckForRankUpPromotion(t *testing.T) {
	setupTestDB(t)

	r := createTestMember(t, models.UserTypePlayer, models.RankStandard, nil)

	addPaidReferral := func() {
		child := createTestMember(t, models.UserTypePlayer, models.RankStandard, r)
		if err := database.DB.Create(&models.ReferralRelation{
			AncestorID:        r.ID,
			DescendantID:      child.ID,
			Level:             1,
			HasPaidFirstBonus: true,
		}).Error; err != nil {
			t.Fatalf("creating relation: %v", err)
		}
	}

	for n := 0; n < 4; n++ {
		addPaidReferral()
	}
	if err := CheckForRankUp(r); err != nil {
		t.Fatalf("CheckForRankUp: %v", err)
	}
	if got := reloadMember(t, r.ID); got.Rank != models.RankStandard {
		t.Errorf("rank at 4 referrals = %s, want standard", got.Rank)
	}

	addPaidReferral()
	if err := CheckForRankUp(r); err != nil {
		t.Fatalf("CheckForRankUp: %v", err)
	}
	if got := reloadMember(t, r.ID); got.Rank != models.RankSilver {
		t.Errorf("rank at 5 referrals = %s, want silver", got.Rank)
	}
}
