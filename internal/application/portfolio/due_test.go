package portfolio

import (
	"testing"
	"time"

	"rmclub-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func installment(date string, status domain.InstallmentStatus, amount int64) domain.Installment {
	return domain.Installment{
		InstallmentID:  uuid.New(),
		DueDate:        day(date),
		AmountExpected: decimal.NewFromInt(amount),
		Status:         status,
	}
}

func rd(installments ...domain.Installment) domain.Investment {
	return domain.Investment{
		InvestmentID: uuid.New(),
		Type:         domain.RecurringDeposit,
		CustomerName: "Asha Rao",
		Installments: installments,
	}
}

func TestNextDue_NoRecurringDeposits(t *testing.T) {
	xs := []domain.Investment{
		{InvestmentID: uuid.New(), Type: domain.FixedDeposit},
		{InvestmentID: uuid.New(), Type: domain.FixedDepositPlus},
	}
	assert.Nil(t, NextDue(xs))
	assert.Nil(t, NextDue(nil))
}

func TestNextDue_PicksEarliestRegardlessOfOrder(t *testing.T) {
	inv := rd(
		installment("2025-06-01", domain.InstallmentDue, 500),
		installment("2025-05-01", domain.InstallmentDue, 300),
	)
	got := NextDue([]domain.Investment{inv})
	require.NotNil(t, got)
	assert.Equal(t, day("2025-05-01"), got.DueDate)
	assert.True(t, decimal.NewFromInt(300).Equal(got.AmountExpected))
	assert.Equal(t, inv.InvestmentID, got.InvestmentID)
	assert.Equal(t, inv.Installments[1].InstallmentID, got.InstallmentID)
	assert.Equal(t, "Asha Rao", got.CustomerName)
}

func TestNextDue_NothingDue(t *testing.T) {
	inv := rd(
		installment("2025-04-01", domain.InstallmentPaid, 500),
		installment("2025-05-01", domain.InstallmentMissed, 500),
	)
	assert.Nil(t, NextDue([]domain.Investment{inv}))
}

func TestNextDue_RecurringWithoutInstallments(t *testing.T) {
	assert.Nil(t, NextDue([]domain.Investment{rd()}))
}

func TestNextDue_IgnoresInstallmentsOnNonRecurring(t *testing.T) {
	fd := domain.Investment{
		InvestmentID: uuid.New(),
		Type:         domain.FixedDeposit,
		Installments: []domain.Installment{installment("2020-01-01", domain.InstallmentDue, 1)},
	}
	later := rd(installment("2025-01-01", domain.InstallmentDue, 2))
	got := NextDue([]domain.Investment{fd, later})
	require.NotNil(t, got)
	assert.Equal(t, later.InvestmentID, got.InvestmentID)
}

func TestNextDue_AcrossInvestments(t *testing.T) {
	a := rd(installment("2025-07-01", domain.InstallmentDue, 100))
	b := rd(
		installment("2025-03-01", domain.InstallmentPaid, 200),
		installment("2025-06-15", domain.InstallmentDue, 200),
	)
	got := NextDue([]domain.Investment{a, b})
	require.NotNil(t, got)
	assert.Equal(t, b.InvestmentID, got.InvestmentID)
	assert.Equal(t, day("2025-06-15"), got.DueDate)
}

func TestNextDue_TieGoesToFirstInTraversalOrder(t *testing.T) {
	a := rd(installment("2025-05-01", domain.InstallmentDue, 100))
	b := rd(installment("2025-05-01", domain.InstallmentDue, 200))
	got := NextDue([]domain.Investment{a, b})
	require.NotNil(t, got)
	assert.Equal(t, a.InvestmentID, got.InvestmentID)

	got = NextDue([]domain.Investment{b, a})
	require.NotNil(t, got)
	assert.Equal(t, b.InvestmentID, got.InvestmentID)

	c := rd(
		installment("2025-05-01", domain.InstallmentDue, 1),
		installment("2025-05-01", domain.InstallmentDue, 2),
	)
	got = NextDue([]domain.Investment{c})
	require.NotNil(t, got)
	assert.Equal(t, c.Installments[0].InstallmentID, got.InstallmentID)
}

func TestNextDue_DoesNotMutateInput(t *testing.T) {
	inv := rd(
		installment("2025-06-01", domain.InstallmentDue, 500),
		installment("2025-05-01", domain.InstallmentDue, 300),
	)
	xs := []domain.Investment{inv}
	NextDue(xs)
	assert.Equal(t, day("2025-06-01"), xs[0].Installments[0].DueDate)
	assert.Equal(t, day("2025-05-01"), xs[0].Installments[1].DueDate)
}

func TestDueSchedule_SortedAscendingAndLimited(t *testing.T) {
	a := rd(
		installment("2025-08-01", domain.InstallmentDue, 100),
		installment("2025-06-01", domain.InstallmentPaid, 100),
	)
	b := rd(
		installment("2025-07-01", domain.InstallmentDue, 200),
		installment("2025-05-01", domain.InstallmentDue, 200),
	)
	all := DueSchedule([]domain.Investment{a, b}, -1)
	require.Len(t, all, 3)
	assert.Equal(t, day("2025-05-01"), all[0].DueDate)
	assert.Equal(t, day("2025-07-01"), all[1].DueDate)
	assert.Equal(t, day("2025-08-01"), all[2].DueDate)
	assert.Equal(t, a.InvestmentID, all[2].InvestmentID)

	two := DueSchedule([]domain.Investment{a, b}, 2)
	assert.Len(t, two, 2)
	assert.Equal(t, all[0], two[0])

	first := NextDue([]domain.Investment{a, b})
	require.NotNil(t, first)
	assert.Equal(t, *first, all[0])
}

func TestDueSchedule_EmptyIsNotNil(t *testing.T) {
	out := DueSchedule(nil, 5)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
