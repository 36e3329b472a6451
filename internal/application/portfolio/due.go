package portfolio

import (
	"slices"
	"time"

	"rmclub-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DueInstallment is an unpaid RD installment together with the investment it belongs to.
type DueInstallment struct {
	InvestmentID   uuid.UUID                `json:"investment_id"`
	InstallmentID  uuid.UUID                `json:"id"`
	InstallmentNo  int                      `json:"installment_no"`
	DueDate        time.Time                `json:"due_date"`
	AmountExpected decimal.Decimal          `json:"amount_expected"`
	Status         domain.InstallmentStatus `json:"status"`
	CustomerName   string                   `json:"customer_name"`
}

func newDueInstallment(inv *domain.Investment, in *domain.Installment) *DueInstallment {
	return &DueInstallment{
		InvestmentID:   inv.InvestmentID,
		InstallmentID:  in.InstallmentID,
		InstallmentNo:  in.InstallmentNo,
		DueDate:        in.DueDate,
		AmountExpected: in.AmountExpected,
		Status:         in.Status,
		CustomerName:   inv.CustomerName,
	}
}

// forEachDue visits every due installment of every recurring deposit in
// traversal order (investments, then installments).
func forEachDue(investments []domain.Investment, fn func(inv *domain.Investment, in *domain.Installment)) {
	for i := range investments {
		inv := &investments[i]
		if inv.Type != domain.RecurringDeposit {
			continue
		}
		for j := range inv.Installments {
			if inv.Installments[j].Status == domain.InstallmentDue {
				fn(inv, &inv.Installments[j])
			}
		}
	}
}

// NextDue returns the due installment with the earliest due date across the
// whole portfolio, or nil when nothing is due. On equal dates the first one
// in traversal order wins. Installments need not be sorted.
func NextDue(investments []domain.Investment) *DueInstallment {
	var (
		bestInv *domain.Investment
		best    *domain.Installment
	)
	forEachDue(investments, func(inv *domain.Investment, in *domain.Installment) {
		if best == nil || in.DueDate.Before(best.DueDate) {
			bestInv, best = inv, in
		}
	})
	if best == nil {
		return nil
	}
	return newDueInstallment(bestInv, best)
}

// DueSchedule lists due installments ascending by due date, ties kept in
// traversal order. A negative limit returns all of them.
func DueSchedule(investments []domain.Investment, limit int) []DueInstallment {
	out := []DueInstallment{}
	forEachDue(investments, func(inv *domain.Investment, in *domain.Installment) {
		out = append(out, *newDueInstallment(inv, in))
	})
	slices.SortStableFunc(out, func(a, b DueInstallment) int {
		return a.DueDate.Compare(b.DueDate)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
