// Package customers serves the customer list, the RM's customer profile and
// the customer's own portfolio screens.
package customers

import (
	"context"
	"errors"

	"rmclub-backend/internal/application/portfolio"
	"rmclub-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service reads customers and their investments.
type Service struct {
	DB       *gorm.DB
	Currency string
}

// Profile is the RM's view of one customer.
type Profile struct {
	Customer    domain.Customer           `json:"customer"`
	Summary     portfolio.Summary         `json:"summary"`
	Display     portfolio.SummaryDisplay  `json:"display"`
	NextDue     *portfolio.DueInstallment `json:"next_due"`
	Investments []domain.Investment       `json:"investments"`
}

// PortfolioView is the customer's home screen header.
type PortfolioView struct {
	Summary     portfolio.Summary         `json:"summary"`
	Display     portfolio.SummaryDisplay  `json:"display"`
	NextDue     *portfolio.DueInstallment `json:"next_due"`
	Investments int                       `json:"investment_count"`
}

// List returns customers newest first. status filters when non-empty.
func (s *Service) List(ctx context.Context, status string) ([]domain.Customer, error) {
	q := s.DB.WithContext(ctx).Order(`"createdAt" DESC`)
	if status != "" {
		st := domain.CustomerStatus(status)
		if !st.IsValid() {
			return nil, ErrInvalidStatus
		}
		q = q.Where("status = ?", st)
	}
	out := []domain.Customer{}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Get loads one customer.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	if err := s.DB.WithContext(ctx).Where("customer_id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Profile assembles customer, summary, next due and investments.
func (s *Service) Profile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	invs, err := LoadInvestments(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	sum := portfolio.Aggregate(invs)
	return &Profile{
		Customer:    *c,
		Summary:     sum,
		Display:     sum.Display(s.Currency),
		NextDue:     portfolio.NextDue(invs),
		Investments: invs,
	}, nil
}

// Portfolio is the customer-facing summary for the session customer.
func (s *Service) Portfolio(ctx context.Context, customerID uuid.UUID) (*PortfolioView, error) {
	invs, err := LoadInvestments(ctx, s.DB, customerID)
	if err != nil {
		return nil, err
	}
	sum := portfolio.Aggregate(invs)
	return &PortfolioView{
		Summary:     sum,
		Display:     sum.Display(s.Currency),
		NextDue:     portfolio.NextDue(invs),
		Investments: len(invs),
	}, nil
}

// UpcomingPayments lists the customer's due installments, earliest first.
// limit < 0 returns all of them.
func (s *Service) UpcomingPayments(ctx context.Context, customerID uuid.UUID, limit int) ([]portfolio.DueInstallment, error) {
	invs, err := LoadInvestments(ctx, s.DB, customerID)
	if err != nil {
		return nil, err
	}
	return portfolio.DueSchedule(invs, limit), nil
}

// LoadInvestments fetches a customer's investments with analytics and
// installments. Investments come back by start date and installments by
// number; NextDue breaks ties in that order.
func LoadInvestments(ctx context.Context, db *gorm.DB, customerID uuid.UUID) ([]domain.Investment, error) {
	out := []domain.Investment{}
	err := db.WithContext(ctx).
		Preload("Analytics").
		Preload("Installments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("installment_no ASC")
		}).
		Where("customer_id = ?", customerID).
		Order("start_date ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
