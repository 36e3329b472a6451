package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvestmentType is the product an investment was opened under.
type InvestmentType string

const (
	FixedDeposit     InvestmentType = "FD"
	RecurringDeposit InvestmentType = "RD"
	FixedDepositPlus InvestmentType = "FD_PLUS"
)

// Investment is one financial product instance held by a customer.
// CustomerName is denormalized for list rendering.
type Investment struct {
	InvestmentID    uuid.UUID            `gorm:"column:investment_id;type:uuid;primaryKey" json:"id"`
	CustomerID      uuid.UUID            `gorm:"column:customer_id;type:uuid;not null;index" json:"customer_id"`
	Type            InvestmentType       `gorm:"column:type;type:varchar(10);not null" json:"type"`
	PrincipalAmount decimal.Decimal      `gorm:"column:principal_amount;type:decimal(18,2);not null" json:"principal_amount"`
	StartDate       time.Time            `gorm:"column:start_date;not null" json:"start_date"`
	CustomerName    string               `gorm:"column:customer_name" json:"customer_name"`
	Analytics       *InvestmentAnalytics `gorm:"foreignKey:InvestmentID;references:InvestmentID" json:"analytics,omitempty"`
	Installments    []Installment        `gorm:"foreignKey:InvestmentID;references:InvestmentID" json:"installments,omitempty"`
	CreatedAt       time.Time            `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Investment) TableName() string {
	return "Investments"
}

func (i *Investment) BeforeCreate(tx *gorm.DB) error {
	if i.InvestmentID == uuid.Nil {
		i.InvestmentID = uuid.New()
	}
	return nil
}

// InvestmentAnalytics holds figures attached by the external valuation job.
// Either column may be NULL; the accessors coalesce NULL (and a nil receiver) to zero.
type InvestmentAnalytics struct {
	InvestmentID      uuid.UUID           `gorm:"column:investment_id;type:uuid;primaryKey" json:"-"`
	PrincipalInvested decimal.NullDecimal `gorm:"column:principal_invested;type:decimal(18,2)" json:"principal_invested"`
	CurrentValue      decimal.NullDecimal `gorm:"column:current_value;type:decimal(18,2)" json:"current_value"`
	UpdatedAt         time.Time           `gorm:"column:updatedAt" json:"updatedAt"`
}

func (InvestmentAnalytics) TableName() string {
	return "InvestmentAnalytics"
}

// Invested returns principal invested, or zero when absent.
func (a *InvestmentAnalytics) Invested() decimal.Decimal {
	if a == nil || !a.PrincipalInvested.Valid {
		return decimal.Zero
	}
	return a.PrincipalInvested.Decimal
}

// Current returns the current valuation, or zero when absent.
func (a *InvestmentAnalytics) Current() decimal.Decimal {
	if a == nil || !a.CurrentValue.Valid {
		return decimal.Zero
	}
	return a.CurrentValue.Decimal
}

// InstallmentStatus is the payment state of one RD installment.
type InstallmentStatus string

const (
	InstallmentDue    InstallmentStatus = "due"
	InstallmentPaid   InstallmentStatus = "paid"
	InstallmentMissed InstallmentStatus = "missed"
)

// Installment is one scheduled payment of a recurring deposit.
type Installment struct {
	InstallmentID  uuid.UUID         `gorm:"column:installment_id;type:uuid;primaryKey" json:"id"`
	InvestmentID   uuid.UUID         `gorm:"column:investment_id;type:uuid;not null;index" json:"investment_id"`
	InstallmentNo  int               `gorm:"column:installment_no;not null" json:"installment_no"`
	DueDate        time.Time         `gorm:"column:due_date;not null" json:"due_date"`
	AmountExpected decimal.Decimal   `gorm:"column:amount_expected;type:decimal(18,2);not null" json:"amount_expected"`
	Status         InstallmentStatus `gorm:"column:status;type:varchar(16);not null;default:'due'" json:"status"`
	CreatedAt      time.Time         `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt      time.Time         `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Installment) TableName() string {
	return "Installments"
}

func (i *Installment) BeforeCreate(tx *gorm.DB) error {
	if i.InstallmentID == uuid.Nil {
		i.InstallmentID = uuid.New()
	}
	return nil
}
