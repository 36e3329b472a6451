package cli

import (
	"bytes"
	"testing"
	"time"

	custsvc "rmclub-backend/internal/application/customers"
	dashsvc "rmclub-backend/internal/application/dashboard"
	"rmclub-backend/internal/application/portfolio"
	"rmclub-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRenderProfile(t *testing.T) {
	nov := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	sum := portfolio.Summary{Invested: decimal.NewFromInt(1500), Current: decimal.NewFromInt(1400), PnL: decimal.NewFromInt(-100)}
	next := &portfolio.DueInstallment{InstallmentNo: 3, DueDate: nov, AmountExpected: decimal.NewFromInt(500)}
	p := &custsvc.Profile{
		Customer: domain.Customer{FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Status: domain.CustomerActive},
		Summary:  sum,
		Display:  sum.Display("INR"),
		NextDue:  next,
		Investments: []domain.Investment{{
			Type: domain.RecurringDeposit, StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), PrincipalAmount: decimal.NewFromInt(1500),
		}},
	}

	md := RenderProfile(p, []portfolio.DueInstallment{*next}, "INR", time.UTC)
	assert.Contains(t, md, "# Asha Rao")
	assert.Contains(t, md, "| ₹1,500.00 | ₹1,400.00 | -₹100.00 |")
	assert.Contains(t, md, "Installment #3 of **₹500.00** on **01 Nov 2026**.")
	assert.Contains(t, md, "| RD | 01 Jan 2026 | ₹1,500.00 | ₹0.00 |")
	assert.Contains(t, md, "| 01 Nov 2026 | 3 | ₹500.00 |")
}

func TestRenderProfile_NothingDue(t *testing.T) {
	p := &custsvc.Profile{Customer: domain.Customer{FirstName: "Vik"}}
	md := RenderProfile(p, nil, "INR", nil)
	assert.Contains(t, md, "Nothing due.")
	assert.Contains(t, md, "No investments.")
}

func TestRenderDashboard(t *testing.T) {
	d := &dashsvc.Dashboard{
		Greeting: "Good Morning",
		UserName: "Priya",
		Stats: dashsvc.Stats{
			TotalCustomers: 2,
			ByStatus:       map[domain.CustomerStatus]int{domain.CustomerActive: 2},
			Display:        portfolio.Summary{}.Display("INR"),
		},
		RecentCustomers: []domain.Customer{{FirstName: "Asha", LastName: "Rao", Status: domain.CustomerActive}},
		UpcomingMeetings: []domain.Meeting{{
			Title: "Quarterly review", MeetingDate: time.Date(2026, 10, 20, 5, 0, 0, 0, time.UTC), LocationType: domain.LocationOffice,
		}},
	}
	md := RenderDashboard(d, "INR", time.UTC)
	assert.Contains(t, md, "# Good Morning, Priya")
	assert.Contains(t, md, "- Customers: **2**")
	assert.Contains(t, md, "  - active: 2")
	assert.Contains(t, md, "  - blocked: 0")
	assert.Contains(t, md, "- Asha Rao (active)")
	assert.Contains(t, md, "- 20 Oct 2026 · Quarterly review (office)")
	assert.NotContains(t, md, "## Today")
}

func TestWriteMarkdown_Raw(t *testing.T) {
	var buf bytes.Buffer
	writeMarkdown(&buf, "# Title\n", true)
	assert.Equal(t, "# Title\n", buf.String())
}

func TestRenderDashboard_EscapesTableCells(t *testing.T) {
	d := &dashsvc.Dashboard{
		Greeting: "Good Evening",
		Stats:    dashsvc.Stats{Display: portfolio.Summary{}.Display("INR")},
		RecentInvestments: []domain.Investment{{
			CustomerName: "Rao | Sons\nHUF", Type: domain.FixedDeposit,
			StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), PrincipalAmount: decimal.NewFromInt(1000),
		}},
	}
	md := RenderDashboard(d, "INR", time.UTC)
	assert.Contains(t, md, "| Rao \\| Sons HUF | FD | 01 Jan 2026 | ₹1,000.00 |")
}
