// Package dashboard builds the admin home screen read model.
package dashboard

import (
	"context"
	"time"

	"rmclub-backend/internal/application/portfolio"
	"rmclub-backend/internal/application/ranking"
	"rmclub-backend/internal/domain"

	"gorm.io/gorm"
)

// Service loads records and hands them to the portfolio and ranking cores.
type Service struct {
	DB          *gorm.DB
	Now         func() time.Time
	Location    *time.Location
	RecentLimit int
	Currency    string
}

// Stats are the dashboard counters.
type Stats struct {
	TotalCustomers   int                           `json:"total_customers"`
	ByStatus         map[domain.CustomerStatus]int `json:"customers_by_status"`
	TotalInvestments int                           `json:"total_investments"`
	Portfolio        portfolio.Summary             `json:"portfolio"`
	Display          portfolio.SummaryDisplay      `json:"portfolio_display"`
}

// Dashboard is the admin home payload. TodayInvestments is omitted when empty.
type Dashboard struct {
	Greeting          string              `json:"greeting"`
	UserName          string              `json:"user_name"`
	Stats             Stats               `json:"stats"`
	RecentCustomers   []domain.Customer   `json:"recent_customers"`
	RecentInvestments []domain.Investment `json:"recent_investments"`
	TodayInvestments  []domain.Investment `json:"today_investments,omitempty"`
	UpcomingMeetings  []domain.Meeting    `json:"upcoming_meetings"`
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Build assembles the dashboard for the signed-in staff member.
func (s *Service) Build(ctx context.Context, userName string) (*Dashboard, error) {
	db := s.DB.WithContext(ctx)

	var customers []domain.Customer
	if err := db.Find(&customers).Error; err != nil {
		return nil, err
	}
	var investments []domain.Investment
	if err := db.Preload("Analytics").Find(&investments).Error; err != nil {
		return nil, err
	}
	var meetings []domain.Meeting
	if err := db.Find(&meetings).Error; err != nil {
		return nil, err
	}

	now := s.now()
	byStart := func(i domain.Investment) time.Time { return i.StartDate }

	return &Dashboard{
		Greeting:          ranking.Greeting(now, s.Location),
		UserName:          userName,
		Stats:             s.stats(customers, investments),
		RecentCustomers:   ranking.TopRecent(customers, func(c domain.Customer) time.Time { return c.CreatedAt }, s.RecentLimit),
		RecentInvestments: ranking.TopRecent(investments, byStart, s.RecentLimit),
		TodayInvestments:  ranking.TopRecent(ranking.SameDay(investments, byStart, now, s.Location), byStart, -1),
		UpcomingMeetings:  ranking.TopRecent(meetings, func(m domain.Meeting) time.Time { return m.MeetingDate }, s.RecentLimit),
	}, nil
}

func (s *Service) stats(customers []domain.Customer, investments []domain.Investment) Stats {
	byStatus := make(map[domain.CustomerStatus]int, len(domain.CustomerStatuses))
	for _, st := range domain.CustomerStatuses {
		byStatus[st] = 0
	}
	for _, c := range customers {
		byStatus[c.Status]++
	}
	sum := portfolio.Aggregate(investments)
	return Stats{
		TotalCustomers:   len(customers),
		ByStatus:         byStatus,
		TotalInvestments: len(investments),
		Portfolio:        sum,
		Display:          sum.Display(s.Currency),
	}
}
