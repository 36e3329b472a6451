// Package notifications registers device tokens and sends payment reminders.
package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rmclub-backend/internal/application/customers"
	"rmclub-backend/internal/application/portfolio"
	"rmclub-backend/internal/domain"
	"rmclub-backend/internal/infrastructure/push"
	"rmclub-backend/internal/pkg/moneyfmt"
	"rmclub-backend/internal/pkg/validation"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PushObserver counts push outcomes. Optional.
type PushObserver interface {
	ObservePush(result string)
}

// Service owns device tokens and the reminder call-through.
type Service struct {
	DB       *gorm.DB
	Push     push.Sender
	Metrics  PushObserver
	Location *time.Location
	Currency string
}

// RegisterTokenInput is the body of POST /notifications/register-token.
type RegisterTokenInput struct {
	Token    string                 `json:"token"`
	Platform string                 `json:"platform"`
	Device   map[string]interface{} `json:"device"`
}

// Reminder outcomes, also used as metric labels.
const (
	ResultSent    = "sent"
	ResultFailed  = "failed"
	ResultSkipped = "skipped"
)

// ReminderResult reports what SendDueReminder did.
type ReminderResult struct {
	NextDue *portfolio.DueInstallment `json:"next_due"`
	Devices int                       `json:"devices"`
	Result  string                    `json:"result"`
	Reason  string                    `json:"reason,omitempty"`
}

// RegisterToken stores token for userID. Re-registering a token moves it
// to the new user; platform and device are only overwritten when sent.
func (s *Service) RegisterToken(ctx context.Context, userID uuid.UUID, in RegisterTokenInput) (*domain.DeviceToken, error) {
	if !validation.IsValidPushToken(in.Token) {
		return nil, ErrInvalidPushToken
	}
	platform, ok := validation.NormalizePlatform(in.Platform)
	if !ok {
		return nil, ErrInvalidPlatform
	}
	var device datatypes.JSON
	if len(in.Device) > 0 {
		b, err := json.Marshal(in.Device)
		if err != nil {
			return nil, fmt.Errorf("encode device: %w", err)
		}
		device = b
	}

	row := domain.DeviceToken{
		UserID:   userID,
		Token:    in.Token,
		Platform: platform,
		Device:   device,
	}
	updates := []string{"user_id", "updatedAt"}
	if platform != "" {
		updates = append(updates, "platform")
	}
	if device != nil {
		updates = append(updates, "device")
	}
	db := s.DB.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	var saved domain.DeviceToken
	if err := db.Where("token = ?", in.Token).First(&saved).Error; err != nil {
		return nil, err
	}
	log.Info().Str("user_id", userID.String()).Str("platform", platform).Msg("notifications: device token registered")
	return &saved, nil
}

// SendDueReminder pushes the customer's next due installment to every device
// of the users linked to that customer. Push failures are soft: they are
// logged and reported in the result, never returned as errors.
func (s *Service) SendDueReminder(ctx context.Context, customerID uuid.UUID) (*ReminderResult, error) {
	var c domain.Customer
	if err := s.DB.WithContext(ctx).Where("customer_id = ?", customerID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customers.ErrCustomerNotFound
		}
		return nil, err
	}
	invs, err := customers.LoadInvestments(ctx, s.DB, customerID)
	if err != nil {
		return nil, err
	}
	next := portfolio.NextDue(invs)
	res := &ReminderResult{NextDue: next}
	if next == nil {
		return s.skip(res, "nothing due"), nil
	}

	tokens, err := s.tokensForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	res.Devices = len(tokens)
	if len(tokens) == 0 {
		return s.skip(res, "no registered devices"), nil
	}

	msgs := make([]push.Message, 0, len(tokens))
	for _, tok := range tokens {
		msgs = append(msgs, s.reminderMessage(tok, next))
	}
	tickets, err := s.Push.Send(ctx, msgs)
	if err != nil {
		log.Warn().Err(err).Str("customer_id", customerID.String()).Msg("notifications: reminder push failed")
		res.Result = ResultFailed
		res.Reason = err.Error()
		s.observe(ResultFailed)
		return res, nil
	}
	for _, t := range tickets {
		if t.Status != "ok" {
			log.Warn().Str("customer_id", customerID.String()).Str("ticket_message", t.Message).Msg("notifications: expo rejected a message")
		}
	}
	res.Result = ResultSent
	s.observe(ResultSent)
	return res, nil
}

func (s *Service) skip(res *ReminderResult, reason string) *ReminderResult {
	res.Result = ResultSkipped
	res.Reason = reason
	s.observe(ResultSkipped)
	return res
}

func (s *Service) observe(result string) {
	if s.Metrics != nil {
		s.Metrics.ObservePush(result)
	}
}

func (s *Service) tokensForCustomer(ctx context.Context, customerID uuid.UUID) ([]string, error) {
	var tokens []string
	err := s.DB.WithContext(ctx).
		Model(&domain.DeviceToken{}).
		Joins(`JOIN "Users" ON "Users".user_id = "DeviceTokens".user_id`).
		Where(`"Users".customer_id = ? AND "Users"."deleted_at" IS NULL`, customerID).
		Order(`"DeviceTokens".token`).
		Pluck(`"DeviceTokens".token`, &tokens).Error
	return tokens, err
}

func (s *Service) reminderMessage(token string, d *portfolio.DueInstallment) push.Message {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return push.Message{
		To:    token,
		Title: "Payment reminder",
		Body: fmt.Sprintf("Installment #%d of %s is due on %s.",
			d.InstallmentNo, moneyfmt.Format(d.AmountExpected, s.Currency), d.DueDate.In(loc).Format("02 Jan 2006")),
		Sound: "default",
		Data: map[string]interface{}{
			"type":           "payment_reminder",
			"investment_id":  d.InvestmentID.String(),
			"installment_id": d.InstallmentID.String(),
		},
	}
}
