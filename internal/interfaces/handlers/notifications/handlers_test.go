package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	notifsvc "rmclub-backend/internal/application/notifications"
	"rmclub-backend/internal/domain"
	"rmclub-backend/internal/infrastructure/database"
	"rmclub-backend/internal/infrastructure/push"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const userID = "550e8400-e29b-41d4-a716-446655440000"

type fakeSender struct {
	calls int
	err   error
}

func (f *fakeSender) Send(_ context.Context, msgs []push.Message) ([]push.Ticket, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return make([]push.Ticket, len(msgs)), nil
}

func setupNotificationsTest(t *testing.T, sender *fakeSender) (*fiber.App, *gorm.DB) {
	db, err := database.Open("sqlite::memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	h := &Handlers{Service: &notifsvc.Service{DB: db, Push: sender, Location: time.UTC, Currency: "INR"}}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{"user_id": userID, "role": "customer"})
		return c.Next()
	})
	app.Post("/register-token", h.RegisterToken)
	app.Post("/customers/:id/remind", h.SendReminder)
	return app, db
}

func post(t *testing.T, app *fiber.App, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestRegisterToken(t *testing.T) {
	app, db := setupNotificationsTest(t, &fakeSender{})

	code, out := post(t, app, "/register-token", map[string]interface{}{
		"token":    "ExponentPushToken[xyz]",
		"platform": "android",
		"device":   map[string]string{"model": "Pixel 9"},
	})
	require.Equal(t, fiber.StatusCreated, code)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, userID, data["user_id"])
	assert.Equal(t, "Pixel 9", data["device"].(map[string]interface{})["model"])

	var n int64
	require.NoError(t, db.Model(&domain.DeviceToken{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	code, _ = post(t, app, "/register-token", map[string]string{"token": "garbage"})
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, out = post(t, app, "/register-token", map[string]string{})
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "token is required", out["error"].(map[string]interface{})["message"])
}

func TestSendReminder(t *testing.T) {
	sender := &fakeSender{}
	app, db := setupNotificationsTest(t, sender)

	c := domain.Customer{FirstName: "Asha", Email: "asha@example.com", Status: domain.CustomerActive}
	require.NoError(t, db.Create(&c).Error)
	require.NoError(t, db.Create(&domain.Investment{
		CustomerID: c.CustomerID, Type: domain.RecurringDeposit, PrincipalAmount: decimal.NewFromInt(1000),
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), CustomerName: "Asha",
		Installments: []domain.Installment{{
			InstallmentID: uuid.New(), InstallmentNo: 4, Status: domain.InstallmentDue,
			DueDate: time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), AmountExpected: decimal.NewFromInt(500),
		}},
	}).Error)
	uid := uuid.MustParse(userID)
	require.NoError(t, db.Create(&domain.User{UserID: uid, Fullname: "Asha", Email: "asha@example.com", PasswordHash: "x", Role: "customer", CustomerID: &c.CustomerID}).Error)
	require.NoError(t, db.Create(&domain.DeviceToken{UserID: uid, Token: "ExponentPushToken[xyz]"}).Error)

	code, out := post(t, app, "/customers/"+c.CustomerID.String()+"/remind", nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Reminder sent", out["message"])
	assert.Equal(t, 1, sender.calls)

	sender.err = push.ErrUnavailable
	code, out = post(t, app, "/customers/"+c.CustomerID.String()+"/remind", nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Reminder could not be delivered", out["message"])
	assert.Equal(t, "failed", out["data"].(map[string]interface{})["result"])

	code, _ = post(t, app, "/customers/"+uuid.New().String()+"/remind", nil)
	assert.Equal(t, fiber.StatusNotFound, code)
}
