// Package push is the call-through to the Expo push service. It sends one
// batch per call; there is no queue and no retry. A circuit breaker stops
// calling Expo while it keeps failing so callers fail fast and soft.
package push

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"github.com/valyala/fasthttp"
)

// Message is one Expo push message.
type Message struct {
	To    string                 `json:"to"`
	Title string                 `json:"title,omitempty"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data,omitempty"`
	Sound string                 `json:"sound,omitempty"`
}

// Ticket is Expo's per-message receipt.
type Ticket struct {
	Status  string                 `json:"status"`
	ID      string                 `json:"id,omitempty"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Sender delivers a batch of messages.
type Sender interface {
	Send(ctx context.Context, msgs []Message) ([]Ticket, error)
}

// ErrUnavailable is returned while the breaker is open.
var ErrUnavailable = errors.New("push service unavailable")

const (
	defaultTimeout   = 10 * time.Second
	failuresToTrip   = 5
	breakerOpenDelay = 30 * time.Second
)

// ExpoClient posts to the Expo push endpoint over fasthttp.
type ExpoClient struct {
	URL         string
	AccessToken string
	Timeout     time.Duration

	client  *fasthttp.Client
	breaker *gobreaker.CircuitBreaker
}

// NewExpoClient returns a client for url. accessToken may be empty.
func NewExpoClient(url, accessToken string) *ExpoClient {
	return &ExpoClient{
		URL:         url,
		AccessToken: accessToken,
		Timeout:     defaultTimeout,
		client:      &fasthttp.Client{Name: "rmclub-backend"},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:         "expo-push",
			MaxRequests:  1,
			Timeout:      breakerOpenDelay,
			IsSuccessful: countsAsSuccess,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failuresToTrip
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("push: circuit state changed")
			},
		}),
	}
}

// Send posts msgs in one request and returns Expo's tickets in the same order.
func (c *ExpoClient) Send(ctx context.Context, msgs []Message) ([]Ticket, error) {
	if len(msgs) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.post(ctx, msgs)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrUnavailable
	}
	if err != nil {
		return nil, err
	}
	return out.([]Ticket), nil
}

func (c *ExpoClient) post(ctx context.Context, msgs []Message) ([]Ticket, error) {
	body, err := json.Marshal(msgs)
	if err != nil {
		return nil, fmt.Errorf("expo push: encode: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.URL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	if c.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	}
	req.SetBodyRaw(body)

	if err := c.client.DoTimeout(req, resp, c.timeout(ctx)); err != nil {
		if cerr := contextErr(ctx); cerr != nil {
			return nil, fmt.Errorf("expo push: %w", cerr)
		}
		return nil, fmt.Errorf("expo push: %w", err)
	}
	if code := resp.StatusCode(); code != fasthttp.StatusOK {
		return nil, fmt.Errorf("expo push: unexpected status %d", code)
	}

	var parsed struct {
		Data []Ticket `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("expo push: decode: %w", err)
	}
	return parsed.Data, nil
}

func (c *ExpoClient) timeout(ctx context.Context) time.Duration {
	t := c.Timeout
	if t <= 0 {
		t = defaultTimeout
	}
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < t {
			t = left
		}
	}
	return t
}

// countsAsSuccess keeps cancellations and expired caller deadlines from
// counting as Expo failures.
func countsAsSuccess(err error) bool {
	return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// contextErr is ctx.Err(), also reporting a deadline that has passed but
// whose timer has not fired yet.
func contextErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dl, ok := ctx.Deadline(); ok && !time.Now().Before(dl) {
		return context.DeadlineExceeded
	}
	return nil
}

// State reports the breaker state: "closed", "half-open" or "open".
func (c *ExpoClient) State() string {
	return c.breaker.State().String()
}
