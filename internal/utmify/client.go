package utmify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

const ordersPath = "/api-credentials/orders"

// DefaultBaseURL is the production tracking API endpoint.
const DefaultBaseURL = "https://api.utmify.com.br"

// Client sends order events to the Utmify tracking API. The credential is
// injected at construction time and never read from the environment here.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: httpClient,
	}
}

// SendResult is the tri-state outcome of a send attempt: success with the
// raw response body, provider rejection with the response body in both Err
// and Response, or transport failure with Err only.
type SendResult struct {
	Success  bool
	Response string
	Err      string
}

// SendOrder posts one order to the tracking API. It never returns a Go
// error: attribution delivery is best-effort telemetry and must not abort
// the caller's order flow, so every failure path lands in the SendResult.
// Callers needing a bounded wait pass a context with a deadline.
func (c *Client) SendOrder(ctx context.Context, order *OrderRequest) SendResult {
	endpoint := c.baseURL + ordersPath

	body, err := json.Marshal(order)
	if err != nil {
		log.Error().Err(err).Str("order_id", order.OrderID).Msg("utmify: failed to serialize order")
		return SendResult{Err: err.Error()}
	}

	log.Info().
		Str("endpoint", endpoint).
		Str("token", redactToken(c.token)).
		Str("order_id", order.OrderID).
		Stringer("status", order.Status).
		Str("customer_name", order.Customer.Name).
		Str("customer_email", order.Customer.Email).
		Int("products", len(order.Products)).
		Int64("total_in_cents", order.Commission.TotalPriceInCents).
		Msg("utmify: sending order")
	log.Debug().RawJSON("request_body", body).Msg("utmify: request payload")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		log.Error().Err(err).Str("order_id", order.OrderID).Msg("utmify: failed to build request")
		return SendResult{Err: err.Error()}
	}
	req.Header.Set("x-api-token", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("order_id", order.OrderID).Msg("utmify: request failed before a response was obtained")
		return SendResult{Err: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Str("order_id", order.OrderID).Msg("utmify: failed to read response body")
		return SendResult{Err: err.Error()}
	}
	text := string(respBody)

	log.Debug().
		Int("status_code", resp.StatusCode).
		Interface("response_headers", resp.Header).
		Str("response_body", text).
		Msg("utmify: response received")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error().
			Int("status_code", resp.StatusCode).
			Str("order_id", order.OrderID).
			Str("response_body", text).
			Msg("utmify: order rejected by provider")
		return SendResult{Err: text, Response: text}
	}

	log.Info().
		Str("order_id", order.OrderID).
		Stringer("status", order.Status).
		Msg("utmify: order sent successfully")
	return SendResult{Success: true, Response: text}
}

// redactToken keeps a short prefix for log correlation. The full credential
// never appears in logs.
func redactToken(token string) string {
	if len(token) <= 8 {
		return "..."
	}
	return token[:8] + "..."
}
