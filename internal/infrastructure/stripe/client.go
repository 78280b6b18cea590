// Package stripe implements the payment gateway port against the Stripe
// HTTP API. Requests are form-encoded, responses are JSON.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/storefin/backend/internal/application"
	"github.com/storefin/backend/internal/config"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg config.StripeConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

// CreateSession opens a hosted checkout session for one order and returns
// the session id. The order number rides along as payment-intent metadata
// so charges can later be found by order.
func (c *Client) CreateSession(ctx context.Context, req application.CheckoutSessionRequest) (string, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("customer_email", req.CustomerEmail)
	form.Set("payment_intent_data[metadata][order]", req.OrderNumber)
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", strings.ToLower(req.Currency))
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(req.UnitAmount, 10))
	form.Set("line_items[0][price_data][product_data][name]", req.ProductTitle)
	if req.ProductDescription != "" {
		form.Set("line_items[0][price_data][product_data][description]", req.ProductDescription)
	}

	endpoint := fmt.Sprintf("%s/v1/checkout/sessions", c.baseURL)
	var session sessionResponse
	if err := c.do(ctx, http.MethodPost, endpoint, form, &session); err != nil {
		return "", err
	}

	return session.ID, nil
}

// SearchChargesByOrderTag returns every charge tagged with the given order
// number. An empty slice means no payment attempt reached the gateway yet.
func (c *Client) SearchChargesByOrderTag(ctx context.Context, orderNumber string) ([]application.Charge, error) {
	query := fmt.Sprintf("metadata['order']:'%s'", orderNumber)
	endpoint := fmt.Sprintf("%s/v1/charges/search?query=%s", c.baseURL, url.QueryEscape(query))

	var result chargeSearchResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &result); err != nil {
		return nil, err
	}

	charges := make([]application.Charge, 0, len(result.Data))
	for _, ch := range result.Data {
		charges = append(charges, application.Charge{
			ID:             ch.ID,
			Email:          ch.BillingDetails.Email,
			Amount:         ch.Amount,
			AmountCaptured: ch.AmountCaptured,
			Status:         ch.Status,
			Paid:           ch.Paid,
			Refunded:       ch.Refunded,
		})
	}

	return charges, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, form url.Values, out any) error {
	var bodyReader io.Reader
	if form != nil {
		bodyReader = strings.NewReader(form.Encode())
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	if form != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			return fmt.Errorf("stripe returned status %d: %s", resp.StatusCode, string(body))
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Type:       errResp.Error.Type,
			Code:       errResp.Error.Code,
			Message:    errResp.Error.Message,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding json response: %w", err)
	}

	return nil
}
