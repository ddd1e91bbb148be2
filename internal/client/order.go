package client

import (
	"context"
	"encoding/json"
	"strconv"

	"pizza-storefront/internal/common/errors"
	"pizza-storefront/internal/common/validation"
	"pizza-storefront/internal/models"
	"pizza-storefront/pkg/catalog"
)

// Menu fetches the menu. Read-only and idempotent; safe to retry.
func (c *Client) Menu(ctx context.Context) ([]models.MenuItem, error) {
	const endpoint = "GET /api/order/menu"

	var out []models.MenuItem
	resp, err := c.request().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/order/menu")
	if err != nil {
		return nil, transportError(endpoint, err)
	}
	if resp.IsError() {
		return nil, apiError(endpoint, resp)
	}
	return out, nil
}

// SubmitOrder posts the order for payment. The payload is checked against
// the API contract before the request leaves; a contract violation is a
// local validation error, not a round-trip. A non-2xx response surfaces the
// server's message as a payment failure and the caller keeps its cart.
func (c *Client) SubmitOrder(ctx context.Context, order *models.Order) (*models.OrderReceipt, error) {
	const endpoint = "POST /api/order"

	raw, err := json.Marshal(order)
	if err != nil {
		return nil, errors.NewValidationFailedError(err.Error())
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, errors.NewValidationFailedError(err.Error())
	}
	if err := validation.ValidateOrderPayload(payload); err != nil {
		return nil, errors.NewValidationFailedError(err.Error())
	}

	var out models.OrderReceipt
	resp, err := c.request().
		SetContext(ctx).
		SetBody(order).
		SetResult(&out).
		Post("/api/order")
	if err != nil {
		return nil, transportError(endpoint, err)
	}
	if resp.IsError() {
		return nil, errors.NewPaymentFailedError(serverMessage(resp), resp.StatusCode())
	}
	return &out, nil
}

// Orders fetches one page of the current diner's order history.
func (c *Client) Orders(ctx context.Context, page int) (*models.OrderHistory, error) {
	const endpoint = "GET /api/order"

	var out models.OrderHistory
	resp, err := c.request().
		SetContext(ctx).
		SetQueryParam("page", strconv.Itoa(page)).
		SetResult(&out).
		Get("/api/order")
	if err != nil {
		return nil, transportError(endpoint, err)
	}
	if resp.IsError() {
		return nil, apiError(endpoint, resp)
	}
	return &out, nil
}

// Verify checks an order JWT via GET /api/order/verify/:jwt. Read-only; it
// never changes order state, and an "invalid" verdict arrives as a normal
// result rather than an error.
func (c *Client) Verify(ctx context.Context, orderJWT string) (*models.VerifyResult, error) {
	const endpoint = "GET /api/order/verify"

	var out models.VerifyResult
	resp, err := c.request().
		SetContext(ctx).
		SetResult(&out).
		SetError(&out).
		Get("/api/order/verify/" + orderJWT)
	if err != nil {
		return nil, transportError(endpoint, err)
	}
	if resp.IsError() && out.Message == "" {
		return nil, apiError(endpoint, resp)
	}
	return &out, nil
}

// Docs fetches the informational API catalog.
func (c *Client) Docs(ctx context.Context) (*catalog.Catalog, error) {
	const endpoint = "GET /api/docs"

	var out catalog.Catalog
	resp, err := c.request().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/docs")
	if err != nil {
		return nil, transportError(endpoint, err)
	}
	if resp.IsError() {
		return nil, apiError(endpoint, resp)
	}
	return &out, nil
}
