package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"pizza-storefront/internal/common/errors"
	"pizza-storefront/internal/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest carries a profile edit. Password is optional.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// Login exchanges credentials for a session via PUT /api/auth.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	const endpoint = "PUT /api/auth"

	var out models.AuthResponse
	resp, err := c.request().
		SetContext(ctx).
		SetBody(loginRequest{Email: email, Password: password}).
		SetResult(&out).
		Put("/api/auth")
	if err != nil {
		return nil, transportError(endpoint, err)
	}
	if resp.IsError() {
		return nil, errors.NewAuthFailedError(serverMessage(resp), resp.StatusCode())
	}
	return &out, nil
}

// Register creates a new diner account via POST /api/auth.
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error) {
	const endpoint = "POST /api/auth"

	var out models.AuthResponse
	resp, err := c.request().
		SetContext(ctx).
		SetBody(registerRequest{Name: name, Email: email, Password: password}).
		SetResult(&out).
		Post("/api/auth")
	if err != nil {
		return nil, transportError(endpoint, err)
	}
	if resp.IsError() {
		return nil, errors.NewRegistrationFailedError(serverMessage(resp), resp.StatusCode())
	}
	return &out, nil
}

// Logout invalidates the session server-side via DELETE /api/auth. The
// returned message is informational only; callers clear local state
// regardless of what the server said.
func (c *Client) Logout(ctx context.Context) (string, error) {
	const endpoint = "DELETE /api/auth"

	resp, err := c.request().
		SetContext(ctx).
		Delete("/api/auth")
	if err != nil {
		return "", transportError(endpoint, err)
	}

	var body models.APIMessage
	_ = json.Unmarshal(resp.Body(), &body)
	if resp.IsError() {
		return body.Message, apiError(endpoint, resp)
	}
	return body.Message, nil
}

// Me fetches the user behind the current token. A null or empty body means
// the token is stale and the caller should stay anonymous.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	const endpoint = "GET /api/user/me"

	resp, err := c.request().
		SetContext(ctx).
		Get("/api/user/me")
	if err != nil {
		return nil, transportError(endpoint, err)
	}
	if resp.IsError() {
		return nil, apiError(endpoint, resp)
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, decodeError(endpoint, err)
	}
	if user.ID.IsZero() && user.Email == "" {
		return nil, nil
	}
	return &user, nil
}

// UpdateUser edits a profile via PUT /api/user/:id and returns the refreshed
// session material.
func (c *Client) UpdateUser(ctx context.Context, id models.ID, req UpdateUserRequest) (*models.AuthResponse, error) {
	endpoint := fmt.Sprintf("PUT /api/user/%s", id)

	var out models.AuthResponse
	resp, err := c.request().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Put("/api/user/" + id.String())
	if err != nil {
		return nil, transportError(endpoint, err)
	}
	if resp.IsError() {
		return nil, apiError(endpoint, resp)
	}
	return &out, nil
}

// ListUsers fetches one page of the admin user listing. The name filter is
// passed through as-is; callers apply the `*term*` wildcard convention.
func (c *Client) ListUsers(ctx context.Context, page, limit int, name string) (*models.UserPage, error) {
	const endpoint = "GET /api/user"

	var out models.UserPage
	resp, err := c.request().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":  strconv.Itoa(page),
			"limit": strconv.Itoa(limit),
			"name":  name,
		}).
		SetResult(&out).
		Get("/api/user")
	if err != nil {
		return nil, transportError(endpoint, err)
	}
	if resp.IsError() {
		return nil, apiError(endpoint, resp)
	}
	return &out, nil
}

// DeleteUser removes a user via DELETE /api/user/:id (admin only).
func (c *Client) DeleteUser(ctx context.Context, id models.ID) error {
	endpoint := fmt.Sprintf("DELETE /api/user/%s", id)

	resp, err := c.request().
		SetContext(ctx).
		Delete("/api/user/" + id.String())
	if err != nil {
		return transportError(endpoint, err)
	}
	if resp.IsError() {
		return apiError(endpoint, resp)
	}
	return nil
}
